package services

import (
	"time"

	"investrack/internal/models"
	"investrack/internal/pagination"
	"investrack/internal/portfolio"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string, role models.Role) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// CreateInvestmentInput holds the validated fields for a new investment.
type CreateInvestmentInput struct {
	Symbol        string
	AssetType     models.AssetType
	Amount        float64
	PurchasePrice float64
	CurrentPrice  *float64
	PurchaseDate  *time.Time
	Status        models.InvestmentStatus
	Notes         string
}

// UpdateInvestmentInput holds optional fields for a partial investment update.
// Nil fields are left unchanged.
type UpdateInvestmentInput struct {
	Symbol        *string
	AssetType     *models.AssetType
	Amount        *float64
	PurchasePrice *float64
	CurrentPrice  *float64
	PurchaseDate  *time.Time
	Status        *models.InvestmentStatus
	Notes         *string
}

// InvestmentFilter narrows the owner-view record fetch.
type InvestmentFilter struct {
	AssetType *models.AssetType
	Status    *models.InvestmentStatus
}

// InvestmentServicer defines the contract for investment-related business logic.
type InvestmentServicer interface {
	CreateInvestment(userID string, input CreateInvestmentInput) (*models.Investment, error)
	GetPortfolio(scope portfolio.Scope, filter InvestmentFilter) (*portfolio.OwnerPortfolio, error)
	GetInvestmentByID(userID, investmentID string) (*models.Investment, error)
	UpdateInvestment(userID, investmentID string, input UpdateInvestmentInput) (*models.Investment, error)
	DeleteInvestment(userID, investmentID string) error
}

// CreateTrackingInput holds the validated fields for a new tracking filter.
type CreateTrackingInput struct {
	AssetType  *models.AssetType
	RiskLevel  *models.RiskLevel
	MinAmount  *float64
	MaxAmount  *float64
	RangeStart *time.Time
	RangeEnd   *time.Time
}

// TrackingServicer defines the contract for subscriber tracking and
// anonymous aggregation.
type TrackingServicer interface {
	CreateFilter(subscriberID string, input CreateTrackingInput) (*models.TrackingFilter, error)
	GetAggregatedData(f portfolio.Filter) (*portfolio.AnonymousAggregate, error)
	GetInsights(subscriberID, trackingID string) (*models.TrackingFilter, *portfolio.FilterInsight, error)
}

// UserStats summarizes the user base for the admin stats view.
type UserStats struct {
	Total       int64 `json:"total"`
	Subscribers int64 `json:"subscribers"`
}

// InvestmentStats summarizes all investment records for the admin stats view.
type InvestmentStats struct {
	Total      int64   `json:"total"`
	TotalValue float64 `json:"total_value"`
	AverageROI float64 `json:"average_roi"`
}

// SystemStats is the system-wide statistics payload.
type SystemStats struct {
	Users       UserStats       `json:"users"`
	Investments InvestmentStats `json:"investments"`
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Role     *models.Role
	IsActive *bool
}

// AuditLogFilter narrows the admin audit log listing.
type AuditLogFilter struct {
	UserID *string
	Action *string
	Start  *time.Time
	End    *time.Time
}

// AdminServicer defines the contract for admin-only operations.
type AdminServicer interface {
	GetSystemStats() (*SystemStats, error)
	GetUsers(filter UserFilter, page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	UpdateUser(userID string, isActive *bool, role *models.Role) (*models.User, error)
	GetAuditLogs(filter AuditLogFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}

// AuditServicer defines the contract for audit log recording.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
