package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "investrack/internal/errors"
	"investrack/internal/models"
	"investrack/internal/pagination"
	"investrack/internal/portfolio"
)

// adminService handles admin-only operations.
type adminService struct {
	db *gorm.DB
}

// NewAdminService creates a new AdminServicer.
func NewAdminService(db *gorm.DB) AdminServicer {
	return &adminService{db: db}
}

// GetSystemStats computes system-wide user and investment statistics.
func (s *adminService) GetSystemStats() (*SystemStats, error) {
	stats := &SystemStats{}

	if err := s.db.Model(&models.User{}).Count(&stats.Users.Total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleSubscriber).
		Count(&stats.Users.Subscribers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var records []models.Investment
	if err := s.db.Order("purchase_date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	agg := portfolio.Aggregate(records)
	stats.Investments.Total = int64(agg.TotalInvestments)
	stats.Investments.TotalValue = agg.TotalValue
	stats.Investments.AverageROI = agg.AverageROI

	return stats, nil
}

// GetUsers returns a paginated user listing with optional role and activity filters.
func (s *adminService) GetUsers(filter UserFilter, page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	page.Defaults()

	query := s.db.Model(&models.User{})
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var users []models.User
	if err := query.Order("created_at ASC").Scopes(pagination.Paginate(page)).
		Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(users, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateUser changes a user's active flag and/or role. Nil fields are left unchanged.
func (s *adminService) UpdateUser(userID string, isActive *bool, role *models.Role) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{}
	if isActive != nil {
		updates["is_active"] = *isActive
	}
	if role != nil {
		updates["role"] = *role
	}
	if len(updates) == 0 {
		return &user, nil
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetAuditLogs returns a paginated audit trail, newest first, with optional
// user, action, and date range filters.
func (s *adminService) GetAuditLogs(filter AuditLogFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
	page.Defaults()

	query := s.db.Model(&models.AuditLog{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != nil {
		query = query.Where("action = ?", *filter.Action)
	}
	if filter.Start != nil {
		query = query.Where("created_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		query = query.Where("created_at <= ?", *filter.End)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.AuditLog
	if err := query.Order("created_at DESC").Scopes(pagination.Paginate(page)).
		Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(logs, page.Page, page.PageSize, totalItems)
	return &result, nil
}
