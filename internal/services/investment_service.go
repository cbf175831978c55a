package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "investrack/internal/errors"
	"investrack/internal/models"
	"investrack/internal/portfolio"
)

// investmentService handles investment-related business logic.
type investmentService struct {
	db *gorm.DB
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db}
}

// CreateInvestment records a new position for the owning user. The symbol is
// normalized to upper case and the purchase date defaults to now.
func (s *investmentService) CreateInvestment(userID string, input CreateInvestmentInput) (*models.Investment, error) {
	symbol := strings.ToUpper(strings.TrimSpace(input.Symbol))
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}
	if input.Amount < 0 || input.PurchasePrice < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount and purchase price cannot be negative")
	}
	if input.CurrentPrice != nil && *input.CurrentPrice < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current price cannot be negative")
	}

	purchaseDate := time.Now()
	if input.PurchaseDate != nil {
		purchaseDate = *input.PurchaseDate
	}
	status := input.Status
	if status == "" {
		status = models.InvestmentStatusActive
	}

	investment := &models.Investment{
		UserID:        userID,
		Symbol:        symbol,
		AssetType:     input.AssetType,
		Amount:        input.Amount,
		PurchasePrice: input.PurchasePrice,
		CurrentPrice:  input.CurrentPrice,
		PurchaseDate:  purchaseDate,
		Status:        status,
		Notes:         strings.TrimSpace(input.Notes),
	}

	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return investment, nil
}

// GetPortfolio fetches the records visible under the given scope, narrowed by
// the optional asset type and status filters, and runs the owner-view
// aggregation over the snapshot.
func (s *investmentService) GetPortfolio(scope portfolio.Scope, filter InvestmentFilter) (*portfolio.OwnerPortfolio, error) {
	query := s.db.Model(&models.Investment{})
	if !scope.Unrestricted() {
		query = query.Where("user_id = ?", scope.OwnerID())
	}
	if filter.AssetType != nil {
		query = query.Where("asset_type = ?", *filter.AssetType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var records []models.Investment
	if err := query.Order("purchase_date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := portfolio.ComputeOwnerPortfolio(records, portfolio.AggregateOptions{})
	return &result, nil
}

// GetInvestmentByID retrieves one investment owned by the given user.
// Another user's record is indistinguishable from a missing one.
func (s *investmentService) GetInvestmentByID(userID, investmentID string) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.Where("id = ? AND user_id = ?", investmentID, userID).First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// UpdateInvestment applies a partial update to an owned investment.
func (s *investmentService) UpdateInvestment(userID, investmentID string, input UpdateInvestmentInput) (*models.Investment, error) {
	investment, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Symbol != nil {
		symbol := strings.ToUpper(strings.TrimSpace(*input.Symbol))
		if symbol == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol cannot be empty")
		}
		updates["symbol"] = symbol
	}
	if input.AssetType != nil {
		updates["asset_type"] = *input.AssetType
	}
	if input.Amount != nil {
		if *input.Amount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount cannot be negative")
		}
		updates["amount"] = *input.Amount
	}
	if input.PurchasePrice != nil {
		if *input.PurchasePrice < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchase price cannot be negative")
		}
		updates["purchase_price"] = *input.PurchasePrice
	}
	if input.CurrentPrice != nil {
		if *input.CurrentPrice < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current price cannot be negative")
		}
		updates["current_price"] = *input.CurrentPrice
	}
	if input.PurchaseDate != nil {
		updates["purchase_date"] = *input.PurchaseDate
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Notes != nil {
		updates["notes"] = strings.TrimSpace(*input.Notes)
	}

	if len(updates) == 0 {
		return investment, nil
	}

	if err := s.db.Model(investment).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetInvestmentByID(userID, investmentID)
}

// DeleteInvestment removes an owned investment.
func (s *investmentService) DeleteInvestment(userID, investmentID string) error {
	result := s.db.Where("id = ? AND user_id = ?", investmentID, userID).Delete(&models.Investment{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrInvestmentNotFound
	}
	return nil
}
