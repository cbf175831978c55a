package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "investrack/internal/errors"
	"investrack/internal/models"
	"investrack/internal/portfolio"
)

// trackingService handles subscriber tracking filters and anonymous
// cross-user aggregation.
type trackingService struct {
	db *gorm.DB
}

// NewTrackingService creates a new TrackingServicer.
func NewTrackingService(db *gorm.DB) TrackingServicer {
	return &trackingService{db: db}
}

// CreateFilter stores a subscriber's tracking filter.
func (s *trackingService) CreateFilter(subscriberID string, input CreateTrackingInput) (*models.TrackingFilter, error) {
	if input.MinAmount != nil && input.MaxAmount != nil && *input.MinAmount > *input.MaxAmount {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "min_amount cannot exceed max_amount")
	}
	if input.RangeStart != nil && input.RangeEnd != nil && input.RangeStart.After(*input.RangeEnd) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date range start cannot be after end")
	}

	tracking := &models.TrackingFilter{
		SubscriberID: subscriberID,
		AssetType:    input.AssetType,
		RiskLevel:    input.RiskLevel,
		MinAmount:    input.MinAmount,
		MaxAmount:    input.MaxAmount,
		RangeStart:   input.RangeStart,
		RangeEnd:     input.RangeEnd,
	}

	if err := s.db.Create(tracking).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return tracking, nil
}

// fetchAllRecords snapshots the full cross-user record set. Anonymous
// aggregation is deliberately never scoped by owner.
func (s *trackingService) fetchAllRecords() ([]models.Investment, error) {
	var records []models.Investment
	if err := s.db.Order("purchase_date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return records, nil
}

// GetAggregatedData computes the cross-subscriber anonymous aggregate for an
// ad hoc query filter.
func (s *trackingService) GetAggregatedData(f portfolio.Filter) (*portfolio.AnonymousAggregate, error) {
	records, err := s.fetchAllRecords()
	if err != nil {
		return nil, err
	}

	agg := portfolio.Aggregate(f.Apply(records))
	return &agg, nil
}

// GetInsights looks up a stored tracking filter owned by the requesting
// subscriber and computes its insight rollup against the live record set.
func (s *trackingService) GetInsights(subscriberID, trackingID string) (*models.TrackingFilter, *portfolio.FilterInsight, error) {
	var tracking models.TrackingFilter
	if err := s.db.Where("id = ? AND subscriber_id = ?", trackingID, subscriberID).First(&tracking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrTrackingNotFound
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	records, err := s.fetchAllRecords()
	if err != nil {
		return nil, nil, err
	}

	insight := portfolio.Insight(records, portfolio.FromTracking(&tracking))
	return &tracking, &insight, nil
}
