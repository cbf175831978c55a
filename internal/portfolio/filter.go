package portfolio

import (
	"time"

	"investrack/internal/models"
)

// Filter selects a subset of the cross-user record set for anonymous
// aggregation. All fields are optional; an empty filter matches everything.
type Filter struct {
	AssetType  *models.AssetType
	RiskLevel  *models.RiskLevel
	MinAmount  *float64
	MaxAmount  *float64
	RangeStart *time.Time
	RangeEnd   *time.Time
}

// FromTracking converts a stored tracking filter into a Filter, translating
// its date range into a purchase-date predicate.
func FromTracking(t *models.TrackingFilter) Filter {
	return Filter{
		AssetType:  t.AssetType,
		RiskLevel:  t.RiskLevel,
		MinAmount:  t.MinAmount,
		MaxAmount:  t.MaxAmount,
		RangeStart: t.RangeStart,
		RangeEnd:   t.RangeEnd,
	}
}

// Matches reports whether a record satisfies every set predicate.
// RiskLevel is declared on tracking filters but investments carry no risk
// field, so it does not participate in matching.
func (f Filter) Matches(inv *models.Investment) bool {
	if f.AssetType != nil && inv.AssetType != *f.AssetType {
		return false
	}
	if f.MinAmount != nil && inv.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && inv.Amount > *f.MaxAmount {
		return false
	}
	if f.RangeStart != nil && inv.PurchaseDate.Before(*f.RangeStart) {
		return false
	}
	if f.RangeEnd != nil && inv.PurchaseDate.After(*f.RangeEnd) {
		return false
	}
	return true
}

// Apply returns the records that match the filter, preserving input order.
func (f Filter) Apply(records []models.Investment) []models.Investment {
	matched := make([]models.Investment, 0, len(records))
	for i := range records {
		if f.Matches(&records[i]) {
			matched = append(matched, records[i])
		}
	}
	return matched
}
