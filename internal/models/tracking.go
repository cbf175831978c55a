package models

import "time"

// RiskLevel is a subscriber-declared appetite band on a tracking filter.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// TrackingFilter is a subscriber's saved anonymous-query definition.
// It never references specific investments; it is reapplied against the
// live cross-user record set every time insights are requested.
type TrackingFilter struct {
	Base
	SubscriberID string     `gorm:"type:uuid;not null;index" json:"subscriber_id"`
	AssetType    *AssetType `json:"asset_type,omitempty"`
	RiskLevel    *RiskLevel `json:"risk_level,omitempty"`
	MinAmount    *float64   `json:"min_amount,omitempty"`
	MaxAmount    *float64   `json:"max_amount,omitempty"`
	RangeStart   *time.Time `json:"range_start,omitempty"`
	RangeEnd     *time.Time `json:"range_end,omitempty"`

	Subscriber User `gorm:"foreignKey:SubscriberID" json:"-"`
}
