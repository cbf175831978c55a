package models

import "time"

// AssetType classifies an investment position.
type AssetType string

const (
	AssetTypeStocks      AssetType = "stocks"
	AssetTypeBonds       AssetType = "bonds"
	AssetTypeCrypto      AssetType = "crypto"
	AssetTypeRealEstate  AssetType = "real_estate"
	AssetTypeCommodities AssetType = "commodities"
	AssetTypeOther       AssetType = "other"
)

// InvestmentStatus tracks the lifecycle of a position.
type InvestmentStatus string

const (
	InvestmentStatusActive  InvestmentStatus = "active"
	InvestmentStatusSold    InvestmentStatus = "sold"
	InvestmentStatusPending InvestmentStatus = "pending"
)

// Investment represents one purchased position lot owned by a user.
// CurrentPrice is nil until the owner records a price update; valuation
// falls back to the purchase price in that case.
type Investment struct {
	Base
	UserID        string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Symbol        string           `gorm:"not null" json:"symbol"`
	AssetType     AssetType        `gorm:"not null;index" json:"asset_type"`
	Amount        float64          `gorm:"not null" json:"amount"`
	PurchasePrice float64          `gorm:"not null" json:"purchase_price"`
	CurrentPrice  *float64         `json:"current_price,omitempty"`
	PurchaseDate  time.Time        `gorm:"not null" json:"purchase_date"`
	Status        InvestmentStatus `gorm:"not null;default:active" json:"status"`
	Notes         string           `gorm:"size:500" json:"notes,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// MarkPrice returns the price used to value this position: the current
// price when one has been recorded, otherwise the purchase price.
func (i *Investment) MarkPrice() float64 {
	if i.CurrentPrice != nil {
		return *i.CurrentPrice
	}
	return i.PurchasePrice
}
