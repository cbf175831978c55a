// Package portfolio implements the aggregation engine: per-record derived
// metrics, per-(assetType, symbol) position rollups, whole-portfolio
// summaries, and privacy-preserving cross-user aggregates. Every function
// here is a pure computation over a snapshot of investment records; fetching
// those records is the storage layer's job.
package portfolio

import (
	"github.com/shopspring/decimal"

	"investrack/internal/models"
)

// Metrics holds the derived valuation fields for a single investment record.
type Metrics struct {
	CurrentValue float64 `json:"current_value"`
	ProfitLoss   float64 `json:"profit_loss"`
	ROI          float64 `json:"roi"`
}

// round2 rounds a decimal to 2 places and returns it as a float64.
// All monetary and ratio outputs pass through here so that rounding happens
// in fixed-point decimal space, not binary floating point.
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// markPrice returns the valuation price for a record as a decimal:
// the recorded current price, or the purchase price when none exists.
func markPrice(inv *models.Investment) decimal.Decimal {
	if inv.CurrentPrice != nil {
		return decimal.NewFromFloat(*inv.CurrentPrice)
	}
	return decimal.NewFromFloat(inv.PurchasePrice)
}

// recordROI computes a single record's ROI as a decimal percentage.
// A record with zero cost basis has no meaningful ROI and contributes 0,
// never NaN or infinity.
func recordROI(inv *models.Investment) decimal.Decimal {
	amount := decimal.NewFromFloat(inv.Amount)
	cost := amount.Mul(decimal.NewFromFloat(inv.PurchasePrice))
	if cost.IsZero() {
		return decimal.Zero
	}
	value := amount.Mul(markPrice(inv))
	return value.Sub(cost).Div(cost).Mul(decimal.NewFromInt(100))
}

// Compute derives the valuation metrics for one investment record from its
// stored fields. Results are rounded to 2 decimal places.
func Compute(inv *models.Investment) Metrics {
	amount := decimal.NewFromFloat(inv.Amount)
	cost := amount.Mul(decimal.NewFromFloat(inv.PurchasePrice))
	value := amount.Mul(markPrice(inv))

	return Metrics{
		CurrentValue: round2(value),
		ProfitLoss:   round2(value.Sub(cost)),
		ROI:          round2(recordROI(inv)),
	}
}
