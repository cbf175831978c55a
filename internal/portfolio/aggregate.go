package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	"investrack/internal/models"
)

// Position is the rollup of all records sharing one (assetType, symbol) pair.
// The constituent records are retained for drill-down.
type Position struct {
	AssetType        models.AssetType    `json:"asset_type"`
	Symbol           string              `json:"symbol"`
	TotalAmount      float64             `json:"total_amount"`
	AvgPurchasePrice float64             `json:"avg_purchase_price"`
	CurrentPrice     float64             `json:"current_price"`
	TotalValue       float64             `json:"total_value"`
	TotalCost        float64             `json:"total_cost"`
	ProfitLoss       float64             `json:"profit_loss"`
	ROI              float64             `json:"roi"`
	Positions        []models.Investment `json:"positions"`
}

// Summary folds the aggregated positions into one top-level view.
// TotalInvestments counts groups, not raw records.
type Summary struct {
	TotalInvestments int     `json:"total_investments"`
	TotalValue       float64 `json:"total_value"`
	TotalProfit      float64 `json:"total_profit"`
	AverageROI       float64 `json:"average_roi"`
}

// OwnerPortfolio is the full owner-view result: one row per (assetType,
// symbol) group plus the portfolio summary.
type OwnerPortfolio struct {
	Investments []Position `json:"investments"`
	Summary     Summary    `json:"summary"`
}

// AggregateOptions tunes the position rollup.
type AggregateOptions struct {
	// WeightedAverageCost switches AvgPurchasePrice from a simple mean of
	// per-record purchase prices to an amount-weighted mean (a true average
	// cost basis). The simple mean is the historical default.
	WeightedAverageCost bool
}

type groupKey struct {
	assetType models.AssetType
	symbol    string
}

type group struct {
	records     []models.Investment
	totalAmount decimal.Decimal
	sumPrice    decimal.Decimal
	sumWeighted decimal.Decimal
	totalValue  decimal.Decimal
	totalCost   decimal.Decimal
	latest      *models.Investment
}

// AggregatePositions partitions records by (assetType, symbol) and emits one
// Position per group, sorted ascending by asset type then symbol. The group's
// CurrentPrice comes from the constituent with the latest purchase date (on a
// tie, the later record in input order). Input records are never mutated; the
// result is deterministic for a fixed input ordering.
func AggregatePositions(records []models.Investment, opts AggregateOptions) []Position {
	groups := make(map[groupKey]*group)
	order := make([]groupKey, 0)

	for i := range records {
		rec := &records[i]
		key := groupKey{assetType: rec.AssetType, symbol: rec.Symbol}
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}

		amount := decimal.NewFromFloat(rec.Amount)
		price := decimal.NewFromFloat(rec.PurchasePrice)

		g.records = append(g.records, *rec)
		g.totalAmount = g.totalAmount.Add(amount)
		g.sumPrice = g.sumPrice.Add(price)
		g.sumWeighted = g.sumWeighted.Add(amount.Mul(price))
		g.totalValue = g.totalValue.Add(amount.Mul(markPrice(rec)))
		g.totalCost = g.totalCost.Add(amount.Mul(price))

		if g.latest == nil || !rec.PurchaseDate.Before(g.latest.PurchaseDate) {
			g.latest = rec
		}
	}

	positions := make([]Position, 0, len(order))
	for _, key := range order {
		g := groups[key]

		avgPrice := decimal.Zero
		if opts.WeightedAverageCost {
			if !g.totalAmount.IsZero() {
				avgPrice = g.sumWeighted.Div(g.totalAmount)
			}
		} else if n := len(g.records); n > 0 {
			avgPrice = g.sumPrice.Div(decimal.NewFromInt(int64(n)))
		}

		profitLoss := g.totalValue.Sub(g.totalCost)
		roi := decimal.Zero
		if !g.totalCost.IsZero() {
			roi = profitLoss.Div(g.totalCost).Mul(decimal.NewFromInt(100))
		}

		positions = append(positions, Position{
			AssetType:        key.assetType,
			Symbol:           key.symbol,
			TotalAmount:      g.totalAmount.InexactFloat64(),
			AvgPurchasePrice: round2(avgPrice),
			CurrentPrice:     markPrice(g.latest).InexactFloat64(),
			TotalValue:       round2(g.totalValue),
			TotalCost:        round2(g.totalCost),
			ProfitLoss:       round2(profitLoss),
			ROI:              round2(roi),
			Positions:        g.records,
		})
	}

	sort.Slice(positions, func(i, j int) bool {
		if positions[i].AssetType != positions[j].AssetType {
			return positions[i].AssetType < positions[j].AssetType
		}
		return positions[i].Symbol < positions[j].Symbol
	})

	return positions
}

// Summarize folds aggregated positions into a portfolio summary.
// An empty position list yields an all-zero summary, never a division error.
func Summarize(positions []Position) Summary {
	summary := Summary{TotalInvestments: len(positions)}
	if len(positions) == 0 {
		return summary
	}

	totalValue := decimal.Zero
	totalProfit := decimal.Zero
	sumROI := decimal.Zero
	for i := range positions {
		totalValue = totalValue.Add(decimal.NewFromFloat(positions[i].TotalValue))
		totalProfit = totalProfit.Add(decimal.NewFromFloat(positions[i].ProfitLoss))
		sumROI = sumROI.Add(decimal.NewFromFloat(positions[i].ROI))
	}

	summary.TotalValue = round2(totalValue)
	summary.TotalProfit = round2(totalProfit)
	summary.AverageROI = round2(sumROI.Div(decimal.NewFromInt(int64(len(positions)))))
	return summary
}

// ComputeOwnerPortfolio runs the full owner-view aggregation: grouped
// positions plus the folded summary.
func ComputeOwnerPortfolio(records []models.Investment, opts AggregateOptions) OwnerPortfolio {
	positions := AggregatePositions(records, opts)
	return OwnerPortfolio{Investments: positions, Summary: Summarize(positions)}
}
