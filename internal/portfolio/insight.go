package portfolio

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"investrack/internal/models"
)

// AnonymousAggregate is a single ungrouped rollup over the matched cross-user
// record set. It deliberately carries no owner identifiers.
type AnonymousAggregate struct {
	TotalInvestments      int                      `json:"total_investments"`
	TotalValue            float64                  `json:"total_value"`
	AverageAmount         float64                  `json:"average_amount"`
	AverageROI            float64                  `json:"average_roi"`
	AssetTypeDistribution map[models.AssetType]int `json:"asset_type_distribution"`
}

// PerformancePoint is one matched record's contribution to the time-ordered
// performance series of a filter insight.
type PerformancePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	ROI   float64   `json:"roi"`
}

// FilterInsight is the per-tracking-filter rollup: totals plus a performance
// series sorted ascending by purchase date.
type FilterInsight struct {
	TotalInvestments int                `json:"total_investments"`
	TotalValue       float64            `json:"total_value"`
	AverageROI       float64            `json:"average_roi"`
	Performance      []PerformancePoint `json:"performance"`
}

// Aggregate computes the cross-subscriber anonymous rollup over an already
// filtered record set. An empty set yields all zeros and an empty
// distribution map, never nil and never a division error.
func Aggregate(records []models.Investment) AnonymousAggregate {
	agg := AnonymousAggregate{
		AssetTypeDistribution: make(map[models.AssetType]int),
	}
	if len(records) == 0 {
		return agg
	}

	totalValue := decimal.Zero
	sumAmount := decimal.Zero
	sumROI := decimal.Zero
	for i := range records {
		rec := &records[i]
		totalValue = totalValue.Add(decimal.NewFromFloat(rec.Amount).Mul(markPrice(rec)))
		sumAmount = sumAmount.Add(decimal.NewFromFloat(rec.Amount))
		sumROI = sumROI.Add(recordROI(rec))
		agg.AssetTypeDistribution[rec.AssetType]++
	}

	n := decimal.NewFromInt(int64(len(records)))
	agg.TotalInvestments = len(records)
	agg.TotalValue = round2(totalValue)
	agg.AverageAmount = round2(sumAmount.Div(n))
	agg.AverageROI = round2(sumROI.Div(n))
	return agg
}

// Insight applies a tracking filter to the full cross-user record set and
// computes the per-filter rollup with its performance series.
func Insight(records []models.Investment, f Filter) FilterInsight {
	matched := f.Apply(records)

	insight := FilterInsight{
		TotalInvestments: len(matched),
		Performance:      make([]PerformancePoint, 0, len(matched)),
	}
	if len(matched) == 0 {
		return insight
	}

	totalValue := decimal.Zero
	sumROI := decimal.Zero
	for i := range matched {
		rec := &matched[i]
		value := decimal.NewFromFloat(rec.Amount).Mul(markPrice(rec))
		roi := recordROI(rec)

		totalValue = totalValue.Add(value)
		sumROI = sumROI.Add(roi)
		insight.Performance = append(insight.Performance, PerformancePoint{
			Date:  rec.PurchaseDate,
			Value: round2(value),
			ROI:   round2(roi),
		})
	}

	sort.SliceStable(insight.Performance, func(i, j int) bool {
		return insight.Performance[i].Date.Before(insight.Performance[j].Date)
	})

	insight.TotalValue = round2(totalValue)
	insight.AverageROI = round2(sumROI.Div(decimal.NewFromInt(int64(len(matched)))))
	return insight
}
