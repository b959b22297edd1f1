package portfolio

import "github.com/bobmcallan/papertrade/internal/models"

// Aggregate sums market value and cost basis over the positions.
// The result is exact; nothing is rounded.
func Aggregate(positions []models.Position) models.PortfolioTotals {
	var totals models.PortfolioTotals
	for _, p := range positions {
		totals.TotalValue += p.MarketValue()
		totals.TotalCost += p.CostBasis()
	}
	totals.TotalGainLoss = totals.TotalValue - totals.TotalCost
	return totals
}

// Metrics derives the per-position values shown alongside a holding.
// GainLossPercent is 0 when the average buy price is 0.
func Metrics(p models.Position) models.PositionMetrics {
	m := models.PositionMetrics{
		MarketValue: p.MarketValue(),
		CostBasis:   p.CostBasis(),
	}
	m.GainLoss = m.MarketValue - m.CostBasis
	if p.AverageBuyPrice != 0 {
		m.GainLossPercent = (p.CurrentPrice - p.AverageBuyPrice) / p.AverageBuyPrice * 100
	}
	return m
}

// Views pairs each position with its metrics, preserving order
func Views(positions []models.Position) []models.PositionView {
	views := make([]models.PositionView, len(positions))
	for i, p := range positions {
		views[i] = models.PositionView{Position: p, Metrics: Metrics(p)}
	}
	return views
}
