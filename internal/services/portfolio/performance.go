package portfolio

import (
	"math"

	"github.com/bobmcallan/papertrade/internal/models"
)

// trendBand is how far (as a fraction) the last value must sit from the window
// average before the trend counts as up or down.
const trendBand = 0.005

// Trend labels
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// SummarizeHistory computes range statistics for points in time order.
// An empty window returns zero stats with a flat trend.
func SummarizeHistory(points []models.HistoricalPoint) models.PerformanceStats {
	stats := models.PerformanceStats{Trend: TrendFlat}
	if len(points) == 0 {
		return stats
	}

	stats.Start = points[0].Value
	stats.End = points[len(points)-1].Value
	stats.High = math.Inf(-1)
	stats.Low = math.Inf(1)

	sum := 0.0
	for _, p := range points {
		sum += p.Value
		stats.High = math.Max(stats.High, p.Value)
		stats.Low = math.Min(stats.Low, p.Value)
	}

	stats.Change = stats.End - stats.Start
	if stats.Start != 0 {
		stats.ChangePercent = stats.Change / stats.Start * 100
	}

	avg := sum / float64(len(points))
	if avg > 0 {
		switch dev := (stats.End - avg) / avg; {
		case dev > trendBand:
			stats.Trend = TrendUp
		case dev < -trendBand:
			stats.Trend = TrendDown
		}
	}

	return stats
}
