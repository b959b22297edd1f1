// Package models defines data structures for papertrade
package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AssetType classifies a position
type AssetType string

const (
	AssetTypeStock  AssetType = "STOCK"
	AssetTypeCrypto AssetType = "CRYPTO"
)

// Normalize upper-cases the asset type. Unknown values are returned as-is.
func (a AssetType) Normalize() AssetType {
	return AssetType(strings.ToUpper(strings.TrimSpace(string(a))))
}

// IsCrypto reports whether the asset type is CRYPTO (case-insensitive)
func (a AssetType) IsCrypto() bool {
	return a.Normalize() == AssetTypeCrypto
}

// Position is a held quantity of one symbol at a recorded average cost.
// Positions are owned by the backend; the client only reads them.
type Position struct {
	ID              int64     `json:"id"`
	Symbol          string    `json:"symbol"`
	Name            string    `json:"name"`
	Quantity        float64   `json:"quantity"`
	AverageBuyPrice float64   `json:"averageBuyPrice"`
	CurrentPrice    float64   `json:"currentPrice"`
	AssetType       AssetType `json:"assetType"`
	PortfolioName   string    `json:"portfolioName,omitempty"`
}

// MarketValue returns quantity × current price
func (p Position) MarketValue() float64 {
	return p.Quantity * p.CurrentPrice
}

// CostBasis returns quantity × average buy price
func (p Position) CostBasis() float64 {
	return p.Quantity * p.AverageBuyPrice
}

// DisplaySymbol strips a market-type prefix such as "BINANCE:" from the symbol.
func (p Position) DisplaySymbol() string {
	if i := strings.LastIndex(p.Symbol, ":"); i >= 0 && i < len(p.Symbol)-1 {
		return p.Symbol[i+1:]
	}
	return p.Symbol
}

// PortfolioTotals is derived from the current position set on every read; never stored.
type PortfolioTotals struct {
	TotalValue    float64 `json:"totalValue"`
	TotalCost     float64 `json:"totalCost"`
	TotalGainLoss float64 `json:"totalGainLoss"`
}

// GainLossPercent returns totalGainLoss / totalCost × 100, and false unless cost is positive
func (t PortfolioTotals) GainLossPercent() (float64, bool) {
	if t.TotalCost <= 0 {
		return 0, false
	}
	return t.TotalGainLoss / t.TotalCost * 100, true
}

// PositionMetrics holds per-position derived values
type PositionMetrics struct {
	MarketValue     float64 `json:"marketValue"`
	CostBasis       float64 `json:"costBasis"`
	GainLoss        float64 `json:"gainLoss"`
	GainLossPercent float64 `json:"gainLossPercent"`
}

// PositionView pairs a position with its derived metrics for display
type PositionView struct {
	Position
	Metrics PositionMetrics `json:"metrics"`
}

// PortfolioSummary is the backend's user-level summary
type PortfolioSummary struct {
	TotalValue           float64 `json:"totalValue"`
	TotalCash            float64 `json:"totalCash"`
	TotalGainLoss        float64 `json:"totalGainLoss"`
	TotalGainLossPercent float64 `json:"totalGainLossPercent"`
}

// Portfolio is one of a user's named portfolios
type Portfolio struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	CashBalance float64 `json:"cashBalance"`
	TotalValue  float64 `json:"totalValue,omitempty"`
}

// Snapshot is one consistent read of a user's holdings, cash and derived totals
type Snapshot struct {
	UserID    string           `json:"userId"`
	Summary   PortfolioSummary `json:"summary"`
	Positions []PositionView   `json:"positions"`
	Totals    PortfolioTotals  `json:"totals"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

// RawPositions returns the positions without metrics
func (s *Snapshot) RawPositions() []Position {
	out := make([]Position, len(s.Positions))
	for i, pv := range s.Positions {
		out[i] = pv.Position
	}
	return out
}

// PerformanceRange is a historical performance window
type PerformanceRange string

const (
	Range1D PerformanceRange = "1D"
	Range1W PerformanceRange = "1W"
	Range1M PerformanceRange = "1M"
	Range3M PerformanceRange = "3M"
	Range1Y PerformanceRange = "1Y"
)

// ParsePerformanceRange returns the range for s (case-insensitive), or false if unknown.
func ParsePerformanceRange(s string) (PerformanceRange, bool) {
	switch r := PerformanceRange(strings.ToUpper(strings.TrimSpace(s))); r {
	case Range1D, Range1W, Range1M, Range3M, Range1Y:
		return r, true
	}
	return "", false
}

// HistoricalPoint is one portfolio value sample
type HistoricalPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// BuyOrder is the body of POST /api/portfolios/{id}/buy
type BuyOrder struct {
	Symbol       string    `json:"symbol" validate:"required"`
	AssetName    string    `json:"assetName" validate:"required"`
	AssetType    AssetType `json:"assetType" validate:"required,oneof=STOCK CRYPTO"`
	Quantity     float64   `json:"quantity" validate:"gt=0"`
	CurrentPrice float64   `json:"currentPrice" validate:"gt=0"`
}

// Validate normalizes the asset type and checks required fields
func (o *BuyOrder) Validate() error {
	o.AssetType = o.AssetType.Normalize()
	return validate.Struct(o)
}

// SellOrder is the body of POST /api/portfolios/{id}/sell
type SellOrder struct {
	Symbol       string    `json:"symbol" validate:"required"`
	AssetType    AssetType `json:"assetType" validate:"required,oneof=STOCK CRYPTO"`
	Quantity     float64   `json:"quantity" validate:"gt=0"`
	CurrentPrice float64   `json:"currentPrice" validate:"gt=0"`
}

// Validate normalizes the asset type and checks required fields
func (o *SellOrder) Validate() error {
	o.AssetType = o.AssetType.Normalize()
	return validate.Struct(o)
}

// PerformanceStats summarizes a historical window
type PerformanceStats struct {
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"` // 0 when Start is 0
	Trend         string  `json:"trend"`         // up, down or flat: last value against the window average
}
