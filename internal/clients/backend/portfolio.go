package backend

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/bobmcallan/papertrade/internal/models"
)

// GetSummary retrieves the user's portfolio summary
func (c *Client) GetSummary(ctx context.Context, userID string) (*models.PortfolioSummary, error) {
	var summary models.PortfolioSummary
	path := fmt.Sprintf("/api/portfolios/user/%s/summary", url.PathEscape(userID))
	if err := c.get(ctx, path, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetAllPositions retrieves positions across all of the user's portfolios
func (c *Client) GetAllPositions(ctx context.Context, userID string) ([]models.Position, error) {
	var positions []models.Position
	path := fmt.Sprintf("/api/portfolios/user/%s/all-positions", url.PathEscape(userID))
	if err := c.get(ctx, path, &positions); err != nil {
		return nil, err
	}
	for i := range positions {
		positions[i].AssetType = positions[i].AssetType.Normalize()
	}
	return positions, nil
}

type historicalResponse struct {
	Data []struct {
		Timestamp int64   `json:"timestamp"` // seconds
		Value     float64 `json:"value"`
	} `json:"data"`
}

// GetHistoricalPerformance retrieves portfolio value samples for a range
func (c *Client) GetHistoricalPerformance(ctx context.Context, userID string, r models.PerformanceRange) ([]models.HistoricalPoint, error) {
	var resp historicalResponse
	path := fmt.Sprintf("/api/portfolios/user/%s/performance/historical?range=%s",
		url.PathEscape(userID), url.QueryEscape(string(r)))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}

	points := make([]models.HistoricalPoint, len(resp.Data))
	for i, d := range resp.Data {
		points[i] = models.HistoricalPoint{
			Time:  time.Unix(d.Timestamp, 0).UTC(),
			Value: d.Value,
		}
	}
	return points, nil
}

// ListPortfolios retrieves the user's portfolios
func (c *Client) ListPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	path := fmt.Sprintf("/api/portfolios/user/%s", url.PathEscape(userID))
	if err := c.get(ctx, path, &portfolios); err != nil {
		return nil, err
	}
	return portfolios, nil
}

// Buy places a simulated buy order
func (c *Client) Buy(ctx context.Context, portfolioID string, order models.BuyOrder) error {
	path := fmt.Sprintf("/api/portfolios/%s/buy", url.PathEscape(portfolioID))
	return c.post(ctx, path, order, nil)
}

// Sell places a simulated sell order
func (c *Client) Sell(ctx context.Context, portfolioID string, order models.SellOrder) error {
	path := fmt.Sprintf("/api/portfolios/%s/sell", url.PathEscape(portfolioID))
	return c.post(ctx, path, order, nil)
}
