// Package interfaces defines service contracts for papertrade
package interfaces

import (
	"context"

	"github.com/bobmcallan/papertrade/internal/models"
)

// BackendClient provides access to the paper-trading backend API
type BackendClient interface {
	// GetSummary retrieves the user's portfolio summary
	GetSummary(ctx context.Context, userID string) (*models.PortfolioSummary, error)

	// GetAllPositions retrieves positions across all of the user's portfolios
	GetAllPositions(ctx context.Context, userID string) ([]models.Position, error)

	// GetHistoricalPerformance retrieves portfolio value samples for a range
	GetHistoricalPerformance(ctx context.Context, userID string, r models.PerformanceRange) ([]models.HistoricalPoint, error)

	// ListPortfolios retrieves the user's portfolios
	ListPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error)

	// Buy places a simulated buy order
	Buy(ctx context.Context, portfolioID string, order models.BuyOrder) error

	// Sell places a simulated sell order
	Sell(ctx context.Context, portfolioID string, order models.SellOrder) error

	// Search finds instruments by query
	Search(ctx context.Context, query string, marketType models.MarketType) ([]models.SearchResult, error)

	// GetQuote retrieves a quote and derives change fields
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetTrending retrieves percent changes aligned to the trending symbol list
	GetTrending(ctx context.Context) ([]models.TrendingItem, error)

	// GetUser retrieves a user profile
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetRiskProfile retrieves the user's risk profile
	GetRiskProfile(ctx context.Context, userID string) (*models.RiskProfile, error)

	// SaveRiskProfile stores the user's risk profile
	SaveRiskProfile(ctx context.Context, userID string, profile models.RiskProfile) (*models.RiskProfile, error)

	// Suggest asks the backend advisor for a reply
	Suggest(ctx context.Context, req models.SuggestRequest) (*models.Suggestion, error)
}
