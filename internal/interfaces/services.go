package interfaces

import (
	"context"

	"github.com/bobmcallan/papertrade/internal/models"
)

// PortfolioService reads user holdings and places simulated orders
type PortfolioService interface {
	// Snapshot fetches summary and positions and derives totals.
	// Only the newest request per user updates the cached snapshot.
	Snapshot(ctx context.Context, userID string) (*models.Snapshot, error)

	// Cached returns the last committed snapshot for the user
	Cached(userID string) (*models.Snapshot, bool)

	// History returns historical portfolio values for a range
	History(ctx context.Context, userID string, r models.PerformanceRange) ([]models.HistoricalPoint, error)

	// Portfolios lists the user's portfolios
	Portfolios(ctx context.Context, userID string) ([]models.Portfolio, error)

	// Buy validates and forwards a buy order
	Buy(ctx context.Context, portfolioID string, order models.BuyOrder) error

	// Sell validates and forwards a sell order
	Sell(ctx context.Context, portfolioID string, order models.SellOrder) error
}

// InsightService evaluates portfolio insights and tracks dismissals
type InsightService interface {
	// ForUser fetches a fresh snapshot and returns the user's insights.
	// When all is false, dismissed insights are removed and the list is truncated for display.
	ForUser(ctx context.Context, userID string, all bool) (*models.InsightList, error)

	// FromSnapshot evaluates insights for an already fetched snapshot
	FromSnapshot(ctx context.Context, snap *models.Snapshot, all bool) (*models.InsightList, error)

	// Dismiss hides an insight id for the user until ResetDismissed
	Dismiss(ctx context.Context, userID, insightID string) error

	// ResetDismissed clears the user's dismissal set
	ResetDismissed(ctx context.Context, userID string) error
}

// AdvisorService runs scripted advisor conversations
type AdvisorService interface {
	// Ask appends the user message and the scripted reply to the session.
	// An empty sessionID starts a new session.
	Ask(sessionID, message string) (*models.ChatTranscript, error)

	// History returns the full transcript of a session
	History(sessionID string) (*models.ChatTranscript, error)

	// Close discards a session
	Close(sessionID string)

	// Suggest asks the backend advisor, falling back to the script when configured
	Suggest(ctx context.Context, userID, personalityKey, prompt string) (*models.Suggestion, error)
}

// LessonService tracks lesson progress
type LessonService interface {
	Progress(ctx context.Context, userID, lessonID string) (models.LessonProgress, error)
	All(ctx context.Context, userID string) (map[string]models.LessonProgress, error)
	Advance(ctx context.Context, userID, lessonID string, sections int) (models.LessonProgress, error)
	AnswerQuiz(ctx context.Context, userID, lessonID string) (models.LessonProgress, error)
	Complete(ctx context.Context, userID, lessonID string) (models.LessonProgress, error)
}

// MarketService provides quotes, search and trending symbols
type MarketService interface {
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
	Search(ctx context.Context, query string, marketType models.MarketType) ([]models.SearchResult, error)
	Trending(ctx context.Context) *models.TrendingList
}
