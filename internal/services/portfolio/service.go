// Package portfolio provides portfolio aggregation and snapshot services
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/interfaces"
	"github.com/bobmcallan/papertrade/internal/models"
)

// ErrInvalidRange is returned for a performance range outside 1D|1W|1M|3M|1Y
var ErrInvalidRange = errors.New("invalid performance range")

// ErrInvalidOrder is returned when an order fails validation
var ErrInvalidOrder = errors.New("invalid order")

// Service implements PortfolioService
type Service struct {
	backend interfaces.BackendClient
	logger  *common.Logger
	gens    *common.Generations

	mu    sync.RWMutex
	cache map[string]*models.Snapshot
}

// NewService creates a new portfolio service
func NewService(backend interfaces.BackendClient, logger *common.Logger) *Service {
	return &Service{
		backend: backend,
		logger:  logger,
		gens:    common.NewGenerations(),
		cache:   make(map[string]*models.Snapshot),
	}
}

// Snapshot fetches summary and positions and derives totals. Each call takes a
// generation token; a response older than the cached snapshot is returned to
// its caller but never overwrites the cache. Failed fetches commit nothing.
func (s *Service) Snapshot(ctx context.Context, userID string) (*models.Snapshot, error) {
	tok := s.gens.Begin(userID)

	summary, err := s.backend.GetSummary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio summary: %w", err)
	}

	positions, err := s.backend.GetAllPositions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}

	snap := &models.Snapshot{
		UserID:    userID,
		Summary:   *summary,
		Positions: Views(positions),
		Totals:    Aggregate(positions),
		FetchedAt: time.Now().UTC(),
	}

	committed := s.gens.Commit(userID, tok, func() {
		s.mu.Lock()
		s.cache[userID] = snap
		s.mu.Unlock()
	})
	if !committed {
		s.logger.Debug().Str("user", userID).Uint64("generation", tok).Msg("Discarding stale snapshot")
	}

	return snap, nil
}

// Cached returns the last committed snapshot for the user
func (s *Service) Cached(userID string) (*models.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.cache[userID]
	return snap, ok
}

// History returns historical portfolio values for a range
func (s *Service) History(ctx context.Context, userID string, r models.PerformanceRange) ([]models.HistoricalPoint, error) {
	parsed, ok := models.ParsePerformanceRange(string(r))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, r)
	}

	points, err := s.backend.GetHistoricalPerformance(ctx, userID, parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to get historical performance: %w", err)
	}
	return points, nil
}

// Portfolios lists the user's portfolios
func (s *Service) Portfolios(ctx context.Context, userID string) ([]models.Portfolio, error) {
	portfolios, err := s.backend.ListPortfolios(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	return portfolios, nil
}

// Buy validates and forwards a buy order
func (s *Service) Buy(ctx context.Context, portfolioID string, order models.BuyOrder) error {
	if portfolioID == "" {
		return fmt.Errorf("%w: portfolio id is required", ErrInvalidOrder)
	}
	if err := order.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	s.logger.Info().
		Str("portfolio", portfolioID).
		Str("symbol", order.Symbol).
		Float64("quantity", order.Quantity).
		Msg("Placing buy order")

	if err := s.backend.Buy(ctx, portfolioID, order); err != nil {
		return fmt.Errorf("buy %s failed: %w", order.Symbol, err)
	}
	return nil
}

// Sell validates and forwards a sell order
func (s *Service) Sell(ctx context.Context, portfolioID string, order models.SellOrder) error {
	if portfolioID == "" {
		return fmt.Errorf("%w: portfolio id is required", ErrInvalidOrder)
	}
	if err := order.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	s.logger.Info().
		Str("portfolio", portfolioID).
		Str("symbol", order.Symbol).
		Float64("quantity", order.Quantity).
		Msg("Placing sell order")

	if err := s.backend.Sell(ctx, portfolioID, order); err != nil {
		return fmt.Errorf("sell %s failed: %w", order.Symbol, err)
	}
	return nil
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
