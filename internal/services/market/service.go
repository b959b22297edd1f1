// Package market provides quote, search and trending market data
package market

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bobmcallan/papertrade/internal/clients/backend"
	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/interfaces"
	"github.com/bobmcallan/papertrade/internal/models"
)

// QuoteTTL is how long a fetched quote is served from memory
const QuoteTTL = 15 * time.Second

// ErrEmptySymbol is returned when a quote is requested without a symbol
var ErrEmptySymbol = errors.New("symbol is required")

// ErrUnknownMarketType is returned for a search type other than stock or crypto
var ErrUnknownMarketType = errors.New("unknown market type")

// fallbackTrending is shown when the trending endpoint is unavailable
var fallbackTrending = map[string]float64{
	"AAPL":  1.25,
	"MSFT":  0.87,
	"GOOGL": -0.42,
	"AMZN":  1.08,
	"NVDA":  2.31,
	"TSLA":  -1.64,
}

type cachedQuote struct {
	quote   *models.Quote
	fetched time.Time
}

// Service implements MarketService
type Service struct {
	backend interfaces.BackendClient
	logger  *common.Logger

	mu     sync.Mutex
	quotes map[string]cachedQuote
}

// NewService creates a new market service
func NewService(backend interfaces.BackendClient, logger *common.Logger) *Service {
	return &Service{
		backend: backend,
		logger:  logger,
		quotes:  make(map[string]cachedQuote),
	}
}

// Quote returns the quote for symbol. Invalid quote data is returned as an error,
// never replaced with a default.
func (s *Service) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	s.mu.Lock()
	c, ok := s.quotes[symbol]
	s.mu.Unlock()
	if ok && common.IsFresh(c.fetched, QuoteTTL) {
		return c.quote, nil
	}

	q, err := s.backend.GetQuote(ctx, symbol)
	if err != nil {
		if errors.Is(err, backend.ErrInvalidQuote) {
			s.logger.Warn().Str("symbol", symbol).Msg("Backend returned an invalid quote")
		}
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}

	s.mu.Lock()
	s.quotes[symbol] = cachedQuote{quote: q, fetched: time.Now()}
	s.mu.Unlock()

	return q, nil
}

// Search finds instruments. A blank query returns no results without calling the backend.
func (s *Service) Search(ctx context.Context, query string, marketType models.MarketType) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SearchResult{}, nil
	}

	switch marketType {
	case "", models.MarketStock, models.MarketCrypto:
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMarketType, marketType)
	}

	results, err := s.backend.Search(ctx, query, marketType)
	if err != nil {
		return nil, fmt.Errorf("market search failed: %w", err)
	}
	return results, nil
}

// Trending returns percent changes for the trending symbols. If the backend call
// fails the hardcoded dataset is returned with Fallback set.
func (s *Service) Trending(ctx context.Context) *models.TrendingList {
	items, err := s.backend.GetTrending(ctx)
	if err == nil {
		return &models.TrendingList{Items: items}
	}

	s.logger.Warn().Err(err).Msg("Trending unavailable, serving fallback data")

	list := &models.TrendingList{Fallback: true}
	for _, sym := range backend.TrendingSymbols {
		list.Items = append(list.Items, models.TrendingItem{Symbol: sym, PercentChange: fallbackTrending[sym]})
	}
	return list
}

var _ interfaces.MarketService = (*Service)(nil)
