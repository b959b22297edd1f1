package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/bobmcallan/papertrade/internal/models"
)

// ErrInvalidQuote is returned when a quote has no current price
var ErrInvalidQuote = errors.New("invalid quote data")

// TrendingSymbols is the fixed list the trending endpoint's values align to, by position.
var TrendingSymbols = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "TSLA"}

type searchResponse struct {
	Result []struct {
		Symbol         string `json:"symbol"`
		InstrumentName string `json:"instrument_name"`
		Description    string `json:"description"`
		InstrumentType string `json:"instrument_type"`
		Type           string `json:"type"`
		DisplaySymbol  string `json:"displaySymbol"`
	} `json:"result"`
}

// Search finds instruments by query. Stock and crypto providers name fields
// differently; both shapes are normalized.
func (c *Client) Search(ctx context.Context, query string, marketType models.MarketType) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	if marketType != "" {
		params.Set("type", string(marketType))
	}

	var resp searchResponse
	if err := c.get(ctx, "/api/market/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		name := r.InstrumentName
		if name == "" {
			name = r.Description
		}
		kind := r.InstrumentType
		if kind == "" {
			kind = r.Type
		}
		display := r.DisplaySymbol
		if display == "" {
			display = r.Symbol
		}
		results = append(results, models.SearchResult{
			Symbol:        r.Symbol,
			Name:          name,
			Type:          kind,
			DisplaySymbol: display,
		})
	}
	return results, nil
}

// GetQuote retrieves a quote and derives change fields
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	var raw models.RawQuote
	if err := c.get(ctx, "/api/market/quote?symbol="+url.QueryEscape(symbol), &raw); err != nil {
		return nil, err
	}
	return DeriveQuote(symbol, raw)
}

// DeriveQuote computes change = c - pc and percent_change = change/pc*100 (two decimals).
// A missing or zero current price is an error, never a silent default.
func DeriveQuote(symbol string, raw models.RawQuote) (*models.Quote, error) {
	if raw.C == 0 {
		return nil, fmt.Errorf("%w for %s: missing current price", ErrInvalidQuote, symbol)
	}

	change := raw.C - raw.PC
	pct := 0.0
	if raw.PC != 0 {
		pct = change / raw.PC * 100
	}

	q := &models.Quote{
		Symbol:        symbol,
		Current:       raw.C,
		Open:          raw.O,
		High:          raw.H,
		Low:           raw.L,
		PreviousClose: raw.PC,
		Change:        change,
		PercentChange: fmt.Sprintf("%.2f", pct),
	}
	if raw.T > 0 {
		q.Timestamp = time.Unix(raw.T, 0).UTC()
	}
	return q, nil
}

// GetTrending retrieves percent changes aligned to TrendingSymbols
func (c *Client) GetTrending(ctx context.Context) ([]models.TrendingItem, error) {
	var resp []struct {
		DP float64 `json:"dp"`
	}
	if err := c.get(ctx, "/api/market/trending", &resp); err != nil {
		return nil, err
	}

	items := make([]models.TrendingItem, len(TrendingSymbols))
	for i, sym := range TrendingSymbols {
		items[i].Symbol = sym
		if i < len(resp) {
			items[i].PercentChange = resp[i].DP
		}
	}
	return items, nil
}
