package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/papertrade/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL+"/"), WithAPIKey("secret"), WithRateLimit(1000))
}

func TestGetQuote_DerivesChange(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/market/quote" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("symbol = %q, want AAPL", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"c":110,"pc":100,"o":101,"h":111,"l":99,"t":1700000000}`))
	})

	q, err := client.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, q.Change, 1e-9)
	assert.Equal(t, "10.00", q.PercentChange)
	assert.Equal(t, 110.0, q.Current)
	assert.Equal(t, int64(1700000000), q.Timestamp.Unix())
}

func TestGetQuote_MissingCurrentPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"c":0,"pc":100}`))
	})

	_, err := client.GetQuote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidQuote))
}

func TestDeriveQuote_ZeroPreviousClose(t *testing.T) {
	q, err := DeriveQuote("BTC", models.RawQuote{C: 50})
	require.NoError(t, err)
	assert.Equal(t, "0.00", q.PercentChange)
	assert.Equal(t, 50.0, q.Change)
}

func TestDeriveQuote_Negative(t *testing.T) {
	q, err := DeriveQuote("MSFT", models.RawQuote{C: 95, PC: 100})
	require.NoError(t, err)
	assert.InDelta(t, -5.0, q.Change, 1e-9)
	assert.Equal(t, "-5.00", q.PercentChange)
}

func TestSearch_NormalizesShapes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bit", r.URL.Query().Get("query"))
		assert.Equal(t, "crypto", r.URL.Query().Get("type"))
		w.Write([]byte(`{"result":[
			{"symbol":"AAPL","description":"Apple Inc","type":"Common Stock","displaySymbol":"AAPL"},
			{"symbol":"BINANCE:BTCUSDT","instrument_name":"Bitcoin","instrument_type":"crypto"}
		]}`))
	})

	results, err := client.Search(context.Background(), "bit", models.MarketCrypto)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Apple Inc", results[0].Name)
	assert.Equal(t, "Common Stock", results[0].Type)
	assert.Equal(t, "Bitcoin", results[1].Name)
	assert.Equal(t, "crypto", results[1].Type)
	assert.Equal(t, "BINANCE:BTCUSDT", results[1].DisplaySymbol)
}

func TestGetTrending_AlignsToSymbols(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"dp":1.5},{"dp":-0.4},{"dp":2}]`))
	})

	items, err := client.GetTrending(context.Background())
	require.NoError(t, err)
	require.Len(t, items, len(TrendingSymbols))
	assert.Equal(t, "AAPL", items[0].Symbol)
	assert.Equal(t, 1.5, items[0].PercentChange)
	assert.Equal(t, "GOOGL", items[2].Symbol)
	assert.Equal(t, 2.0, items[2].PercentChange)
	assert.Equal(t, 0.0, items[5].PercentChange)
}

func TestGetAllPositions_NormalizesAssetType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/portfolios/user/u1/all-positions", r.URL.Path)
		w.Write([]byte(`[{"symbol":"BTC","quantity":1,"averageBuyPrice":10,"currentPrice":20,"assetType":"crypto"}]`))
	})

	positions, err := client.GetAllPositions(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, models.AssetTypeCrypto, positions[0].AssetType)
}

func TestGetHistoricalPerformance(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1W", r.URL.Query().Get("range"))
		w.Write([]byte(`{"data":[{"timestamp":1700000000,"value":1000},{"timestamp":1700086400,"value":1010}]}`))
	})

	points, err := client.GetHistoricalPerformance(context.Background(), "u1", models.Range1W)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 1010.0, points[1].Value)
	assert.Equal(t, int64(1700086400), points[1].Time.Unix())
}

func TestBuy_PostsOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/portfolios/p1/buy", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var order models.BuyOrder
		require.NoError(t, json.NewDecoder(r.Body).Decode(&order))
		assert.Equal(t, "AAPL", order.Symbol)
		assert.Equal(t, 2.0, order.Quantity)
		w.WriteHeader(http.StatusCreated)
	})

	err := client.Buy(context.Background(), "p1", models.BuyOrder{
		Symbol: "AAPL", AssetName: "Apple", AssetType: models.AssetTypeStock, Quantity: 2, CurrentPrice: 100,
	})
	require.NoError(t, err)
}

func TestAPIError_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such user", http.StatusNotFound)
	})

	_, err := client.GetUser(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "no such user", apiErr.Message)
	assert.Equal(t, "/api/users/missing", apiErr.Endpoint)
}

func TestSuggest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/suggest", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		var req models.SuggestRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "conservative", req.PersonalityKey)
		w.Write([]byte(`{"conversationId":"c1","reply":"Hold steady."}`))
	})

	s, err := client.Suggest(context.Background(), models.SuggestRequest{UserID: "u1", PersonalityKey: "conservative", Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Hold steady.", s.Reply)
	assert.False(t, s.Scripted)
}

func TestSaveRiskProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/risk-profiles/user/u1", r.URL.Path)
		var p models.RiskProfile
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		p.ID = 7
		json.NewEncoder(w).Encode(p)
	})

	saved, err := client.SaveRiskProfile(context.Background(), "u1", models.RiskProfile{RiskTolerance: "moderate"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), saved.ID)
	assert.Equal(t, "moderate", saved.RiskTolerance)
}
