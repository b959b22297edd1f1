package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/papertrade/internal/app"
	"github.com/bobmcallan/papertrade/internal/common"
)

// fakeBackend is an in-process stand-in for the paper-trading backend API
type fakeBackend struct {
	*httptest.Server

	mu        sync.Mutex
	positions string
	quoteBody string
	failAll   bool
	orders    []map[string]interface{}
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{
		positions: `[
			{"symbol":"AAPL","name":"Apple","assetType":"STOCK","quantity":6,"averageBuyPrice":90,"currentPrice":100},
			{"symbol":"MSFT","name":"Microsoft","assetType":"stock","quantity":4,"averageBuyPrice":110,"currentPrice":100}
		]`,
		quoteBody: `{"c":110,"o":101,"h":112,"l":99,"pc":100,"t":1700000000}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/portfolios/user/{id}/summary", func(w http.ResponseWriter, r *http.Request) {
		fb.write(w, `{"totalValue":1000,"totalCash":250}`)
	})
	mux.HandleFunc("GET /api/portfolios/user/{id}/all-positions", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		body := fb.positions
		fb.mu.Unlock()
		fb.write(w, body)
	})
	mux.HandleFunc("GET /api/portfolios/user/{id}/performance/historical", func(w http.ResponseWriter, r *http.Request) {
		fb.write(w, `{"data":[{"timestamp":1700000000,"value":1000},{"timestamp":1700086400,"value":1020},{"timestamp":1700172800,"value":1010}]}`)
	})
	mux.HandleFunc("GET /api/portfolios/user/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "1" {
			fb.write(w, `[{"id":11,"name":"Practice","cashBalance":250}]`)
			return
		}
		fb.write(w, `[]`)
	})
	mux.HandleFunc("POST /api/portfolios/{id}/buy", fb.recordOrder)
	mux.HandleFunc("POST /api/portfolios/{id}/sell", fb.recordOrder)
	mux.HandleFunc("GET /api/market/quote", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		body := fb.quoteBody
		fb.mu.Unlock()
		fb.write(w, body)
	})
	mux.HandleFunc("GET /api/market/search", func(w http.ResponseWriter, r *http.Request) {
		fb.write(w, `{"result":[{"symbol":"AAPL","instrument_name":"Apple Inc","instrument_type":"Common Stock"}]}`)
	})
	mux.HandleFunc("GET /api/market/trending", func(w http.ResponseWriter, r *http.Request) {
		fb.write(w, `[{"dp":1.5},{"dp":-0.5},{"dp":0.1},{"dp":2},{"dp":3},{"dp":-1}]`)
	})
	mux.HandleFunc("GET /api/risk-profiles/user/{id}", func(w http.ResponseWriter, r *http.Request) {
		fb.write(w, `{"id":3,"riskTolerance":"moderate"}`)
	})
	mux.HandleFunc("POST /api/risk-profiles/user/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		body["id"] = 9
		out, _ := json.Marshal(body)
		fb.write(w, string(out))
	})
	mux.HandleFunc("POST /api/ai/suggest", func(w http.ResponseWriter, r *http.Request) {
		fb.write(w, `{"conversationId":"c-1","reply":"Consider an index fund."}`)
	})

	fb.Server = httptest.NewServer(mux)
	t.Cleanup(fb.Close)
	return fb
}

func (fb *fakeBackend) write(w http.ResponseWriter, body string) {
	fb.mu.Lock()
	fail := fb.failAll
	fb.mu.Unlock()
	if fail {
		http.Error(w, `{"message":"backend unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func (fb *fakeBackend) recordOrder(w http.ResponseWriter, r *http.Request) {
	var order map[string]interface{}
	json.NewDecoder(r.Body).Decode(&order)
	fb.mu.Lock()
	fb.orders = append(fb.orders, order)
	fb.mu.Unlock()
	fb.write(w, `{}`)
}

func (fb *fakeBackend) setFailing(v bool) {
	fb.mu.Lock()
	fb.failAll = v
	fb.mu.Unlock()
}

// newTestServer builds a real App against fb with in-memory local state
func newTestServer(t *testing.T, fb *fakeBackend, mutate ...func(*common.Config)) *Server {
	t.Helper()

	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = ""
	cfg.Clients.Backend.BaseURL = fb.URL
	cfg.Clients.Backend.RateLimit = 0
	cfg.Clients.Backend.Timeout = "2s"
	for _, m := range mutate {
		m(cfg)
	}

	a, err := app.NewAppWithConfig(cfg, common.NewSilentLogger())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	return NewServer(a)
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), "body: %s", rr.Body.String())
}
