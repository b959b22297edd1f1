package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/portfolios/user/{id}/summary", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalCash":0}`))
	})
	mux.HandleFunc("GET /api/portfolios/user/{id}/all-positions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"symbol":"BINANCE:BTCUSDT","assetType":"CRYPTO","quantity":1,"averageBuyPrice":100,"currentPrice":100}]`))
	})
	mux.HandleFunc("GET /api/market/quote", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"c":110,"o":100,"h":111,"l":99,"pc":100}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, backendURL string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "papertrade.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[clients.backend]
base_url = "`+backendURL+`"
timeout = "2s"
`), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--ephemeral", "--log-level", "disabled"}, args...))

	err := rootCmd.Execute()
	if papertrade != nil {
		papertrade.Close()
		papertrade = nil
	}
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "http://127.0.0.1:1", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "papertrade "))
}

func TestInsightsCommand(t *testing.T) {
	backend := newBackend(t)

	out, err := run(t, backend.URL, "--user", "1", "insights")
	require.NoError(t, err)
	assert.Contains(t, out, "BTCUSDT makes up 100% of your portfolio.")
	assert.Contains(t, out, "id: concentration-BINANCE:BTCUSDT")
}

func TestQuoteCommand(t *testing.T) {
	backend := newBackend(t)

	out, err := run(t, backend.URL, "quote", "aapl")
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL  110.00  +10.00 (10.00%)")
}

func TestChatCommand_OneShot(t *testing.T) {
	out, err := run(t, "http://127.0.0.1:1", "chat", "Can you give me a real-world example?")
	require.NoError(t, err)
	assert.Contains(t, out, "real-world example")
}

func TestThemeCommand_RejectsUnknown(t *testing.T) {
	_, err := run(t, "http://127.0.0.1:1", "--user", "1", "theme", "blue")
	assert.Error(t, err)
}
