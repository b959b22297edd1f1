package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/papertrade/internal/common"
)

// TestNewApp_InitializesAllServices verifies that NewApp creates an App with
// all services, clients, and the MCP server initialized and non-nil.
func TestNewApp_InitializesAllServices(t *testing.T) {
	configPath := writeTestConfig(t, "http://127.0.0.1:1")

	a, err := NewApp(configPath)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Config)
	assert.NotNil(t, a.Logger)
	assert.NotNil(t, a.Storage)
	assert.NotNil(t, a.LocalState)
	assert.NotNil(t, a.BackendClient)
	assert.NotNil(t, a.PortfolioService)
	assert.NotNil(t, a.InsightService)
	assert.NotNil(t, a.AdvisorService)
	assert.NotNil(t, a.LessonService)
	assert.NotNil(t, a.MarketService)
	assert.NotNil(t, a.Hub)
	assert.NotNil(t, a.MCPServer)
	assert.False(t, a.StartupTime.IsZero())
}

func TestNewApp_RegistersAllTools(t *testing.T) {
	a, err := NewApp(writeTestConfig(t, "http://127.0.0.1:1"))
	require.NoError(t, err)
	defer a.Close()

	c := newInProcessClient(t, a.MCPServer)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	toolsResult, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)

	toolNames := make(map[string]bool)
	for _, tool := range toolsResult.Tools {
		toolNames[tool.Name] = true
	}
	for _, name := range []string{"get_version", "get_insights", "dismiss_insight", "ask_advisor", "get_quote"} {
		assert.True(t, toolNames[name], "expected tool %q", name)
	}
}

func TestNewApp_GetVersionToolWorks(t *testing.T) {
	a, err := NewApp(writeTestConfig(t, "http://127.0.0.1:1"))
	require.NoError(t, err)
	defer a.Close()

	text := callTool(t, newInProcessClient(t, a.MCPServer), "get_version", nil)
	assert.Contains(t, text, "Papertrade Server")
}

func TestTools_InsightsAndDismiss(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/summary"):
			w.Write([]byte(`{"totalCash":0}`))
		case strings.HasSuffix(r.URL.Path, "/all-positions"):
			w.Write([]byte(`[
				{"symbol":"AAPL","assetType":"STOCK","quantity":6,"averageBuyPrice":100,"currentPrice":100},
				{"symbol":"MSFT","assetType":"STOCK","quantity":4,"averageBuyPrice":100,"currentPrice":100}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	a, err := NewApp(writeTestConfig(t, backend.URL))
	require.NoError(t, err)
	defer a.Close()

	c := newInProcessClient(t, a.MCPServer)

	text := callTool(t, c, "get_insights", map[string]any{"user_id": "1"})
	assert.Contains(t, text, "concentration-AAPL")
	assert.Contains(t, text, "AAPL makes up 60% of your portfolio.")

	text = callTool(t, c, "dismiss_insight", map[string]any{"user_id": "1", "insight_id": "concentration-AAPL"})
	assert.Contains(t, text, "Dismissed concentration-AAPL")

	text = callTool(t, c, "get_insights", map[string]any{"user_id": "1"})
	assert.NotContains(t, text, "concentration-AAPL")

	text = callTool(t, c, "get_insights", map[string]any{"user_id": "1", "all": true})
	assert.Contains(t, text, "concentration-AAPL")
}

func TestTools_AskAdvisorKeepsSession(t *testing.T) {
	a, err := NewApp(writeTestConfig(t, "http://127.0.0.1:1"))
	require.NoError(t, err)
	defer a.Close()

	c := newInProcessClient(t, a.MCPServer)

	text := callTool(t, c, "ask_advisor", map[string]any{"message": "Give me a quiz"})
	assert.Contains(t, text, "b)")

	idx := strings.LastIndex(text, "(session: ")
	require.GreaterOrEqual(t, idx, 0)
	session := strings.TrimSuffix(text[idx+len("(session: "):], ")")

	text = callTool(t, c, "ask_advisor", map[string]any{"message": "b", "session_id": session})
	assert.Contains(t, text, "Correct!")

	transcript, err := a.AdvisorService.History(session)
	require.NoError(t, err)
	assert.Len(t, transcript.Messages, 4)
}

func TestTools_InsightsScopedToCaller(t *testing.T) {
	a, err := NewApp(writeTestConfig(t, "http://127.0.0.1:1"))
	require.NoError(t, err)
	defer a.Close()

	toolRequest := func(args map[string]any) mcp.CallToolRequest {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = args
		return req
	}

	user := common.WithUserContext(context.Background(), &common.UserContext{UserID: "1", Role: common.RoleUser})

	result, err := a.handleGetInsights(user, toolRequest(map[string]any{"user_id": "2"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].(mcp.TextContent).Text, "another user")

	result, err = a.handleDismissInsight(user, toolRequest(map[string]any{"user_id": "2", "insight_id": "high-cash"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Empty(t, a.LocalState.Dismissals("2").Load(context.Background()), "foreign dismissal must not be written")

	// user_id defaults to the caller
	result, err = a.handleDismissInsight(user, toolRequest(map[string]any{"insight_id": "high-cash"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, a.LocalState.Dismissals("1").Load(context.Background()), "high-cash")

	admin := common.WithUserContext(context.Background(), &common.UserContext{UserID: "ops", Role: common.RoleAdmin})
	result, err = a.handleDismissInsight(admin, toolRequest(map[string]any{"user_id": "2", "insight_id": "high-cash"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	// no caller and no user_id
	result, err = a.handleGetInsights(context.Background(), toolRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestNewApp_CloseIsIdempotent(t *testing.T) {
	a, err := NewApp(writeTestConfig(t, "http://127.0.0.1:1"))
	require.NoError(t, err)

	require.NoError(t, a.StartScheduler())
	a.Close()
	a.Close()
}

func TestNewApp_InvalidConfigReturnsError(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("{{{{invalid toml"), 0644))

	_, err := NewApp(configPath)
	assert.Error(t, err)
}

func TestResolveConfigPath_EnvOverride(t *testing.T) {
	assert.Equal(t, "explicit.toml", ResolveConfigPath("explicit.toml"))

	t.Setenv("PAPERTRADE_CONFIG", "/etc/papertrade/papertrade.toml")
	assert.Equal(t, "/etc/papertrade/papertrade.toml", ResolveConfigPath(""))
}

// --- test helpers ---

// writeTestConfig creates a minimal papertrade.toml in a temp directory
func writeTestConfig(t *testing.T, backendURL string) string {
	t.Helper()
	dir := t.TempDir()

	config := `
[storage]
path = "` + filepath.ToSlash(filepath.Join(dir, "data")) + `"

[clients.backend]
base_url = "` + backendURL + `"
timeout = "2s"

[logging]
level = "error"
outputs = ["console"]
file_path = "` + filepath.ToSlash(filepath.Join(dir, "logs", "papertrade.log")) + `"
`
	configPath := filepath.Join(dir, "papertrade.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))
	return configPath
}

// newInProcessClient creates an mcp-go in-process client connected to the given
// MCP server. Handles initialization handshake.
func newInProcessClient(t *testing.T, mcpServer *server.MCPServer) *client.Client {
	t.Helper()

	c, err := client.NewInProcessClient(mcpServer)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)

	return c
}

func callTool(t *testing.T, c *client.Client, name string, args map[string]any) string {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}
