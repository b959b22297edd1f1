package server

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/papertrade/internal/common"
)

// registerRoutes sets up all routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/version", s.handleVersion)

	// Portfolio
	mux.HandleFunc("GET /api/users/{id}/portfolio", s.handlePortfolio)
	mux.HandleFunc("GET /api/users/{id}/performance", s.handlePerformance)
	mux.HandleFunc("GET /api/users/{id}/performance/chart", s.handlePerformanceChart)
	mux.HandleFunc("POST /api/portfolios/{id}/buy", s.handleBuy)
	mux.HandleFunc("POST /api/portfolios/{id}/sell", s.handleSell)

	// Insights
	mux.HandleFunc("GET /api/users/{id}/insights", s.handleInsights)
	mux.HandleFunc("POST /api/users/{id}/insights/{insight}/dismiss", s.handleInsightDismiss)
	mux.HandleFunc("DELETE /api/users/{id}/insights/dismissed", s.handleInsightReset)

	// Market data
	mux.HandleFunc("GET /api/market/quote", s.handleMarketQuote)
	mux.HandleFunc("GET /api/market/search", s.handleMarketSearch)
	mux.HandleFunc("GET /api/market/trending", s.handleMarketTrending)

	// Advisor
	mux.HandleFunc("POST /api/chat", s.handleChatSend)
	mux.HandleFunc("GET /api/chat/{session}", s.handleChatHistory)
	mux.HandleFunc("DELETE /api/chat/{session}", s.handleChatClose)
	mux.HandleFunc("POST /api/users/{id}/advisor/suggest", s.handleAdvisorSuggest)

	// Lessons and preferences
	mux.HandleFunc("GET /api/users/{id}/lessons", s.handleLessons)
	mux.HandleFunc("GET /api/users/{id}/lessons/{lesson}", s.handleLessonGet)
	mux.HandleFunc("PUT /api/users/{id}/lessons/{lesson}", s.handleLessonUpdate)
	mux.HandleFunc("GET /api/users/{id}/theme", s.handleThemeGet)
	mux.HandleFunc("PUT /api/users/{id}/theme", s.handleThemeSet)
	mux.HandleFunc("GET /api/users/{id}/risk-profile", s.handleRiskProfileGet)
	mux.HandleFunc("PUT /api/users/{id}/risk-profile", s.handleRiskProfileSet)

	// Realtime insight pushes
	mux.HandleFunc("GET /ws", s.handleWebsocket)

	// MCP tools over streamable HTTP
	mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(s.app.MCPServer, mcpserver.WithStateLess(true)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, common.GetVersionInfo())
}
