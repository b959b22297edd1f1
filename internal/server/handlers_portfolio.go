package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bobmcallan/papertrade/internal/models"
	"github.com/bobmcallan/papertrade/internal/services/portfolio"
)

// handlePortfolio handles GET /api/users/{id}/portfolio
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	snap, err := s.app.PortfolioService.Snapshot(r.Context(), userID)
	if err != nil {
		WriteUpstreamError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, snap)
}

func rangeParam(r *http.Request) models.PerformanceRange {
	v := strings.TrimSpace(r.URL.Query().Get("range"))
	if v == "" {
		return models.Range1M
	}
	return models.PerformanceRange(strings.ToUpper(v))
}

// handlePerformance handles GET /api/users/{id}/performance?range=
func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	rng := rangeParam(r)
	points, err := s.app.PortfolioService.History(r.Context(), userID, rng)
	if err != nil {
		if errors.Is(err, portfolio.ErrInvalidRange) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteUpstreamError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"range":  rng,
		"points": points,
		"stats":  portfolio.SummarizeHistory(points),
	})
}

// handlePerformanceChart handles GET /api/users/{id}/performance/chart?range=
func (s *Server) handlePerformanceChart(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	rng := rangeParam(r)
	points, err := s.app.PortfolioService.History(r.Context(), userID, rng)
	if err != nil {
		if errors.Is(err, portfolio.ErrInvalidRange) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteUpstreamError(w, err)
		return
	}

	png, err := portfolio.RenderPerformanceChart(points, rng)
	if err != nil {
		WriteErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), "insufficient_data")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleBuy handles POST /api/portfolios/{id}/buy
func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	portfolioID, ok := s.authorizePortfolio(w, r)
	if !ok {
		return
	}

	var order models.BuyOrder
	if !DecodeJSON(w, r, &order) {
		return
	}

	s.writeOrderResult(w, s.app.PortfolioService.Buy(r.Context(), portfolioID, order))
}

// handleSell handles POST /api/portfolios/{id}/sell
func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	portfolioID, ok := s.authorizePortfolio(w, r)
	if !ok {
		return
	}

	var order models.SellOrder
	if !DecodeJSON(w, r, &order) {
		return
	}

	s.writeOrderResult(w, s.app.PortfolioService.Sell(r.Context(), portfolioID, order))
}

func (s *Server) writeOrderResult(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, portfolio.ErrInvalidOrder):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "invalid_order")
	default:
		WriteUpstreamError(w, err)
	}
}
