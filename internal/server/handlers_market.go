package server

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/papertrade/internal/models"
	"github.com/bobmcallan/papertrade/internal/services/market"
)

// handleMarketQuote handles GET /api/market/quote?symbol=
func (s *Server) handleMarketQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := s.app.MarketService.Quote(r.Context(), r.URL.Query().Get("symbol"))
	if err != nil {
		if errors.Is(err, market.ErrEmptySymbol) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteUpstreamError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, quote)
}

// handleMarketSearch handles GET /api/market/search?query=&type=
func (s *Server) handleMarketSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	marketType := models.MarketType(q.Get("type"))
	if marketType == "" {
		marketType = models.MarketStock
	}

	results, err := s.app.MarketService.Search(r.Context(), q.Get("query"), marketType)
	if err != nil {
		if errors.Is(err, market.ErrUnknownMarketType) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteUpstreamError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
	})
}

// handleMarketTrending handles GET /api/market/trending. Never fails; backend
// errors degrade to the fallback list.
func (s *Server) handleMarketTrending(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, s.app.MarketService.Trending(r.Context()))
}
