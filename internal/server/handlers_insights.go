package server

import (
	"net/http"
	"strconv"
)

// handleInsights handles GET /api/users/{id}/insights[?all=true]
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))

	list, err := s.app.InsightService.ForUser(r.Context(), userID, all)
	if err != nil {
		WriteUpstreamError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, list)
}

// handleInsightDismiss handles POST /api/users/{id}/insights/{insight}/dismiss
func (s *Server) handleInsightDismiss(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	insightID := r.PathValue("insight")
	if err := s.app.InsightService.Dismiss(r.Context(), userID, insightID); err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"dismissed": insightID})
}

// handleInsightReset handles DELETE /api/users/{id}/insights/dismissed
func (s *Server) handleInsightReset(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	if err := s.app.InsightService.ResetDismissed(r.Context(), userID); err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
