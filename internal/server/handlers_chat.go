package server

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/papertrade/internal/services/advisor"
)

// handleChatSend handles POST /api/chat. An empty sessionId starts a new session.
func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	transcript, err := s.app.AdvisorService.Ask(req.SessionID, req.Message)
	if err != nil {
		writeAdvisorError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, transcript)
}

// handleChatHistory handles GET /api/chat/{session}
func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	transcript, err := s.app.AdvisorService.History(r.PathValue("session"))
	if err != nil {
		writeAdvisorError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, transcript)
}

// handleChatClose handles DELETE /api/chat/{session}
func (s *Server) handleChatClose(w http.ResponseWriter, r *http.Request) {
	s.app.AdvisorService.Close(r.PathValue("session"))
	w.WriteHeader(http.StatusNoContent)
}

// handleAdvisorSuggest handles POST /api/users/{id}/advisor/suggest
func (s *Server) handleAdvisorSuggest(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	var req struct {
		PersonalityKey string `json:"personalityKey"`
		Prompt         string `json:"prompt"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	suggestion, err := s.app.AdvisorService.Suggest(r.Context(), userID, req.PersonalityKey, req.Prompt)
	if err != nil {
		writeAdvisorError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, suggestion)
}

func writeAdvisorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, advisor.ErrSessionNotFound):
		WriteErrorWithCode(w, http.StatusNotFound, err.Error(), "session_not_found")
	case errors.Is(err, advisor.ErrEmptyMessage):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		WriteUpstreamError(w, err)
	}
}
