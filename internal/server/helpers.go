package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bobmcallan/papertrade/internal/clients/backend"
	"github.com/bobmcallan/papertrade/internal/common"
)

// ErrorResponse is the standard error format for REST API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteErrorWithCode writes a JSON error response with an error code.
func WriteErrorWithCode(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// DecodeJSON reads and decodes JSON from the request body into v.
// Returns false and writes a 400 error if decoding fails.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil || r.Body == http.NoBody {
		WriteError(w, http.StatusBadRequest, "Request body is required")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return false
	}
	return true
}

// WriteUpstreamError maps a backend failure to a response. A backend 404 stays
// a 404; everything else is a 502 with the error inline.
func WriteUpstreamError(w http.ResponseWriter, err error) {
	if backend.IsNotFound(err) {
		WriteErrorWithCode(w, http.StatusNotFound, err.Error(), "not_found")
		return
	}
	WriteErrorWithCode(w, http.StatusBadGateway, err.Error(), "upstream_error")
}

// authorizeUser checks the path user id against the authenticated caller.
// Without a bearer token the path id is trusted. Writes 403 and returns false on mismatch.
func authorizeUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.PathValue("id")
	if userID == "" {
		WriteError(w, http.StatusBadRequest, "user id is required")
		return "", false
	}
	if !common.CanActAs(r.Context(), userID) {
		WriteError(w, http.StatusForbidden, "cannot access another user's data")
		return "", false
	}
	return userID, true
}

// authorizePortfolio checks that the path portfolio id belongs to the authenticated
// caller. Without a bearer token, or for admins, the path id is trusted.
func (s *Server) authorizePortfolio(w http.ResponseWriter, r *http.Request) (string, bool) {
	portfolioID := r.PathValue("id")
	uc := common.UserContextFromContext(r.Context())
	if uc == nil || uc.Role == common.RoleAdmin {
		return portfolioID, true
	}

	portfolios, err := s.app.PortfolioService.Portfolios(r.Context(), uc.UserID)
	if err != nil {
		WriteUpstreamError(w, err)
		return "", false
	}
	for _, p := range portfolios {
		if strconv.FormatInt(p.ID, 10) == portfolioID {
			return portfolioID, true
		}
	}

	s.logger.Warn().Str("user", uc.UserID).Str("portfolio", portfolioID).Msg("Order rejected for portfolio not owned by caller")
	WriteError(w, http.StatusForbidden, "cannot trade on another user's portfolio")
	return "", false
}
