package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bobmcallan/papertrade/internal/app"
	"github.com/bobmcallan/papertrade/internal/common"
)

// handleWebsocket handles GET /ws?user={id}. The client receives the current
// insights on connect and refreshed lists from the scheduler afterwards.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		WriteError(w, http.StatusBadRequest, "user query parameter is required")
		return
	}
	if uc := common.UserContextFromContext(r.Context()); uc != nil && uc.UserID != userID && uc.Role != common.RoleAdmin {
		WriteError(w, http.StatusForbidden, "cannot subscribe to another user's insights")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}

	hub := s.app.Hub
	hub.AddClient(userID, conn)
	s.logger.Debug().Str("user", userID).Int("clients", hub.ClientCount()).Msg("Websocket connected")

	go func() {
		defer func() {
			hub.RemoveClient(userID, conn)
			s.logger.Debug().Str("user", userID).Msg("Websocket disconnected")
		}()

		// Read until the client goes away; inbound messages are ignored.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	list, err := s.app.InsightService.ForUser(ctx, userID, false)
	if err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("Initial insight push failed")
		return
	}
	hub.SendTo(userID, app.EventInsights, list)
}
