package advisor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/papertrade/internal/models"
)

// Session is one in-memory chat conversation. Message ids increase monotonically
// within the session starting at 1.
type Session struct {
	ID string

	mu       sync.Mutex
	nextID   int64
	messages []models.ChatMessage
	lastUsed time.Time
	now      func() time.Time
}

// NewSession creates an empty session with a random id
func NewSession() *Session {
	return newSession(time.Now)
}

func newSession(now func() time.Time) *Session {
	return &Session{
		ID:       uuid.New().String(),
		now:      now,
		lastUsed: now(),
	}
}

// Append adds a message and returns it with its id and timestamp set
func (s *Session) Append(t models.MessageType, content string) models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	msg := models.ChatMessage{
		ID:        s.nextID,
		Type:      t,
		Content:   content,
		Timestamp: s.now().UTC(),
	}
	s.messages = append(s.messages, msg)
	s.lastUsed = msg.Timestamp
	return msg
}

// Transcript returns a copy of the session's messages
func (s *Session) Transcript() *models.ChatTranscript {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := make([]models.ChatMessage, len(s.messages))
	copy(msgs, s.messages)
	return &models.ChatTranscript{SessionID: s.ID, Messages: msgs}
}

// IdleSince reports whether the session has been unused since t
func (s *Session) IdleSince(t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed.Before(t)
}
