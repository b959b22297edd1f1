package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/interfaces"
	"github.com/bobmcallan/papertrade/internal/models"
)

var (
	// ErrSessionNotFound is returned for an unknown or closed session id
	ErrSessionNotFound = errors.New("chat session not found")

	// ErrEmptyMessage is returned when a message has no content
	ErrEmptyMessage = errors.New("message is empty")
)

// Service implements AdvisorService
type Service struct {
	backend    interfaces.BackendClient
	classifier *Classifier
	fallback   bool
	logger     *common.Logger
	now        func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService creates a new advisor service. When fallback is set, Suggest answers
// from the script if the backend call fails.
func NewService(backend interfaces.BackendClient, classifier *Classifier, fallback bool, logger *common.Logger) *Service {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	return &Service{
		backend:    backend,
		classifier: classifier,
		fallback:   fallback,
		logger:     logger,
		now:        time.Now,
		sessions:   make(map[string]*Session),
	}
}

// Ask records message and the scripted reply. An empty sessionID starts a new session.
func (s *Service) Ask(sessionID, message string) (*models.ChatTranscript, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Append(models.MessageUser, message)
	reply := s.classifier.Classify(message)
	sess.Append(models.MessageAI, reply.Content)

	s.logger.Debug().Str("session", sess.ID).Str("intent", string(reply.Intent)).Msg("Advisor reply")

	return sess.Transcript(), nil
}

func (s *Service) session(id string) (*Session, error) {
	if id == "" {
		sess := newSession(s.now)
		s.mu.Lock()
		s.sessions[sess.ID] = sess
		s.mu.Unlock()
		return sess, nil
	}

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// History returns the full transcript of a session
func (s *Service) History(sessionID string) (*models.ChatTranscript, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return sess.Transcript(), nil
}

// Close discards a session
func (s *Service) Close(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// PruneIdle discards sessions unused for longer than maxIdle and returns how many were removed
func (s *Service) PruneIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if sess.IdleSince(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		s.logger.Info().Int("removed", n).Int("remaining", len(s.sessions)).Msg("Pruned idle chat sessions")
	}
	return n
}

// Suggest asks the backend advisor for a reply. On failure it answers from the
// script when fallback is enabled, and returns the error otherwise.
func (s *Service) Suggest(ctx context.Context, userID, personalityKey, prompt string) (*models.Suggestion, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyMessage
	}

	suggestion, err := s.backend.Suggest(ctx, models.SuggestRequest{
		UserID:         userID,
		PersonalityKey: personalityKey,
		Prompt:         prompt,
	})
	if err == nil {
		return suggestion, nil
	}

	if !s.fallback {
		return nil, fmt.Errorf("advisor suggestion failed: %w", err)
	}

	s.logger.Warn().Err(err).Str("user", userID).Msg("Advisor backend unavailable, using scripted reply")

	return &models.Suggestion{
		Reply:    s.classifier.Classify(prompt).Content,
		Scripted: true,
	}, nil
}

var _ interfaces.AdvisorService = (*Service)(nil)
