// Package localstate persists per-user client state: dismissed insights,
// lesson progress and the theme preference. Each value is a JSON document
// under a fixed key. Missing or malformed documents load as empty.
package localstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/interfaces"
)

// Fixed keys for the persisted documents
const (
	KeyDismissedInsights = "dismissedInsights"
	KeyLessonProgress    = "lessonProgress"
	KeyTheme             = "theme"
)

// Key scopes name to a user. An empty user id yields the bare key.
func Key(userID, name string) string {
	if userID == "" {
		return name
	}
	return "user:" + userID + ":" + name
}

// Store hands out per-user views over a KeyValueStorage. Read-modify-write
// mutations are serialized so concurrent updates are not lost.
type Store struct {
	kv     interfaces.KeyValueStorage
	logger *common.Logger
	mu     sync.Mutex
}

// New creates a local state store over kv
func New(kv interfaces.KeyValueStorage, logger *common.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// readJSON decodes key into v. It reports false, leaving v untouched, when the
// key is missing or malformed. A failed read is returned as an error so that
// read-modify-write callers never overwrite a document they could not see.
func (s *Store) readJSON(ctx context.Context, key string, v interface{}) (bool, error) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, interfaces.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Malformed local state, using empty default")
		return false, nil
	}
	return true, nil
}

// loadJSON is readJSON for display paths: read failures degrade to the empty default.
func (s *Store) loadJSON(ctx context.Context, key string, v interface{}) bool {
	ok, err := s.readJSON(ctx, key, v)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to read local state, using empty default")
		return false
	}
	return ok
}

func (s *Store) saveJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
