// Package badger provides a BadgerHold-backed key/value store for local state.
package badger

import (
	"fmt"
	"os"
	"strings"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/papertrade/internal/common"
)

// Store is the on-disk local state database.
type Store struct {
	db     *badgerhold.Store
	path   string
	logger *common.Logger
}

// NewStore opens the local state database at cfg.Path, creating the directory
// when needed. With cfg.SyncWrites every Set is flushed to disk before it returns.
func NewStore(logger *common.Logger, cfg common.StorageConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("local state path is required")
	}
	if err := os.MkdirAll(cfg.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create local state directory %s: %w", cfg.Path, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = cfg.Path
	options.ValueDir = cfg.Path
	options.SyncWrites = cfg.SyncWrites
	options.Logger = &dbLogger{logger: logger}

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open local state at %s: %w", cfg.Path, err)
	}

	logger.Debug().Str("path", cfg.Path).Bool("sync_writes", cfg.SyncWrites).Msg("Local state store opened")

	return &Store{
		db:     db,
		path:   cfg.Path,
		logger: logger,
	}, nil
}

// DB returns the underlying badgerhold store.
func (s *Store) DB() *badgerhold.Store {
	return s.db
}

// Path returns the directory the store was opened at.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// dbLogger routes badger's internal logging into the application logger.
// Badger is chatty at info, so info and debug are demoted one level.
type dbLogger struct {
	logger *common.Logger
}

func (l *dbLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Str("component", "badger").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *dbLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Str("component", "badger").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *dbLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Str("component", "badger").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *dbLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Str("component", "badger").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
