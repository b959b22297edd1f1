// Package storage provides the StorageManager that owns the local state store.
package storage

import (
	"fmt"

	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/interfaces"
	"github.com/bobmcallan/papertrade/internal/storage/badger"
)

// Manager implements interfaces.StorageManager.
type Manager struct {
	kv     interfaces.KeyValueStorage
	store  *badger.Store // nil for in-memory
	logger *common.Logger
}

var _ interfaces.StorageManager = (*Manager)(nil)

// NewManager opens the local state store at config.Storage.Path.
// An empty path selects an in-memory store.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	path := config.Storage.Path
	if path == "" {
		logger.Info().Msg("Storage manager initialized (in-memory)")
		return NewMemoryManager(logger), nil
	}

	store, err := badger.NewStore(logger, config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create local state store: %w", err)
	}

	logger.Info().Str("path", path).Msg("Storage manager initialized")

	return &Manager{
		kv:     badger.NewKVStorage(store, logger),
		store:  store,
		logger: logger,
	}, nil
}

// NewMemoryManager returns a manager over a fresh in-memory store
func NewMemoryManager(logger *common.Logger) *Manager {
	return &Manager{
		kv:     NewMemoryKV(),
		logger: logger,
	}
}

func (m *Manager) KeyValueStorage() interfaces.KeyValueStorage {
	return m.kv
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Close(); err != nil {
		return fmt.Errorf("failed to close local state store: %w", err)
	}
	return nil
}
