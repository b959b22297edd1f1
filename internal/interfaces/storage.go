package interfaces

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStorage.Get for a missing key
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStorage is a string key/value store, the server-side analogue of browser local storage
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	GetAll(ctx context.Context) (map[string]string, error)
}

// StorageManager owns the local state store
type StorageManager interface {
	KeyValueStorage() KeyValueStorage
	Close() error
}
