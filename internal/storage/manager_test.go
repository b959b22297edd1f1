package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/interfaces"
)

func TestNewManager_Memory(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = ""

	m, err := NewManager(common.NewSilentLogger(), cfg)
	require.NoError(t, err)
	defer m.Close()

	_, ok := m.KeyValueStorage().(*MemoryKV)
	assert.True(t, ok, "empty path should select the in-memory store")
}

func TestNewManager_BadgerPersists(t *testing.T) {
	ctx := context.Background()
	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "localstate")

	m, err := NewManager(common.NewSilentLogger(), cfg)
	require.NoError(t, err)
	require.NoError(t, m.KeyValueStorage().Set(ctx, "theme", `"dark"`))
	require.NoError(t, m.Close())

	m2, err := NewManager(common.NewSilentLogger(), cfg)
	require.NoError(t, err)
	defer m2.Close()

	v, err := m2.KeyValueStorage().Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, v)
}

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	_, err := kv.Get(ctx, "missing")
	assert.True(t, errors.Is(err, interfaces.ErrKeyNotFound))

	require.NoError(t, kv.Set(ctx, "a", "1"))
	require.NoError(t, kv.Set(ctx, "b", "2"))

	all, err := kv.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, all)

	all["c"] = "3"
	again, _ := kv.GetAll(ctx)
	assert.Len(t, again, 2, "GetAll must return a copy")

	require.NoError(t, kv.Delete(ctx, "a"))
	_, err = kv.Get(ctx, "a")
	assert.ErrorIs(t, err, interfaces.ErrKeyNotFound)
}
