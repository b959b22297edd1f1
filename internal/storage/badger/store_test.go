package badger

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/interfaces"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(testLogger(), common.StorageConfig{Path: filepath.Join(dir, "badger"), SyncWrites: true})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testLogger() *common.Logger {
	return common.NewLogger("error")
}

func TestStore_OpenClose(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(testLogger(), common.StorageConfig{Path: filepath.Join(dir, "badger"), SyncWrites: true})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if store.DB() == nil {
		t.Fatal("expected non-nil DB")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestStore_CloseNilDB(t *testing.T) {
	store := &Store{}
	if err := store.Close(); err != nil {
		t.Fatalf("Close on nil DB should not error: %v", err)
	}
}

func TestKVStorage_SetGetDelete(t *testing.T) {
	kv := NewKVStorage(newTestStore(t), testLogger())
	ctx := context.Background()

	if err := kv.Set(ctx, "theme", `"dark"`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := kv.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != `"dark"` {
		t.Errorf("Get = %q, want %q", got, `"dark"`)
	}

	if err := kv.Set(ctx, "theme", `"light"`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, _ = kv.Get(ctx, "theme")
	if got != `"light"` {
		t.Errorf("after overwrite Get = %q", got)
	}

	if err := kv.Delete(ctx, "theme"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, err = kv.Get(ctx, "theme")
	if !errors.Is(err, interfaces.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}

	if err := kv.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}
}

func TestKVStorage_GetAll(t *testing.T) {
	kv := NewKVStorage(newTestStore(t), testLogger())
	ctx := context.Background()

	for k, v := range map[string]string{
		"user:1:theme":             `"dark"`,
		"user:1:dismissedInsights": `["high-cash"]`,
		"user:2:theme":             `"light"`,
	} {
		if err := kv.Set(ctx, k, v); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}

	all, err := kv.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("GetAll returned %d entries, want 3", len(all))
	}
}

func TestKVStorage_PersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")
	ctx := context.Background()

	store, err := NewStore(testLogger(), common.StorageConfig{Path: dir, SyncWrites: true})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := NewKVStorage(store, testLogger()).Set(ctx, "lessonProgress", `{"intro":{"currentSection":2}}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	store.Close()

	reopened, err := NewStore(testLogger(), common.StorageConfig{Path: dir, SyncWrites: true})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := NewKVStorage(reopened, testLogger()).Get(ctx, "lessonProgress")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got != `{"intro":{"currentSection":2}}` {
		t.Errorf("Get after reopen = %q", got)
	}
}

func TestNewStore_RequiresPath(t *testing.T) {
	if _, err := NewStore(testLogger(), common.StorageConfig{}); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestNewStore_KeepsPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "localstate")
	store, err := NewStore(testLogger(), common.StorageConfig{Path: dir})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer store.Close()

	if store.Path() != dir {
		t.Errorf("Path() = %q, want %q", store.Path(), dir)
	}
}

func TestDBLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := &dbLogger{logger: common.NewLoggerWithOutput("info", &buf)}

	l.Warningf("value log %d truncated\n", 3)
	l.Infof("compaction started")
	l.Debugf("noise")

	out := buf.String()
	if !strings.Contains(out, "value log 3 truncated") || !strings.Contains(out, `"component":"badger"`) {
		t.Errorf("warning not routed to logger: %s", out)
	}
	if strings.Contains(out, "compaction started") || strings.Contains(out, "noise") {
		t.Errorf("info and debug should be demoted below info: %s", out)
	}
}
