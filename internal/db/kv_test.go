// ABOUTME: Tests for the SQLite key-value store.
// ABOUTME: Verifies get/set/delete semantics and persistence across reopen.

package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/harper/gratitude/internal/storage"
)

func setupKV(t *testing.T) (*KV, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	kv, err := OpenKV(path)
	if err != nil {
		t.Fatalf("failed to open kv: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv, path
}

func TestKVGetMissing(t *testing.T) {
	kv, _ := setupKV(t)

	_, err := kv.Get("diaries")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected storage.ErrNotFound, got %v", err)
	}
}

func TestKVSetGet(t *testing.T) {
	kv, _ := setupKV(t)

	if err := kv.Set("diaries", []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := kv.Get("diaries")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("Get = %q, want []", got)
	}

	if err := kv.Set("diaries", []byte(`[{"content":"x","timestamp":1}]`)); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, _ = kv.Get("diaries")
	if string(got) != `[{"content":"x","timestamp":1}]` {
		t.Errorf("Get after overwrite = %q", got)
	}

	if _, err := kv.UpdatedAt("diaries"); err != nil {
		t.Errorf("UpdatedAt failed: %v", err)
	}
}

func TestKVDelete(t *testing.T) {
	kv, _ := setupKV(t)

	if err := kv.Set("settings", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	if err := kv.Delete("settings"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := kv.Get("settings"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if err := kv.Delete("settings"); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
}

func TestKVPersistsAcrossReopen(t *testing.T) {
	kv, path := setupKV(t)
	if err := kv.Set("diaries", []byte("data")); err != nil {
		t.Fatal(err)
	}
	_ = kv.Close()

	reopened, err := OpenKV(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get("diaries")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("Get = %q, want data", got)
	}
}
