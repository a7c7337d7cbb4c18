package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/tipout/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "tipout-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("Get missing key reports absent", func(t *testing.T) {
		value, ok, err := store.Get(ctx, storage.HistoryKey)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Errorf("Expected key to be absent, got %q", value)
		}
	})

	t.Run("Set then Get returns value", func(t *testing.T) {
		if err := store.Set(ctx, storage.LanguageKey, "es"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, ok, err := store.Get(ctx, storage.LanguageKey)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok || value != "es" {
			t.Errorf("Get = (%q, %v), want (\"es\", true)", value, ok)
		}
	})

	t.Run("Set overwrites existing value", func(t *testing.T) {
		if err := store.Set(ctx, storage.LanguageKey, "en"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, _, err := store.Get(ctx, storage.LanguageKey)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if value != "en" {
			t.Errorf("Value mismatch: got %q, want %q", value, "en")
		}
	})

	t.Run("Remove deletes key and tolerates missing keys", func(t *testing.T) {
		if err := store.Set(ctx, storage.HistoryKey, `{"version":1,"entries":[]}`); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := store.Remove(ctx, storage.HistoryKey); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if _, ok, _ := store.Get(ctx, storage.HistoryKey); ok {
			t.Error("Expected key to be removed")
		}
		if err := store.Remove(ctx, "never-set"); err != nil {
			t.Errorf("Remove of missing key failed: %v", err)
		}
	})

	t.Run("Values survive reopening", func(t *testing.T) {
		blob := `[{"id":1,"date":"2026-01-02T03:04:05.000Z","totalTips":100,"method":"equal","results":[]}]`
		if err := store.Set(ctx, storage.HistoryKey, blob); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		reopened, err := New(dbPath)
		if err != nil {
			t.Fatalf("Failed to reopen store: %v", err)
		}
		defer reopened.Close()

		value, ok, err := reopened.Get(ctx, storage.HistoryKey)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok || value != blob {
			t.Errorf("Reopened value mismatch: got %q", value)
		}
	})
}
