package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/botforge/botforge/internal/storage"
)

func openTestKV(t *testing.T) *storage.SQLiteKV {
	t.Helper()
	kv, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite err: %v", err)
	}
	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Errorf("Close err: %v", err)
		}
	})
	return kv
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	kv := openTestKV(t)

	if err := kv.Set("bots", `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set err: %v", err)
	}

	value, ok, err := kv.Get("bots")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if value != `[{"id":"a"}]` {
		t.Fatalf("unexpected value: %q", value)
	}
}

func TestSQLiteKVGetAbsent(t *testing.T) {
	kv := openTestKV(t)

	_, ok, err := kv.Get("missing")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if ok {
		t.Fatal("expected absent key")
	}
}

func TestSQLiteKVSetReplaces(t *testing.T) {
	kv := openTestKV(t)

	if err := kv.Set("settings", `{"theme":"dark"}`); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	if err := kv.Set("settings", `{"theme":"light"}`); err != nil {
		t.Fatalf("Set err: %v", err)
	}

	value, _, err := kv.Get("settings")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if value != `{"theme":"light"}` {
		t.Fatalf("expected replaced value, got %q", value)
	}
}

func TestSQLiteKVRemove(t *testing.T) {
	kv := openTestKV(t)

	if err := kv.Set("chats", "{}"); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	if err := kv.Remove("chats"); err != nil {
		t.Fatalf("Remove err: %v", err)
	}

	if _, ok, _ := kv.Get("chats"); ok {
		t.Fatal("expected key to be removed")
	}

	// Removing an absent key is not an error.
	if err := kv.Remove("chats"); err != nil {
		t.Fatalf("Remove absent key err: %v", err)
	}
}
