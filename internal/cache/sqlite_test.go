package cache

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "picly.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, ok, err := store.Get(KeyUserToken); err != nil || ok {
		t.Fatalf("expected miss on fresh store got ok=%v err=%v", ok, err)
	}

	if err := store.Set(KeyUserToken, "token-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := store.Get(KeyUserToken)
	if err != nil || !ok || value != "token-1" {
		t.Fatalf("unexpected read %q ok=%v err=%v", value, ok, err)
	}

	// Overwrite replaces, not appends.
	if err := store.Set(KeyUserToken, "token-2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = store.Get(KeyUserToken)
	if value != "token-2" {
		t.Fatalf("expected overwrite got %q", value)
	}

	if err := store.Remove(KeyUserToken); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := store.Get(KeyUserToken); ok {
		t.Fatalf("expected miss after remove")
	}

	// Removing an absent key is fine.
	if err := store.Remove("never-set"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}
