package testsupport

import (
	"context"
	"testing"

	"partsite/internal/catalog"
	"partsite/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustCreatePart inserts a part directly, bypassing the importer.
func MustCreatePart(t testing.TB, store *catalog.Store, id string, key catalog.NaturalKey, attrs catalog.Attributes) *catalog.Part {
	t.Helper()

	part, err := store.Create(context.Background(), id, key, attrs)
	if err != nil {
		t.Fatalf("store.Create %s: %v", key, err)
	}
	return part
}
