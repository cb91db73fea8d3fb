package testsupport

import (
	"context"
	"testing"

	"wordsplice/internal/indexstore"
)

// MustOpenStore opens an index cache for tests and registers cleanup.
func MustOpenStore(t testing.TB, path string) *indexstore.Store {
	t.Helper()

	store, err := indexstore.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("indexstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
