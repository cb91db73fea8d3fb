package indexstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"wordsplice/internal/indexstore"
	"wordsplice/internal/transcript"
)

func TestSaveAndLoadPreservesOrder(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "talk-index.db")

	if indexstore.Exists(path) {
		t.Fatal("expected no cache before Open")
	}
	store, err := indexstore.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	records := make([]transcript.Record, 0, 250)
	for i := 0; i < 250; i++ {
		records = append(records, transcript.Record{
			Text:       []string{"the", "cat", "sat"}[i%3],
			Start:      float64(i),
			End:        float64(i) + 0.5,
			Confidence: 0.5 + float64(i%50)/100,
		})
	}
	if complete, err := store.Complete(ctx); err != nil || complete {
		t.Fatalf("expected fresh store to be incomplete, got %v, %v", complete, err)
	}
	if err := store.Save(ctx, "/audio/talk.wav", records); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := store.Load(ctx, "/audio/talk.wav")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	for i := range records {
		records[i].Source = "/audio/talk.wav"
	}
	if !reflect.DeepEqual(loaded, records) {
		t.Fatalf("loaded records differ from saved records")
	}
	if n, err := store.Count(ctx); err != nil || n != 250 {
		t.Fatalf("Count = %d, %v", n, err)
	}
	if complete, err := store.Complete(ctx); err != nil || !complete {
		t.Fatalf("expected store to be complete after Save, got %v, %v", complete, err)
	}
	if !indexstore.Exists(path) {
		t.Fatal("expected cache file to exist after Save")
	}
}

func TestSaveReplacesPreviousRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a-index.db")
	store, err := indexstore.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	first := []transcript.Record{{Text: "old", Start: 0, End: 1, Confidence: 0.9}}
	second := []transcript.Record{{Text: "new", Start: 2, End: 3, Confidence: 0.95}}
	if err := store.Save(ctx, "a.wav", first); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := store.Save(ctx, "a.wav", second); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := store.Load(ctx, "a.wav")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Text != "new" {
		t.Fatalf("unexpected records after replace: %+v", loaded)
	}
}

func TestReopenExistingStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "b-index.db")
	store, err := indexstore.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := store.Save(ctx, "b.wav", []transcript.Record{{Text: "hi", Start: 0, End: 1, Confidence: 1}}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	_ = store.Close()

	reopened, err := indexstore.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.Close()
	loaded, err := reopened.Load(ctx, "b.wav")
	if err != nil || len(loaded) != 1 {
		t.Fatalf("Load after reopen = %v, %v", loaded, err)
	}
	if errors.Is(err, indexstore.ErrSchemaMismatch) {
		t.Fatal("unexpected schema mismatch")
	}
}

func TestAudioPathTracksLastSave(t *testing.T) {
	ctx := context.Background()
	store, err := indexstore.Open(ctx, filepath.Join(t.TempDir(), "talk-index.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	if got, err := store.AudioPath(ctx); err != nil || got != "" {
		t.Fatalf("empty store audio path = %q, %v", got, err)
	}
	rec := []transcript.Record{{Text: "hi", Start: 0, End: 1, Confidence: 1}}
	if err := store.Save(ctx, "/a/talk.wav", rec); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := store.Save(ctx, "/b/talk.wav", rec); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if got, err := store.AudioPath(ctx); err != nil || got != "/b/talk.wav" {
		t.Fatalf("audio path = %q, %v", got, err)
	}
}
