package script_test

import (
	"errors"
	"reflect"
	"testing"

	"wordsplice/internal/script"
	"wordsplice/internal/transcript"
	"wordsplice/internal/wordindex"
)

func buildIndex(t *testing.T, words ...string) *wordindex.Index {
	t.Helper()
	idx := wordindex.New()
	for i, w := range words {
		rec, err := transcript.NewRecord(w, float64(i), float64(i)+0.5, 0.95, "a.wav")
		if err != nil {
			t.Fatalf("NewRecord: %v", err)
		}
		idx.Add(rec)
	}
	idx.Reconcile(wordindex.DefaultConfidenceThreshold)
	return idx
}

func TestTokenize(t *testing.T) {
	got := script.Tokenize("  The CAT\tsat\n\nÉTÉ ")
	want := []string{"the", "cat", "sat", "été"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestResolvePreservesScriptOrder(t *testing.T) {
	idx := buildIndex(t, "the", "cat", "sat")
	occ, err := script.Resolve("the cat sat the", idx)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{"the", "cat", "sat", "the"}
	if len(occ) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(occ))
	}
	for i, o := range occ {
		if o.Position != i || o.Record.Text != want[i] {
			t.Fatalf("occurrence %d = %+v", i, o)
		}
	}
	if occ[0].Record != occ[3].Record {
		t.Fatal("repeated word should reuse the same record")
	}
}

func TestResolveReportsAllMissingWords(t *testing.T) {
	idx := buildIndex(t, "the", "cat")
	_, err := script.Resolve("the dog sat the dog", idx)
	var missing *script.MissingWordsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingWordsError, got %v", err)
	}
	if !reflect.DeepEqual(missing.Words, []string{"dog", "sat"}) {
		t.Fatalf("missing = %v", missing.Words)
	}
}

func TestResolveEmptyScript(t *testing.T) {
	_, err := script.Resolve(" \n\t ", buildIndex(t, "the"))
	if !errors.As(err, new(script.EmptyScriptError)) {
		t.Fatalf("expected EmptyScriptError, got %v", err)
	}
}
