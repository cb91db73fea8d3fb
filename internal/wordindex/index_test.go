package wordindex_test

import (
	"bytes"
	"reflect"
	"testing"

	"wordsplice/internal/transcript"
	"wordsplice/internal/wordindex"
)

func rec(text string, start, conf float64, source string) transcript.Record {
	return transcript.Record{Text: text, Start: start, End: start + 0.4, Confidence: conf, Source: source}
}

func TestReconcileDropsBelowThreshold(t *testing.T) {
	idx := wordindex.New()
	idx.Add(rec("hello", 0, 0.89, "a.wav"))
	idx.Add(rec("world", 1, 0.90, "a.wav"))

	stats := idx.Reconcile(wordindex.DefaultConfidenceThreshold)
	if stats.BelowThreshold != 1 || stats.After != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if idx.Contains("hello") {
		t.Fatal("expected 0.89 record to be removed")
	}
	if !idx.Contains("world") {
		t.Fatal("expected record at the threshold to survive")
	}
}

func TestReconcileKeepsHighestConfidence(t *testing.T) {
	a := wordindex.New()
	a.Add(rec("hello", 0, 0.95, "a.wav"))
	b := wordindex.New()
	b.Add(rec("hello", 3, 0.97, "b.wav"))

	combined := wordindex.New()
	combined.Merge(a)
	combined.Merge(b)
	stats := combined.Reconcile(0.9)

	got, ok := combined.Lookup("hello")
	if !ok {
		t.Fatal("expected hello to resolve")
	}
	if got.Confidence != 0.97 || got.Source != "b.wav" {
		t.Fatalf("unexpected survivor: %+v", got)
	}
	if stats.Duplicates != 1 || len(combined.Candidates("hello")) != 1 {
		t.Fatalf("expected one duplicate removed, stats %+v", stats)
	}
}

func TestReconcileTieKeepsFirstInserted(t *testing.T) {
	a := wordindex.New()
	a.Add(rec("hello", 0, 0.95, "a.wav"))
	a.Add(rec("hello", 2, 0.95, "a.wav"))
	b := wordindex.New()
	b.Add(rec("hello", 5, 0.95, "b.wav"))

	combined := wordindex.New()
	combined.Merge(b)
	combined.Merge(a)
	combined.Reconcile(0.9)

	got, _ := combined.Lookup("hello")
	if got.Source != "b.wav" || got.Start != 5 {
		t.Fatalf("expected first merged record to win tie, got %+v", got)
	}

	reversed := wordindex.New()
	reversed.Merge(a)
	reversed.Merge(b)
	reversed.Reconcile(0.9)
	got, _ = reversed.Lookup("hello")
	if got.Source != "a.wav" || got.Start != 0 {
		t.Fatalf("expected a.wav first record to win tie, got %+v", got)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	idx := wordindex.New()
	idx.AddAll([]transcript.Record{
		rec("the", 0, 0.99, "a.wav"),
		rec("the", 1, 0.93, "a.wav"),
		rec("cat", 2, 0.5, "a.wav"),
		rec("sat", 3, 0.91, "a.wav"),
	})
	idx.Reconcile(0.9)
	first := idx.Records()

	stats := idx.Reconcile(0.9)
	if stats.BelowThreshold != 0 || stats.Duplicates != 0 {
		t.Fatalf("second reconcile removed records: %+v", stats)
	}
	if !reflect.DeepEqual(first, idx.Records()) {
		t.Fatalf("records changed: %v vs %v", first, idx.Records())
	}
}

func TestWordsSortedAndDictionary(t *testing.T) {
	idx := wordindex.New()
	idx.Add(rec("mat", 0, 0.99, "a.wav"))
	idx.Add(rec("cat", 1, 0.99, "a.wav"))
	idx.Add(rec("cat", 2, 0.95, "a.wav"))
	idx.Add(rec("the", 3, 0.99, "a.wav"))

	if got, want := idx.Words(), []string{"cat", "mat", "the"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Words() = %v, want %v", got, want)
	}
	if idx.Len() != 4 || idx.WordCount() != 3 {
		t.Fatalf("unexpected sizes: len=%d words=%d", idx.Len(), idx.WordCount())
	}

	var buf bytes.Buffer
	if err := wordindex.WriteDictionary(&buf, idx); err != nil {
		t.Fatalf("WriteDictionary returned error: %v", err)
	}
	if buf.String() != "cat\nmat\nthe\n" {
		t.Fatalf("unexpected dictionary: %q", buf.String())
	}
}

func TestCandidatesReturnsCopy(t *testing.T) {
	idx := wordindex.New()
	idx.Add(rec("cat", 1, 0.99, "a.wav"))
	c := idx.Candidates("cat")
	c[0].Confidence = 0.1
	if got, _ := idx.Lookup("cat"); got.Confidence != 0.99 {
		t.Fatal("mutating candidates copy changed the index")
	}
}
