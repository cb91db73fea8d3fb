package wordindex

import (
	"slices"

	"wordsplice/internal/transcript"
)

// DefaultConfidenceThreshold is the minimum confidence a record needs to
// survive reconciliation.
const DefaultConfidenceThreshold = 0.90

// Index maps normalized word text to candidate records.
type Index struct {
	entries map[string][]transcript.Record
	count   int
}

// New returns an empty index.
func New() *Index {
	return &Index{entries: make(map[string][]transcript.Record)}
}

// Add appends a record under its text key.
func (idx *Index) Add(rec transcript.Record) {
	if idx.entries == nil {
		idx.entries = make(map[string][]transcript.Record)
	}
	idx.entries[rec.Text] = append(idx.entries[rec.Text], rec)
	idx.count++
}

// AddAll appends records in order.
func (idx *Index) AddAll(records []transcript.Record) {
	for _, rec := range records {
		idx.Add(rec)
	}
}

// Merge appends every candidate of other after the candidates already held,
// so records from earlier merges win confidence ties.
func (idx *Index) Merge(other *Index) {
	if other == nil {
		return
	}
	for _, word := range other.Words() {
		for _, rec := range other.entries[word] {
			idx.Add(rec)
		}
	}
}

// Lookup returns the first candidate for word. After Reconcile it is the
// only candidate.
func (idx *Index) Lookup(word string) (transcript.Record, bool) {
	candidates := idx.entries[word]
	if len(candidates) == 0 {
		return transcript.Record{}, false
	}
	return candidates[0], true
}

// Candidates returns a copy of the records held for word.
func (idx *Index) Candidates(word string) []transcript.Record {
	return slices.Clone(idx.entries[word])
}

// Contains reports whether word has at least one candidate.
func (idx *Index) Contains(word string) bool {
	return len(idx.entries[word]) > 0
}

// Words returns the distinct keys in sorted order.
func (idx *Index) Words() []string {
	words := make([]string, 0, len(idx.entries))
	for word, candidates := range idx.entries {
		if len(candidates) > 0 {
			words = append(words, word)
		}
	}
	slices.Sort(words)
	return words
}

// Records returns every record, grouped by sorted word and in candidate
// order within a word.
func (idx *Index) Records() []transcript.Record {
	out := make([]transcript.Record, 0, idx.count)
	for _, word := range idx.Words() {
		out = append(out, idx.entries[word]...)
	}
	return out
}

// Len returns the number of records held.
func (idx *Index) Len() int {
	return idx.count
}

// WordCount returns the number of distinct words.
func (idx *Index) WordCount() int {
	return len(idx.Words())
}
