// Package script resolves a text script into indexed word occurrences.
package script

import (
	"slices"
	"strings"

	"wordsplice/internal/textutil"
	"wordsplice/internal/transcript"
	"wordsplice/internal/wordindex"
)

// Occurrence is one script token bound to the record that will voice it.
type Occurrence struct {
	Record   transcript.Record
	Position int
}

// EmptyScriptError reports a script with no tokens.
type EmptyScriptError struct{}

func (EmptyScriptError) Error() string { return "script contains no words" }

// ErrorKind classifies the error for callers that map failures to outcomes.
func (EmptyScriptError) ErrorKind() string { return "validation" }

// MissingWordsError lists every distinct script word absent from the index.
type MissingWordsError struct {
	Words []string
}

func (e *MissingWordsError) Error() string {
	return "words not found in index: " + strings.Join(e.Words, ", ")
}

// ErrorKind classifies the error for callers that map failures to outcomes.
func (e *MissingWordsError) ErrorKind() string { return "not_found" }

// Tokenize lowercases text and splits it on whitespace.
func Tokenize(text string) []string {
	return textutil.Words(text)
}

// Missing returns the sorted distinct tokens idx has no record for.
func Missing(tokens []string, idx *wordindex.Index) []string {
	var missing []string
	for _, token := range tokens {
		if !idx.Contains(token) {
			missing = append(missing, token)
		}
	}
	slices.Sort(missing)
	return slices.Compact(missing)
}

// Resolve binds each token of text to its indexed record, in script order.
// Nothing is returned unless every token resolves.
func Resolve(text string, idx *wordindex.Index) ([]Occurrence, error) {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil, EmptyScriptError{}
	}
	if missing := Missing(tokens, idx); len(missing) > 0 {
		return nil, &MissingWordsError{Words: missing}
	}
	occurrences := make([]Occurrence, len(tokens))
	for i, token := range tokens {
		rec, _ := idx.Lookup(token)
		occurrences[i] = Occurrence{Record: rec, Position: i}
	}
	return occurrences, nil
}
