package assemble

import (
	"fmt"

	"wordsplice/internal/script"
)

// EmptyScriptError reports an assembly request with no occurrences.
type EmptyScriptError = script.EmptyScriptError

// AudioSourceError reports a source recording that could not be decoded.
// Position is the first script position voiced from that source.
type AudioSourceError struct {
	Source   string
	Position int
	Err      error
}

func (e *AudioSourceError) Error() string {
	return fmt.Sprintf("decode source %s (word %d): %v", e.Source, e.Position, e.Err)
}

func (e *AudioSourceError) Unwrap() error { return e.Err }

// ErrorKind classifies the error for callers that map failures to outcomes.
func (e *AudioSourceError) ErrorKind() string { return "external" }

// InvalidSpanError reports a word whose trimmed span cannot be cut from its
// source.
type InvalidSpanError struct {
	Word     string
	Position int
	Source   string
	StartMS  float64
	EndMS    float64
	Reason   string
}

func (e *InvalidSpanError) Error() string {
	return fmt.Sprintf("word %q at position %d: span [%.1fms, %.1fms] of %s: %s",
		e.Word, e.Position, e.StartMS, e.EndMS, e.Source, e.Reason)
}

// ErrorKind classifies the error for callers that map failures to outcomes.
func (e *InvalidSpanError) ErrorKind() string { return "validation" }
