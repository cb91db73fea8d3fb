package transcript

import (
	"fmt"

	"wordsplice/internal/textutil"
)

// Record is one recognized word occurrence in one source recording.
type Record struct {
	Text       string
	Start      float64
	End        float64
	Confidence float64
	Source     string
}

// NewRecord normalizes text and checks the record invariants.
func NewRecord(text string, start, end, confidence float64, source string) (Record, error) {
	normalized := textutil.NormalizeWord(text)
	if normalized == "" {
		return Record{}, fmt.Errorf("empty word text")
	}
	if end <= start {
		return Record{}, fmt.Errorf("word %q ends at %.3fs before it starts at %.3fs", normalized, end, start)
	}
	if start < 0 {
		return Record{}, fmt.Errorf("word %q starts at negative offset %.3fs", normalized, start)
	}
	if confidence < 0 || confidence > 1 {
		return Record{}, fmt.Errorf("word %q confidence %.4f outside [0,1]", normalized, confidence)
	}
	return Record{
		Text:       normalized,
		Start:      start,
		End:        end,
		Confidence: confidence,
		Source:     source,
	}, nil
}

// Duration returns the span length in seconds.
func (r Record) Duration() float64 {
	return r.End - r.Start
}
