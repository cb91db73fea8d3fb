package transcript

import "fmt"

// MalformedTranscriptError reports a recognition payload that does not have
// the parallel timestamp/confidence shape. Chunk and Word are -1 when the
// problem is not tied to a position.
type MalformedTranscriptError struct {
	Source string
	Chunk  int
	Word   int
	Reason string
}

func (e *MalformedTranscriptError) Error() string {
	prefix := "malformed transcript"
	if e.Source != "" {
		prefix += " " + e.Source
	}
	switch {
	case e.Chunk >= 0 && e.Word >= 0:
		return fmt.Sprintf("%s: chunk %d word %d: %s", prefix, e.Chunk, e.Word, e.Reason)
	case e.Chunk >= 0:
		return fmt.Sprintf("%s: chunk %d: %s", prefix, e.Chunk, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", prefix, e.Reason)
	}
}

// ErrorKind classifies the error for callers that map failures to outcomes.
func (e *MalformedTranscriptError) ErrorKind() string { return "validation" }
