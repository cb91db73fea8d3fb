package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Word is one recognized word in a transcript fixture.
type Word struct {
	Text       string
	Start      float64
	End        float64
	Confidence float64
}

// Chunk groups fixture words into one recognition result.
type Chunk []Word

// TranscriptJSON renders chunks in the recognize response shape.
func TranscriptJSON(t testing.TB, chunks ...Chunk) []byte {
	t.Helper()

	type alternative struct {
		Transcript     string  `json:"transcript"`
		Confidence     float64 `json:"confidence"`
		Timestamps     [][]any `json:"timestamps"`
		WordConfidence [][]any `json:"word_confidence"`
	}
	type result struct {
		Final        bool          `json:"final"`
		Alternatives []alternative `json:"alternatives"`
	}
	payload := struct {
		ResultIndex int      `json:"result_index"`
		Results     []result `json:"results"`
	}{}
	for _, chunk := range chunks {
		alt := alternative{Confidence: 0.9, Timestamps: [][]any{}, WordConfidence: [][]any{}}
		for _, w := range chunk {
			alt.Transcript += w.Text + " "
			alt.Timestamps = append(alt.Timestamps, []any{w.Text, w.Start, w.End})
			alt.WordConfidence = append(alt.WordConfidence, []any{w.Text, w.Confidence})
		}
		payload.Results = append(payload.Results, result{Final: true, Alternatives: []alternative{alt}})
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		t.Fatalf("marshal transcript: %v", err)
	}
	return data
}

// WriteTranscript writes a transcript fixture to path.
func WriteTranscript(t testing.TB, path string, chunks ...Chunk) {
	t.Helper()
	WriteFile(t, path, TranscriptJSON(t, chunks...))
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
