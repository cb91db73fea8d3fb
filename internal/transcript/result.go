package transcript

import (
	"encoding/json"
	"fmt"
	"io"
)

// Result is the top-level recognition payload.
type Result struct {
	Results     []Chunk `json:"results"`
	ResultIndex int     `json:"result_index"`
}

// Chunk is one final recognition segment.
type Chunk struct {
	Alternatives []Alternative `json:"alternatives"`
	Final        bool          `json:"final"`
}

// Alternative is one hypothesis for a chunk. Only the first alternative
// carries timestamps and word confidence.
type Alternative struct {
	Transcript     string            `json:"transcript"`
	Confidence     float64           `json:"confidence"`
	Timestamps     []json.RawMessage `json:"timestamps"`
	WordConfidence []json.RawMessage `json:"word_confidence"`
}

// WordTiming is a decoded [word, start, end] tuple.
type WordTiming struct {
	Word  string
	Start float64
	End   float64
}

// WordScore is a decoded [word, confidence] tuple.
type WordScore struct {
	Word       string
	Confidence float64
}

// Parse decodes a recognition payload. Structural problems inside chunks are
// reported later, when words are extracted.
func Parse(r io.Reader) (*Result, error) {
	var result Result
	dec := json.NewDecoder(r)
	if err := dec.Decode(&result); err != nil {
		return nil, &MalformedTranscriptError{Chunk: -1, Word: -1, Reason: fmt.Sprintf("decode json: %v", err)}
	}
	return &result, nil
}

// Words returns the positionally paired timing and score tuples of the
// chunk's first alternative.
func (c Chunk) Words(chunkIndex int) ([]WordTiming, []WordScore, error) {
	if len(c.Alternatives) == 0 {
		return nil, nil, &MalformedTranscriptError{Chunk: chunkIndex, Word: -1, Reason: "no alternatives"}
	}
	alt := c.Alternatives[0]
	if alt.Timestamps == nil {
		return nil, nil, &MalformedTranscriptError{Chunk: chunkIndex, Word: -1, Reason: "missing timestamps"}
	}
	if alt.WordConfidence == nil {
		return nil, nil, &MalformedTranscriptError{Chunk: chunkIndex, Word: -1, Reason: "missing word_confidence"}
	}
	if len(alt.Timestamps) != len(alt.WordConfidence) {
		return nil, nil, &MalformedTranscriptError{
			Chunk:  chunkIndex,
			Word:   -1,
			Reason: fmt.Sprintf("timestamps (%d) and word_confidence (%d) differ in length", len(alt.Timestamps), len(alt.WordConfidence)),
		}
	}

	timings := make([]WordTiming, 0, len(alt.Timestamps))
	scores := make([]WordScore, 0, len(alt.WordConfidence))
	for i := range alt.Timestamps {
		timing, err := decodeTiming(alt.Timestamps[i])
		if err != nil {
			return nil, nil, &MalformedTranscriptError{Chunk: chunkIndex, Word: i, Reason: "timestamps: " + err.Error()}
		}
		score, err := decodeScore(alt.WordConfidence[i])
		if err != nil {
			return nil, nil, &MalformedTranscriptError{Chunk: chunkIndex, Word: i, Reason: "word_confidence: " + err.Error()}
		}
		timings = append(timings, timing)
		scores = append(scores, score)
	}
	return timings, scores, nil
}

func decodeTiming(raw json.RawMessage) (WordTiming, error) {
	var tuple []any
	if err := json.Unmarshal(raw, &tuple); err != nil {
		return WordTiming{}, fmt.Errorf("expected array: %w", err)
	}
	if len(tuple) != 3 {
		return WordTiming{}, fmt.Errorf("expected [word, start, end], got %d elements", len(tuple))
	}
	word, ok := tuple[0].(string)
	if !ok {
		return WordTiming{}, fmt.Errorf("word is %T, want string", tuple[0])
	}
	start, ok := tuple[1].(float64)
	if !ok {
		return WordTiming{}, fmt.Errorf("start is %T, want number", tuple[1])
	}
	end, ok := tuple[2].(float64)
	if !ok {
		return WordTiming{}, fmt.Errorf("end is %T, want number", tuple[2])
	}
	return WordTiming{Word: word, Start: start, End: end}, nil
}

func decodeScore(raw json.RawMessage) (WordScore, error) {
	var tuple []any
	if err := json.Unmarshal(raw, &tuple); err != nil {
		return WordScore{}, fmt.Errorf("expected array: %w", err)
	}
	if len(tuple) != 2 {
		return WordScore{}, fmt.Errorf("expected [word, confidence], got %d elements", len(tuple))
	}
	word, ok := tuple[0].(string)
	if !ok {
		return WordScore{}, fmt.Errorf("word is %T, want string", tuple[0])
	}
	conf, ok := tuple[1].(float64)
	if !ok {
		return WordScore{}, fmt.Errorf("confidence is %T, want number", tuple[1])
	}
	return WordScore{Word: word, Confidence: conf}, nil
}
