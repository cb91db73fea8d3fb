package indexbuild

import (
	"errors"

	"wordsplice/internal/transcript"
	"wordsplice/internal/wordindex"
)

// Records converts a recognition payload into one record per word, pairing
// timestamps and confidences by position.
func Records(raw *transcript.Result, source string) ([]transcript.Record, error) {
	if raw == nil {
		return nil, &transcript.MalformedTranscriptError{Source: source, Chunk: -1, Word: -1, Reason: "empty payload"}
	}
	var records []transcript.Record
	for ci, chunk := range raw.Results {
		timings, scores, err := chunk.Words(ci)
		if err != nil {
			return nil, withSource(err, source)
		}
		for wi := range timings {
			rec, err := transcript.NewRecord(timings[wi].Word, timings[wi].Start, timings[wi].End, scores[wi].Confidence, source)
			if err != nil {
				return nil, &transcript.MalformedTranscriptError{Source: source, Chunk: ci, Word: wi, Reason: err.Error()}
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// Build returns an unreconciled index holding every word of raw.
func Build(raw *transcript.Result, source string) (*wordindex.Index, error) {
	records, err := Records(raw, source)
	if err != nil {
		return nil, err
	}
	idx := wordindex.New()
	idx.AddAll(records)
	return idx, nil
}

func withSource(err error, source string) error {
	var malformed *transcript.MalformedTranscriptError
	if errors.As(err, &malformed) && malformed.Source == "" {
		malformed.Source = source
	}
	return err
}
