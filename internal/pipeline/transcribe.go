package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"wordsplice/internal/fileutil"
	"wordsplice/internal/indexbuild"
	"wordsplice/internal/logging"
	"wordsplice/internal/services"
	"wordsplice/internal/sources"
	"wordsplice/internal/transcript"
)

// Recognizer turns one audio file into a raw recognition payload.
type Recognizer interface {
	Recognize(ctx context.Context, audioPath string) ([]byte, error)
}

// ConfirmFunc asks the operator a yes/no question.
type ConfirmFunc func(prompt string) (bool, error)

// TranscribeStatus is the per-source outcome of Transcribe.
type TranscribeStatus string

const (
	TranscribeWritten TranscribeStatus = "written"
	TranscribeSkipped TranscribeStatus = "skipped"
)

// TranscribeResult reports what happened to one source.
type TranscribeResult struct {
	Source   sources.Source
	Status   TranscribeStatus
	Duration time.Duration
	Words    int
}

// Transcribe sends each source to rec and stores the transcript beside the
// audio. confirm is asked before overwriting an existing transcript and
// before each billable request. A rewritten transcript invalidates the
// source's index cache.
func (r *Runner) Transcribe(ctx context.Context, paths []string, rec Recognizer, confirm ConfirmFunc) ([]TranscribeResult, error) {
	srcs, err := r.Sources(paths)
	if err != nil {
		return nil, err
	}
	results := make([]TranscribeResult, 0, len(srcs))
	for _, src := range srcs {
		res, err := r.transcribeOne(ctx, src, rec, confirm)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) transcribeOne(ctx context.Context, src sources.Source, rec Recognizer, confirm ConfirmFunc) (TranscribeResult, error) {
	ctx = services.WithSource(services.WithStage(ctx, "transcribe"), src.AudioPath)
	logger := logging.WithContext(ctx, r.logger)
	skipped := TranscribeResult{Source: src, Status: TranscribeSkipped}

	if _, err := os.Stat(src.TranscriptPath); err == nil {
		ok, err := confirm(fmt.Sprintf("Transcript %s exists. Overwrite it?", src.TranscriptPath))
		if err != nil || !ok {
			logger.Info("transcription skipped", logging.Args(logging.DecisionAttrs("transcribe", "skipped", "transcript exists")...)...)
			return skipped, err
		}
	}

	buf, err := r.decoder.Decode(ctx, src.AudioPath)
	if err != nil {
		return TranscribeResult{}, services.Wrap(services.ErrValidation, "transcribe", "decode audio", src.AudioPath, err)
	}
	duration := buf.Duration().Round(time.Second)
	ok, err := confirm(fmt.Sprintf("Send %s (%s of audio) for paid transcription?", src.Title+src.Extension, duration))
	if err != nil || !ok {
		logger.Info("transcription skipped", logging.Args(logging.DecisionAttrs("transcribe", "skipped", "declined")...)...)
		skipped.Duration = duration
		return skipped, err
	}

	started := time.Now()
	body, err := rec.Recognize(ctx, src.AudioPath)
	if err != nil {
		return TranscribeResult{}, err
	}
	raw, err := transcript.Parse(bytes.NewReader(body))
	if err != nil {
		return TranscribeResult{}, err
	}
	records, err := indexbuild.Records(raw, src.AudioPath)
	if err != nil {
		return TranscribeResult{}, err
	}

	if err := fileutil.WriteFileAtomic(src.TranscriptPath, body, 0o644); err != nil {
		return TranscribeResult{}, err
	}
	if err := removeIndexCache(src.IndexPath); err != nil {
		return TranscribeResult{}, err
	}
	logger.Info("transcript written",
		logging.String("transcript_path", src.TranscriptPath),
		logging.Int("words", len(records)),
		logging.Duration("audio_duration", duration),
		logging.Duration("elapsed", time.Since(started)),
	)
	return TranscribeResult{Source: src, Status: TranscribeWritten, Duration: duration, Words: len(records)}, nil
}

func removeIndexCache(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove stale index cache: %w", err)
		}
	}
	return nil
}
