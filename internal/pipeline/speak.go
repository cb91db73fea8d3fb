package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wordsplice/internal/assemble"
	"wordsplice/internal/audio"
	"wordsplice/internal/fileutil"
	"wordsplice/internal/logging"
	"wordsplice/internal/script"
	"wordsplice/internal/services"
)

// SpeakResult describes synthesized output.
type SpeakResult struct {
	Output   string
	Words    int
	Sources  int
	Duration time.Duration
}

// Speak voices the script at scriptPath from the combined index of paths and
// writes a WAV file to out.
func (r *Runner) Speak(ctx context.Context, paths []string, scriptPath, out string) (SpeakResult, error) {
	if !strings.EqualFold(filepath.Ext(out), ".wav") {
		return SpeakResult{}, services.Wrap(services.ErrValidation, "speak", "output",
			fmt.Sprintf("%s: output must be a .wav file", out), nil)
	}
	text, err := os.ReadFile(scriptPath)
	if err != nil {
		return SpeakResult{}, services.Wrap(services.ErrNotFound, "speak", "read script", scriptPath, err)
	}

	idx, stats, err := r.Index(ctx, paths)
	if err != nil {
		return SpeakResult{}, err
	}
	occurrences, err := script.Resolve(string(text), idx)
	if err != nil {
		return SpeakResult{}, err
	}

	assembler := assemble.New(r.decoder,
		assemble.WithTightness(r.cfg.Speak.TightnessMS),
		assemble.WithHeadroom(r.cfg.Speak.HeadroomDB),
		assemble.WithWorkers(r.cfg.Speak.DecodeWorkers),
		assemble.WithLogger(r.logger),
	)
	buf, err := assembler.Assemble(ctx, occurrences)
	if err != nil {
		return SpeakResult{}, err
	}

	err = fileutil.WriteAtomic(out, 0o644, func(f *os.File) error {
		return audio.EncodeWAV(f, buf)
	})
	if err != nil {
		return SpeakResult{}, err
	}

	r.metrics.WordsSpoken.Add(float64(len(occurrences)))
	r.metrics.OutputSeconds.Set(buf.Duration().Seconds())
	result := SpeakResult{
		Output:   out,
		Words:    len(occurrences),
		Sources:  usedSources(occurrences),
		Duration: buf.Duration(),
	}
	logging.WithContext(ctx, r.logger).Info("speech written",
		logging.String("output", out),
		logging.Int("words", result.Words),
		logging.Int("sources_used", result.Sources),
		logging.Int("sources_indexed", len(stats.Sources)),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

func usedSources(occurrences []script.Occurrence) int {
	seen := make(map[string]struct{})
	for _, occ := range occurrences {
		seen[occ.Record.Source] = struct{}{}
	}
	return len(seen)
}
