package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"wordsplice/internal/audio"
	"wordsplice/internal/config"
	"wordsplice/internal/indexbuild"
	"wordsplice/internal/logging"
	"wordsplice/internal/metrics"
	"wordsplice/internal/services"
	"wordsplice/internal/sources"
	"wordsplice/internal/wordindex"
)

// Runner executes commands against one configuration.
type Runner struct {
	cfg     *config.Config
	logger  *slog.Logger
	decoder audio.Decoder
	metrics *metrics.Metrics
}

// Option customizes a Runner.
type Option func(*Runner)

// WithDecoder replaces the file decoder.
func WithDecoder(decoder audio.Decoder) Option {
	return func(r *Runner) {
		if decoder != nil {
			r.decoder = decoder
		}
	}
}

// WithMetrics records run metrics into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		if m != nil {
			r.metrics = m
		}
	}
}

// NewRunner constructs a Runner.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg:     cfg,
		logger:  logging.NewComponentLogger(logger, "pipeline"),
		decoder: audio.FileDecoder{},
		metrics: metrics.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Metrics returns the run's instruments.
func (r *Runner) Metrics() *metrics.Metrics {
	return r.metrics
}

// Sources resolves audio paths against the configured index directory and
// rejects unsupported containers and distinct recordings that would share a
// transcript.
func (r *Runner) Sources(paths []string) ([]sources.Source, error) {
	if len(paths) == 0 {
		return nil, services.Wrap(services.ErrValidation, "resolve", "sources", "at least one audio file is required", nil)
	}
	srcs, err := sources.ResolveAll(paths, r.cfg.Paths.IndexDir)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "resolve", "sources", "", err)
	}
	byTranscript := make(map[string]string, len(srcs))
	for _, src := range srcs {
		if !src.ValidExtension() {
			return nil, services.Wrap(services.ErrValidation, "resolve", "sources",
				fmt.Sprintf("%s: unsupported extension %q", src.AudioPath, src.Extension), nil)
		}
		if other, ok := byTranscript[src.TranscriptPath]; ok && other != src.AudioPath {
			return nil, services.Wrap(services.ErrValidation, "resolve", "sources",
				fmt.Sprintf("%s and %s would share transcript %s; rename one", other, src.AudioPath, filepath.Base(src.TranscriptPath)), nil)
		}
		byTranscript[src.TranscriptPath] = src.AudioPath
	}
	return srcs, nil
}

// Index builds the reconciled index over every path.
func (r *Runner) Index(ctx context.Context, paths []string) (*wordindex.Index, indexbuild.CombinedStats, error) {
	srcs, err := r.Sources(paths)
	if err != nil {
		return nil, indexbuild.CombinedStats{}, err
	}
	builder := indexbuild.NewBuilder(r.logger,
		indexbuild.WithWorkers(r.cfg.Index.Workers),
		indexbuild.WithThreshold(r.cfg.Index.ConfidenceThreshold),
	)
	idx, stats, err := builder.BuildCombined(ctx, srcs)
	if err != nil {
		return nil, stats, err
	}
	for _, res := range stats.Sources {
		r.metrics.SourcesLoaded.WithLabelValues(string(res.Origin)).Inc()
	}
	r.metrics.RecordsDropped.WithLabelValues("below_threshold").Add(float64(stats.Reconcile.BelowThreshold))
	r.metrics.RecordsDropped.WithLabelValues("duplicate").Add(float64(stats.Reconcile.Duplicates))
	r.metrics.IndexWords.Set(float64(idx.WordCount()))
	return idx, stats, nil
}

// Finish records a command outcome and flushes metrics to the configured
// textfile. Flush failures are logged, not returned.
func (r *Runner) Finish(command string, started time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = services.Kind(err)
	}
	r.metrics.ObserveRun(command, outcome, time.Since(started))
	if writeErr := r.metrics.WriteTextfile(r.cfg.Metrics.Textfile); writeErr != nil {
		logging.WarnWithContext(r.logger, "metrics textfile not written", "metrics_write_failed",
			logging.Error(writeErr),
			logging.String(logging.FieldErrorHint, "check metrics.textfile directory permissions"),
			logging.String(logging.FieldImpact, "run metrics unavailable to node exporter"),
		)
	}
}
