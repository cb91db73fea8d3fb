package indexbuild

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"wordsplice/internal/indexstore"
	"wordsplice/internal/logging"
	"wordsplice/internal/services"
	"wordsplice/internal/sources"
	"wordsplice/internal/transcript"
	"wordsplice/internal/wordindex"
)

// Origin names where a source's records came from.
type Origin string

const (
	OriginCache      Origin = "cache"
	OriginTranscript Origin = "transcript"
)

const lockRetryDelay = 50 * time.Millisecond

// SourceResult is one source's unreconciled index.
type SourceResult struct {
	Source sources.Source
	Index  *wordindex.Index
	Origin Origin
}

// CombinedStats summarizes a combined build.
type CombinedStats struct {
	Sources   []SourceResult
	Reconcile wordindex.ReconcileStats
}

// Builder resolves per-source indexes and combines them.
type Builder struct {
	logger    *slog.Logger
	workers   int
	threshold float64
}

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers bounds how many sources are resolved concurrently.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithThreshold sets the reconciliation confidence threshold.
func WithThreshold(threshold float64) Option {
	return func(b *Builder) {
		b.threshold = threshold
	}
}

// NewBuilder constructs a Builder with default threshold and one worker.
func NewBuilder(logger *slog.Logger, opts ...Option) *Builder {
	b := &Builder{
		logger:    logging.NewComponentLogger(logger, "indexbuild"),
		workers:   1,
		threshold: wordindex.DefaultConfidenceThreshold,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// LoadSource returns src's unreconciled index. An existing cache is reused
// as-is; otherwise the transcript is parsed and the cache written.
func (b *Builder) LoadSource(ctx context.Context, src sources.Source) (SourceResult, error) {
	ctx = services.WithSource(services.WithStage(ctx, "index"), src.AudioPath)
	logger := logging.WithContext(ctx, b.logger)

	if err := os.MkdirAll(filepath.Dir(src.IndexPath), 0o755); err != nil {
		return SourceResult{}, fmt.Errorf("ensure index directory: %w", err)
	}
	lock := flock.New(src.IndexPath + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return SourceResult{}, fmt.Errorf("lock index %s: %w", src.IndexPath, err)
	}
	if !locked {
		return SourceResult{}, fmt.Errorf("lock index %s: not acquired", src.IndexPath)
	}
	defer func() { _ = lock.Unlock() }()

	if indexstore.Exists(src.IndexPath) {
		res, ok, err := b.loadCached(ctx, logger, src)
		if err != nil || ok {
			return res, err
		}
	}

	records, err := readTranscriptRecords(src)
	if err != nil {
		return SourceResult{}, err
	}
	store, err := indexstore.Open(ctx, src.IndexPath)
	if err != nil {
		return SourceResult{}, services.Wrap(services.ErrConfiguration, "index", "open cache", src.IndexPath, err)
	}
	defer store.Close()
	if err := store.Save(ctx, src.AudioPath, records); err != nil {
		return SourceResult{}, fmt.Errorf("save index %s: %w", src.IndexPath, err)
	}
	logger.Info("built index from transcript",
		logging.Args(append(logging.DecisionAttrs("index_cache", "miss", "built_from_transcript"),
			logging.String("transcript_path", src.TranscriptPath),
			logging.String("index_path", src.IndexPath),
			logging.Int("records", len(records)),
		)...)...,
	)
	idx := wordindex.New()
	idx.AddAll(records)
	return SourceResult{Source: src, Index: idx, Origin: OriginTranscript}, nil
}

// loadCached reads a complete cache. ok is false when the cache was left
// behind by an interrupted build or was written for a different recording,
// and must be rebuilt.
func (b *Builder) loadCached(ctx context.Context, logger *slog.Logger, src sources.Source) (SourceResult, bool, error) {
	store, err := indexstore.Open(ctx, src.IndexPath)
	if err != nil {
		return SourceResult{}, false, services.Wrap(services.ErrConfiguration, "index", "open cache", src.IndexPath, err)
	}
	defer store.Close()

	complete, err := store.Complete(ctx)
	if err != nil {
		return SourceResult{}, false, err
	}
	if !complete {
		logging.WarnWithContext(logger, "index cache incomplete", "index_cache_incomplete",
			logging.String(logging.FieldImpact, "rebuilding from transcript"),
			logging.String(logging.FieldErrorHint, "a previous build was interrupted"),
			logging.String("index_path", src.IndexPath),
		)
		return SourceResult{}, false, nil
	}
	owner, err := store.AudioPath(ctx)
	if err != nil {
		return SourceResult{}, false, err
	}
	if owner != src.AudioPath {
		logging.WarnWithContext(logger, "index cache belongs to another recording", "index_cache_foreign",
			logging.String(logging.FieldImpact, "rebuilding from transcript"),
			logging.String(logging.FieldErrorHint, "two recordings resolved to the same cache file"),
			logging.String("index_path", src.IndexPath),
			logging.String("cached_audio_path", owner),
		)
		return SourceResult{}, false, nil
	}
	records, err := store.Load(ctx, src.AudioPath)
	if err != nil {
		return SourceResult{}, false, err
	}
	logger.Info("reusing index cache",
		logging.Args(append(logging.DecisionAttrs("index_cache", "hit", "cache_present"),
			logging.String("index_path", src.IndexPath),
			logging.Int("records", len(records)),
		)...)...,
	)
	idx := wordindex.New()
	idx.AddAll(records)
	return SourceResult{Source: src, Index: idx, Origin: OriginCache}, true, nil
}

func readTranscriptRecords(src sources.Source) ([]transcript.Record, error) {
	file, err := os.Open(src.TranscriptPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "index", "read transcript",
				fmt.Sprintf("transcript of %s does not exist; run `wordsplice transcribe` first", filepath.Base(src.AudioPath)), nil)
		}
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer file.Close()

	raw, err := transcript.Parse(file)
	if err != nil {
		return nil, withSource(err, src.TranscriptPath)
	}
	return Records(raw, src.AudioPath)
}

// BuildCombined resolves every source concurrently, unions them in the given
// order and reconciles the union once. Repeated audio paths are resolved once.
func (b *Builder) BuildCombined(ctx context.Context, srcs []sources.Source) (*wordindex.Index, CombinedStats, error) {
	srcs = uniqueSources(srcs)
	results := make([]SourceResult, len(srcs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, src := range srcs {
		g.Go(func() error {
			res, err := b.LoadSource(gctx, src)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, CombinedStats{}, err
	}

	combined := wordindex.New()
	for _, res := range results {
		combined.Merge(res.Index)
	}
	stats := combined.Reconcile(b.threshold)
	b.logger.Info("combined index reconciled",
		logging.Int("sources", len(results)),
		logging.Int("records_before", stats.Before),
		logging.Int("below_threshold", stats.BelowThreshold),
		logging.Int("duplicates", stats.Duplicates),
		logging.Int("words", stats.After),
		logging.Float64("threshold", b.threshold),
	)
	return combined, CombinedStats{Sources: results, Reconcile: stats}, nil
}

func uniqueSources(srcs []sources.Source) []sources.Source {
	seen := make(map[string]struct{}, len(srcs))
	out := make([]sources.Source, 0, len(srcs))
	for _, src := range srcs {
		if _, ok := seen[src.AudioPath]; ok {
			continue
		}
		seen[src.AudioPath] = struct{}{}
		out = append(out, src)
	}
	return out
}
