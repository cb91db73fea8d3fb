package assemble

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"wordsplice/internal/audio"
	"wordsplice/internal/logging"
	"wordsplice/internal/script"
)

// DefaultHeadroomDB is the distance below full scale the output peak is set to.
const DefaultHeadroomDB = 0.1

// Assembler cuts and joins word spans.
type Assembler struct {
	decoder     audio.Decoder
	logger      *slog.Logger
	tightnessMS float64
	headroomDB  float64
	workers     int
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithTightness trims ms milliseconds off both edges of every span.
func WithTightness(ms int) Option {
	return func(a *Assembler) {
		a.tightnessMS = float64(ms)
	}
}

// WithHeadroom sets the output peak in dB below full scale.
func WithHeadroom(db float64) Option {
	return func(a *Assembler) {
		a.headroomDB = db
	}
}

// WithWorkers bounds how many sources decode concurrently.
func WithWorkers(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// New constructs an Assembler reading sources through decoder.
func New(decoder audio.Decoder, opts ...Option) *Assembler {
	a := &Assembler{
		decoder:    decoder,
		headroomDB: DefaultHeadroomDB,
		workers:    1,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = logging.NewComponentLogger(a.logger, "assemble")
	return a
}

// Assemble returns the normalized concatenation of every occurrence's span.
func (a *Assembler) Assemble(ctx context.Context, occurrences []script.Occurrence) (*audio.Buffer, error) {
	if len(occurrences) == 0 {
		return nil, EmptyScriptError{}
	}
	logger := logging.WithContext(ctx, a.logger)

	started := time.Now()
	cache, err := a.decodeSources(ctx, occurrences)
	if err != nil {
		return nil, err
	}
	decodeElapsed := time.Since(started)

	var out *audio.Buffer
	for _, occ := range occurrences {
		clip, err := a.extract(cache[occ.Record.Source], occ)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = audio.NewBuffer(clip.Format)
		}
		if err := out.Append(clip); err != nil {
			return nil, err
		}
	}

	gain := out.Normalize(a.headroomDB)
	logger.Info("assembled script audio",
		logging.Int("words", len(occurrences)),
		logging.Int("sources", len(cache)),
		logging.Duration("output_duration", out.Duration()),
		logging.Duration("decode_elapsed", decodeElapsed),
		logging.Float64("gain_db", gain),
	)
	return out, nil
}

// decodeSources decodes each distinct source once. The returned map is only
// read after this call.
func (a *Assembler) decodeSources(ctx context.Context, occurrences []script.Occurrence) (map[string]*audio.Buffer, error) {
	var order []script.Occurrence
	seen := make(map[string]struct{})
	for _, occ := range occurrences {
		if _, ok := seen[occ.Record.Source]; ok {
			continue
		}
		seen[occ.Record.Source] = struct{}{}
		order = append(order, occ)
	}

	buffers := make([]*audio.Buffer, len(order))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, occ := range order {
		g.Go(func() error {
			buf, err := a.decoder.Decode(gctx, occ.Record.Source)
			if err != nil {
				return &AudioSourceError{Source: occ.Record.Source, Position: occ.Position, Err: err}
			}
			buffers[i] = buf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cache := make(map[string]*audio.Buffer, len(order))
	for i, occ := range order {
		cache[occ.Record.Source] = buffers[i]
		a.logger.Debug("decoded source",
			logging.String(logging.FieldSource, occ.Record.Source),
			logging.Duration("duration", buffers[i].Duration()),
			logging.Int("sample_rate", int(buffers[i].Format.SampleRate)),
		)
	}
	return cache, nil
}

func (a *Assembler) extract(buf *audio.Buffer, occ script.Occurrence) (*audio.Buffer, error) {
	rec := occ.Record
	startMS := rec.Start*1000 + a.tightnessMS
	endMS := rec.End*1000 - a.tightnessMS
	spanErr := func(reason string) error {
		return &InvalidSpanError{
			Word:     rec.Text,
			Position: occ.Position,
			Source:   rec.Source,
			StartMS:  startMS,
			EndMS:    endMS,
			Reason:   reason,
		}
	}
	if endMS <= startMS {
		return nil, spanErr("tightness leaves no audio")
	}
	clip, err := buf.Slice(startMS, endMS)
	if err != nil {
		return nil, spanErr(err.Error())
	}
	return clip, nil
}
