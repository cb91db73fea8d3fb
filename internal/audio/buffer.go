package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
)

// Buffer is a decoded run of stereo frames.
type Buffer struct {
	Format  beep.Format
	Samples [][2]float64
}

// NewBuffer returns an empty buffer in format.
func NewBuffer(format beep.Format) *Buffer {
	return &Buffer{Format: format}
}

// Len returns the number of frames.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Samples)
}

// Duration returns the playback length.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.Format.SampleRate <= 0 {
		return 0
	}
	return b.Format.SampleRate.D(len(b.Samples))
}

// DurationMS returns the playback length in milliseconds.
func (b *Buffer) DurationMS() float64 {
	if b == nil || b.Format.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) * 1000 / float64(b.Format.SampleRate)
}

// FrameAt converts a millisecond offset to a frame index, truncating.
func (b *Buffer) FrameAt(ms float64) int {
	return int(ms * float64(b.Format.SampleRate) / 1000)
}

// Slice copies the frames in [fromMS, toMS). The end clamps to the buffer
// length; a start at or beyond the end is an error.
func (b *Buffer) Slice(fromMS, toMS float64) (*Buffer, error) {
	if fromMS < 0 {
		return nil, fmt.Errorf("slice start %.1fms is negative", fromMS)
	}
	from := b.FrameAt(fromMS)
	to := min(b.FrameAt(toMS), len(b.Samples))
	if from >= len(b.Samples) {
		return nil, fmt.Errorf("slice start %.1fms beyond buffer end %.1fms", fromMS, b.DurationMS())
	}
	if to <= from {
		return nil, fmt.Errorf("slice [%.1fms, %.1fms) is empty", fromMS, toMS)
	}
	out := make([][2]float64, to-from)
	copy(out, b.Samples[from:to])
	return &Buffer{Format: b.Format, Samples: out}, nil
}

// Append adds other's frames to b. Formats with a different sample rate are
// resampled to b's rate first.
func (b *Buffer) Append(other *Buffer) error {
	if other == nil || len(other.Samples) == 0 {
		return nil
	}
	if other.Format.SampleRate == b.Format.SampleRate {
		b.Samples = append(b.Samples, other.Samples...)
		return nil
	}
	converted, err := other.Resample(b.Format.SampleRate)
	if err != nil {
		return err
	}
	b.Samples = append(b.Samples, converted.Samples...)
	return nil
}

// Resample returns a copy of b at rate.
func (b *Buffer) Resample(rate beep.SampleRate) (*Buffer, error) {
	format := b.Format
	format.SampleRate = rate
	if b.Format.SampleRate == rate {
		return &Buffer{Format: format, Samples: append([][2]float64(nil), b.Samples...)}, nil
	}
	resampler := beep.Resample(resampleQuality, b.Format.SampleRate, rate, b.Streamer())
	samples, err := drain(resampler)
	if err != nil {
		return nil, fmt.Errorf("resample %d Hz to %d Hz: %w", b.Format.SampleRate, rate, err)
	}
	return &Buffer{Format: format, Samples: samples}, nil
}

// Streamer plays the buffer from the start. The streamer reads b's samples
// without copying them.
func (b *Buffer) Streamer() beep.Streamer {
	return &sliceStreamer{samples: b.Samples}
}

const resampleQuality = 4

type sliceStreamer struct {
	samples [][2]float64
	pos     int
}

func (s *sliceStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n := copy(samples, s.samples[s.pos:])
	s.pos += n
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }

const drainChunk = 4096

func drain(streamer beep.Streamer) ([][2]float64, error) {
	var out [][2]float64
	chunk := make([][2]float64, drainChunk)
	for {
		n, ok := streamer.Stream(chunk)
		out = append(out, chunk[:n]...)
		if !ok {
			break
		}
	}
	return out, streamer.Err()
}
