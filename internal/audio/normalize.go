package audio

import (
	"math"

	"github.com/gopxl/beep/effects"
)

// Peak returns the largest absolute sample value.
func (b *Buffer) Peak() float64 {
	var peak float64
	for _, frame := range b.Samples {
		peak = max(peak, math.Abs(frame[0]), math.Abs(frame[1]))
	}
	return peak
}

// Normalize scales b in place so its peak sits headroomDB below full scale.
// Silent buffers are left untouched. It returns the applied gain in dB.
func (b *Buffer) Normalize(headroomDB float64) float64 {
	peak := b.Peak()
	if peak == 0 {
		return 0
	}
	target := math.Pow(10, -headroomDB/20)
	ratio := target / peak

	gain := &effects.Gain{Streamer: b.Streamer(), Gain: ratio - 1}
	out := make([][2]float64, len(b.Samples))
	for filled := 0; filled < len(out); {
		n, ok := gain.Stream(out[filled:])
		filled += n
		if !ok {
			break
		}
	}
	b.Samples = out
	return 20 * math.Log10(ratio)
}
