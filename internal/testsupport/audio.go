package testsupport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gopxl/beep"

	"wordsplice/internal/audio"
)

// FixtureRate is the sample rate of generated fixtures.
const FixtureRate beep.SampleRate = 8000

// RampBuffer returns a stereo buffer of seconds length whose frame i holds
// the value i/len scaled by amplitude, so every frame is distinguishable.
func RampBuffer(rate beep.SampleRate, seconds, amplitude float64) *audio.Buffer {
	n := int(seconds * float64(rate))
	samples := make([][2]float64, n)
	for i := range samples {
		v := amplitude * float64(i) / float64(n)
		samples[i] = [2]float64{v, -v}
	}
	return &audio.Buffer{
		Format:  beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
		Samples: samples,
	}
}

// WriteWAV encodes buf to path.
func WriteWAV(t testing.TB, path string, buf *audio.Buffer) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := audio.EncodeWAV(f, buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// FakeDecoder serves in-memory buffers by path and counts decode calls.
type FakeDecoder struct {
	mu      sync.Mutex
	buffers map[string]*audio.Buffer
	calls   map[string]int
}

// NewFakeDecoder returns a decoder serving buffers.
func NewFakeDecoder(buffers map[string]*audio.Buffer) *FakeDecoder {
	return &FakeDecoder{buffers: buffers, calls: make(map[string]int)}
}

// Decode implements audio.Decoder. The returned buffer shares no storage
// with the registered fixture.
func (d *FakeDecoder) Decode(_ context.Context, path string) (*audio.Buffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls[path]++
	buf, ok := d.buffers[path]
	if !ok {
		return nil, errors.New("no such fixture")
	}
	return &audio.Buffer{Format: buf.Format, Samples: append([][2]float64(nil), buf.Samples...)}, nil
}

// Calls reports how often path was decoded.
func (d *FakeDecoder) Calls(path string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[path]
}
