package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/wav"
)

// pcm16 is the output sample width in bytes.
const pcm16 = 2

// EncodeWAV writes buf as 16-bit PCM WAV.
func EncodeWAV(w io.WriteSeeker, buf *Buffer) error {
	if buf == nil {
		return errors.New("encode wav: nil buffer")
	}
	format := buf.Format
	format.Precision = pcm16
	if format.NumChannels <= 0 {
		format.NumChannels = 2
	}
	if err := wav.Encode(w, buf.Streamer(), format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}
