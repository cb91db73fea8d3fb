package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// Decoder loads a whole audio file into memory.
type Decoder interface {
	Decode(ctx context.Context, path string) (*Buffer, error)
}

// FileDecoder decodes files by extension.
type FileDecoder struct{}

// Decode implements Decoder.
func (FileDecoder) Decode(ctx context.Context, path string) (*Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DecodeFile(path)
}

// DecodeFile decodes the audio at path.
func DecodeFile(path string) (*Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	// The decoded stream owns file from here on.
	streamer, format, err := decodeStream(file, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	samples, err := drain(streamer)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return &Buffer{Format: format, Samples: samples}, nil
}

func decodeStream(file *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case ".wav":
		return wav.Decode(file)
	case ".mp3":
		return mp3.Decode(file)
	case ".flac":
		return flac.Decode(file)
	case ".ogg":
		return vorbis.Decode(file)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported audio extension %q", ext)
	}
}
