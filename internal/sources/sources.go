// Package sources describes the files that belong to one source recording.
package sources

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ValidExtensions lists the audio containers wordsplice can decode.
var ValidExtensions = []string{".mp3", ".wav", ".ogg", ".flac"}

// Source holds the resolved paths for one source recording.
type Source struct {
	AudioPath      string
	Title          string
	Extension      string
	TranscriptPath string
	IndexPath      string
}

// Resolve builds the path set for audioPath. Transcript and index cache live
// beside the audio unless indexDir is set, in which case the index cache is
// placed there under a name qualified by the audio's directory.
func Resolve(audioPath, indexDir string) (Source, error) {
	audioPath = strings.TrimSpace(audioPath)
	if audioPath == "" {
		return Source{}, fmt.Errorf("resolve source: empty path")
	}
	abs, err := filepath.Abs(audioPath)
	if err != nil {
		return Source{}, fmt.Errorf("resolve source %q: %w", audioPath, err)
	}
	dir, name := filepath.Split(abs)
	ext := filepath.Ext(name)
	title := strings.TrimSuffix(name, ext)

	indexPath := filepath.Join(dir, title+"-index.db")
	if strings.TrimSpace(indexDir) != "" {
		indexPath = filepath.Join(indexDir, title+"-"+dirKey(dir)+"-index.db")
	}
	return Source{
		AudioPath:      abs,
		Title:          title,
		Extension:      strings.ToLower(ext),
		TranscriptPath: filepath.Join(dir, title+"-transcript.json"),
		IndexPath:      indexPath,
	}, nil
}

// dirKey keeps same-titled recordings from different directories apart in a
// shared index directory.
func dirKey(dir string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(dir)))
	return hex.EncodeToString(sum[:4])
}

// ResolveAll resolves every path, keeping caller order.
func ResolveAll(paths []string, indexDir string) ([]Source, error) {
	out := make([]Source, 0, len(paths))
	for _, p := range paths {
		src, err := Resolve(p, indexDir)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

// ValidExtension reports whether the source container is supported.
func (s Source) ValidExtension() bool {
	return slices.Contains(ValidExtensions, s.Extension)
}
