package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wordsplice/internal/config"
)

// logFileName is the per-directory log file written alongside console output.
const logFileName = "wordsplice.log"

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Console receives rendered records; nil means stderr.
	Console io.Writer
	// LogFile, when set, receives a copy of every record.
	LogFile string
}

// New constructs a slog logger. Debug level adds the calling file and line.
func New(opts Options) (*slog.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Console
	if out == nil {
		out = os.Stderr
	}
	if path := strings.TrimSpace(opts.LogFile); path != "" {
		file, err := openLogFile(path)
		if err != nil {
			return nil, err
		}
		out = io.MultiWriter(out, file)
	}

	addSource := level <= slog.LevelDebug
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		return slog.New(newConsoleHandler(out, level, addSource)), nil
	case "json":
		return slog.New(newJSONHandler(out, level, addSource)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromConfig creates the command logger. Records go to stderr so stdout
// stays free for command output; the log directory receives a copy.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{})
	}
	opts := Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	if cfg.Paths.LogDir != "" {
		opts.LogFile = filepath.Join(cfg.Paths.LogDir, logFileName)
	}
	return New(opts)
}

// parseLevel maps a configured level name to a slog level. Empty means info.
func parseLevel(value string) (slog.Level, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: unsupported value %q", value)
	}
	return level, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

// newJSONHandler renames the caller attribute to "caller" because "source"
// carries the recording path.
func newJSONHandler(w io.Writer, level slog.Level, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return attr
			}
			switch attr.Key {
			case slog.TimeKey:
				if attr.Value.Kind() == slog.KindTime {
					return slog.String("ts", attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				return slog.String(slog.LevelKey, strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					return slog.String("caller", fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	})
}
