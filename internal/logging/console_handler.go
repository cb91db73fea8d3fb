package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler renders one line per record:
//
//	<time> <LEVEL> [<run>] <component>: <recording>: <message> key=value ...
//
// component, source and correlation_id are lifted into the line header. The
// mutex is shared by every handler derived from the same root, since index
// and decode workers log concurrently.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     slog.Level
	addSource bool
	group     string
	fields    []field
}

type field struct {
	key   string
	value slog.Value
}

func newConsoleHandler(w io.Writer, level slog.Level, addSource bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.fields = slices.Clone(h.fields)
	for _, attr := range attrs {
		next.fields = appendField(next.fields, h.group, attr)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = h.group + name + "."
	return &next
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	fields := slices.Clone(h.fields)
	r.Attrs(func(attr slog.Attr) bool {
		fields = appendField(fields, h.group, attr)
		return true
	})

	var runID, component, recording string
	rest := fields[:0]
	for _, f := range fields {
		switch {
		case f.key == FieldCorrelationID && runID == "":
			runID = f.value.String()
		case f.key == FieldComponent && component == "":
			component = f.value.String()
		case f.key == FieldSource && recording == "":
			recording = filepath.Base(f.value.String())
		default:
			rest = append(rest, f)
		}
	}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	var line strings.Builder
	line.WriteString(ts.UTC().Format(time.RFC3339))
	fmt.Fprintf(&line, " %-5s", r.Level.String())
	if runID != "" {
		line.WriteString(" [" + shortRunID(runID) + "]")
	}
	if component != "" {
		line.WriteString(" " + component + ":")
	}
	if recording != "" {
		line.WriteString(" " + recording + ":")
	}
	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		msg = "(no message)"
	}
	line.WriteString(" " + msg)
	for _, f := range rest {
		line.WriteString(" " + f.key + "=" + renderValue(f.value))
	}
	if h.addSource {
		if src := r.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&line, " (%s:%d)", filepath.Base(src.File), src.Line)
		}
	}
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line.String())
	return err
}

func appendField(dst []field, prefix string, attr slog.Attr) []field {
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, inner := range attr.Value.Group() {
			dst = appendField(dst, prefix, inner)
		}
		return dst
	}
	if attr.Key == "" {
		return dst
	}
	return append(dst, field{key: prefix + attr.Key, value: attr.Value})
}

// shortRunID keeps the first uuid group, enough to tell runs apart in a
// shared log file.
func shortRunID(id string) string {
	if head, _, ok := strings.Cut(id, "-"); ok && head != "" {
		return head
	}
	return id
}

func renderValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		s = v.Time().UTC().Format(time.RFC3339)
	case slog.KindFloat64:
		s = strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}
