package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// LevelCritical sits above slog.LevelError; slog has no native critical.
const LevelCritical = slog.LevelError + 4

func levelLabel(level slog.Level) string {
	switch {
	case level >= LevelCritical:
		return "CRITICAL"
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// lineHandler writes each record as a single preformatted line. The file
// sink prepends a timestamp and an eight-wide level column; the console sink
// emits the message alone. Attrs and groups are ignored: messages arrive
// fully formatted from the Logger.
type lineHandler struct {
	mu     sync.Mutex
	writer io.Writer
	level  slog.Leveler
	header bool
}

func newLineHandler(w io.Writer, level slog.Leveler, header bool) *lineHandler {
	return &lineHandler{writer: w, level: level, header: header}
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *lineHandler) Handle(_ context.Context, record slog.Record) error {
	var line string
	if h.header {
		timestamp := record.Time
		if timestamp.IsZero() {
			timestamp = time.Now()
		}
		line = fmt.Sprintf("%s,%03d %-8s %s\n",
			timestamp.Format("2006-01-02 15:04:05"),
			timestamp.Nanosecond()/int(time.Millisecond),
			levelLabel(record.Level),
			record.Message,
		)
	} else {
		line = record.Message + "\n"
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, line)
	return err
}

func (h *lineHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *lineHandler) WithGroup(string) slog.Handler      { return h }

// teeHandler fans each record out to the console and file sinks, letting
// each filter by its own minimum level.
type teeHandler struct {
	handlers []slog.Handler
}

func newTeeHandler(handlers ...slog.Handler) slog.Handler {
	return &teeHandler{handlers: handlers}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return &teeHandler{handlers: next}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return &teeHandler{handlers: next}
}
