package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// MaskValue is the string used to replace redacted values.
const MaskValue = "***REDACTED***"

// personalKeys are attribute keys whose values are names from the archives.
var personalKeys = map[string]bool{
	"name":        true,
	"names":       true,
	"first_name":  true,
	"last_name":   true,
	"sample":      true,
	"value":       true,
	"values":      true,
	"duplicate":   true,
	"raw":         true,
	"first_names": true,
	"last_names":  true,
}

// secretKeywords mark keys that are masked even when names are shown.
var secretKeywords = []string{"password", "passwd", "secret", "token", "credential"}

// RedactingHandler wraps an slog.Handler and masks personal and secret
// attribute values before passing records to the underlying handler.
type RedactingHandler struct {
	handler   slog.Handler
	showNames bool
}

// NewRedactingHandler creates a RedactingHandler wrapping handler.
// If handler is nil, slog.Default().Handler() is used. When showNames is
// true, name-carrying attributes are passed through unchanged.
func NewRedactingHandler(handler slog.Handler, showNames bool) *RedactingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactingHandler{handler: handler, showNames: showNames}
}

// Enabled delegates to the underlying handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle redacts the record's attributes and passes it on.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	redacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		redacted.AddAttrs(h.redactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, redacted)
}

// WithAttrs returns a new handler with the given attributes redacted and added.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.redactAttr(a)
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(redacted), showNames: h.showNames}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name), showNames: h.showNames}
}

func (h *RedactingHandler) redactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			redacted[i] = h.redactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	}

	key := strings.ToLower(a.Key)
	if isSecretKey(key) {
		return slog.String(a.Key, MaskValue)
	}
	if !h.showNames && personalKeys[key] {
		return slog.String(a.Key, MaskValue)
	}
	return a
}

func isSecretKey(key string) bool {
	for _, kw := range secretKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

// Options configures NewLogger and NewJSONLogger.
type Options struct {
	// Verbose sets the level to Debug; otherwise Warn.
	Verbose bool

	// ShowNames disables masking of name values.
	ShowNames bool
}

func (o Options) handlerOptions() *slog.HandlerOptions {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}

// NewLogger creates a text slog.Logger writing to w through a RedactingHandler.
func NewLogger(w io.Writer, opts Options) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewTextHandler(w, opts.handlerOptions()), opts.ShowNames))
}

// NewJSONLogger creates a JSON slog.Logger writing to w through a RedactingHandler.
func NewJSONLogger(w io.Writer, opts Options) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewJSONHandler(w, opts.handlerOptions()), opts.ShowNames))
}

// Log output formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned by New for an unsupported log format.
var ErrUnknownFormat = errors.New("unknown log format")

// IsFormat reports whether format is accepted by New.
func IsFormat(format string) bool {
	return format == FormatText || format == FormatJSON
}

// New creates a logger writing format ("text" or "json") to w.
func New(w io.Writer, format string, opts Options) (*slog.Logger, error) {
	switch format {
	case FormatText, "":
		return NewLogger(w, opts), nil
	case FormatJSON:
		return NewJSONLogger(w, opts), nil
	}
	return nil, fmt.Errorf("%w: %q (expected text or json)", ErrUnknownFormat, format)
}
