package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/oggyb/duo-match/internal/config"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type Config struct {
	Level      string
	Format     Format
	Component  string
	WithSource bool
	Output     io.Writer // defaults to os.Stdout
}

var (
	mu     sync.RWMutex
	logger *slog.Logger
	cfg    = Config{
		Level:      "info",
		Format:     FormatText,
		Component:  "",
		WithSource: false,
	}
)

// InitFromConfig initializes global logger from app config.
func InitFromConfig(c *config.Config) {
	if c == nil {
		Init(nil)
		return
	}
	Init(&Config{
		Level:      c.Log.Level,
		Format:     Format(c.Log.Format),
		Component:  c.Log.Component,
		WithSource: c.Log.Source,
	})
}

// Init sets up the global logger. Safe to call multiple times.
func Init(c *Config) {
	mu.Lock()
	defer mu.Unlock()

	if c != nil {
		cfg = *c
	}
	logger = build(cfg)
}

// New builds a standalone logger without touching the global one.
func New(c Config) *slog.Logger {
	return build(c)
}

func build(c Config) *slog.Logger {
	out := c.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(c.Level),
		AddSource: c.WithSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && c.Format != FormatJSON {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.DateTime))
			}
			return a
		},
	}

	var handler slog.Handler
	if strings.ToLower(string(c.Format)) == string(FormatJSON) {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	base := slog.New(traceHandler{handler})
	if c.Component != "" {
		base = base.With("component", c.Component)
	}
	return base
}

// traceHandler stamps trace_id and span_id on records logged with a
// context that carries a sampled span, so log lines join their traces.
type traceHandler struct {
	slog.Handler
}

func (h traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.Handler.Handle(ctx, r)
}

func (h traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return traceHandler{h.Handler.WithAttrs(attrs)}
}

func (h traceHandler) WithGroup(name string) slog.Handler {
	return traceHandler{h.Handler.WithGroup(name)}
}

// L returns the global logger. Always returns a non-nil instance.
func L() *slog.Logger {
	mu.RLock()
	if logger != nil {
		defer mu.RUnlock()
		return logger
	}
	mu.RUnlock()

	// initialize default logger if not set
	Init(nil)

	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type ctxKey struct{}

// IntoContext stores l in ctx for FromContext.
func IntoContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request-scoped logger or fallback when none was set.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return L()
}

// With creates a child logger with additional attributes.
func With(args ...any) *slog.Logger { return L().With(args...) }

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }

// --- helpers ---

func parseLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
