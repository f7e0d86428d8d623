// Package logging configures the application's slog logger. Console output
// goes to stderr; an optional JSON file sink is rotated by lumberjack.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment variables read by FromEnv.
const (
	EnvLevel  = "TWIBBON_LOG_LEVEL"
	EnvFormat = "TWIBBON_LOG_FORMAT"
	EnvFile   = "TWIBBON_LOG_FILE"
)

// Options controls logger initialization.
type Options struct {
	Level     string // debug, info, warn, error
	Format    string // "text" or "json"
	File      string // optional rotated log file
	AddSource bool
	// Console overrides the console writer; stderr when nil.
	Console io.Writer
}

var (
	mu      sync.RWMutex
	current *slog.Logger
	rotator *lumberjack.Logger
)

// L returns the application logger, initializing it from the environment
// on first use.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// WithComponent returns a logger tagged with the component name.
func WithComponent(name string) *slog.Logger {
	return L().With(slog.String("component", name))
}

// FromEnv builds Options from TWIBBON_LOG_* variables.
func FromEnv() Options {
	return Options{
		Level:  os.Getenv(EnvLevel),
		Format: os.Getenv(EnvFormat),
		File:   os.Getenv(EnvFile),
	}
}

// Merge fills the empty fields of o from fallback.
func (o Options) Merge(fallback Options) Options {
	if strings.TrimSpace(o.Level) == "" {
		o.Level = fallback.Level
	}
	if strings.TrimSpace(o.Format) == "" {
		o.Format = fallback.Format
	}
	if strings.TrimSpace(o.File) == "" {
		o.File = fallback.File
	}
	if o.Console == nil {
		o.Console = fallback.Console
	}
	o.AddSource = o.AddSource || fallback.AddSource
	return o
}

// Init replaces the application logger and slog's default.
func Init(opts Options) {
	lvl := ParseLevel(opts.Level)
	hopts := &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	var handlers []slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		handlers = append(handlers, slog.NewJSONHandler(console, hopts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(console, hopts))
	}

	mu.Lock()
	defer mu.Unlock()
	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}
	if file := strings.TrimSpace(opts.File); file != "" {
		rotator = &lumberjack.Logger{Filename: file, MaxSize: 5, MaxBackups: 3, MaxAge: 14, Compress: true}
		handlers = append(handlers, slog.NewJSONHandler(rotator, hopts))
	}

	var h slog.Handler = handlers[0]
	if len(handlers) > 1 {
		h = fanout(handlers)
	}
	current = slog.New(h).With(slog.String("app", "twibbon"))
	slog.SetDefault(current)
}

// Close flushes and closes the rotated log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

// ParseLevel converts a level name to a slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
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

type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
