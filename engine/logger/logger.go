// Package logger builds the structured loggers handed to engine components.
// Components never reach for a shared logger: each takes one through a
// WithLogger option and stays silent without it.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var nop = slog.New(nopHandler{})

// Nop returns a logger that discards every record.
func Nop() *slog.Logger {
	return nop
}

// OrNop returns l, or the silent logger when l is nil.
func OrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return nop
	}
	return l
}

// Format selects the slog handler used by New.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config describes the logger built by New.
type Config struct {
	// Level is the minimum level that is written.
	Level slog.Level
	// Format selects text or JSON output. Defaults to text.
	Format Format
	// Output is the destination. Defaults to os.Stderr.
	Output io.Writer
}

// New builds a logger from cfg.
//
// Parameters:
//   - cfg: the logger configuration
//
// Returns:
//   - *slog.Logger: the logger
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var h slog.Handler
	if cfg.Format == FormatJSON {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	return slog.New(h)
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
// Unknown or empty names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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
