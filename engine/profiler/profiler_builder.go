package profiler

import (
	"log/slog"
	"time"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(p *Profiler)

// WithInterval sets how often stats are computed and logged.
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// WithLogger logs through l instead of the engine logger.
func WithLogger(l *slog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.log = l
	}
}
