package render_loop

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-draw/engine/logger"
)

// SchedulerBuilderOption configures a Scheduler.
type SchedulerBuilderOption func(s *Scheduler)

// WithClock replaces the wall clock used to time frames.
//
// Parameters:
//   - clock: the clock
//
// Returns:
//   - SchedulerBuilderOption: a function that sets the clock
func WithClock(clock Clock) SchedulerBuilderOption {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

// WithRegistry starts the scheduler with plugins already registered.
func WithRegistry(reg *Registry) SchedulerBuilderOption {
	return func(s *Scheduler) {
		s.registry = reg
	}
}

// WithLogger sets the logger the scheduler and its handler report to. nil
// keeps them silent.
func WithLogger(l *slog.Logger) SchedulerBuilderOption {
	return func(s *Scheduler) {
		s.log = logger.OrNop(l)
	}
}
