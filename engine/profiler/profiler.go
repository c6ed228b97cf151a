// Package profiler measures frame rate and memory statistics over fixed
// intervals and reports them through the engine logger.
package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/logger"
)

// Stats is one interval's measurements.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	log            *slog.Logger
	last           Stats
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler starting at start.
// Update interval defaults to 1 second.
//
// Parameters:
//   - start: the time the first interval begins
//   - options: profiler options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(start time.Time, options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		lastTime:       start,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Last returns the stats of the most recently completed interval.
func (p *Profiler) Last() Stats {
	return p.last
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Parameters:
//   - now: the frame time
//
// Returns:
//   - Stats: the completed interval's stats when the second result is true
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(now time.Time) (Stats, bool) {
	p.frameCount++
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		FPS:     float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:  float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:   float64(p.memStats.Sys) / 1024 / 1024,
		GCCount: p.memStats.NumGC,
	}
	// TotalAlloc only grows, so its delta is the interval's churn
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	if s.GCCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger().Info("profiler",
		"fps", s.FPS,
		"heap_mb", s.HeapMB,
		"alloc_rate_mb", s.AllocRateMB,
		"gc", s.GCCount,
		"gc_last_us", s.LastPauseUs,
		"gc_max_us", s.MaxPauseUs,
		"sys_mb", s.SysMB,
	)

	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = s
	return s, true
}

func (p *Profiler) logger() *slog.Logger {
	return logger.OrNop(p.log)
}
