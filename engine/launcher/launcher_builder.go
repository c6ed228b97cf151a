package launcher

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/draw_context"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/logger"
	"github.com/Carmen-Shannon/oxy-draw/engine/render_loop"
)

// HeadlessEnv is the environment variable that selects the headless path when present.
const HeadlessEnv = "HEADLESS"

// LogLevelEnv is the environment variable holding the log level name.
const LogLevelEnv = "OXY_LOG_LEVEL"

// DeviceFactory acquires the GPU device. gpu.RequestDevice is the default.
type DeviceFactory func(options ...gpu.DeviceBuilderOption) (gpu.Device, error)

// LauncherBuilderOption is a functional option for configuring a Launcher.
// Use the With* functions to create options that are applied directly to the launcher config.
type LauncherBuilderOption func(c *launcherConfig)

type launcherConfig struct {
	title         string
	width         int
	height        int
	headless      bool
	frameInterval time.Duration
	logLevel      slog.Level
	logFormat     logger.Format
	logOutput     io.Writer
	profiling     bool
	newDevice     DeviceFactory
	dcOptions     []draw_context.DrawContextBuilderOption
	clock         render_loop.Clock
}

func defaultLauncherConfig() launcherConfig {
	_, headless := os.LookupEnv(HeadlessEnv)
	return launcherConfig{
		title:         "oxy-draw",
		width:         1280,
		height:        720,
		headless:      headless,
		frameInterval: time.Second / 60,
		logLevel:      logger.ParseLevel(os.Getenv(LogLevelEnv)),
		logFormat:     logger.FormatText,
		profiling:     true,
		newDevice:     gpu.RequestDevice,
		clock:         render_loop.SystemClock{},
	}
}

// WithTitle sets the window title.
//
// Parameters:
//   - title: the title bar text
//
// Returns:
//   - LauncherBuilderOption: option function to apply
func WithTitle(title string) LauncherBuilderOption {
	return func(c *launcherConfig) {
		c.title = title
	}
}

// WithSize sets the initial window size, which is also the headless target size.
//
// Parameters:
//   - width: width in pixels
//   - height: height in pixels
//
// Returns:
//   - LauncherBuilderOption: option function to apply
func WithSize(width, height int) LauncherBuilderOption {
	return func(c *launcherConfig) {
		c.width, c.height = width, height
	}
}

// WithHeadless overrides the HEADLESS environment switch.
func WithHeadless(headless bool) LauncherBuilderOption {
	return func(c *launcherConfig) {
		c.headless = headless
	}
}

// WithFrameRate sets the frame pacing target. Values <= 0 are treated as the default (60).
//
// Parameters:
//   - fps: target frames per second
//
// Returns:
//   - LauncherBuilderOption: option function to apply
func WithFrameRate(fps float64) LauncherBuilderOption {
	return func(c *launcherConfig) {
		if fps <= 0 {
			fps = 60
		}
		c.frameInterval = time.Duration(float64(time.Second) / fps)
	}
}

// WithLogLevel overrides the OXY_LOG_LEVEL environment variable.
func WithLogLevel(level slog.Level) LauncherBuilderOption {
	return func(c *launcherConfig) {
		c.logLevel = level
	}
}

// WithLogOutput sets the log format and destination.
//
// Parameters:
//   - format: text or JSON
//   - out: the destination, nil for stderr
//
// Returns:
//   - LauncherBuilderOption: option function to apply
func WithLogOutput(format logger.Format, out io.Writer) LauncherBuilderOption {
	return func(c *launcherConfig) {
		c.logFormat, c.logOutput = format, out
	}
}

// WithProfiling enables or disables the periodic frame rate log.
func WithProfiling(enabled bool) LauncherBuilderOption {
	return func(c *launcherConfig) {
		c.profiling = enabled
	}
}

// WithDeviceFactory replaces gpu.RequestDevice.
//
// Parameters:
//   - factory: the device factory
//
// Returns:
//   - LauncherBuilderOption: option function to apply
func WithDeviceFactory(factory DeviceFactory) LauncherBuilderOption {
	return func(c *launcherConfig) {
		c.newDevice = factory
	}
}

// WithDrawContextOptions passes options to the draw context constructor.
func WithDrawContextOptions(options ...draw_context.DrawContextBuilderOption) LauncherBuilderOption {
	return func(c *launcherConfig) {
		c.dcOptions = append(c.dcOptions, options...)
	}
}

// WithClock sets the clock used for frame timing and pacing.
func WithClock(clock render_loop.Clock) LauncherBuilderOption {
	return func(c *launcherConfig) {
		c.clock = clock
	}
}
