package gpu

import (
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// DeviceBuilderOption is a functional option for RequestDevice.
type DeviceBuilderOption func(d *deviceConfig)

type deviceConfig struct {
	label                string
	surfaceDescriptor    *wgpu.SurfaceDescriptor
	forceFallbackAdapter bool
	powerPreference      wgpu.PowerPreference
	presentMode          wgpu.PresentMode
	maxBindGroups        uint32
	log                  *slog.Logger
}

// WithSurfaceDescriptor creates a window surface from the given descriptor and
// requests an adapter compatible with it.
//
// Parameters:
//   - desc: the platform surface descriptor, nil for offscreen rendering
//
// Returns:
//   - DeviceBuilderOption: option function to apply
func WithSurfaceDescriptor(desc *wgpu.SurfaceDescriptor) DeviceBuilderOption {
	return func(d *deviceConfig) {
		d.surfaceDescriptor = desc
	}
}

// WithFallbackAdapter forces the software fallback adapter.
func WithFallbackAdapter(force bool) DeviceBuilderOption {
	return func(d *deviceConfig) {
		d.forceFallbackAdapter = force
	}
}

// WithPowerPreference sets the adapter power preference.
func WithPowerPreference(pref wgpu.PowerPreference) DeviceBuilderOption {
	return func(d *deviceConfig) {
		d.powerPreference = pref
	}
}

// WithPresentMode sets the surface present mode.
func WithPresentMode(mode wgpu.PresentMode) DeviceBuilderOption {
	return func(d *deviceConfig) {
		d.presentMode = mode
	}
}

// WithDeviceLabel sets the debug label of the device.
func WithDeviceLabel(label string) DeviceBuilderOption {
	return func(d *deviceConfig) {
		d.label = label
	}
}

// WithLogger sets the logger the device reports adapter and device setup to.
func WithLogger(l *slog.Logger) DeviceBuilderOption {
	return func(d *deviceConfig) {
		d.log = l
	}
}
