package renderloop

import (
	"time"

	"github.com/user/teapotcast/pkg/capture"
	"github.com/user/teapotcast/pkg/ports"
	"github.com/user/teapotcast/pkg/scene"
)

// DefaultTickRate is the base timer frequency in ticks per second. The frame
// interval divides it: interval 2 at 60 ticks/s yields 30 frames/s.
const DefaultTickRate = 60.0

// StopGrace is the shortest time StopAnimation lets the sink take queued
// frames before dropping them.
const StopGrace = 100 * time.Millisecond

// Config contains the controller settings.
type Config struct {
	// TickRate is the base timer frequency in ticks per second.
	TickRate float64

	// FrameInterval is the initial number of ticks per produced frame.
	FrameInterval int

	// Formats lists the pixel formats offered to the sink, preferred first.
	Formats []ports.PixelFormat

	// Resolutions lists the frame sizes offered to the sink, preferred first.
	// Empty offers the host's pixel size.
	Resolutions []ports.Dimension

	// QueueSize bounds the frames waiting for the sink.
	QueueSize int

	// Segments controls the teapot tessellation.
	Segments int

	// SpinRate is the model rotation speed in radians per second.
	SpinRate float64

	Style scene.Style
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		TickRate:      DefaultTickRate,
		FrameInterval: 1,
		Formats:       []ports.PixelFormat{ports.FormatBGRA, ports.FormatRGBA},
		Resolutions: []ports.Dimension{
			{Width: 640, Height: 480},
			{Width: 1280, Height: 720},
			{Width: 320, Height: 240},
		},
		QueueSize: capture.DefaultQueueSize,
		Segments:  24,
		SpinRate:  scene.DefaultSpinRate,
		Style:     scene.DefaultStyle(),
	}
}

// period returns the tick period.
func (c Config) period() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Duration(float64(time.Second) / rate)
}
