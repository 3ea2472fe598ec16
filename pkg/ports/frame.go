package ports

import (
	"fmt"
	"strings"
	"time"
)

// PixelFormat identifies the byte layout of a packed 4-channel 8-bit pixel.
type PixelFormat int

const (
	// FormatRGBA stores pixels as R, G, B, A.
	FormatRGBA PixelFormat = iota
	// FormatBGRA stores pixels as B, G, R, A.
	FormatBGRA
	// FormatARGB stores pixels as A, R, G, B.
	FormatARGB
)

// BytesPerPixel is the size of one pixel in every supported format.
const BytesPerPixel = 4

// String returns the lowercase name of the format.
func (f PixelFormat) String() string {
	switch f {
	case FormatRGBA:
		return "rgba"
	case FormatBGRA:
		return "bgra"
	case FormatARGB:
		return "argb"
	default:
		return "unknown"
	}
}

// ParsePixelFormat parses a format name such as "rgba" or "BGRA".
func ParsePixelFormat(s string) (PixelFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rgba":
		return FormatRGBA, nil
	case "bgra":
		return FormatBGRA, nil
	case "argb":
		return FormatARGB, nil
	default:
		return 0, fmt.Errorf("unknown pixel format: %q", s)
	}
}

// Dimension represents width and height in pixels.
type Dimension struct {
	Width  int
	Height int
}

// Valid reports whether both sides are positive.
func (d Dimension) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Capability is one capture configuration a producer can deliver.
type Capability struct {
	Format    PixelFormat
	Width     int
	Height    int
	FrameRate float64 // Maximum frames per second (the base tick rate)
}

// Size returns the capability resolution.
func (c Capability) Size() Dimension {
	return Dimension{Width: c.Width, Height: c.Height}
}

func (c Capability) String() string {
	return fmt.Sprintf("%s %dx%d@%.0f", c.Format, c.Width, c.Height, c.FrameRate)
}

// SinkCapabilities describes what a sink is willing to ingest.
// An empty Formats or Resolutions list accepts any value, as does a zero
// MaxFrameRate.
type SinkCapabilities struct {
	Formats      []PixelFormat
	Resolutions  []Dimension
	MaxFrameRate float64
}

// Accepts reports whether the sink can ingest frames of the given capability.
func (s SinkCapabilities) Accepts(c Capability) bool {
	if !c.Size().Valid() {
		return false
	}
	if s.MaxFrameRate > 0 && c.FrameRate > s.MaxFrameRate {
		return false
	}
	if len(s.Formats) > 0 {
		found := false
		for _, f := range s.Formats {
			if f == c.Format {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(s.Resolutions) > 0 {
		for _, r := range s.Resolutions {
			if r == c.Size() {
				return true
			}
		}
		return false
	}
	return true
}

// VideoFrame is one produced frame. Ownership of Pix transfers to the sink
// on delivery; the producer never touches it again.
type VideoFrame struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
	Format PixelFormat

	// Timestamp is the media time of the frame since the session started.
	Timestamp time.Duration
	// CapturedAt is the wall-clock time of the readback.
	CapturedAt time.Time
	// Sequence is the 1-based frame number within the session.
	Sequence uint64

	// OnRelease is set by the producer to recycle Pix.
	OnRelease func()
}

// Release hands the pixel buffer back to the producer for reuse. Pix must not
// be accessed afterwards. Calling Release is optional.
func (f *VideoFrame) Release() {
	if f.OnRelease != nil {
		release := f.OnRelease
		f.OnRelease = nil
		f.Pix = nil
		release()
	}
}
