// Package filesink provides a frame sink that writes every frame as an image
// file.
package filesink

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"
	"sync"

	"github.com/user/teapotcast/pkg/capture"
	"github.com/user/teapotcast/pkg/ports"
)

// ImageFormat is the on-disk encoding.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatJPEG ImageFormat = "jpeg"
)

// ParseImageFormat parses "png", "jpeg" or "jpg".
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(s) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("unknown image format: %s", s)
	}
}

// Options configures a Sink.
type Options struct {
	Format  ImageFormat
	Quality int // JPEG quality, 1-100

	// Every keeps one frame out of every n; 0 or 1 keeps all.
	Every int

	// Resolutions limits the frame sizes the sink accepts. Empty accepts any.
	Resolutions []ports.Dimension

	// MaxFrameRate limits the negotiated rate. Zero accepts any.
	MaxFrameRate float64
}

// Sink saves frames to files under a directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
	opts    Options

	mu       sync.Mutex
	ensured  bool
	received int
	written  int
}

// New creates a new file Sink.
func New(baseDir string, fs ports.FileSystem, opts Options) *Sink {
	if opts.Format == "" {
		opts.Format = FormatPNG
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = 85
	}
	return &Sink{baseDir: baseDir, fs: fs, opts: opts}
}

// Capabilities accepts every pixel format; frames are converted on write.
func (s *Sink) Capabilities() ports.SinkCapabilities {
	return ports.SinkCapabilities{
		Formats:      []ports.PixelFormat{ports.FormatRGBA, ports.FormatBGRA, ports.FormatARGB},
		Resolutions:  s.opts.Resolutions,
		MaxFrameRate: s.opts.MaxFrameRate,
	}
}

// Ingest encodes frame and writes it as frame-<sequence>.<ext>.
func (s *Sink) Ingest(frame ports.VideoFrame) error {
	defer frame.Release()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.received++
	if s.opts.Every > 1 && (s.received-1)%s.opts.Every != 0 {
		return nil
	}

	if frame.Width <= 0 || frame.Height <= 0 || len(frame.Pix) < frame.Width*frame.Height*ports.BytesPerPixel {
		return fmt.Errorf("frame %d: truncated pixel buffer", frame.Sequence)
	}

	if !s.ensured {
		if err := s.fs.MkdirAll(s.baseDir); err != nil {
			return fmt.Errorf("create frame directory: %w", err)
		}
		s.ensured = true
	}

	img := &image.RGBA{
		Pix:    capture.ToRGBA(frame),
		Stride: frame.Width * ports.BytesPerPixel,
		Rect:   image.Rect(0, 0, frame.Width, frame.Height),
	}

	var buf bytes.Buffer
	switch s.opts.Format {
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.opts.Quality}); err != nil {
			return fmt.Errorf("encode JPEG: %w", err)
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
	}

	if err := s.fs.WriteFile(s.path(frame.Sequence), buf.Bytes()); err != nil {
		return fmt.Errorf("write frame %d: %w", frame.Sequence, err)
	}
	s.written++
	return nil
}

// Written returns the number of files written.
func (s *Sink) Written() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}

func (s *Sink) path(sequence uint64) string {
	ext := "png"
	if s.opts.Format == FormatJPEG {
		ext = "jpg"
	}
	return filepath.Join(s.baseDir, fmt.Sprintf("frame-%06d.%s", sequence, ext))
}

// Ensure Sink implements ports.FrameSink
var _ ports.FrameSink = (*Sink)(nil)
