package filesink

import (
	"bytes"
	"errors"
	"image/color"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/user/teapotcast/pkg/mocks"
	"github.com/user/teapotcast/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("out", "frames")

func solidFrame(seq uint64, format ports.PixelFormat, px [4]byte) ports.VideoFrame {
	const w, h = 4, 2
	pix := make([]byte, w*h*ports.BytesPerPixel)
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:i+4], px[:])
	}
	return ports.VideoFrame{Pix: pix, Width: w, Height: h, Stride: w * 4, Format: format, Sequence: seq}
}

func TestSink_Capabilities(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), Options{
		Resolutions:  []ports.Dimension{{Width: 320, Height: 240}},
		MaxFrameRate: 30,
	})
	caps := sink.Capabilities()

	if !caps.Accepts(ports.Capability{Format: ports.FormatARGB, Width: 320, Height: 240, FrameRate: 30}) {
		t.Error("expected 320x240 ARGB at 30fps to be accepted")
	}
	if caps.Accepts(ports.Capability{Format: ports.FormatRGBA, Width: 640, Height: 480, FrameRate: 30}) {
		t.Error("expected 640x480 to be rejected")
	}
	if caps.Accepts(ports.Capability{Format: ports.FormatRGBA, Width: 320, Height: 240, FrameRate: 60}) {
		t.Error("expected 60fps to be rejected")
	}
}

func TestSink_IngestPNG(t *testing.T) {
	tests := []struct {
		format ports.PixelFormat
		pixel  [4]byte
	}{
		{ports.FormatRGBA, [4]byte{10, 20, 30, 255}},
		{ports.FormatBGRA, [4]byte{30, 20, 10, 255}},
		{ports.FormatARGB, [4]byte{255, 10, 20, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			fs := mocks.NewFileSystem()
			sink := New(testBaseDir, fs, Options{})

			if err := sink.Ingest(solidFrame(7, tt.format, tt.pixel)); err != nil {
				t.Fatalf("Ingest failed: %v", err)
			}

			expectedPath := filepath.Join(testBaseDir, "frame-000007.png")
			data, ok := fs.GetFile(expectedPath)
			if !ok {
				t.Fatalf("expected file at %s, got %v", expectedPath, fs.Paths())
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode PNG: %v", err)
			}
			got := color.RGBAModel.Convert(img.At(1, 1)).(color.RGBA)
			if got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
				t.Errorf("expected RGB 10,20,30, got %v", got)
			}
		})
	}
}

func TestSink_IngestJPEG(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, Options{Format: FormatJPEG, Quality: 90})

	if err := sink.Ingest(solidFrame(1, ports.FormatRGBA, [4]byte{200, 0, 0, 255})); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	data, ok := fs.GetFile(filepath.Join(testBaseDir, "frame-000001.jpg"))
	if !ok {
		t.Fatalf("expected jpg file, got %v", fs.Paths())
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("decode JPEG: %v", err)
	}
}

func TestSink_Every(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, Options{Every: 3})

	for i := 1; i <= 7; i++ {
		if err := sink.Ingest(solidFrame(uint64(i), ports.FormatRGBA, [4]byte{0, 0, 0, 255})); err != nil {
			t.Fatalf("Ingest %d failed: %v", i, err)
		}
	}

	want := []string{
		filepath.Join(testBaseDir, "frame-000001.png"),
		filepath.Join(testBaseDir, "frame-000004.png"),
		filepath.Join(testBaseDir, "frame-000007.png"),
	}
	got := fs.Paths()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if sink.Written() != 3 {
		t.Errorf("expected 3 written, got %d", sink.Written())
	}
}

func TestSink_ReleasesFrame(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), Options{})
	released := false
	frame := solidFrame(1, ports.FormatRGBA, [4]byte{1, 2, 3, 4})
	frame.OnRelease = func() { released = true }

	if err := sink.Ingest(frame); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if !released {
		t.Error("expected frame to be released")
	}
}

func TestSink_Errors(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		sink := New(testBaseDir, mocks.NewFileSystem(), Options{})
		frame := solidFrame(1, ports.FormatRGBA, [4]byte{})
		frame.Pix = frame.Pix[:4]
		if err := sink.Ingest(frame); err == nil {
			t.Error("expected error for truncated buffer")
		}
	})

	t.Run("mkdir", func(t *testing.T) {
		fs := mocks.NewFileSystem()
		fs.MkdirAllFunc = func(string) error { return errors.New("read-only") }
		sink := New(testBaseDir, fs, Options{})
		if err := sink.Ingest(solidFrame(1, ports.FormatRGBA, [4]byte{})); err == nil {
			t.Error("expected mkdir error")
		}
	})

	t.Run("write", func(t *testing.T) {
		fs := mocks.NewFileSystem()
		fs.WriteFileFunc = func(string, []byte) error { return errors.New("disk full") }
		sink := New(testBaseDir, fs, Options{})
		if err := sink.Ingest(solidFrame(1, ports.FormatRGBA, [4]byte{})); err == nil {
			t.Error("expected write error")
		}
		if sink.Written() != 0 {
			t.Errorf("expected nothing written, got %d", sink.Written())
		}
	})
}

func TestParseImageFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ImageFormat
		wantErr bool
	}{
		{"", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{"jpg", FormatJPEG, false},
		{"jpeg", FormatJPEG, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseImageFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseImageFormat(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseImageFormat(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
