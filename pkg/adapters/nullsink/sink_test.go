package nullsink

import (
	"testing"

	"github.com/user/teapotcast/pkg/ports"
)

func TestSink_Capabilities(t *testing.T) {
	caps := New().Capabilities()
	c := ports.Capability{Format: ports.FormatARGB, Width: 7, Height: 3, FrameRate: 240}
	if !caps.Accepts(c) {
		t.Errorf("expected null sink to accept %s", c)
	}
}

func TestSink_Ingest(t *testing.T) {
	s := New()
	released := 0
	for i := 0; i < 3; i++ {
		frame := ports.VideoFrame{Pix: make([]byte, 16), OnRelease: func() { released++ }}
		if err := s.Ingest(frame); err != nil {
			t.Fatalf("Ingest failed: %v", err)
		}
	}

	if s.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", s.Frames())
	}
	if s.Bytes() != 48 {
		t.Errorf("expected 48 bytes, got %d", s.Bytes())
	}
	if released != 3 {
		t.Errorf("expected every frame released, got %d", released)
	}
}
