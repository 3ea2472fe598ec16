package summarizer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/teapotcast/pkg/mocks"
	"github.com/user/teapotcast/pkg/orchestrator"
	"github.com/user/teapotcast/pkg/ports"
)

func testResult() orchestrator.RunResult {
	return orchestrator.RunResult{
		Capability:       ports.Capability{Format: ports.FormatBGRA, Width: 640, Height: 480, FrameRate: 60},
		Elapsed:          2 * time.Second,
		FrameInterval:    2,
		Ticks:            120,
		Drawn:            60,
		Delivered:        58,
		Dropped:          1,
		Rejected:         1,
		ReadbackFailures: 0,
	}
}

func TestBuilder_WithResult(t *testing.T) {
	s := NewBuilder().WithResult(testResult()).WithSink("png:out", true).Build()

	if s.Stream.Format != "bgra" || s.Stream.Width != 640 || s.Stream.Height != 480 {
		t.Errorf("unexpected stream %+v", s.Stream)
	}
	if s.Settings.FrameInterval != 2 || s.Settings.Sink != "png:out" || !s.Settings.Motion {
		t.Errorf("unexpected settings %+v", s.Settings)
	}
	if s.Frames.ElapsedMs != 2000 || s.Frames.Delivered != 58 {
		t.Errorf("unexpected frames %+v", s.Frames)
	}
	if got := s.Frames.EffectiveFPS(); got != 29 {
		t.Errorf("expected 29 fps, got %v", got)
	}
	if s.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt to be set")
	}
}

func TestMarkdownFormatter_Format(t *testing.T) {
	s := NewBuilder().WithResult(testResult()).WithSink("null", false).Build()
	s.GeneratedAt = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	out := NewMarkdownFormatter().Format(s)

	checks := []string{
		"# Capture Summary",
		"2024-01-15T10:30:00Z",
		"| Format | bgra |",
		"| Resolution | 640x480 |",
		"| Nominal frame rate | 30.00 fps |",
		"| Sink | null |",
		"| Motion | off |",
		"| Delivered | 58 |",
		"| Effective frame rate | 29.00 fps |",
	}
	for _, c := range checks {
		if !strings.Contains(out, c) {
			t.Errorf("expected output to contain %q", c)
		}
	}
	if strings.Contains(out, "interrupted") {
		t.Error("did not expect an interruption note")
	}

	s.Frames.Interrupted = true
	if out := NewMarkdownFormatter().Format(s); !strings.Contains(out, "interrupted") {
		t.Error("expected an interruption note")
	}
}

func TestFormatFunc(t *testing.T) {
	f := FormatFunc(func(s *Summary) string { return s.Stream.Format })
	if got := f.Format(&Summary{Stream: StreamInfo{Format: "RGBA"}}); got != "RGBA" {
		t.Errorf("expected RGBA, got %q", got)
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(*Summary) string { return "report" }), fs)

	if err := w.Write("out/summary.md", NewSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, ok := fs.GetFile("out/summary.md")
	if !ok || string(data) != "report" {
		t.Errorf("expected report to be written, got %q", data)
	}

	fs.WriteFileFunc = func(string, []byte) error { return errors.New("denied") }
	if err := w.Write("out/summary.md", NewSummary()); err == nil {
		t.Error("expected write error")
	}
}
