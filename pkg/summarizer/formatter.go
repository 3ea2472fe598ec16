package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// Formatter defines the interface for formatting a Summary.
type Formatter interface {
	// Format converts a Summary to a formatted string.
	Format(summary *Summary) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Capture Summary\n\n")
	fmt.Fprintf(&b, "Generated at %s\n\n", s.GeneratedAt.Format(time.RFC3339))

	b.WriteString("## Stream\n\n")
	b.WriteString("| Item | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Format | %s |\n", s.Stream.Format)
	fmt.Fprintf(&b, "| Resolution | %dx%d |\n", s.Stream.Width, s.Stream.Height)
	fmt.Fprintf(&b, "| Tick rate | %.0f/s |\n", s.Stream.FrameRate)
	fmt.Fprintf(&b, "| Frame interval | %d |\n", s.Settings.FrameInterval)
	if s.Settings.FrameInterval > 0 {
		fmt.Fprintf(&b, "| Nominal frame rate | %.2f fps |\n", s.Stream.FrameRate/float64(s.Settings.FrameInterval))
	}
	if s.Settings.Sink != "" {
		fmt.Fprintf(&b, "| Sink | %s |\n", s.Settings.Sink)
	}
	fmt.Fprintf(&b, "| Motion | %s |\n", onOff(s.Settings.Motion))
	b.WriteString("\n")

	b.WriteString("## Frames\n\n")
	b.WriteString("| Item | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Ticks | %d |\n", s.Frames.Ticks)
	fmt.Fprintf(&b, "| Drawn | %d |\n", s.Frames.Drawn)
	fmt.Fprintf(&b, "| Delivered | %d |\n", s.Frames.Delivered)
	fmt.Fprintf(&b, "| Dropped | %d |\n", s.Frames.Dropped)
	fmt.Fprintf(&b, "| Rejected by sink | %d |\n", s.Frames.Rejected)
	fmt.Fprintf(&b, "| Readback failures | %d |\n", s.Frames.ReadbackFailures)
	fmt.Fprintf(&b, "| Elapsed | %d ms |\n", s.Frames.ElapsedMs)
	fmt.Fprintf(&b, "| Effective frame rate | %.2f fps |\n", s.Frames.EffectiveFPS())

	if s.Frames.Interrupted {
		b.WriteString("\n> Run was interrupted before its configured duration.\n")
	}
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
