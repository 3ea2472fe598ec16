package ports

// FrameSink is the downstream consumer of produced frames, typically a
// real-time communication pipeline.
type FrameSink interface {
	// Capabilities advertises the formats and resolutions the sink accepts.
	// It is queried once, before the first capture session starts.
	Capabilities() SinkCapabilities

	// Ingest receives one frame. It must return quickly or queue internally.
	Ingest(frame VideoFrame) error
}
