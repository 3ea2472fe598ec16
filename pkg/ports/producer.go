package ports

// VideoProducer is the outward control surface of a pluggable video source.
type VideoProducer interface {
	// Negotiate settles the capture capability with the registered sink.
	// The result is cached; later calls return it without asking again.
	Negotiate() (Capability, error)

	// StartAnimation begins producing frames. Calling it while animating
	// does nothing.
	StartAnimation() error

	// StopAnimation halts production and releases the session's resources.
	// Calling it while idle does nothing.
	StopAnimation()

	// IsAnimating reports whether frames are being produced.
	IsAnimating() bool

	// AnimationFrameInterval returns the number of ticks per produced frame.
	AnimationFrameInterval() int

	// SetAnimationFrameInterval sets the ticks per produced frame; values
	// below 1 are clamped to 1.
	SetAnimationFrameInterval(n int)
}
