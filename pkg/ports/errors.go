package ports

import "errors"

var (
	// ErrSurfaceUnavailable is returned when a render surface cannot be
	// created or validated. It is fatal to the start attempt only.
	ErrSurfaceUnavailable = errors.New("render surface unavailable")

	// ErrReadbackFailed is returned when reading pixels back from a surface
	// fails. The affected tick produces no frame.
	ErrReadbackFailed = errors.New("framebuffer readback failed")

	// ErrSinkRejected is returned when the sink accepts none of the offered
	// capture capabilities.
	ErrSinkRejected = errors.New("sink rejected all offered capabilities")
)
