package scene

import (
	"math"
	"time"

	"github.com/user/teapotcast/pkg/motion"
)

// DefaultSpinRate is one revolution every four seconds.
const DefaultSpinRate = 2 * math.Pi / 4

// Pose is the model orientation for one frame.
type Pose struct {
	Rotation Quat
	Elapsed  time.Duration
}

// Animator turns elapsed media time and an orientation sample into a Pose.
// Advance is a pure function of its arguments.
type Animator struct {
	// SpinRate is the rotation speed around the model's up axis in radians
	// per second.
	SpinRate float32
}

// NewAnimator creates an Animator; a non-positive rate uses DefaultSpinRate.
func NewAnimator(spinRate float64) *Animator {
	if spinRate <= 0 {
		spinRate = DefaultSpinRate
	}
	return &Animator{SpinRate: float32(spinRate)}
}

// Advance computes the pose at elapsed with the model tilted against the
// gravity reading in s.
func (a *Animator) Advance(elapsed time.Duration, s motion.Sample) Pose {
	angle := float32(elapsed.Seconds()) * a.SpinRate
	spin := QuatFromAxisAngle(Vec3{0, 1, 0}, angle)
	return Pose{
		Rotation: Tilt(s).Mul(spin).Normalize(),
		Elapsed:  elapsed,
	}
}

// Tilt returns the rotation that keeps the model's up axis opposite to the
// measured gravity. A zero sample leaves the model upright.
func Tilt(s motion.Sample) Quat {
	if s.IsZero() {
		return QuatIdent()
	}
	up := Vec3{float32(-s.X), float32(-s.Y), float32(-s.Z)}
	return QuatBetween(Vec3{0, 1, 0}, up)
}
