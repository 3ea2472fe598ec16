package scene

import "github.com/chewxy/math32"

// Quat is a rotation quaternion.
type Quat struct {
	V Vec3
	W float32
}

// QuatIdent returns the identity rotation.
func QuatIdent() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle creates a rotation of angle radians around axis.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	sin := math32.Sin(angle * 0.5)
	cos := math32.Cos(angle * 0.5)
	return Quat{V: axis.Normalize().Mul(sin), W: cos}
}

// QuatBetween returns the shortest rotation taking direction from onto to.
func QuatBetween(from, to Vec3) Quat {
	a := from.Normalize()
	b := to.Normalize()
	if a.Len() == 0 || b.Len() == 0 {
		return QuatIdent()
	}

	d := a.Dot(b)
	switch {
	case d >= 1-floatCmpEpsilon:
		return QuatIdent()
	case d <= -1+floatCmpEpsilon:
		axis := a.Cross(Vec3{1, 0, 0})
		if axis.Len() < floatCmpEpsilon {
			axis = a.Cross(Vec3{0, 0, 1})
		}
		return QuatFromAxisAngle(axis, math32.Pi)
	}
	return QuatFromAxisAngle(a.Cross(b), math32.Acos(d))
}

// Rotate rotates a vector by this quaternion.
func (q Quat) Rotate(v Vec3) Vec3 {
	cross := q.V.Cross(v)
	// v + 2q_w * (q_v x v) + 2q_v x (q_v x v)
	return v.Add(cross.Mul(2 * q.W)).Add(q.V.Mul(2).Cross(cross))
}

// Mul composes two rotations; the result applies q2 first, then q.
func (q Quat) Mul(q2 Quat) Quat {
	return Quat{
		V: q.V.Cross(q2.V).Add(q2.V.Mul(q.W)).Add(q.V.Mul(q2.W)),
		W: q.W*q2.W - q.V.Dot(q2.V),
	}
}

// Len returns the quaternion norm.
func (q Quat) Len() float32 {
	return math32.Sqrt(q.W*q.W + q.V.Dot(q.V))
}

// Normalize returns the unit quaternion.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l < floatCmpEpsilon {
		return QuatIdent()
	}
	return Quat{V: q.V.Mul(1 / l), W: q.W / l}
}
