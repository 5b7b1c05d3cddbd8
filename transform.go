package marionette

import "math"

// Vec3 is a 3D vector used for joint translations and scales.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Lerp returns the linear interpolation between v and o at t.
// t is not clamped.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
	}
}

// Quat is a rotation quaternion (X, Y, Z imaginary, W real).
// Operations assume unit quaternions unless noted.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the no-rotation quaternion.
var QuatIdentity = Quat{0, 0, 0, 1}

// Dot returns the four-component dot product of q and o.
func (q Quat) Dot(o Quat) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

// Normalize returns q scaled to unit length. A zero quaternion normalizes
// to identity rather than producing NaNs.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.Dot(q))
	if n < 1e-12 {
		return QuatIdentity
	}
	inv := 1 / n
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// Mul returns the composed rotation q * o (o applied first).
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Inverse returns the inverse rotation. Valid for unit quaternions only
// (it is the conjugate).
func (q Quat) Inverse() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Slerp returns the spherical interpolation between q and o at t, taking the
// shortest arc. Nearly parallel inputs fall back to a normalized linear
// interpolation to avoid dividing by a vanishing sine.
func (q Quat) Slerp(o Quat, t float64) Quat {
	d := q.Dot(o)
	if d < 0 {
		o = Quat{-o.X, -o.Y, -o.Z, -o.W}
		d = -d
	}
	if d > 0.9995 {
		return Quat{
			q.X + (o.X-q.X)*t,
			q.Y + (o.Y-q.Y)*t,
			q.Z + (o.Z-q.Z)*t,
			q.W + (o.W-q.W)*t,
		}.Normalize()
	}
	theta := math.Acos(d)
	sin := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sin
	wb := math.Sin(t*theta) / sin
	return Quat{
		q.X*wa + o.X*wb,
		q.Y*wa + o.Y*wb,
		q.Z*wa + o.Z*wb,
		q.W*wa + o.W*wb,
	}
}

// AxisAngle returns the quaternion rotating by angle radians around the given
// axis. The axis need not be normalized; a zero axis yields identity.
func AxisAngle(axis Vec3, angle float64) Quat {
	n := axis.Length()
	if n < 1e-12 {
		return QuatIdentity
	}
	s := math.Sin(angle/2) / n
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, math.Cos(angle / 2)}
}

// JointTransform is the local transform of a single joint relative to its
// parent: the unit every pose buffer, sampler, and blend operation works in.
type JointTransform struct {
	Translation Vec3
	Rotation    Quat
	Scale       Vec3
}

// JointIdentity is the identity joint transform (unit scale, no rotation).
var JointIdentity = JointTransform{
	Rotation: QuatIdentity,
	Scale:    Vec3{1, 1, 1},
}

// Lerp returns the joint-wise interpolation between j and o at t:
// translation and scale linearly, rotation by slerp.
func (j JointTransform) Lerp(o JointTransform, t float64) JointTransform {
	return JointTransform{
		Translation: j.Translation.Lerp(o.Translation, t),
		Rotation:    j.Rotation.Slerp(o.Rotation, t),
		Scale:       j.Scale.Lerp(o.Scale, t),
	}
}
