package marionette

// Pose is a buffer of local joint transforms, one per skeleton joint.
// Poses are allocated once (at state or layer construction) and rewritten in
// place every tick, so the per-frame evaluation path performs no allocation.
type Pose []JointTransform

// NewPose returns a pose of n identity joint transforms.
func NewPose(n int) Pose {
	p := make(Pose, n)
	p.Reset()
	return p
}

// Reset writes the identity transform to every joint. Used to clear the
// controller's accumulator at the start of a tick; identity rotations keep
// later slerps well-defined.
func (p Pose) Reset() {
	for i := range p {
		p[i] = JointIdentity
	}
}

// CopyFrom copies src into p. The poses must be the same length.
func (p Pose) CopyFrom(src Pose) {
	copy(p, src)
}

// lerpInto writes the joint-wise interpolation of a and b at t into p.
func (p Pose) lerpInto(a, b Pose, t float64) {
	for i := range p {
		p[i] = a[i].Lerp(b[i], t)
	}
}
