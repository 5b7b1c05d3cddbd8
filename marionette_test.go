package marionette

import (
	"math"
	"strconv"
	"testing"
)

const epsilon = 1e-5

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertJoint(t *testing.T, name string, got, want JointTransform) {
	t.Helper()
	assertNear(t, name+".Translation.X", got.Translation.X, want.Translation.X)
	assertNear(t, name+".Translation.Y", got.Translation.Y, want.Translation.Y)
	assertNear(t, name+".Translation.Z", got.Translation.Z, want.Translation.Z)
	assertNear(t, name+".Scale.X", got.Scale.X, want.Scale.X)
	assertNear(t, name+".Scale.Y", got.Scale.Y, want.Scale.Y)
	assertNear(t, name+".Scale.Z", got.Scale.Z, want.Scale.Z)
	// q and -q are the same rotation.
	if got.Rotation.Dot(want.Rotation) < 0 {
		want.Rotation = Quat{-want.Rotation.X, -want.Rotation.Y, -want.Rotation.Z, -want.Rotation.W}
	}
	assertNear(t, name+".Rotation.X", got.Rotation.X, want.Rotation.X)
	assertNear(t, name+".Rotation.Y", got.Rotation.Y, want.Rotation.Y)
	assertNear(t, name+".Rotation.Z", got.Rotation.Z, want.Rotation.Z)
	assertNear(t, name+".Rotation.W", got.Rotation.W, want.Rotation.W)
}

// testSkeleton builds a simple chain: joint 0 is the root, each following
// joint hangs off the previous one, one unit up in the rest pose.
func testSkeleton(t *testing.T, joints int) *Skeleton {
	t.Helper()
	parents := make([]int, joints)
	names := make([]string, joints)
	rest := NewPose(joints)
	for i := range parents {
		parents[i] = i - 1
		names[i] = "joint" + strconv.Itoa(i)
		if i > 0 {
			rest[i].Translation = Vec3{0, 1, 0}
		}
	}
	sk, err := NewSkeleton(parents, names, rest)
	if err != nil {
		t.Fatalf("NewSkeleton: %v", err)
	}
	return sk
}

// recordSampler is a procedural sampler that tracks how it was used. Every
// joint receives the same transform, translated by Value in X so tests can
// tell samples apart.
type recordSampler struct {
	dur       float64
	value     float64
	calls     int
	lastRatio float64
	err       error
}

func (r *recordSampler) Duration() float64 {
	return r.dur
}

func (r *recordSampler) Sample(ratio float64, out Pose) error {
	r.calls++
	r.lastRatio = ratio
	if r.err != nil {
		return r.err
	}
	for i := range out {
		out[i] = JointIdentity
		out[i].Translation = Vec3{r.value, 0, 0}
	}
	return nil
}

// constSampler returns a sampler that writes the same transform to every
// joint regardless of time.
func constSampler(dur float64, jt JointTransform) Sampler {
	return SamplerFunc{
		Length: dur,
		Fn: func(_ float64, out Pose) error {
			for i := range out {
				out[i] = jt
			}
			return nil
		},
	}
}

func translated(x float64) JointTransform {
	jt := JointIdentity
	jt.Translation.X = x
	return jt
}
