package marionette

import "errors"

// ErrAssetUnavailable is returned by a Sampler whose underlying animation
// asset is not (or no longer) loaded. States treat it as recoverable: they
// hold their last valid pose for the frame instead of failing the tick.
var ErrAssetUnavailable = errors.New("marionette: animation asset unavailable")

// Sampler is the opaque per-animation sampling job supplied by an asset
// collaborator. Sample interpolates the animation at a normalized time ratio
// in [0, 1) and writes one local transform per skeleton joint into out.
//
// A sampler holds no playback state; the owning state or blend-tree motion
// keeps the cursor and calls Sample with the current ratio each tick.
type Sampler interface {
	// Duration returns the animation length in seconds. Non-positive
	// durations mark a static (single-pose) animation whose cursor never
	// advances.
	Duration() float64

	// Sample writes the pose at the given normalized time into out.
	// It returns ErrAssetUnavailable when the backing asset is missing.
	Sample(ratio float64, out Pose) error
}

// SamplerFunc adapts a plain function and a fixed duration to the Sampler
// interface. Handy for procedural clips in tests and examples.
type SamplerFunc struct {
	Length float64
	Fn     func(ratio float64, out Pose) error
}

// Duration returns the fixed clip length.
func (s SamplerFunc) Duration() float64 {
	return s.Length
}

// Sample invokes the wrapped function.
func (s SamplerFunc) Sample(ratio float64, out Pose) error {
	return s.Fn(ratio, out)
}
