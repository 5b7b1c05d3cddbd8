package marionette

import "github.com/tanema/gween/ease"

// Transition describes one outgoing edge of a state: where to go, how long
// the cross-fade lasts, and the conditions gating it. The source state is
// implicit (transitions are registered per state on the layer).
//
// Conditions are ANDed in declaration order. When HasExitTime is set the
// transition additionally requires the source state's normalized time to have
// reached ExitTime. A Duration of zero completes the switch within the tick
// it starts.
type Transition struct {
	// Target is the destination state name. Validated against the layer's
	// state map when the transition is added.
	Target string

	// Duration is the cross-fade length in seconds. Negative values are
	// treated as zero.
	Duration float64

	// Conditions must all hold for the transition to fire.
	Conditions []Condition

	// HasExitTime gates the transition on the source state's own timeline.
	HasExitTime bool

	// ExitTime is the normalized [0,1] progress through the source state
	// required before the transition may fire. Only meaningful when
	// HasExitTime is set.
	ExitTime float64

	// Ease shapes the cross-fade blend factor. Nil means ease.Linear.
	// Any gween easing function works, e.g. ease.InOutQuad for a softer
	// hand-off between states.
	Ease ease.TweenFunc
}

// blendFactor returns the eased cross-fade factor for the given elapsed time.
// A non-positive duration is fully faded immediately (the divide-by-zero
// guard required for zero-duration transitions).
func (t *Transition) blendFactor(elapsed float64) float64 {
	if t.Duration <= 0 || elapsed >= t.Duration {
		return 1
	}
	fn := t.Ease
	if fn == nil {
		fn = ease.Linear
	}
	f := float64(fn(float32(elapsed), 0, 1, float32(t.Duration)))
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// ready reports whether the transition may fire: every condition holds and,
// when exit-time gated, the source state has played far enough.
func (t *Transition) ready(params *Parameters, sourceTime float64) bool {
	if t.HasExitTime && sourceTime < t.ExitTime {
		return false
	}
	for i := range t.Conditions {
		if !t.Conditions[i].evaluate(params) {
			return false
		}
	}
	return true
}
