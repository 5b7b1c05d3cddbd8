package marionette

import (
	"errors"
	"fmt"
)

// ErrInvalidTransitionTarget is returned by AddTransition when a transition
// names a state the layer does not contain. Graph wiring errors surface at
// construction time, never during a tick.
var ErrInvalidTransitionTarget = errors.New("marionette: transition references unknown state")

// AnimationLayer owns one state machine (states, their outgoing transitions,
// and the current or cross-fading state) and composites its resulting pose
// onto the controller's accumulator with Override or Additive blending.
type AnimationLayer struct {
	name      string
	blendType LayerBlendType
	weight    float64

	states      map[string]State
	transitions map[string][]*Transition

	current       string
	next          string
	active        *Transition
	elapsed       float64
	transitioning bool

	blendBuf Pose // cross-fade output while transitioning
	ref      Pose // rest pose captured at construction; additive delta base
}

// NewAnimationLayer creates a layer for the given skeleton. The layer starts
// in defaultState, which must be registered with AddState before the first
// Update. Weight is clamped to [0, 1].
func NewAnimationLayer(name string, blendType LayerBlendType, weight float64, sk *Skeleton, defaultState string) *AnimationLayer {
	l := &AnimationLayer{
		name:        name,
		blendType:   blendType,
		states:      make(map[string]State),
		transitions: make(map[string][]*Transition),
		current:     defaultState,
		blendBuf:    NewPose(sk.NumJoints()),
		ref:         NewPose(sk.NumJoints()),
	}
	l.ref.CopyFrom(sk.RestPose())
	l.SetWeight(weight)
	return l
}

// AddState registers a state under the given name, replacing any previous
// state with that name.
func (l *AnimationLayer) AddState(name string, state State) {
	l.states[name] = state
}

// AddTransition registers an outgoing transition for the named source state.
// Both the source and the transition's Target must already be registered;
// unknown names return ErrInvalidTransitionTarget immediately rather than
// misfiring at runtime. Transitions are checked in the order they were added.
func (l *AnimationLayer) AddTransition(from string, t *Transition) error {
	if _, ok := l.states[from]; !ok {
		return fmt.Errorf("%w: source %q", ErrInvalidTransitionTarget, from)
	}
	if _, ok := l.states[t.Target]; !ok {
		return fmt.Errorf("%w: target %q", ErrInvalidTransitionTarget, t.Target)
	}
	l.transitions[from] = append(l.transitions[from], t)
	return nil
}

// Name returns the layer name.
func (l *AnimationLayer) Name() string {
	return l.name
}

// BlendType returns the layer's compositing mode.
func (l *AnimationLayer) BlendType() LayerBlendType {
	return l.blendType
}

// Weight returns the layer's blend weight.
func (l *AnimationLayer) Weight() float64 {
	return l.weight
}

// SetWeight sets the layer's blend weight, silently clamping to [0, 1].
func (l *AnimationLayer) SetWeight(w float64) {
	if w < 0 {
		w = 0
	} else if w > 1 {
		w = 1
	}
	l.weight = w
}

// CurrentState returns the name of the layer's current state. During a
// cross-fade this is still the outgoing state.
func (l *AnimationLayer) CurrentState() string {
	return l.current
}

// IsTransitioning reports whether a cross-fade is in flight.
func (l *AnimationLayer) IsTransitioning() bool {
	return l.transitioning
}

// advance drives the layer's state machine for one tick: step the current
// state, then either progress the in-flight cross-fade or check the current
// state's outgoing transitions in declaration order.
func (l *AnimationLayer) advance(dt float64, params *Parameters, tick uint64) {
	cur, ok := l.states[l.current]
	if !ok {
		return
	}
	cur.advance(dt, params, tick)

	if l.transitioning {
		nxt := l.states[l.next]
		if nxt != cur {
			nxt.advance(dt, params, tick)
		}
		l.elapsed += dt
		f := l.active.blendFactor(l.elapsed)
		l.blendBuf.lerpInto(cur.pose(), nxt.pose(), f)
		if f >= 1 {
			// The outgoing cursor is simply abandoned; re-entering the
			// state later resumes wherever it left off.
			l.finishTransition()
		}
		return
	}

	for _, tr := range l.transitions[l.current] {
		if !tr.ready(params, cur.normalizedTime()) {
			continue
		}
		l.next = tr.Target
		l.active = tr
		// The cross-fade clock starts at zero and immediately absorbs the
		// firing tick's dt, so a 0.3s fade driven at 0.1s steps lands in
		// exactly three ticks. Zero-duration transitions read factor 1 here
		// and complete in the tick they start.
		l.elapsed = dt
		l.transitioning = true

		nxt := l.states[l.next]
		if nxt != cur {
			nxt.advance(dt, params, tick)
		}
		if f := tr.blendFactor(l.elapsed); f >= 1 {
			l.finishTransition()
		} else {
			l.blendBuf.lerpInto(cur.pose(), nxt.pose(), f)
		}
		return
	}
}

func (l *AnimationLayer) finishTransition() {
	l.current = l.next
	l.next = ""
	l.active = nil
	l.transitioning = false
}

// output returns the layer's pose for the current tick: the cross-fade
// buffer while transitioning, the current state's pose otherwise, or the
// rest pose if the current state was never registered.
func (l *AnimationLayer) output() Pose {
	if l.transitioning {
		return l.blendBuf
	}
	if s, ok := l.states[l.current]; ok {
		return s.pose()
	}
	return l.ref
}

// composite blends the layer's output pose into the accumulator.
//
// Override interpolates each accumulator joint toward the layer pose by the
// layer weight. Additive applies the weight-scaled delta between the layer
// pose and the rest pose captured at construction: translations and scales
// add linearly, rotations compose the identity-slerped rest-relative delta.
// At weight zero both modes leave the accumulator untouched.
func (l *AnimationLayer) composite(acc Pose) {
	if l.weight <= 0 {
		return
	}
	pose := l.output()
	switch l.blendType {
	case BlendOverride:
		for j := range acc {
			acc[j] = acc[j].Lerp(pose[j], l.weight)
		}
	case BlendAdditive:
		for j := range acc {
			r := l.ref[j]
			acc[j].Translation = acc[j].Translation.Add(pose[j].Translation.Sub(r.Translation).Scale(l.weight))
			acc[j].Scale = acc[j].Scale.Add(pose[j].Scale.Sub(r.Scale).Scale(l.weight))
			delta := r.Rotation.Inverse().Mul(pose[j].Rotation)
			acc[j].Rotation = acc[j].Rotation.Mul(QuatIdentity.Slerp(delta, l.weight)).Normalize()
		}
	}
}
