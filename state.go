package marionette

import (
	"log"
	"math"
)

// State is a leaf unit of animation owned by a layer: either a single
// sampled clip (SimpleState) or a blend tree (BlendState). States advance
// their playback cursors each tick and expose the pose they last computed.
// The interface is closed; layers only ever hold the two concrete kinds.
type State interface {
	// advance steps playback by dt seconds and recomputes the state's pose.
	advance(dt float64, params *Parameters, tick uint64)
	// pose returns the buffer written by the most recent advance.
	pose() Pose
	// normalizedTime is the state's progress through its own timeline in
	// [0, 1), used by exit-time gated transitions.
	normalizedTime() float64
}

// SimpleState plays a single animation with a looping normalized cursor.
// Its pose buffer is allocated once, sized to the skeleton, and rewritten in
// place every tick.
type SimpleState struct {
	sampler Sampler
	cursor  float64
	buf     Pose
	warned  bool
}

// NewSimpleState creates a state playing one animation on the given
// skeleton. The buffer starts at the skeleton's rest pose so the state is
// presentable even if its asset never loads.
func NewSimpleState(sk *Skeleton, sampler Sampler) *SimpleState {
	s := &SimpleState{sampler: sampler, buf: NewPose(sk.NumJoints())}
	s.buf.CopyFrom(sk.RestPose())
	return s
}

func (s *SimpleState) advance(dt float64, _ *Parameters, _ uint64) {
	if d := s.sampler.Duration(); d > 0 {
		s.cursor += dt / d
		s.cursor -= math.Floor(s.cursor)
	}
	if err := s.sampler.Sample(s.cursor, s.buf); err != nil {
		// Hold the last valid pose for the frame; never stall the tick.
		if !s.warned {
			log.Printf("marionette: sample failed, holding last pose: %v", err)
			s.warned = true
		}
	} else {
		s.warned = false
	}
}

func (s *SimpleState) pose() Pose {
	return s.buf
}

func (s *SimpleState) normalizedTime() float64 {
	return s.cursor
}

// BlendState wraps a blend tree as a layer state. Advancing the state
// evaluates the tree; the tree deduplicates shared sub-tree advancement by
// controller tick.
type BlendState struct {
	tree *BlendTree
}

// NewBlendState creates a state evaluating the given blend tree.
func NewBlendState(tree *BlendTree) *BlendState {
	return &BlendState{tree: tree}
}

// Tree returns the wrapped blend tree, e.g. to inspect current weights.
func (s *BlendState) Tree() *BlendTree {
	return s.tree
}

func (s *BlendState) advance(dt float64, params *Parameters, tick uint64) {
	s.tree.evaluate(dt, params, tick)
}

func (s *BlendState) pose() Pose {
	return s.tree.buf
}

func (s *BlendState) normalizedTime() float64 {
	return s.tree.normalizedTime()
}
