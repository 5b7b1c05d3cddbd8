package marionette

import (
	"fmt"
	"log"
	"math"
	"sort"
)

// Motion configures one entry of a blend tree: either a sampled animation
// (Sampler) or a nested sub-tree (Tree), never both, positioned at a
// threshold in parameter space. 1D trees read Threshold.X only.
type Motion struct {
	Sampler   Sampler
	Tree      *BlendTree
	Threshold Vec2
}

// treeMotion is the runtime form of a Motion: the configured leaf or subtree
// plus the per-motion playback cursor and sample buffer.
type treeMotion struct {
	sampler   Sampler
	tree      *BlendTree
	threshold Vec2
	cursor    float64 // normalized [0,1), leaves only
	buf       Pose    // leaves only; subtrees own their buffer
	warned    bool
}

// pose returns the motion's most recent sampled pose.
func (m *treeMotion) pose() Pose {
	if m.tree != nil {
		return m.tree.buf
	}
	return m.buf
}

// BlendTree computes per-motion weights from parameter values and blends the
// motions' sampled poses into a single output pose. Trees are 1D (one float
// parameter swept across scalar thresholds) or 2D directional (two float
// parameters against threshold points).
//
// A tree may appear as a sub-tree under several parents. Evaluation is
// deduplicated by controller tick: the first parent to reach a shared tree
// advances and samples it, later parents reuse its buffer, so a shared
// cursor never double-steps within one tick.
type BlendTree struct {
	is2D    bool
	paramX  paramRef
	paramY  paramRef
	motions []treeMotion
	weights []float64
	order   []int // scratch: motion indices by descending weight
	buf     Pose
	// lastTick stamps the most recent controller tick that advanced this
	// tree. Controller ticks start at 1, so the zero value never collides.
	lastTick uint64
}

func newBlendTree(sk *Skeleton, motions []Motion) (*BlendTree, error) {
	t := &BlendTree{
		motions: make([]treeMotion, 0, len(motions)),
		weights: make([]float64, len(motions)),
		order:   make([]int, 0, len(motions)),
		buf:     NewPose(sk.NumJoints()),
	}
	for i, m := range motions {
		if (m.Sampler == nil) == (m.Tree == nil) {
			return nil, fmt.Errorf("marionette: blend tree motion %d must have exactly one of Sampler or Tree", i)
		}
		rm := treeMotion{sampler: m.Sampler, tree: m.Tree, threshold: m.Threshold}
		if m.Sampler != nil {
			rm.buf = NewPose(sk.NumJoints())
			rm.buf.CopyFrom(sk.RestPose())
		}
		t.motions = append(t.motions, rm)
	}
	return t, nil
}

// NewBlendTree1D builds a 1D blend tree driven by the named float parameter.
// Motions are sorted by ascending threshold (Threshold.X) at construction.
func NewBlendTree1D(sk *Skeleton, param string, motions []Motion) (*BlendTree, error) {
	t, err := newBlendTree(sk, motions)
	if err != nil {
		return nil, err
	}
	t.paramX = newParamRef(param)
	sort.SliceStable(t.motions, func(a, b int) bool {
		return t.motions[a].threshold.X < t.motions[b].threshold.X
	})
	return t, nil
}

// NewBlendTree2D builds a 2D directional blend tree driven by the named
// float parameters for the X and Y axes.
func NewBlendTree2D(sk *Skeleton, paramX, paramY string, motions []Motion) (*BlendTree, error) {
	t, err := newBlendTree(sk, motions)
	if err != nil {
		return nil, err
	}
	t.is2D = true
	t.paramX = newParamRef(paramX)
	t.paramY = newParamRef(paramY)
	return t, nil
}

// Weights returns the per-motion weights computed by the last evaluation, in
// motion order (ascending threshold for 1D trees). The slice is reused every
// tick; callers must not modify or retain it.
func (t *BlendTree) Weights() []float64 {
	return t.weights
}

// evaluate advances the tree for one controller tick: recompute weights from
// the parameter bank, advance and sample every motion with non-zero weight
// (children before the parent composite), and blend the results into the
// tree's buffer. Repeat calls within the same tick return immediately.
func (t *BlendTree) evaluate(dt float64, params *Parameters, tick uint64) {
	if t.lastTick == tick {
		return
	}
	t.lastTick = tick

	t.computeWeights(params)

	for i := range t.motions {
		if t.weights[i] <= 0 {
			continue
		}
		m := &t.motions[i]
		if m.tree != nil {
			m.tree.evaluate(dt, params, tick)
			continue
		}
		// Cursors run at full rate regardless of weight and wrap modulo 1.
		if d := m.sampler.Duration(); d > 0 {
			m.cursor += dt / d
			m.cursor -= math.Floor(m.cursor)
		}
		if err := m.sampler.Sample(m.cursor, m.buf); err != nil {
			// Hold the last valid pose; one stale frame beats a dropped one.
			if !m.warned {
				log.Printf("marionette: blend tree motion %d: %v", i, err)
				m.warned = true
			}
		} else {
			m.warned = false
		}
	}

	t.blend()
}

// computeWeights fills t.weights from the current parameter values. Missing
// or wrongly typed parameters zero every weight; the tree then keeps its
// previous output for the tick.
func (t *BlendTree) computeWeights(params *Parameters) {
	for i := range t.weights {
		t.weights[i] = 0
	}
	if len(t.motions) == 0 {
		return
	}
	x, ok := t.paramX.float(params)
	if !ok {
		return
	}
	if !t.is2D {
		t.weights1D(x)
		return
	}
	y, ok := t.paramY.float(params)
	if !ok {
		return
	}
	t.weights2D(x, y)
}

// weights1D assigns bracketing linear-interpolation weights for a parameter
// value against the ascending motion thresholds: clamp to the end motions
// outside the range, otherwise split between the two surrounding motions.
func (t *BlendTree) weights1D(v float64) {
	n := len(t.motions)
	if n == 1 {
		t.weights[0] = 1
		return
	}
	if v <= t.motions[0].threshold.X {
		t.weights[0] = 1
		return
	}
	if v >= t.motions[n-1].threshold.X {
		t.weights[n-1] = 1
		return
	}
	for i := 0; i < n-1; i++ {
		lo := t.motions[i].threshold.X
		hi := t.motions[i+1].threshold.X
		if v < lo || v > hi {
			continue
		}
		if hi-lo < 1e-12 {
			t.weights[i] = 1
			return
		}
		w := (v - lo) / (hi - lo)
		t.weights[i] = 1 - w
		t.weights[i+1] = w
		return
	}
}

// weights2D assigns gradient-band weights for a 2D sample point. For each
// motion the influence is the minimum, over every other motion, of
// 1 - proj((p - pi) onto (pj - pi)), floored at zero; influences are then
// normalized to sum to one.
//
// This is the freeform-cartesian scheme: continuous in (x, y), exactly 1 at a
// motion's own threshold point (and 0 for all others there), and well-defined
// at the origin whether or not a motion sits there. Far outside the motion
// hull every influence can clamp to zero; the nearest motion then takes full
// weight.
func (t *BlendTree) weights2D(x, y float64) {
	n := len(t.motions)
	if n == 1 {
		t.weights[0] = 1
		return
	}
	p := Vec2{x, y}
	total := 0.0
	for i := range t.motions {
		pi := t.motions[i].threshold
		di := p.sub(pi)
		w := math.MaxFloat64
		for j := range t.motions {
			if j == i {
				continue
			}
			e := t.motions[j].threshold.sub(pi)
			len2 := e.dot(e)
			if len2 < 1e-12 {
				continue // coincident threshold points
			}
			h := 1 - di.dot(e)/len2
			if h < w {
				w = h
			}
		}
		if w == math.MaxFloat64 || w < 0 {
			w = 0
		}
		t.weights[i] = w
		total += w
	}
	if total > 1e-12 {
		for i := range t.weights {
			t.weights[i] /= total
		}
		return
	}
	// Outside every band: snap to the nearest motion.
	nearest := 0
	best := math.MaxFloat64
	for i := range t.motions {
		if d := p.sub(t.motions[i].threshold).length2(); d < best {
			best = d
			nearest = i
		}
	}
	for i := range t.weights {
		t.weights[i] = 0
	}
	t.weights[nearest] = 1
}

// blend composites the active motions' poses into the tree buffer.
// Translation and scale combine by weighted average; rotations accumulate
// pairwise slerps in descending weight order, list order breaking ties.
func (t *BlendTree) blend() {
	t.order = t.order[:0]
	for i := range t.motions {
		if t.weights[i] > 0 {
			t.order = append(t.order, i)
		}
	}
	if len(t.order) == 0 {
		return // keep previous output
	}
	sort.SliceStable(t.order, func(a, b int) bool {
		return t.weights[t.order[a]] > t.weights[t.order[b]]
	})

	first := t.motions[t.order[0]].pose()
	if len(t.order) == 1 {
		t.buf.CopyFrom(first)
		return
	}
	for j := range t.buf {
		w := t.weights[t.order[0]]
		trans := first[j].Translation.Scale(w)
		scale := first[j].Scale.Scale(w)
		rot := first[j].Rotation
		acc := w
		for _, i := range t.order[1:] {
			src := t.motions[i].pose()
			wi := t.weights[i]
			trans = trans.Add(src[j].Translation.Scale(wi))
			scale = scale.Add(src[j].Scale.Scale(wi))
			rot = rot.Slerp(src[j].Rotation, wi/(acc+wi))
			acc += wi
		}
		t.buf[j] = JointTransform{Translation: trans, Rotation: rot.Normalize(), Scale: scale}
	}
}

// normalizedTime returns the playback cursor of the currently dominant
// motion, recursing into sub-trees. Exit-time checks on blend states key off
// this value.
func (t *BlendTree) normalizedTime() float64 {
	best := -1
	for i := range t.weights {
		if best < 0 || t.weights[i] > t.weights[best] {
			best = i
		}
	}
	if best < 0 {
		return 0
	}
	if m := &t.motions[best]; m.tree != nil {
		return m.tree.normalizedTime()
	}
	return t.motions[best].cursor
}
