package marionette

// AnimatorController owns a skeleton reference, an ordered list of animation
// layers, and a parameter bank, and runs one full graph evaluation per tick.
//
// A controller is single-threaded: the host calls Update once per frame and
// no two Update calls for the same controller may overlap. Distinct
// controllers share no mutable state and may be evaluated in parallel by the
// host scheduler (plain fields, no locks).
type AnimatorController struct {
	skeleton *Skeleton
	layers   []*AnimationLayer
	params   *Parameters
	acc      Pose
	tick     uint64
}

// NewAnimatorController creates a controller for the given skeleton with an
// initial set of layers (applied in order, index 0 first) and parameter
// bank. A nil params gets a fresh empty bank.
func NewAnimatorController(sk *Skeleton, layers []*AnimationLayer, params *Parameters) *AnimatorController {
	if params == nil {
		params = NewParameters()
	}
	return &AnimatorController{
		skeleton: sk,
		layers:   layers,
		params:   params,
		acc:      NewPose(sk.NumJoints()),
	}
}

// Update runs one evaluation tick: each layer advances its state machine and
// composites its pose into the freshly reset accumulator in layer order, then
// every raised trigger is lowered. dt is clamped to be non-negative.
func (c *AnimatorController) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	// Ticks start at 1 so blend trees can use the zero value as "never
	// advanced" in their deduplication stamps.
	c.tick++

	c.acc.Reset()
	for _, l := range c.layers {
		l.advance(dt, c.params, c.tick)
		l.composite(c.acc)
	}
	c.params.consumeTriggers()
}

// OutputPose returns the final per-joint local pose of the last Update.
// The buffer is owned by the controller and rewritten every tick; consumers
// (skinning, transform application) must read it before the next Update.
func (c *AnimatorController) OutputPose() Pose {
	return c.acc
}

// Skeleton returns the controller's skeleton descriptor.
func (c *AnimatorController) Skeleton() *Skeleton {
	return c.skeleton
}

// Parameters returns the controller's parameter bank for external game logic
// to read and write.
func (c *AnimatorController) Parameters() *Parameters {
	return c.params
}

// AddLayer appends a layer; it composites after all existing layers.
func (c *AnimatorController) AddLayer(l *AnimationLayer) {
	c.layers = append(c.layers, l)
}

// Layers returns the controller's layers in composition order. The slice is
// owned by the controller; use AddLayer to grow it.
func (c *AnimatorController) Layers() []*AnimationLayer {
	return c.layers
}

// Layer returns the layer at index i, or nil if out of range.
func (c *AnimatorController) Layer(i int) *AnimationLayer {
	if i < 0 || i >= len(c.layers) {
		return nil
	}
	return c.layers[i]
}
