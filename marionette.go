package marionette

// Vec2 is a 2D point in blend-parameter space, used for directional blend
// tree thresholds.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) length2() float64 {
	return v.X*v.X + v.Y*v.Y
}

// LayerBlendType selects how a layer's pose composites onto the accumulated
// skeleton pose.
type LayerBlendType uint8

const (
	// BlendOverride replaces the accumulated pose, interpolated by the
	// layer weight (weight 1 is a full replace).
	BlendOverride LayerBlendType = iota
	// BlendAdditive applies the layer's delta from its rest pose on top of
	// the accumulated pose, scaled by the layer weight.
	BlendAdditive
)
