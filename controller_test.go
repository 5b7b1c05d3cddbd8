package marionette

import "testing"

func runController(t *testing.T, sk *Skeleton, layers ...*AnimationLayer) *AnimatorController {
	t.Helper()
	return NewAnimatorController(sk, layers, nil)
}

func TestTriggerClearedAfterUpdate(t *testing.T) {
	sk := testSkeleton(t, 1)
	c := runController(t, sk)
	c.Parameters().SetTrigger("jump")

	c.Update(0.016)
	if c.Parameters().GetTrigger("jump") {
		t.Error("trigger still raised after Update")
	}

	// A second Update without re-raising must also read false.
	c.Update(0.016)
	if c.Parameters().GetTrigger("jump") {
		t.Error("trigger re-appeared on a later tick")
	}
}

func TestTriggerVisibleToEveryLayerInOneTick(t *testing.T) {
	sk := testSkeleton(t, 1)
	mkLayer := func(name string) *AnimationLayer {
		l := NewAnimationLayer(name, BlendOverride, 1, sk, "A")
		l.AddState("A", NewSimpleState(sk, &recordSampler{dur: 1}))
		l.AddState("B", NewSimpleState(sk, &recordSampler{dur: 1, value: 1}))
		if err := l.AddTransition("A", &Transition{
			Target:     "B",
			Conditions: []Condition{TriggerCondition("go")},
		}); err != nil {
			t.Fatal(err)
		}
		return l
	}
	first, second := mkLayer("first"), mkLayer("second")
	c := runController(t, sk, first, second)

	c.Parameters().SetTrigger("go")
	c.Update(0.016)

	// The controller clears triggers after all layers run, so both
	// machines observe the same one-shot.
	if first.CurrentState() != "B" || second.CurrentState() != "B" {
		t.Errorf("states = %q, %q, want B, B", first.CurrentState(), second.CurrentState())
	}
}

func TestBoolTransitionScenario(t *testing.T) {
	sk := testSkeleton(t, 1)
	l := NewAnimationLayer("Base", BlendOverride, 1, sk, "Idle")
	l.AddState("Idle", NewSimpleState(sk, &recordSampler{dur: 1}))
	l.AddState("Run", NewSimpleState(sk, &recordSampler{dur: 1, value: 10}))
	if err := l.AddTransition("Idle", &Transition{
		Target:     "Run",
		Duration:   0.3,
		Conditions: []Condition{BoolCondition("is_running", true)},
	}); err != nil {
		t.Fatal(err)
	}
	c := runController(t, sk, l)

	c.Parameters().SetBool("is_running", true)
	c.Update(0.1)
	c.Update(0.1)
	c.Update(0.1)

	// 0.3s of fade at 0.1s steps: settled in Run, no residual blending.
	if l.CurrentState() != "Run" {
		t.Errorf("current state = %q, want Run", l.CurrentState())
	}
	if l.IsTransitioning() {
		t.Error("still transitioning after the fade duration elapsed")
	}
	assertNear(t, "settled pose", c.OutputPose()[0].Translation.X, 10)
}

func TestNegativeDtClamped(t *testing.T) {
	sk := testSkeleton(t, 1)
	s := &recordSampler{dur: 1}
	l := NewAnimationLayer("Base", BlendOverride, 1, sk, "A")
	l.AddState("A", NewSimpleState(sk, s))
	c := runController(t, sk, l)

	c.Update(0.5)
	assertNear(t, "cursor", s.lastRatio, 0.5)
	c.Update(-3)
	assertNear(t, "cursor unchanged by negative dt", s.lastRatio, 0.5)
}

func TestLayerCompositionOrder(t *testing.T) {
	sk := testSkeleton(t, 1)

	base := NewAnimationLayer("Base", BlendOverride, 1, sk, "Pose")
	base.AddState("Pose", NewSimpleState(sk, &recordSampler{dur: 1, value: 4}))

	// An additive layer on top shifts the base pose by its rest delta.
	top := NewAnimationLayer("Lean", BlendAdditive, 1, sk, "Tilt")
	top.AddState("Tilt", NewSimpleState(sk, constSampler(1, translated(2))))

	c := runController(t, sk, base, top)
	c.Update(0.1)

	// Base overrides to x=4, additive adds (2 - rest 0) on top.
	assertNear(t, "composited X", c.OutputPose()[0].Translation.X, 6)
	assertNear(t, "composited scale", c.OutputPose()[0].Scale.X, 1)
}

func TestControllerAccessors(t *testing.T) {
	sk := testSkeleton(t, 3)
	l := NewAnimationLayer("Base", BlendOverride, 1, sk, "A")
	c := runController(t, sk, l)

	if c.Skeleton() != sk {
		t.Error("Skeleton accessor mismatch")
	}
	if len(c.Layers()) != 1 || c.Layer(0) != l {
		t.Error("layer accessors mismatch")
	}
	if c.Layer(1) != nil || c.Layer(-1) != nil {
		t.Error("out-of-range Layer index did not return nil")
	}

	extra := NewAnimationLayer("Extra", BlendAdditive, 0.5, sk, "A")
	c.AddLayer(extra)
	if len(c.Layers()) != 2 || c.Layer(1) != extra {
		t.Error("AddLayer did not append")
	}

	if got := len(c.OutputPose()); got != 3 {
		t.Errorf("output pose has %d joints, want 3", got)
	}
}

func TestControllerWithBlendTreeState(t *testing.T) {
	sk := testSkeleton(t, 1)
	idle := leaf(1, 0)
	run := leaf(1, 8)
	tr, err := NewBlendTree1D(sk, "speed", []Motion{
		{Sampler: idle, Threshold: Vec2{X: 0}},
		{Sampler: run, Threshold: Vec2{X: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	l := NewAnimationLayer("Base", BlendOverride, 1, sk, "Move")
	l.AddState("Move", NewBlendState(tr))
	c := runController(t, sk, l)

	c.Parameters().SetFloat("speed", 0.5)
	c.Update(0.1)
	assertNear(t, "blended output", c.OutputPose()[0].Translation.X, 4)

	c.Parameters().SetFloat("speed", 1)
	c.Update(0.1)
	assertNear(t, "full speed output", c.OutputPose()[0].Translation.X, 8)
}

func TestSharedSubTreeAcrossLayersOneTick(t *testing.T) {
	sk := testSkeleton(t, 1)
	inner := leaf(1, 5)
	shared, err := NewBlendTree1D(sk, "speed", []Motion{{Sampler: inner, Threshold: Vec2{X: 0}}})
	if err != nil {
		t.Fatal(err)
	}

	mkLayer := func(name string) *AnimationLayer {
		parent, err := NewBlendTree1D(sk, "speed", []Motion{{Tree: shared, Threshold: Vec2{X: 0}}})
		if err != nil {
			t.Fatal(err)
		}
		l := NewAnimationLayer(name, BlendOverride, 1, sk, "Move")
		l.AddState("Move", NewBlendState(parent))
		return l
	}
	c := runController(t, sk, mkLayer("a"), mkLayer("b"))
	c.Parameters().SetFloat("speed", 0)

	c.Update(0.25)
	if inner.calls != 1 {
		t.Errorf("shared sub-tree sampled %d times across layers in one tick, want 1", inner.calls)
	}
	c.Update(0.25)
	if inner.calls != 2 {
		t.Errorf("shared sub-tree sampled %d times after two ticks, want 2", inner.calls)
	}
	assertNear(t, "shared cursor single-stepped", inner.lastRatio, 0.5)
}
