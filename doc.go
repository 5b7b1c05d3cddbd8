// Package marionette evaluates Unity-style animator graphs on the CPU.
//
// Each frame, a controller decides which animations are playing on a
// skeleton, how they cross-fade and blend, and produces the resulting
// per-joint local transforms: parameters drive layered state machines with
// timed transitions, and 1D/2D/nested blend trees compute per-motion weights
// and combine sampled poses.
//
// Marionette is renderer-agnostic. It consumes a [Skeleton] descriptor and
// per-animation [Sampler] jobs from an asset collaborator, and exposes a
// final [Pose] buffer for a skinning collaborator. It opens no windows and
// spawns no goroutines.
//
// # Quick start
//
// Build a graph programmatically, then call Update once per frame:
//
//	sk, _ := marionette.NewSkeleton(parents, names, rest)
//
//	layer := marionette.NewAnimationLayer("Base", marionette.BlendOverride, 1, sk, "Idle")
//	layer.AddState("Idle", marionette.NewSimpleState(sk, idleClip))
//	layer.AddState("Run", marionette.NewSimpleState(sk, runClip))
//	layer.AddTransition("Idle", &marionette.Transition{
//		Target:     "Run",
//		Duration:   0.3,
//		Conditions: []marionette.Condition{marionette.BoolCondition("is_running", true)},
//	})
//
//	ctrl := marionette.NewAnimatorController(sk, []*marionette.AnimationLayer{layer}, nil)
//
//	ctrl.Parameters().SetBool("is_running", true)
//	ctrl.Update(dt)
//	pose := ctrl.OutputPose() // feed to skinning
//
// # Parameters
//
// A [Parameters] bank holds named Bool, Float, Int, and Trigger values.
// Game logic writes them; transition conditions and blend trees read them.
// Triggers are one-shot: raised with SetTrigger, observable by every layer
// for the remainder of the tick, and lowered automatically after Update.
//
// # States and transitions
//
// A layer's states are [SimpleState] (one clip with a looping cursor) or
// [BlendState] (a blend tree). Transitions list AND-ed [Condition] values,
// an optional exit time gating on the source state's own timeline, and a
// cross-fade duration optionally shaped by a gween easing function.
// Transitions are evaluated in the order they were added; the first match
// wins. Zero-duration transitions complete within the tick they start.
//
// # Blend trees
//
// [NewBlendTree1D] sweeps one float parameter across scalar thresholds and
// interpolates the two bracketing motions. [NewBlendTree2D] places motions
// at points in a 2D parameter space and distributes weight with continuous
// gradient-band interpolation. Motions may nest further trees; a sub-tree
// shared by several parents advances at most once per tick. Motions with
// zero weight are neither advanced nor sampled.
//
// # Layers
//
// Layers composite in order onto the controller's accumulator. Override
// layers interpolate the accumulator toward their pose by the layer weight;
// Additive layers apply a weight-scaled delta from the rest pose captured at
// layer construction. Layer weights clamp to [0, 1].
//
// # Error model
//
// Graph wiring mistakes (a transition to an unknown state) surface at build
// time as errors. Runtime sampling failures degrade: the state holds its
// last valid pose for the frame and a diagnostic is logged. A missing
// parameter never fails a tick: conditions read false and blend weights
// collapse to zero.
package marionette
