// Package ecs provides ECS adapters for marionette animator controllers.
//
// The [Animator] component attaches a [marionette.AnimatorController] to a
// [Donburi] entity, and [UpdateAnimators] advances every controller in the
// world once per frame. Layer state changes during a tick are published to
// [TransitionEventType] so gameplay systems can react to animation hand-offs
// (footstep sounds, hit windows, effect spawns) without polling.
//
// Usage:
//
//	entry := world.Entry(world.Create(ecs.Animator))
//	ecs.Animator.SetValue(entry, ecs.AnimatorData{Controller: ctrl})
//
//	// each frame:
//	ecs.UpdateAnimators(world, dt)
//	ecs.TransitionEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
