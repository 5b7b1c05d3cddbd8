package ecs

import (
	"github.com/phanxgames/marionette"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// AnimatorData is the component payload: one controller per entity.
type AnimatorData struct {
	Controller *marionette.AnimatorController
}

// Animator is the Donburi component type for animated entities.
var Animator = donburi.NewComponentType[AnimatorData]()

// TransitionEvent reports that a layer's current state changed during an
// UpdateAnimators tick (a transition fired, or a cross-fade completed into
// its target).
type TransitionEvent struct {
	Entity donburi.Entity
	Layer  string
	From   string
	To     string
}

// TransitionEventType is the Donburi event type for layer state changes.
// Events are queued; call ProcessEvents (or events.ProcessAllEvents) after
// UpdateAnimators to deliver them.
var TransitionEventType = events.NewEventType[TransitionEvent]()

var animatorQuery = donburi.NewQuery(filter.Contains(Animator))

// UpdateAnimators advances every Animator controller in the world by dt
// seconds and publishes a TransitionEvent for each layer whose current state
// changed during the tick.
func UpdateAnimators(world donburi.World, dt float64) {
	animatorQuery.Each(world, func(entry *donburi.Entry) {
		data := Animator.Get(entry)
		ctrl := data.Controller
		if ctrl == nil {
			return
		}

		layers := ctrl.Layers()
		before := make([]string, len(layers))
		for i, l := range layers {
			before[i] = l.CurrentState()
		}

		ctrl.Update(dt)

		for i, l := range layers {
			if i < len(before) && l.CurrentState() != before[i] {
				TransitionEventType.Publish(world, TransitionEvent{
					Entity: entry.Entity(),
					Layer:  l.Name(),
					From:   before[i],
					To:     l.CurrentState(),
				})
			}
		}
	})
}
