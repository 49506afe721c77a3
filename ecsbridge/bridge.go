// Package ecsbridge forwards gesture recognition results onto a Donburi ECS
// world as published events, adapted from the teacher's ecs subpackage
// (which published willow.InteractionEvent the same way). Nothing in
// package gesture or package stage depends on this; it's an optional
// observer wired up by an application that already has a Donburi world.
package ecsbridge

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/gesture/gesture"
)

// StateChangeEvent is published whenever an attached gesture changes state.
type StateChangeEvent struct {
	Gesture *gesture.Gesture
	Old     gesture.State
	New     gesture.State
}

// StateChangeEventType is the Donburi event type for StateChangeEvent.
// Subscribe to it with events.Subscribe and drain with events.ProcessEvents,
// exactly like the teacher's InteractionEventType.
var StateChangeEventType = events.NewEventType[StateChangeEvent]()

// TapEvent is published by recognizers/tap on a completed tap.
type TapEvent struct {
	Gesture *gesture.Gesture
	Clicks  int
	X, Y    float64
}

var TapEventType = events.NewEventType[TapEvent]()

// LongPressEvent is published by recognizers/longpress on completion.
type LongPressEvent struct {
	Gesture *gesture.Gesture
	X, Y    float64
}

var LongPressEventType = events.NewEventType[LongPressEvent]()

// PanEvent is published by recognizers/pan on each update while
// RECOGNIZING.
type PanEvent struct {
	Gesture              *gesture.Gesture
	DeltaX, DeltaY       float64
	VelocityX, VelocityY float64
}

var PanEventType = events.NewEventType[PanEvent]()

// Bridge publishes gesture state changes onto a Donburi world.
type Bridge struct {
	world donburi.World
}

// New creates a Bridge publishing onto world.
func New(world donburi.World) *Bridge {
	return &Bridge{world: world}
}

// Watch registers a StateChange observer on g that publishes a
// StateChangeEvent for every transition.
func (b *Bridge) Watch(g *gesture.Gesture) {
	g.OnStateChange(func(g *gesture.Gesture, old, new gesture.State) {
		StateChangeEventType.Publish(b.world, StateChangeEvent{Gesture: g, Old: old, New: new})
	})
}

// PublishTap publishes a TapEvent for the given gesture and tap payload.
// Wire it into a recognizers/tap.Recognizer's OnTap callback.
func (b *Bridge) PublishTap(g *gesture.Gesture, clicks int, at gesture.Coord) {
	TapEventType.Publish(b.world, TapEvent{Gesture: g, Clicks: clicks, X: at.X, Y: at.Y})
}

// PublishLongPress publishes a LongPressEvent. Wire it into a
// recognizers/longpress.Recognizer's OnLongPress callback.
func (b *Bridge) PublishLongPress(g *gesture.Gesture, at gesture.Coord) {
	LongPressEventType.Publish(b.world, LongPressEvent{Gesture: g, X: at.X, Y: at.Y})
}

// PublishPan publishes a PanEvent. Wire it into a recognizers/pan.Recognizer's
// OnPanUpdate callback.
func (b *Bridge) PublishPan(g *gesture.Gesture, dx, dy, vx, vy float64) {
	PanEventType.Publish(b.world, PanEvent{Gesture: g, DeltaX: dx, DeltaY: dy, VelocityX: vx, VelocityY: vy})
}
