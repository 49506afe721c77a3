package stage

import "github.com/phanxgames/gesture/gesture"

// NewActorScopedGrab wraps g so its Crossing notifications are only
// forwarded when they concern an actor within root's subtree, adapting
// gesture.ActorScopedGrab to the concrete Actor type.
func NewActorScopedGrab(root *Actor, g gesture.Grab) gesture.Grab {
	return gesture.ActorScopedGrab{
		Grab: g,
		Root: root,
		InSubtree: func(actor, root any) bool {
			a, ok1 := actor.(*Actor)
			r, ok2 := root.(*Actor)
			if !ok1 || !ok2 || a == nil {
				return false
			}
			return isAncestor(r, a) || a == r
		},
	}
}
