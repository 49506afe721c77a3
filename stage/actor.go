// Package stage provides a minimal reference implementation of the
// windowing/scene-graph host that package gesture treats as opaque behind
// the gesture.Host interface. It is adapted from the teacher's own
// Node/Scene scene graph, trimmed to the hierarchy, transform, and
// hit-testing machinery a gesture dispatcher actually needs, and renamed to
// Actor/Stage to match the vocabulary of the Clutter toolkit this
// specification is distilled from.
package stage

import "github.com/phanxgames/gesture/gesture"

// HitShape is a custom hit-testing region attached to an Actor. Rect,
// Circle, and Polygon below are the built-in implementations; callers may
// supply their own.
type HitShape interface {
	Contains(x, y float64) bool
}

// actorIDCounter is a plain counter; the reference host is single-threaded.
var actorIDCounter uint32

func nextActorID() uint32 {
	actorIDCounter++
	return actorIDCounter
}

// Actor is a node in the reference scene graph: a transform, a hierarchy
// position, and an optional hit shape and set of gestures. It renders
// nothing; see SPEC_FULL.md §4.6 for why the reference host is
// intentionally this thin.
type Actor struct {
	ID   uint32
	Name string

	Parent   *Actor
	children []*Actor

	// Local transform (spec composition order: translate(-pivot), scale,
	// skew, rotate, translate(x, y) — see transform.go).
	X, Y         float64
	ScaleX       float64
	ScaleY       float64
	Rotation     float64
	SkewX, SkewY float64
	PivotX       float64
	PivotY       float64

	worldTransform [6]float64
	transformDirty bool

	Visible      bool
	Interactable bool
	ZIndex       int

	// HitShape gates hit-testing in local coordinates. A nil HitShape
	// means the actor is never hit directly (but its children still are).
	HitShape HitShape

	// gestures attached directly to this actor, in attachment order. The
	// dispatch order among gestures on the SAME actor is negotiated
	// pairwise via gesture.Gesture.SetupSequenceRelationship; see
	// stage.go's dispatchOrder.
	gestures []*gesture.Gesture

	UserData any

	disposed bool
}

// AddGesture attaches g to this actor so the owning Stage will offer it
// every event that hits this actor.
func (a *Actor) AddGesture(g *gesture.Gesture) {
	a.gestures = append(a.gestures, g)
	g.SetActor(a)
}

// RemoveGesture detaches g from this actor, force-cancelling any points g
// is still tracking (see gesture.Gesture.SetActor).
func (a *Actor) RemoveGesture(g *gesture.Gesture) {
	for i, o := range a.gestures {
		if o == g {
			a.gestures = append(a.gestures[:i], a.gestures[i+1:]...)
			break
		}
	}
	g.SetActor(nil)
}

// Gestures returns the gestures attached directly to this actor.
func (a *Actor) Gestures() []*gesture.Gesture { return a.gestures }

func actorDefaults(a *Actor) {
	a.ID = nextActorID()
	a.ScaleX = 1
	a.ScaleY = 1
	a.Visible = true
	a.Interactable = true
	a.transformDirty = true
}

// NewActor creates a container actor with identity transform.
func NewActor(name string) *Actor {
	a := &Actor{Name: name}
	actorDefaults(a)
	return a
}

// --- Tree manipulation (adapted from willow's Node.AddChild family) ---

// AddChild appends child to this actor's children, reparenting it first if
// necessary. Panics if child is nil or would introduce a cycle.
func (a *Actor) AddChild(child *Actor) {
	if child == nil {
		panic("stage: cannot add nil child")
	}
	if isAncestor(child, a) {
		panic("stage: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = a
	a.children = append(a.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this actor. Panics if child.Parent != a.
func (a *Actor) RemoveChild(child *Actor) {
	if child.Parent != a {
		panic("stage: child's parent is not this actor")
	}
	a.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this actor from its parent, if any.
func (a *Actor) RemoveFromParent() {
	if a.Parent == nil {
		return
	}
	a.Parent.RemoveChild(a)
}

// Children returns the child list. Callers must not mutate the returned
// slice.
func (a *Actor) Children() []*Actor { return a.children }

// Dispose detaches this actor and recursively disposes its subtree,
// clearing cross-references the same way willow's Node.dispose does.
func (a *Actor) Dispose() {
	if a.disposed {
		return
	}
	a.RemoveFromParent()
	a.dispose()
}

func (a *Actor) dispose() {
	a.disposed = true
	for _, c := range a.children {
		c.Parent = nil
		c.dispose()
	}
	a.children = nil
	a.Parent = nil
	a.HitShape = nil
	for _, g := range a.gestures {
		g.SetActor(nil)
	}
	a.gestures = nil
	a.UserData = nil
}

// IsDisposed reports whether Dispose has been called.
func (a *Actor) IsDisposed() bool { return a.disposed }

func isAncestor(candidate, node *Actor) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (a *Actor) removeChildByPtr(child *Actor) {
	for i, c := range a.children {
		if c == child {
			a.children = append(a.children[:i], a.children[i+1:]...)
			return
		}
	}
}

func markSubtreeDirty(a *Actor) {
	a.transformDirty = true
	for _, c := range a.children {
		markSubtreeDirty(c)
	}
}

// --- Hit shapes (adapted from willow's HitShape usage in input.go) ---

// Rect is an axis-aligned local-space hit rectangle.
type Rect struct{ X, Y, Width, Height float64 }

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Circle is a local-space hit circle.
type Circle struct{ X, Y, Radius float64 }

func (c Circle) Contains(x, y float64) bool {
	dx, dy := x-c.X, y-c.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Polygon is a local-space convex or concave hit polygon (even-odd rule).
type Polygon struct{ Points []struct{ X, Y float64 } }

func (p Polygon) Contains(x, y float64) bool {
	inside := false
	n := len(p.Points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := p.Points[i], p.Points[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}
