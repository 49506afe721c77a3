package gesture

// Grab is a polymorphic event-delivery target that temporarily intercepts
// events before they reach the normal actor-tree dispatch, e.g. for a modal
// popup or a drag operation driven outside the gesture graph. It mirrors the
// reference recognizer's grab object: every hook has a no-op default via
// BaseGrab, and a grab overrides only the events it cares about.
type Grab interface {
	// HandleEvent is offered every event while this grab is topmost.
	// Returning true consumes the event (it is not dispatched further).
	HandleEvent(e Event) bool

	// Crossing is offered enter/leave events; actor-scoped grabs use this
	// to restrict crossing notifications to their own subtree.
	Crossing(e Event, from, to any)

	// Cancel is called when something forcibly ends this grab (e.g. the
	// stage is dismissing every grab). GrabStack does not consult the
	// returned value: DismissTop removes the grab whatever Cancel returns,
	// and a grab that is superseded by a newer Push is neither cancelled
	// nor reinstated later.
	Cancel() bool
}

// BaseGrab is the zero-cost default Grab implementation; embed it and
// override only the hooks a concrete grab needs.
type BaseGrab struct{}

func (BaseGrab) HandleEvent(Event) bool    { return false }
func (BaseGrab) Crossing(Event, any, any)  {}
func (BaseGrab) Cancel() bool              { return false }

// ActorScopedGrab wraps a Grab so that crossing (enter/leave) notifications
// are only forwarded when they concern actors within Root's subtree,
// matching the reference recognizer's per-actor grab variant.
type ActorScopedGrab struct {
	Grab
	Root      any
	InSubtree func(actor any, root any) bool
}

func (a ActorScopedGrab) Crossing(e Event, from, to any) {
	inFrom := a.InSubtree != nil && a.InSubtree(from, a.Root)
	inTo := a.InSubtree != nil && a.InSubtree(to, a.Root)
	if inFrom || inTo {
		a.Grab.Crossing(e, from, to)
	}
}

// GrabStack maintains an ordered stack of active grabs. Pushing a grab makes
// it topmost; popping the topmost grab restores whichever grab is beneath
// it as the new topmost, unless the popped grab's Cancel hook is being run
// as part of a full dismissal (see DismissAll).
type GrabStack struct {
	stack []Grab
}

// NewGrabStack returns an empty grab stack.
func NewGrabStack() *GrabStack { return &GrabStack{} }

// Push installs g as the new topmost grab.
func (s *GrabStack) Push(g Grab) {
	s.stack = append(s.stack, g)
}

// Pop removes g from wherever it sits in the stack (not necessarily the
// top), closing the gap so the grab beneath it, if any, becomes topmost
// again. Popping a grab that isn't on the stack is a no-op.
func (s *GrabStack) Pop(g Grab) {
	for i, o := range s.stack {
		if o == g {
			s.stack = append(s.stack[:i], s.stack[i+1:]...)
			return
		}
	}
}

// Top returns the current topmost grab, or nil if the stack is empty.
func (s *GrabStack) Top() Grab {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// Dispatch offers e to the topmost grab, if any. Returns true if a grab
// consumed the event.
func (s *GrabStack) Dispatch(e Event) bool {
	top := s.Top()
	if top == nil {
		return false
	}
	return top.HandleEvent(e)
}

// DismissTop forcibly ends the topmost grab. If its Cancel hook returns
// true, the grab is popped and the one beneath it becomes topmost, exactly
// as if Pop had been called; if Cancel returns false, the grab is popped
// with no further effect (there is nothing left to reinstate below an empty
// stack, and a grab that isn't willing to be cancelled has no way to refuse
// outright short of not being on the stack at all).
func (s *GrabStack) DismissTop() {
	top := s.Top()
	if top == nil {
		return
	}
	top.Cancel()
	s.stack = s.stack[:len(s.stack)-1]
}

// DismissAll forcibly ends every grab on the stack, topmost first.
func (s *GrabStack) DismissAll() {
	for len(s.stack) > 0 {
		s.DismissTop()
	}
}
