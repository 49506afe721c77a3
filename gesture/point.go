package gesture

import (
	"math"
	"time"
)

// pointKey identifies one tracked contact: a touch/pen sequence on a device,
// or (isPointer true) the single implicit pointer-button contact on a
// device.
type pointKey struct {
	device    DeviceID
	sequence  uint64
	isPointer bool
}

// Coord is a single sampled location and time.
type Coord struct {
	X, Y float64
	Time time.Duration
}

// Point is the public, append-only view of a tracked contact exposed to
// delegates while a gesture holds it. Begin is the first sample, Last is the
// previous sample before Latest, Latest is the most recent sample. Move and
// End are the same as Latest except only populated for the corresponding
// event kind, letting a delegate distinguish "still moving" from "just
// ended" without inspecting the triggering Event directly.
type Point struct {
	Key   pointKey
	// Index is this point's position in the monotonic per-gesture counter
	// of points the gesture has begun tracking since it last returned to
	// WAITING (0 for the first point, 1 for the second concurrent or
	// subsequent point, and so on). Mirrors clutter_gesture's
	// point_index_counter.
	Index int
	Begin Coord
	Last  Coord
	Latest Coord

	hasMove bool
	Move    Coord
	hasEnd  bool
	End     Coord

	Device     DeviceID
	DeviceType DeviceType
	Button     Button
}

// HasMove reports whether Move has been populated by at least one motion
// sample.
func (p Point) HasMove() bool { return p.hasMove }

// HasEnd reports whether the contact has ended (button release / touch end).
func (p Point) HasEnd() bool { return p.hasEnd }

// pointState is the internal, mutable per-contact tracking record. It holds
// strictly more history than the public Point view: every sample since the
// contact began. Only the begin, previous and latest samples reach delegates,
// through toPublic; concrete recognizers keep their own history (pan's
// velocity window) and compute distances from the public Point.
type pointState struct {
	key          pointKey
	index        int
	device       DeviceID
	sourceDevice DeviceID
	devType      DeviceType
	button       Button
	begin        Coord
	samples      []Coord // full history, most recent last
	ended        bool

	// buttonsPressed counts extra buttons held on top of the one that
	// began this point. A pointer point only actually ends once every
	// button held over it has been released.
	buttonsPressed int
}

func newPointState(key pointKey, index int, device, sourceDevice DeviceID, devType DeviceType, button Button, at Coord) *pointState {
	return &pointState{
		key:          key,
		index:        index,
		device:       device,
		sourceDevice: sourceDevice,
		devType:      devType,
		button:       button,
		begin:        at,
		samples:      []Coord{at},
	}
}

func (ps *pointState) latest() Coord {
	return ps.samples[len(ps.samples)-1]
}

func (ps *pointState) prev() Coord {
	if len(ps.samples) < 2 {
		return ps.samples[0]
	}
	return ps.samples[len(ps.samples)-2]
}

func (ps *pointState) push(at Coord) {
	ps.samples = append(ps.samples, at)
}

// toPublic builds the append-only Point view handed to delegates. kind
// distinguishes a move sample from an end sample so Move/End populate
// correctly.
func (ps *pointState) toPublic(kind EventKind) Point {
	p := Point{
		Key:    ps.key,
		Index:  ps.index,
		Begin:  ps.begin,
		Last:   ps.prev(),
		Latest: ps.latest(),
		Device: ps.device,
		DeviceType: ps.devType,
		Button: ps.button,
	}
	switch kind {
	case EventMotion, EventTouchUpdate:
		p.hasMove = true
		p.Move = p.Latest
	case EventButtonRelease, EventTouchEnd, EventTouchCancel:
		p.hasEnd = true
		p.End = p.Latest
	}
	return p
}

// distance returns the straight-line distance traveled from begin to the
// latest sample.
func (ps *pointState) distance() float64 {
	return math.Hypot(ps.latest().X-ps.begin.X, ps.latest().Y-ps.begin.Y)
}
