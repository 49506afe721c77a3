// Package pan recognizes one or more contacts moving together past a
// begin-threshold, optionally constrained to one axis, and reports a
// velocity computed from a trailing window of recent samples. Grounded on
// the reference recognizer's pan gesture (begin_threshold, pan_axis,
// min/max_n_points, and its 150ms event-history velocity window).
package pan

import (
	"math"

	"github.com/phanxgames/gesture/config"
	"github.com/phanxgames/gesture/gesture"
)

const historyWindow = 150 // milliseconds, matches EVENT_HISTORY_DURATION_MS

// sample is a single (time, position) reading used for velocity estimation.
type sample struct {
	t    float64 // milliseconds
	x, y float64
}

// Recognizer detects panning: total movement of the tracked contact(s) past
// a configured threshold, along an optionally constrained axis.
type Recognizer struct {
	gesture.BaseDelegate

	cfg config.Pan

	usePoint     gesture.DeviceID
	haveUsePoint bool
	totalDeltaX  float64
	totalDeltaY  float64
	lastX, lastY float64
	haveLast     bool
	history      []sample

	// OnPanBegin fires the moment the begin-threshold is crossed.
	OnPanBegin func()
	// OnPanUpdate fires on every move while RECOGNIZING, including the
	// move that crossed the begin-threshold (right after OnPanBegin), with
	// the delta since the last update and the current trailing velocity in
	// pixels/second.
	OnPanUpdate func(deltaX, deltaY, velocityX, velocityY float64)
	// OnPanEnd fires when the pan completes.
	OnPanEnd func()
}

// New creates a pan recognizer using the given configuration.
func New(cfg config.Pan) *Recognizer {
	return &Recognizer{cfg: cfg}
}

func (r *Recognizer) ShouldHandleSequence(g *gesture.Gesture, p gesture.Point) bool {
	if r.cfg.MaxPoints > 0 && len(g.Points())+1 > r.cfg.MaxPoints {
		return false
	}
	return true
}

func (r *Recognizer) HandlePoint(g *gesture.Gesture, p gesture.Point, kind gesture.EventKind) {
	n := len(g.Points())

	switch kind {
	case gesture.EventButtonPress, gesture.EventTouchBegin:
		if n < r.cfg.MinPoints || (r.cfg.MaxPoints != 0 && n > r.cfg.MaxPoints) {
			g.Cancel()
			return
		}
		if len(r.history) == 0 {
			if r.cfg.BeginThreshold == 0 {
				g.RequestRecognizing()
			}
			r.usePoint = p.Device
			r.haveUsePoint = true
		} else if g.State() == gesture.StateRecognizing {
			g.RequestRecognizing() // no-op self loop, mirrors reference re-entry
		}

	case gesture.EventMotion, gesture.EventTouchUpdate:
		if r.haveUsePoint && p.Device != r.usePoint {
			return
		}
		if !r.haveLast {
			r.lastX, r.lastY = p.Begin.X, p.Begin.Y
			r.haveLast = true
		}
		dx := p.Latest.X - r.lastX
		dy := p.Latest.Y - r.lastY
		r.lastX, r.lastY = p.Latest.X, p.Latest.Y
		r.totalDeltaX += dx
		r.totalDeltaY += dy
		r.pushHistory(float64(p.Latest.Time.Milliseconds()), p.Latest.X, p.Latest.Y)

		wasRecognizing := g.State() == gesture.StateRecognizing

		if !wasRecognizing && n >= r.cfg.MinPoints && (r.cfg.MaxPoints == 0 || n <= r.cfg.MaxPoints) {
			totalDist := math.Hypot(r.totalDeltaX, r.totalDeltaY)
			crossed := false
			switch r.cfg.Axis {
			case config.PanAxisBoth:
				crossed = totalDist >= r.cfg.BeginThreshold
			case config.PanAxisX:
				crossed = math.Abs(r.totalDeltaX) >= r.cfg.BeginThreshold
			case config.PanAxisY:
				crossed = math.Abs(r.totalDeltaY) >= r.cfg.BeginThreshold
			}
			if crossed {
				g.RequestRecognizing()
				if g.State() == gesture.StateRecognizing && r.OnPanBegin != nil {
					r.OnPanBegin()
				}
			}
		}

		if g.State() == gesture.StateRecognizing {
			vx, vy := r.velocity()
			if r.OnPanUpdate != nil {
				r.OnPanUpdate(dx, dy, vx, vy)
			}
		}

	case gesture.EventButtonRelease, gesture.EventTouchEnd:
		remaining := n - 1
		if remaining >= r.cfg.MinPoints {
			// still enough points tracked elsewhere to keep panning; a
			// full implementation would re-pick usePoint here from the
			// remaining contacts.
			return
		}
		if g.State() == gesture.StateRecognizing {
			if r.OnPanEnd != nil {
				r.OnPanEnd()
			}
			g.Complete()
		} else {
			g.Cancel()
		}

	case gesture.EventTouchCancel:
		g.Cancel()
	}
}

func (r *Recognizer) SequencesCancelled(g *gesture.Gesture, cancelled []gesture.Point) {
	g.Cancel()
}

func (r *Recognizer) StateChanged(g *gesture.Gesture, old, new gesture.State) {
	if new == gesture.StateCancelled || new == gesture.StateWaiting {
		r.totalDeltaX, r.totalDeltaY = 0, 0
		r.haveLast = false
		r.haveUsePoint = false
		r.history = r.history[:0]
	}
}

func (r *Recognizer) pushHistory(t, x, y float64) {
	r.history = append(r.history, sample{t: t, x: x, y: y})
	cutoff := t - historyWindow
	i := 0
	for i < len(r.history) && r.history[i].t < cutoff {
		i++
	}
	r.history = r.history[i:]
}

// velocity estimates instantaneous velocity in px/sec from the oldest and
// newest samples still inside the trailing window, matching the reference
// recognizer's calculate_velocity.
func (r *Recognizer) velocity() (vx, vy float64) {
	if len(r.history) < 2 {
		return 0, 0
	}
	first := r.history[0]
	last := r.history[len(r.history)-1]
	dt := last.t - first.t
	if dt <= 0 {
		return 0, 0
	}
	return (last.x - first.x) / dt * 1000, (last.y - first.y) / dt * 1000
}
