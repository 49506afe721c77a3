// Command gesturedemo is a minimal ebiten application exercising the
// gesture engine end to end: three actors, each with a tap and a pan
// recognizer negotiating over the same pointer, a long-press recognizer on
// a fourth, and visual feedback (a gween-driven tap ripple, and a
// long-press ring fill timed from the start of the hold) so the
// recognition results are visible without a real rendering pipeline. Adapted from the teacher's examples/interaction demo.
package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/gesture/config"
	"github.com/phanxgames/gesture/gesture"
	"github.com/phanxgames/gesture/recognizers/longpress"
	"github.com/phanxgames/gesture/recognizers/pan"
	"github.com/phanxgames/gesture/recognizers/tap"
	"github.com/phanxgames/gesture/stage"
)

const (
	screenW = 640
	screenH = 480
	boxSize = 80
)

type ripple struct {
	x, y  float64
	tween *gween.Tween
}

type box struct {
	actor    *stage.Actor
	color    color.RGBA
	altColor color.RGBA
	usingAlt bool

	// holding/holdStart/holdDuration drive the long-press ring fill: the
	// ring grows from empty to full over holdDuration starting at
	// holdStart, and is only drawn while holding is true.
	holding      bool
	holdStart    time.Time
	holdDuration time.Duration
}

type game struct {
	st            *stage.Stage
	boxes         []*box
	ripples       []*ripple
	lastMouseDown bool
}

func newGame() *game {
	st := stage.NewStage()
	reg := st.Registry()

	colors := []color.RGBA{{230, 76, 76, 255}, {76, 178, 230, 255}, {76, 230, 127, 255}}
	altColors := []color.RGBA{{255, 178, 51, 255}, {204, 76, 230, 255}, {230, 230, 76, 255}}

	g := &game{st: st}

	for i, c := range colors {
		a := stage.NewActor(fmt.Sprintf("box%d", i))
		a.SetPosition(float64(80+i*180), 160)
		a.HitShape = stage.Rect{Width: boxSize, Height: boxSize}
		st.Root.AddChild(a)

		b := &box{actor: a, color: c, altColor: altColors[i]}
		g.boxes = append(g.boxes, b)

		tapDelegate := tap.New(config.NewTapConfig(), st)
		tapG := gesture.New("tap:"+a.Name, tapDelegate, st, reg)
		tapDelegate.Bind(tapG)
		tapDelegate.OnTap = func(clicks int, at gesture.Coord) {
			b.usingAlt = !b.usingAlt
			g.ripples = append(g.ripples, &ripple{
				x: at.X, y: at.Y,
				tween: gween.New(4, 48, 0.4, ease.OutCubic),
			})
		}
		a.AddGesture(tapG)

		panDelegate := pan.New(config.NewPanConfig().WithBeginThreshold(10))
		panG := gesture.New("pan:"+a.Name, panDelegate, st, reg)
		panDelegate.OnPanUpdate = func(dx, dy, vx, vy float64) {
			a.SetPosition(a.X+dx, a.Y+dy)
		}
		a.AddGesture(panG)

		// A tap only recognizes if the pan gesture on the same box fails to
		// recognize first; this is exercised via RequireFailureOf so a
		// dead-still press always wins as a tap even though both
		// recognizers see every point.
		tapG.RequireFailureOf(panG)
	}

	longPressActor := stage.NewActor("longpress")
	longPressActor.SetPosition(80, 320)
	longPressActor.HitShape = stage.Rect{Width: boxSize, Height: boxSize}
	st.Root.AddChild(longPressActor)
	lpCfg := config.NewLongPressConfig().WithDuration(600 * time.Millisecond)
	lpBox := &box{actor: longPressActor, color: color.RGBA{200, 200, 200, 255}, holdDuration: lpCfg.Duration}
	g.boxes = append(g.boxes, lpBox)

	lpDelegate := longpress.New(lpCfg, st)
	lpG := gesture.New("longpress", lpDelegate, st, reg)
	lpDelegate.OnLongPress = func(at gesture.Coord) {
		lpBox.usingAlt = true
	}
	lpG.OnStateChange(func(_ *gesture.Gesture, old, new gesture.State) {
		switch new {
		case gesture.StatePossible:
			lpBox.holding = true
			lpBox.holdStart = time.Now()
		case gesture.StateWaiting, gesture.StateCancelled:
			lpBox.holding = false
		}
	})
	longPressActor.AddGesture(lpG)

	return g
}

func (g *game) Update() error {
	g.st.Update()

	x, y := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if down && !g.lastMouseDown {
		g.st.Dispatch(gesture.Event{
			Kind: gesture.EventButtonPress, Device: 0, DeviceType: gesture.DevicePointer,
			X: float64(x), Y: float64(y), Button: gesture.ButtonLeft,
		})
	} else if down {
		g.st.Dispatch(gesture.Event{
			Kind: gesture.EventMotion, Device: 0, DeviceType: gesture.DevicePointer,
			X: float64(x), Y: float64(y), Button: gesture.ButtonLeft,
		})
	} else if g.lastMouseDown {
		g.st.Dispatch(gesture.Event{
			Kind: gesture.EventButtonRelease, Device: 0, DeviceType: gesture.DevicePointer,
			X: float64(x), Y: float64(y), Button: gesture.ButtonLeft,
		})
	}
	g.lastMouseDown = down

	for i := 0; i < len(g.ripples); i++ {
		if _, done := g.ripples[i].tween.Update(1.0 / 60.0); done {
			g.ripples = append(g.ripples[:i], g.ripples[i+1:]...)
			i--
		}
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{35, 30, 45, 255})

	for _, b := range g.boxes {
		c := b.color
		if b.usingAlt {
			c = b.altColor
		}
		vector.DrawFilledRect(screen, float32(b.actor.X), float32(b.actor.Y), boxSize, boxSize, c, false)

		if b.holding && b.holdDuration > 0 {
			progress := float64(time.Since(b.holdStart)) / float64(b.holdDuration)
			if progress > 1 {
				progress = 1
			}
			cx := float32(b.actor.X) + boxSize/2
			cy := float32(b.actor.Y) + boxSize/2
			vector.StrokeCircle(screen, cx, cy, float32(progress)*boxSize/2, 3, color.RGBA{255, 255, 255, 220}, false)
		}
	}

	for _, r := range g.ripples {
		radius, _ := r.tween.Update(0)
		vector.StrokeCircle(screen, float32(r.x), float32(r.y), radius, 2, color.RGBA{255, 255, 255, 200}, false)
	}

	ebitenutil.DebugPrint(screen, "click a box to toggle color, drag to move, hold the gray box to trigger a long press")
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("Gesture Coordinator Demo")
	if err := ebiten.RunGame(newGame()); err != nil {
		log.Fatal(err)
	}
}
