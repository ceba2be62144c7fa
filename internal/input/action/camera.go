package action

import (
	"github.com/dshills/playinput/internal/input/keymap"
	"github.com/dshills/playinput/internal/input/motion"
	"github.com/dshills/playinput/internal/platform"
)

// stickStep is how far a fully deflected stick swipes per event, as a
// fraction of the area's edge.
const stickStep = 0.1

// CameraAction swipes inside its area. Under the mouse name it receives
// deltas; under a thumbstick name it receives a deflection that is applied
// as a velocity and a zero deflection lifts the touch.
type CameraAction struct {
	control
	keyName  string
	location platform.Point
}

func newCamera(m keymap.MouseArea, d *Deps) *CameraAction {
	a := &CameraAction{keyName: m.KeyName}
	a.init(d, m.Transform)
	d.Motion.RegisterAxis(m.KeyName, a.owner, a.moved)
	d.Registry.Register(m.KeyName, a.owner, a.update)
	return a
}

func (a *CameraAction) Kind() Kind { return KindCamera }

func (a *CameraAction) KeyNames() []string { return []string{a.keyName} }

func (a *CameraAction) Invalidate() { a.invalidate() }

func (a *CameraAction) isMouse() bool {
	return a.keyName == motion.NameMouse
}

// update lifts the swipe on release. Presses are ignored; swipes start
// from motion.
func (a *CameraAction) update(pressed bool) {
	if pressed {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lift()
}

func (a *CameraAction) moved(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.isMouse() && x == 0 && y == 0 {
		a.lift()
		return
	}

	bounds, ok := a.bounds()
	if !ok {
		return
	}
	center := bounds.Center()
	if !a.down {
		a.location = center
		a.press(center)
	}

	s := a.deps.sensitivity()
	if !a.isMouse() {
		s *= bounds.Width * stickStep
	}
	next := a.location.Add(platform.Point{X: x * s, Y: y * s})
	if !bounds.Contains(next) {
		a.lift()
		a.location = center
		a.press(center)
		return
	}
	a.location = next
	a.press(next)
}
