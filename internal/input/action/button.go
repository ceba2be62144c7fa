package action

import (
	"github.com/dshills/playinput/internal/input/keymap"
	"github.com/dshills/playinput/internal/platform"
)

// ButtonAction taps its centre while its key is held.
type ButtonAction struct {
	control
	keyName string
}

func newButton(b keymap.Button, d *Deps) *ButtonAction {
	a := &ButtonAction{keyName: b.KeyName}
	a.init(d, b.Transform)
	d.Registry.Register(b.KeyName, a.owner, a.update)
	return a
}

func (a *ButtonAction) Kind() Kind { return KindButton }

func (a *ButtonAction) KeyNames() []string { return []string{a.keyName} }

func (a *ButtonAction) Invalidate() { a.invalidate() }

func (a *ButtonAction) update(pressed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !pressed {
		a.lift()
		return
	}
	if a.down {
		return
	}
	if center, _, ok := a.area(); ok {
		a.press(center)
	}
}

// DraggableButtonAction presses at its centre and then follows the mouse
// until released.
type DraggableButtonAction struct {
	control
	keyName  string
	location platform.Point
}

func newDraggableButton(b keymap.DraggableButton, d *Deps) *DraggableButtonAction {
	a := &DraggableButtonAction{keyName: b.KeyName}
	a.init(d, b.Transform)
	d.Registry.Register(b.KeyName, a.owner, a.update)
	d.Motion.RegisterDrag(a.owner, a.drag)
	return a
}

func (a *DraggableButtonAction) Kind() Kind { return KindDraggableButton }

func (a *DraggableButtonAction) KeyNames() []string { return []string{a.keyName} }

func (a *DraggableButtonAction) Invalidate() { a.invalidate() }

func (a *DraggableButtonAction) update(pressed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !pressed {
		a.lift()
		return
	}
	if a.down {
		return
	}
	if center, _, ok := a.area(); ok {
		a.location = center
		a.press(center)
	}
}

func (a *DraggableButtonAction) drag(dx, dy float64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.down {
		return false
	}
	s := a.deps.sensitivity()
	a.location = a.location.Add(platform.Point{X: dx * s, Y: dy * s})
	a.deps.Touch.Move(a.touchID(), a.location)
	return true
}
