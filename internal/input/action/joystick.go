package action

import (
	"github.com/dshills/playinput/internal/input/keymap"
	"github.com/dshills/playinput/internal/platform"
)

// JoystickAction is a virtual stick driven by four keys. Opposing keys
// cancel and diagonals are normalized.
type JoystickAction struct {
	control
	up, down, left, right string
	held                  [4]bool
}

const (
	dirUp = iota
	dirDown
	dirLeft
	dirRight
)

func newJoystick(j keymap.Joystick, d *Deps) *JoystickAction {
	a := &JoystickAction{up: j.Up, down: j.Down, left: j.Left, right: j.Right}
	a.init(d, j.Transform)
	for dir, name := range []string{j.Up, j.Down, j.Left, j.Right} {
		dir := dir
		d.Registry.Register(name, a.owner, func(pressed bool) {
			a.update(dir, pressed)
		})
	}
	return a
}

func (a *JoystickAction) Kind() Kind { return KindJoystick }

func (a *JoystickAction) KeyNames() []string {
	return []string{a.up, a.down, a.left, a.right}
}

func (a *JoystickAction) Invalidate() { a.invalidate() }

// Vector returns the current unit direction, (0, 0) when centred.
func (a *JoystickAction) Vector() (float64, float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.vector()
}

func (a *JoystickAction) vector() (float64, float64) {
	var x, y float64
	if a.held[dirRight] {
		x++
	}
	if a.held[dirLeft] {
		x--
	}
	if a.held[dirDown] {
		y++
	}
	if a.held[dirUp] {
		y--
	}
	return unit(x, y)
}

func (a *JoystickAction) update(dir int, pressed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.held[dir] = pressed

	x, y := a.vector()
	if x == 0 && y == 0 {
		a.lift()
		return
	}
	center, size, ok := a.area()
	if !ok {
		return
	}
	a.press(center.Add(platform.Point{X: x * size / 2, Y: y * size / 2}))
}

// ContinuousJoystickAction follows an analog stick. A zero position lifts
// the touch.
type ContinuousJoystickAction struct {
	control
	keyName string
}

func newContinuousJoystick(j keymap.Joystick, d *Deps) *ContinuousJoystickAction {
	a := &ContinuousJoystickAction{keyName: j.KeyName}
	a.init(d, j.Transform)
	d.Motion.RegisterAxis(j.KeyName, a.owner, a.moved)
	return a
}

func (a *ContinuousJoystickAction) Kind() Kind { return KindContinuousJoystick }

func (a *ContinuousJoystickAction) KeyNames() []string { return []string{a.keyName} }

func (a *ContinuousJoystickAction) Invalidate() { a.invalidate() }

func (a *ContinuousJoystickAction) moved(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if x == 0 && y == 0 {
		a.lift()
		return
	}
	center, size, ok := a.area()
	if !ok {
		return
	}
	a.press(center.Add(platform.Point{X: x * size / 2, Y: y * size / 2}))
}
