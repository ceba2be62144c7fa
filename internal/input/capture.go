package input

import (
	"errors"

	"github.com/dshills/playinput/internal/input/key"
	"github.com/dshills/playinput/internal/input/rebind"
	"github.com/dshills/playinput/internal/platform"
)

var (
	// ErrUnrecognizedElement is returned for controller elements without an alias.
	ErrUnrecognizedElement = errors.New("unrecognised controller element")

	// ErrUnmappableDirectionPad is returned when an element claims to be the
	// d-pad but does not carry direction pad values.
	ErrUnmappableDirectionPad = errors.New("cannot map direction pad: element type not recognizable")
)

// ResolveDirectionPad returns the name a controller element binds as.
// The d-pad resolves to one of its four directions: x picks left or right
// first and a non-zero y then overrides it with up or down.
func ResolveDirectionPad(e platform.Element) (string, error) {
	alias, ok := e.Alias()
	if !ok {
		return "", ErrUnrecognizedElement
	}
	if alias != platform.DirectionPadAlias {
		return alias, nil
	}
	if e.Kind != platform.ElementDirectionPad {
		return "", ErrUnmappableDirectionPad
	}

	switch {
	case e.X > 0:
		alias = e.Right
	case e.X < 0:
		alias = e.Left
	}
	switch {
	case e.Y > 0:
		alias = e.Down
	case e.Y < 0:
		alias = e.Up
	}
	return alias, nil
}

func (d *Dispatcher) attachCapture() {
	if d.devices == nil {
		return
	}
	if kb := d.devices.Keyboard(); kb != nil {
		kb.SetKeyChangedHandler(func(code key.Code, pressed bool) bool {
			return d.captureKey(kb, code, pressed)
		})
	}
	if c := d.devices.Controller(); c != nil {
		c.SetValueChangedHandler(d.captureElement)
	}
}

// captureKey offers a key press to the capturer. Only accepted presses
// are consumed, so command shortcuts keep working in the editor.
func (d *Dispatcher) captureKey(kb platform.Keyboard, code key.Code, pressed bool) bool {
	if !pressed {
		return false
	}
	name, err := key.NameFor(code)
	if err != nil {
		return false
	}

	allowed := !d.mods.IsActive() && !key.IsForbidden(code) && !forbiddenHeld(kb)
	return d.capture(rebind.Candidate{Name: name, Allowed: allowed})
}

func (d *Dispatcher) captureElement(e platform.Element) {
	d.stats.controllerEvents.Add(1)

	// A pad back at rest names no direction.
	if e.Kind == platform.ElementDirectionPad && e.X == 0 && e.Y == 0 {
		return
	}

	name, err := ResolveDirectionPad(e)
	switch {
	case errors.Is(err, ErrUnmappableDirectionPad):
		d.toast.Show(ErrUnmappableDirectionPad.Error())
		return
	case err != nil:
		return
	}
	d.capture(rebind.Candidate{Name: name, Allowed: true})
}

func (d *Dispatcher) capture(c rebind.Candidate) bool {
	if d.capturer == nil {
		return false
	}
	ok, err := d.capturer.Capture(c)
	d.stats.recordCapture(ok)
	if err != nil {
		d.log.WithError(err).WithField("key", c.Name).Warn("key capture failed")
	}
	return ok
}

func forbiddenHeld(kb platform.Keyboard) bool {
	for _, code := range key.Forbidden {
		if kb.IsPressed(code) {
			return true
		}
	}
	return false
}
