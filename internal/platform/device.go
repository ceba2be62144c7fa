package platform

import "github.com/dshills/playinput/internal/input/key"

// KeyChangedHandler receives every key state change of a keyboard.
// The return value reports whether the event was consumed.
type KeyChangedHandler func(code key.Code, pressed bool) bool

// Keyboard is a connected keyboard.
type Keyboard interface {
	// SetKeyChangedHandler replaces the key change handler. Nil detaches.
	SetKeyChangedHandler(h KeyChangedHandler)

	// SetButtonHandler replaces the per-key pressed handler for code.
	// Nil detaches. These run before the key change handler.
	SetButtonHandler(code key.Code, h func(pressed bool))

	// IsPressed reports whether code is currently held.
	IsPressed(code key.Code) bool
}

// ElementKind classifies a controller element.
type ElementKind uint8

const (
	// ElementOther is an element the core does not understand.
	ElementOther ElementKind = iota
	// ElementButton is a digital or pressure sensitive button.
	ElementButton
	// ElementDirectionPad is a d-pad or thumbstick with two axes.
	ElementDirectionPad
)

// String returns the element kind name.
func (k ElementKind) String() string {
	switch k {
	case ElementButton:
		return "button"
	case ElementDirectionPad:
		return "direction pad"
	default:
		return "other"
	}
}

// DirectionPadAlias is the primary alias of a controller's d-pad.
const DirectionPadAlias = "Direction Pad"

// Element is a snapshot of a controller element that changed value.
type Element struct {
	Kind ElementKind

	// Aliases name the element, primary alias first.
	Aliases []string

	// Pressed is the button state for ElementButton.
	Pressed bool

	// X and Y are axis values in [-1, 1] for ElementDirectionPad.
	X, Y float64

	// Primary aliases of the four direction sub-elements.
	Up, Down, Left, Right string
}

// Alias returns the primary alias, or false when the element has none.
func (e Element) Alias() (string, bool) {
	if len(e.Aliases) == 0 || e.Aliases[0] == "" {
		return "", false
	}
	return e.Aliases[0], true
}

// ValueChangedHandler receives controller element changes.
type ValueChangedHandler func(e Element)

// Controller is a connected extended gamepad.
type Controller interface {
	// SetValueChangedHandler replaces the value handler. Nil detaches.
	SetValueChangedHandler(h ValueChangedHandler)
}

// MouseMovedHandler receives relative mouse motion.
type MouseMovedHandler func(dx, dy float64)

// Mouse is a connected pointing device.
type Mouse interface {
	// SetMouseMovedHandler replaces the motion handler. Nil detaches.
	SetMouseMovedHandler(h MouseMovedHandler)
}
