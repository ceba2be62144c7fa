package keymap

import (
	"errors"
	"fmt"
	"strings"
)

// Transform places a control on the window. X and Y are the centre and Size
// the edge length, all as fractions of the window's width and height.
type Transform struct {
	X    float64 `yaml:"x" toml:"x" json:"x"`
	Y    float64 `yaml:"y" toml:"y" json:"y"`
	Size float64 `yaml:"size" toml:"size" json:"size"`
}

// Button is a tap target bound to one key.
type Button struct {
	KeyName   string    `yaml:"keyName" toml:"keyName" json:"keyName"`
	Transform Transform `yaml:"transform" toml:"transform" json:"transform"`
}

// DraggableButton is a button whose touch follows mouse motion while held.
type DraggableButton struct {
	KeyName   string    `yaml:"keyName" toml:"keyName" json:"keyName"`
	Transform Transform `yaml:"transform" toml:"transform" json:"transform"`
}

// MouseArea is a region swiped by mouse motion or a thumbstick.
type MouseArea struct {
	KeyName   string    `yaml:"keyName" toml:"keyName" json:"keyName"`
	Transform Transform `yaml:"transform" toml:"transform" json:"transform"`
}

// IsStick reports whether the area is driven by a controller thumbstick
// rather than the mouse.
func (a MouseArea) IsStick() bool {
	return strings.HasSuffix(a.KeyName, "tick")
}

// Joystick is a virtual stick. With KeyName "Keyboard" the four direction
// keys drive it; a thumbstick name drives it continuously instead.
type Joystick struct {
	KeyName   string    `yaml:"keyName" toml:"keyName" json:"keyName"`
	Up        string    `yaml:"up,omitempty" toml:"up,omitempty" json:"up,omitempty"`
	Down      string    `yaml:"down,omitempty" toml:"down,omitempty" json:"down,omitempty"`
	Left      string    `yaml:"left,omitempty" toml:"left,omitempty" json:"left,omitempty"`
	Right     string    `yaml:"right,omitempty" toml:"right,omitempty" json:"right,omitempty"`
	Transform Transform `yaml:"transform" toml:"transform" json:"transform"`
}

// IsThumbstick reports whether the joystick is analog. Any name containing
// "u" counts, which matches the thumbstick aliases and not "Keyboard".
func (j Joystick) IsThumbstick() bool {
	return strings.Contains(j.KeyName, "u")
}

// Keymap is the full layout.
type Keymap struct {
	Buttons          []Button          `yaml:"buttons" toml:"buttons" json:"buttons"`
	DraggableButtons []DraggableButton `yaml:"draggableButtons" toml:"draggableButtons" json:"draggableButtons"`
	MouseAreas       []MouseArea       `yaml:"mouseAreas" toml:"mouseAreas" json:"mouseAreas"`
	Joysticks        []Joystick        `yaml:"joysticks" toml:"joysticks" json:"joysticks"`
}

// Len returns the number of records of every kind.
func (k *Keymap) Len() int {
	return len(k.Buttons) + len(k.DraggableButtons) + len(k.MouseAreas) + len(k.Joysticks)
}

// Clone returns a deep copy.
func (k *Keymap) Clone() *Keymap {
	return &Keymap{
		Buttons:          append([]Button(nil), k.Buttons...),
		DraggableButtons: append([]DraggableButton(nil), k.DraggableButtons...),
		MouseAreas:       append([]MouseArea(nil), k.MouseAreas...),
		Joysticks:        append([]Joystick(nil), k.Joysticks...),
	}
}

// KeyNames returns every key name referenced by the keymap, joystick
// directions included, in record order.
func (k *Keymap) KeyNames() []string {
	var names []string
	for _, b := range k.Buttons {
		names = append(names, b.KeyName)
	}
	for _, b := range k.DraggableButtons {
		names = append(names, b.KeyName)
	}
	for _, a := range k.MouseAreas {
		names = append(names, a.KeyName)
	}
	for _, j := range k.Joysticks {
		if j.IsThumbstick() {
			names = append(names, j.KeyName)
			continue
		}
		names = append(names, j.Up, j.Down, j.Left, j.Right)
	}
	return names
}

// Refs returns every rebindable slot in record order. Keyboard joysticks
// contribute their four directions, thumbsticks their name.
func (k *Keymap) Refs() []Ref {
	var refs []Ref
	for i := range k.Buttons {
		refs = append(refs, Ref{Kind: KindButton, Index: i})
	}
	for i := range k.DraggableButtons {
		refs = append(refs, Ref{Kind: KindDraggableButton, Index: i})
	}
	for i := range k.MouseAreas {
		refs = append(refs, Ref{Kind: KindMouseArea, Index: i})
	}
	for i, j := range k.Joysticks {
		if j.IsThumbstick() {
			refs = append(refs, Ref{Kind: KindJoystick, Index: i})
			continue
		}
		for _, slot := range []Slot{SlotUp, SlotDown, SlotLeft, SlotRight} {
			refs = append(refs, Ref{Kind: KindJoystick, Index: i, Slot: slot})
		}
	}
	return refs
}

// Kind identifies a record collection.
type Kind int

const (
	KindButton Kind = iota
	KindDraggableButton
	KindMouseArea
	KindJoystick
)

// String returns the collection's file field name.
func (k Kind) String() string {
	switch k {
	case KindButton:
		return "buttons"
	case KindDraggableButton:
		return "draggableButtons"
	case KindMouseArea:
		return "mouseAreas"
	case KindJoystick:
		return "joysticks"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Slot selects which key name of a record a Ref points at. Only joysticks
// have direction slots.
type Slot int

const (
	SlotKey Slot = iota
	SlotUp
	SlotDown
	SlotLeft
	SlotRight
)

func (s Slot) field() string {
	switch s {
	case SlotUp:
		return "up"
	case SlotDown:
		return "down"
	case SlotLeft:
		return "left"
	case SlotRight:
		return "right"
	default:
		return "keyName"
	}
}

// ErrInvalidRef is returned for a Ref that does not name an existing slot.
var ErrInvalidRef = errors.New("invalid keymap reference")

// Ref addresses one key name inside a keymap.
type Ref struct {
	Kind  Kind
	Index int
	Slot  Slot
}

// String returns the dotted path of the referenced field.
func (r Ref) String() string {
	return fmt.Sprintf("%s.%d.%s", r.Kind, r.Index, r.Slot.field())
}

func (k *Keymap) check(r Ref) error {
	var n int
	switch r.Kind {
	case KindButton:
		n = len(k.Buttons)
	case KindDraggableButton:
		n = len(k.DraggableButtons)
	case KindMouseArea:
		n = len(k.MouseAreas)
	case KindJoystick:
		n = len(k.Joysticks)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidRef, r)
	}
	if r.Index < 0 || r.Index >= n {
		return fmt.Errorf("%w: %s out of range", ErrInvalidRef, r)
	}
	if r.Slot != SlotKey && r.Kind != KindJoystick {
		return fmt.Errorf("%w: %s has no direction slots", ErrInvalidRef, r.Kind)
	}
	if r.Slot < SlotKey || r.Slot > SlotRight {
		return fmt.Errorf("%w: %s", ErrInvalidRef, r)
	}
	return nil
}

// KeyNameAt returns the key name r points at.
func (k *Keymap) KeyNameAt(r Ref) (string, error) {
	if err := k.check(r); err != nil {
		return "", err
	}
	switch r.Kind {
	case KindButton:
		return k.Buttons[r.Index].KeyName, nil
	case KindDraggableButton:
		return k.DraggableButtons[r.Index].KeyName, nil
	case KindMouseArea:
		return k.MouseAreas[r.Index].KeyName, nil
	}
	j := k.Joysticks[r.Index]
	switch r.Slot {
	case SlotUp:
		return j.Up, nil
	case SlotDown:
		return j.Down, nil
	case SlotLeft:
		return j.Left, nil
	case SlotRight:
		return j.Right, nil
	}
	return j.KeyName, nil
}

// SetKeyName replaces the key name r points at.
func (k *Keymap) SetKeyName(r Ref, name string) error {
	if err := k.check(r); err != nil {
		return err
	}
	switch r.Kind {
	case KindButton:
		k.Buttons[r.Index].KeyName = name
		return nil
	case KindDraggableButton:
		k.DraggableButtons[r.Index].KeyName = name
		return nil
	case KindMouseArea:
		k.MouseAreas[r.Index].KeyName = name
		return nil
	}
	j := &k.Joysticks[r.Index]
	switch r.Slot {
	case SlotUp:
		j.Up = name
	case SlotDown:
		j.Down = name
	case SlotLeft:
		j.Left = name
	case SlotRight:
		j.Right = name
	default:
		j.KeyName = name
	}
	return nil
}
