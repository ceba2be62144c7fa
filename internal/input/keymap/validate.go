package keymap

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord is wrapped by every RecordError.
var ErrInvalidRecord = errors.New("invalid keymap record")

// RecordError describes one bad record.
type RecordError struct {
	Kind  Kind
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Kind, e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func invalid(kind Kind, index int, format string, args ...any) *RecordError {
	return &RecordError{
		Kind:  kind,
		Index: index,
		Err:   fmt.Errorf("%w: "+format, append([]any{ErrInvalidRecord}, args...)...),
	}
}

// Validate checks every record and returns the first problem found.
// Records are never repaired.
func Validate(km *Keymap) error {
	for i, b := range km.Buttons {
		if err := checkRecord(KindButton, i, b.KeyName, b.Transform); err != nil {
			return err
		}
	}
	for i, b := range km.DraggableButtons {
		if err := checkRecord(KindDraggableButton, i, b.KeyName, b.Transform); err != nil {
			return err
		}
	}
	for i, a := range km.MouseAreas {
		if err := checkRecord(KindMouseArea, i, a.KeyName, a.Transform); err != nil {
			return err
		}
	}
	for i, j := range km.Joysticks {
		if err := checkRecord(KindJoystick, i, j.KeyName, j.Transform); err != nil {
			return err
		}
		if j.IsThumbstick() {
			continue
		}
		dirs := []struct{ slot, name string }{
			{"up", j.Up}, {"down", j.Down}, {"left", j.Left}, {"right", j.Right},
		}
		for _, d := range dirs {
			if d.name == "" {
				return invalid(KindJoystick, i, "missing %s key", d.slot)
			}
		}
	}
	return nil
}

func checkRecord(kind Kind, index int, name string, t Transform) error {
	if name == "" {
		return invalid(kind, index, "empty key name")
	}
	if t.Size < 0 {
		return invalid(kind, index, "negative size %g", t.Size)
	}
	return nil
}
