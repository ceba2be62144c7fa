package action

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/playinput/internal/input/keymap"
)

// Set is every action built from one keymap.
type Set struct {
	deps    *Deps
	mu      sync.Mutex
	actions []Action
	invalid bool
}

// Build validates km and constructs its actions in file order: buttons,
// draggable buttons, mouse areas, joysticks.
//
// A mouse area becomes a camera only when it is bound to a thumbstick or
// mouse mapping is on; otherwise it is skipped. A joystick whose name
// contains "u" is continuous, anything else is keyboard driven.
func Build(km *keymap.Keymap, deps Deps) (*Set, error) {
	if err := deps.check(); err != nil {
		return nil, err
	}
	if err := keymap.Validate(km); err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		deps.Logger = l
	}

	d := &deps
	s := &Set{deps: d}
	for _, b := range km.Buttons {
		s.actions = append(s.actions, newButton(b, d))
	}
	for _, b := range km.DraggableButtons {
		s.actions = append(s.actions, newDraggableButton(b, d))
	}
	for _, m := range km.MouseAreas {
		if !m.IsStick() && !d.MouseMapping {
			d.Logger.WithField("key", m.KeyName).Debug("skipping mouse area without mouse mapping")
			continue
		}
		s.actions = append(s.actions, newCamera(m, d))
	}
	for _, j := range km.Joysticks {
		if j.IsThumbstick() {
			s.actions = append(s.actions, newContinuousJoystick(j, d))
			continue
		}
		s.actions = append(s.actions, newJoystick(j, d))
	}

	d.Logger.WithField("actions", len(s.actions)).Debug("action set built")
	return s, nil
}

// Actions returns the actions in build order.
func (s *Set) Actions() []Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Action, len(s.actions))
	copy(out, s.actions)
	return out
}

// Len returns the number of actions.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}

// Invalidate invalidates every action, then clears the registry and the
// motion router. It is safe to call more than once.
func (s *Set) Invalidate() {
	s.mu.Lock()
	if s.invalid {
		s.mu.Unlock()
		return
	}
	s.invalid = true
	actions := s.actions
	s.actions = nil
	s.mu.Unlock()

	for _, a := range actions {
		a.Invalidate()
	}
	s.deps.Registry.InvalidateAll()
	s.deps.Motion.Reset()
}
