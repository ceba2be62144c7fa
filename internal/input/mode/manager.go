package mode

import "sync"

// Display is the part of the platform a mode change touches.
type Display interface {
	HideCursor()
	UnhideCursor()
	SetMenuBarVisible(visible bool)
}

// ChangeCallback is called after the mode changes.
type ChangeCallback func(from, to Mode)

// Manager owns the current mode.
type Manager struct {
	mu sync.RWMutex

	// current is the active mode.
	current Mode

	// display receives cursor and menu bar updates. May be nil.
	display Display

	// callbacks are notified on mode changes.
	callbacks []ChangeCallback
}

// NewManager creates a manager in Play mode. The display is not touched
// until the first Show or Apply.
func NewManager(display Display) *Manager {
	return &Manager{current: Play, display: display}
}

// Current returns the active mode.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Visible reports whether the cursor is free, which is true in Edit.
func (m *Manager) Visible() bool {
	return m.Current().Visible()
}

// Is reports whether mode is active.
func (m *Manager) Is(mode Mode) bool {
	return m.Current() == mode
}

// Show switches to Edit when visible is true and to Play otherwise.
// It reports whether the mode changed. The display is updated either way.
func (m *Manager) Show(visible bool) bool {
	next := Play
	if visible {
		next = Edit
	}
	return m.Switch(next)
}

// Toggle flips between Play and Edit and returns the new mode.
func (m *Manager) Toggle() Mode {
	m.mu.Lock()
	next := Edit
	if m.current == Edit {
		next = Play
	}
	m.mu.Unlock()

	m.Switch(next)
	return next
}

// Switch makes mode active and reports whether it changed.
func (m *Manager) Switch(mode Mode) bool {
	m.mu.Lock()
	old := m.current
	m.current = mode
	display := m.display
	var callbacks []ChangeCallback
	if old != mode {
		// Copy callbacks to call outside of lock
		callbacks = make([]ChangeCallback, len(m.callbacks))
		copy(callbacks, m.callbacks)
	}
	m.mu.Unlock()

	apply(display, mode)

	for _, cb := range callbacks {
		if cb != nil {
			cb(old, mode)
		}
	}
	return old != mode
}

// Apply pushes the current mode's visibility to the display without
// notifying callbacks.
func (m *Manager) Apply() {
	m.mu.RLock()
	mode, display := m.current, m.display
	m.mu.RUnlock()
	apply(display, mode)
}

func apply(d Display, mode Mode) {
	if d == nil {
		return
	}
	if mode.Visible() {
		d.UnhideCursor()
		d.SetMenuBarVisible(true)
		return
	}
	d.HideCursor()
	d.SetMenuBarVisible(false)
}

// OnChange registers a callback for mode changes.
// Returns a function to unregister the callback.
func (m *Manager) OnChange(callback ChangeCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
	index := len(m.callbacks) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// Remove callback by setting to nil (preserves indices)
		if index < len(m.callbacks) {
			m.callbacks[index] = nil
		}
	}
}
