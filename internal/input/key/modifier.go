package key

import "sync"

// ModifierState latches the left and right command keys.
//
// The flags are written only from the keyboard stream for CodeLeftGUI and
// CodeRightGUI. Everything else reads the combined IsActive predicate.
type ModifierState struct {
	mu    sync.RWMutex
	left  bool
	right bool
}

// NewModifierState returns a state with both flags cleared.
func NewModifierState() *ModifierState {
	return &ModifierState{}
}

// SetLeft sets the left command flag.
func (m *ModifierState) SetLeft(pressed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.left = pressed
}

// SetRight sets the right command flag.
func (m *ModifierState) SetRight(pressed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.right = pressed
}

// IsActive returns true if either command key is held.
func (m *ModifierState) IsActive() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.left || m.right
}

// Track updates the flag belonging to code and reports whether code was
// a command key. Other codes leave the state untouched.
func (m *ModifierState) Track(code Code, pressed bool) bool {
	switch code {
	case CodeLeftGUI:
		m.SetLeft(pressed)
	case CodeRightGUI:
		m.SetRight(pressed)
	default:
		return false
	}
	return true
}

// Reset clears both flags.
func (m *ModifierState) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.left = false
	m.right = false
}
