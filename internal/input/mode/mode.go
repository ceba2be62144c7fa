package mode

import "fmt"

// Mode is the active input mode.
type Mode int

const (
	// Play remaps input to actions.
	Play Mode = iota
	// Edit leaves input to the application and the layout editor.
	Edit
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Play:
		return "play"
	case Edit:
		return "edit"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Visible reports whether the cursor is shown in this mode.
func (m Mode) Visible() bool {
	return m == Edit
}
