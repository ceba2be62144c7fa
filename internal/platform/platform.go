package platform

// Platform is the per-OS shim consumed by the input core.
type Platform interface {
	// HideCursor hides the pointer and decouples it from mouse motion.
	HideCursor()

	// UnhideCursor restores the pointer.
	UnhideCursor()

	// WindowFrame returns the frame of the focused window.
	WindowFrame() Rect

	// MousePoint returns the pointer position relative to the focused window.
	MousePoint() Point

	// ScreenCount returns the number of attached screens.
	ScreenCount() int

	// IsFullscreen reports whether the focused window is fullscreen.
	IsFullscreen() bool

	// MainScreenFrame returns the frame of the main screen.
	MainScreenFrame() Rect

	// TerminateApplication asks the host application to quit.
	TerminateApplication()

	// EliminateRedundantKeyPressEvents installs a key-down filter.
	// Every local key-down for which suppress returns true is swallowed
	// before the application sees it.
	EliminateRedundantKeyPressEvents(suppress func() bool)

	// SetupScrollWheel installs a scroll filter. When onMoved returns true
	// the scroll event is hidden from the application.
	SetupScrollWheel(onMoved func(dx, dy float64) bool)

	// SetMenuBarVisible shows or hides the menu bar.
	SetMenuBarVisible(visible bool)
}

// Devices gives access to the currently connected input devices.
// Missing devices are reported as nil; callers skip them silently.
type Devices interface {
	Keyboard() Keyboard
	Controller() Controller
	Mice() []Mouse
}
