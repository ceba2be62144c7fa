// Package key provides raw key codes and their logical names for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Code: A raw platform key code (HID keyboard usage id)
//   - Name table: Maps codes to stable logical key names ("W", "Space", "LCmd")
//   - Forbidden set: Keys that may never be rebound
//   - ModifierState: Latched state of the left and right command keys
//
// # Logical Names
//
// Logical key names are what keymaps store and what handlers are registered
// under. They compare exactly; there is no case folding or alias matching.
//
//	name, err := key.NameFor(key.CodeW) // "W"
//	code, ok := key.CodeFor("Space")    // key.CodeSpace, true
//
// Unknown codes yield an error wrapping ErrUnknownKeyCode. Callers treat
// that as "no binding possible" and let the event pass through.
package key
