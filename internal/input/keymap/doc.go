// Package keymap holds the on-screen control layout that input actions are
// built from.
//
// A Keymap is a flat list of records grouped by kind: buttons, draggable
// buttons, mouse areas and joysticks. Every record carries a logical key
// name and a normalized transform describing where the control sits on the
// window. Joysticks additionally name four keys for keyboard emulation.
//
// # Files
//
// Keymaps are read from YAML, TOML or JSON; the format is chosen by file
// extension. JSON files are edited in place so fields this package does not
// model survive a rebinding.
//
//	joysticks:
//	  - keyName: Keyboard
//	    up: W
//	    down: S
//	    left: A
//	    right: D
//	    transform: {x: 0.15, y: 0.75, size: 0.2}
//
// # Store
//
// Store owns a loaded file. It hands out copies of the model and writes
// single key-name changes back to disk atomically.
package keymap
