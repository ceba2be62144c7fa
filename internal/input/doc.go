// Package input routes raw device input to logical actions.
//
// The Dispatcher sits between the platform shim and the actions built from
// a keymap. For every keyboard, controller, mouse and scroll event it
// decides whether handlers run and whether the event is consumed or passed
// through to the application.
//
// # States
//
//	Uninitialized ──Initialize()──▶ Play ◀──ToggleEditor──▶ Edit
//	      │
//	      └── keymapping disabled: stays inactive, everything passes through
//
// In Play, bound keys run their handlers and are consumed. Holding either
// command key disables dispatch so hotkeys never also fire an action.
// In Edit the layout editor owns keyboard and controller input: presses are
// offered for rebinding instead of being dispatched.
//
// # Subpackages
//
//   - key: key codes, logical names and the command key latches
//   - registry: handlers keyed by logical name
//   - motion: mouse, stick and d-pad routing
//   - keymap: the layout file model and store
//   - action: actions built from a keymap
//   - mode: Play and Edit
//   - rebind: committing captured keys to the keymap
//
// # Usage
//
//	d := input.NewDispatcher(input.DefaultConfig(),
//	    input.WithPlatform(shim),
//	    input.WithDevices(shim),
//	    input.WithKeymap(store),
//	    input.WithTouch(touches),
//	)
//	d.Initialize()
//	defer d.Close()
package input
