// Package action turns keymap records into live input actions.
//
// Every Action owns a unique id and registers its handlers with the
// handler registry and the motion router when it is built. Invalidate
// lifts any touch the action holds and removes its handlers. A Set is the
// collection built from one keymap; it is replaced wholesale on rebuild.
//
// Actions emulate touches through a platform.TouchEmulator. Positions are
// computed at event time from the focused window frame, so a moved or
// resized window is picked up without a rebuild.
package action
