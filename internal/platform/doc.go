// Package platform defines what the input core needs from the operating
// system: a thin shim for cursor, window and screen queries plus low level
// event filters, access to the connected keyboard, controller and mice,
// and device connect notifications.
//
// The core only consumes these interfaces. Concrete shims live in
// subpackages: terminal drives everything from a tcell screen and fake is
// a scriptable in-memory shim for tests.
//
// # Focused Window
//
// Geometry queries (WindowFrame, MousePoint) assume a focused window
// exists. That is a precondition of the environment; a shim without one
// may panic, the core does not try to recover.
package platform
