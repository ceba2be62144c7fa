// Package mode tracks whether input is being remapped or the user is
// editing the layout.
//
// There are exactly two modes. Play is the initial mode: the cursor is
// hidden, the menu bar is hidden and bound input drives actions. Edit
// frees the cursor and shows the menu bar so the user can interact with
// the application or the layout editor.
//
// # Mode Lifecycle
//
//	┌──────┐   Show(true)    ┌──────┐
//	│ Play │ ──────────────▶ │ Edit │
//	└──────┘                 └──────┘
//	    ▲       Show(false)      │
//	    └────────────────────────┘
//
// When switching modes:
// 1. The cursor and menu bar are updated on the platform
// 2. Mode change callbacks are notified, outside the lock
package mode
