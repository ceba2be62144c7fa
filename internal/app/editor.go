package app

import (
	"fmt"
	"sync"

	"github.com/dshills/playinput/internal/input"
	"github.com/dshills/playinput/internal/input/key"
	"github.com/dshills/playinput/internal/input/keymap"
	"github.com/dshills/playinput/internal/input/rebind"
	"github.com/dshills/playinput/internal/toast"
)

// Editor is the keymap editor. While it is open every key press and
// controller element is offered for binding to the selected slot. Tab and
// the scroll wheel move the selection.
type Editor struct {
	mu       sync.Mutex
	store    *keymap.Store
	toast    toast.Notifier
	disp     *input.Dispatcher
	rebind   *rebind.Controller
	cursor   int
	lastName string
}

var (
	_ input.Capturer = (*Editor)(nil)
	_ rebind.Editor  = (*Editor)(nil)
)

func newEditor(store *keymap.Store, n toast.Notifier) *Editor {
	if n == nil {
		n = toast.Nop
	}
	return &Editor{store: store, toast: n}
}

func (e *Editor) bind(d *input.Dispatcher, c *rebind.Controller) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disp = d
	e.rebind = c
}

// IsOpen reports whether the editor is showing.
func (e *Editor) IsOpen() bool {
	return e.disp.EditorOpen()
}

// Toggle opens a closed editor and closes an open one.
func (e *Editor) Toggle() error {
	if e.IsOpen() {
		e.Close()
		return nil
	}
	return e.Open()
}

// Open shows the editor and selects the current slot. It fails when the
// dispatcher is not active.
func (e *Editor) Open() error {
	switch e.disp.State() {
	case input.StatePlay, input.StateEdit:
	default:
		return ErrEditorUnavailable
	}

	refs := e.store.Keymap().Refs()
	e.mu.Lock()
	if e.cursor >= len(refs) {
		e.cursor = 0
	}
	e.mu.Unlock()

	e.disp.ToggleEditor(true)
	if len(refs) == 0 {
		e.toast.Show("keymap editor: nothing to bind")
		return nil
	}
	e.selectCurrent(refs)
	return nil
}

// Close hides the editor and returns to play.
func (e *Editor) Close() {
	e.rebind.ClearSelection()
	e.disp.ToggleEditor(false)
	e.toast.Show("keymap editor closed")
}

// Selected returns the slot captures are written to.
func (e *Editor) Selected() (keymap.Ref, bool) {
	return e.rebind.Selected()
}

// LastKey returns the most recently captured name.
func (e *Editor) LastKey() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastName
}

// Next selects the following slot, wrapping around.
func (e *Editor) Next() {
	e.move(1)
}

// Prev selects the previous slot, wrapping around.
func (e *Editor) Prev() {
	e.move(-1)
}

func (e *Editor) move(step int) {
	refs := e.store.Keymap().Refs()
	if len(refs) == 0 {
		return
	}
	e.mu.Lock()
	e.cursor = ((e.cursor+step)%len(refs) + len(refs)) % len(refs)
	e.mu.Unlock()
	e.selectCurrent(refs)
}

func (e *Editor) selectCurrent(refs []keymap.Ref) {
	e.mu.Lock()
	ref := refs[e.cursor]
	e.mu.Unlock()

	if err := e.rebind.Select(ref); err != nil {
		e.toast.Show(err.Error())
		return
	}
	name, _ := e.store.Keymap().KeyNameAt(ref)
	e.toast.Show(fmt.Sprintf("editing %s (%s)", ref, name))
}

// SetKey shows a captured name on the selected slot.
func (e *Editor) SetKey(name string) {
	e.mu.Lock()
	e.lastName = name
	e.mu.Unlock()

	if ref, ok := e.rebind.Selected(); ok {
		e.toast.Show(fmt.Sprintf("%s: %s", ref, name))
		return
	}
	e.toast.Show(name)
}

// Capture handles one candidate while the editor is open. The editor key
// is swallowed and Tab moves the selection; everything else is bound.
func (e *Editor) Capture(c rebind.Candidate) (bool, error) {
	switch c.Name {
	case editorKeyName:
		return true, nil
	case tabKeyName:
		if !c.Allowed {
			return false, nil
		}
		e.Next()
		return true, nil
	}
	return e.rebind.Capture(c)
}

// Scroll moves the selection while the editor is open. Scrolling is left
// to the application otherwise.
func (e *Editor) Scroll(_, dy float64) bool {
	if !e.IsOpen() {
		return false
	}
	switch {
	case dy > 0:
		e.Next()
	case dy < 0:
		e.Prev()
	}
	return true
}

var (
	editorKeyName = mustName(EditorKey)
	tabKeyName    = mustName(key.CodeTab)
)

func mustName(code key.Code) string {
	name, err := key.NameFor(code)
	if err != nil {
		panic(err)
	}
	return name
}
