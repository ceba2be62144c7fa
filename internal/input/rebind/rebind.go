// Package rebind commits captured keys to the keymap while the layout
// editor is open.
package rebind

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/playinput/internal/input/keymap"
)

// ErrNoSelection is returned by Commit when no slot is selected.
var ErrNoSelection = errors.New("no keymap slot selected")

// Editor is the layout editor UI. SetKey shows the captured name on the
// selected control.
type Editor interface {
	SetKey(name string)
}

// Candidate is a key or controller element offered for binding.
type Candidate struct {
	// Name is the logical name that would be bound.
	Name string
	// Allowed is false when the capture arrived while a reserved key was
	// involved. Such candidates are dropped.
	Allowed bool
}

// Controller routes captured candidates to the editor and the keymap store.
type Controller struct {
	mu       sync.Mutex
	store    *keymap.Store
	editor   Editor
	rebuild  func() error
	selected *keymap.Ref
	log      logrus.FieldLogger
}

// Option configures a Controller.
type Option func(*Controller)

// WithRebuild sets the callback run after a binding is written.
func WithRebuild(fn func() error) Option {
	return func(c *Controller) {
		c.rebuild = fn
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a controller. editor may be nil.
func New(store *keymap.Store, editor Editor, opts ...Option) *Controller {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Controller{store: store, editor: editor, log: discard}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select chooses the slot the next capture is written to.
func (c *Controller) Select(ref keymap.Ref) error {
	if _, err := c.store.Keymap().KeyNameAt(ref); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = &ref
	return nil
}

// Selected returns the selected slot.
func (c *Controller) Selected() (keymap.Ref, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return keymap.Ref{}, false
	}
	return *c.selected, true
}

// ClearSelection deselects the slot.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

// Capture offers cand for binding. It reports whether the candidate was
// accepted. Rejected candidates touch neither the editor nor the keymap.
// An accepted candidate is shown in the editor and, when a slot is
// selected, written to the keymap; a write failure is returned.
func (c *Controller) Capture(cand Candidate) (bool, error) {
	if !cand.Allowed || cand.Name == "" {
		return false, nil
	}

	if c.editor != nil {
		c.editor.SetKey(cand.Name)
	}

	if _, ok := c.Selected(); !ok {
		return true, nil
	}
	return true, c.Commit(cand.Name)
}

// Commit writes name into the selected slot and runs the rebuild callback.
func (c *Controller) Commit(name string) error {
	ref, ok := c.Selected()
	if !ok {
		return ErrNoSelection
	}

	log := c.log.WithFields(logrus.Fields{"slot": ref.String(), "key": name})
	if err := c.store.SetKeyName(ref, name); err != nil {
		log.WithError(err).Error("rebinding failed")
		return fmt.Errorf("rebinding %s: %w", ref, err)
	}
	log.Info("rebound")

	if c.rebuild == nil {
		return nil
	}
	if err := c.rebuild(); err != nil {
		log.WithError(err).Error("rebuild after rebinding failed")
		return err
	}
	return nil
}
