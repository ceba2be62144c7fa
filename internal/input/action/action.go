package action

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/playinput/internal/input/keymap"
	"github.com/dshills/playinput/internal/input/motion"
	"github.com/dshills/playinput/internal/input/registry"
	"github.com/dshills/playinput/internal/platform"
)

// Kind identifies an Action variant.
type Kind int

const (
	KindButton Kind = iota
	KindDraggableButton
	KindCamera
	KindJoystick
	KindContinuousJoystick
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindDraggableButton:
		return "draggable-button"
	case KindCamera:
		return "camera"
	case KindJoystick:
		return "joystick"
	case KindContinuousJoystick:
		return "continuous-joystick"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Action is one live control. The set of variants is closed.
type Action interface {
	// Kind returns the variant.
	Kind() Kind

	// Owner returns the id the action's handlers are registered under.
	Owner() uuid.UUID

	// KeyNames returns the logical names the action listens on.
	KeyNames() []string

	// Invalidate lifts any held touch and removes the action's handlers.
	// Calling it again does nothing.
	Invalidate()

	sealed()
}

// ErrMissingDependency is returned by Build when Deps lacks a collaborator.
var ErrMissingDependency = errors.New("missing action dependency")

// Deps are the collaborators actions are wired to.
type Deps struct {
	Registry *registry.Registry
	Motion   *motion.Router
	Touch    platform.TouchEmulator

	// Window returns the focused window frame. Touches are skipped while
	// it is nil or returns an empty rectangle.
	Window func() platform.Rect

	// MouseMapping routes the mouse to camera areas.
	MouseMapping bool

	// Sensitivity scales mouse and stick motion. Zero means 1.
	Sensitivity float64

	Logger logrus.FieldLogger
}

func (d *Deps) check() error {
	switch {
	case d.Registry == nil:
		return fmt.Errorf("%w: registry", ErrMissingDependency)
	case d.Motion == nil:
		return fmt.Errorf("%w: motion router", ErrMissingDependency)
	case d.Touch == nil:
		return fmt.Errorf("%w: touch emulator", ErrMissingDependency)
	}
	return nil
}

func (d *Deps) sensitivity() float64 {
	if d.Sensitivity <= 0 {
		return 1
	}
	return d.Sensitivity
}

// control holds what every variant shares: identity, placement and the
// single touch it drives.
type control struct {
	owner     uuid.UUID
	deps      *Deps
	transform keymap.Transform

	mu      sync.Mutex
	down    bool
	invalid bool
}

func (c *control) init(d *Deps, t keymap.Transform) {
	c.owner = uuid.New()
	c.deps = d
	c.transform = t
}

func (c *control) Owner() uuid.UUID {
	return c.owner
}

func (c *control) sealed() {}

func (c *control) touchID() string {
	return c.owner.String()
}

// area returns the control's centre and edge length in window coordinates.
func (c *control) area() (platform.Point, float64, bool) {
	if c.deps.Window == nil {
		return platform.Point{}, 0, false
	}
	frame := c.deps.Window()
	if frame.IsEmpty() {
		return platform.Point{}, 0, false
	}
	center := platform.Point{
		X: frame.X + c.transform.X*frame.Width,
		Y: frame.Y + c.transform.Y*frame.Height,
	}
	return center, c.transform.Size * frame.Width, true
}

// bounds returns the square the control occupies.
func (c *control) bounds() (platform.Rect, bool) {
	center, size, ok := c.area()
	if !ok {
		return platform.Rect{}, false
	}
	return platform.Rect{X: center.X - size/2, Y: center.Y - size/2, Width: size, Height: size}, true
}

// press, move and lift must be called with mu held.

func (c *control) press(at platform.Point) {
	if c.invalid {
		return
	}
	if c.down {
		c.deps.Touch.Move(c.touchID(), at)
		return
	}
	c.down = true
	c.deps.Touch.Press(c.touchID(), at)
}

func (c *control) lift() {
	if !c.down {
		return
	}
	c.down = false
	c.deps.Touch.Release(c.touchID())
}

// invalidate lifts the touch and drops every handler owned by c.
func (c *control) invalidate() {
	c.mu.Lock()
	if c.invalid {
		c.mu.Unlock()
		return
	}
	c.lift()
	c.invalid = true
	c.mu.Unlock()

	c.deps.Registry.RemoveOwner(c.owner)
	c.deps.Motion.RemoveOwner(c.owner)
}

// unit scales v to length 1. The zero vector is returned unchanged.
func unit(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}
