// Package fake provides a scriptable in-memory platform shim.
//
// Tests connect devices, then drive them as a user would:
//
//	p := fake.New()
//	kb := p.ConnectKeyboard()
//	consumed := kb.Press(key.CodeW)
//	kb.Release(key.CodeW)
//
// Device handlers installed by the code under test run synchronously.
package fake

import (
	"sync"

	"github.com/dshills/playinput/internal/input/key"
	"github.com/dshills/playinput/internal/platform"
)

// Platform implements platform.Platform and platform.Devices.
type Platform struct {
	mu sync.Mutex

	cursorHidden   bool
	menuBarVisible bool
	terminated     bool

	frame      platform.Rect
	mainFrame  platform.Rect
	mouse      platform.Point
	screens    int
	fullscreen bool

	suppress func() bool
	scroll   func(dx, dy float64) bool

	keyboard   *Keyboard
	controller *Controller
	mice       []*Mouse
}

var (
	_ platform.Platform = (*Platform)(nil)
	_ platform.Devices  = (*Platform)(nil)
)

// New creates a platform with a 1280x720 window on one screen.
func New() *Platform {
	frame := platform.Rect{Width: 1280, Height: 720}
	return &Platform{
		frame:          frame,
		mainFrame:      frame,
		screens:        1,
		menuBarVisible: true,
	}
}

// ConnectKeyboard attaches a keyboard and returns it.
func (p *Platform) ConnectKeyboard() *Keyboard {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keyboard = newKeyboard()
	return p.keyboard
}

// ConnectController attaches a controller and returns it.
func (p *Platform) ConnectController() *Controller {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.controller = &Controller{}
	return p.controller
}

// ConnectMouse attaches another mouse and returns it.
func (p *Platform) ConnectMouse() *Mouse {
	p.mu.Lock()
	defer p.mu.Unlock()
	m := &Mouse{}
	p.mice = append(p.mice, m)
	return m
}

// DisconnectAll removes every device.
func (p *Platform) DisconnectAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keyboard = nil
	p.controller = nil
	p.mice = nil
}

// Keyboard returns the keyboard, or nil.
func (p *Platform) Keyboard() platform.Keyboard {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.keyboard == nil {
		return nil
	}
	return p.keyboard
}

// Controller returns the controller, or nil.
func (p *Platform) Controller() platform.Controller {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.controller == nil {
		return nil
	}
	return p.controller
}

// Mice returns the connected mice.
func (p *Platform) Mice() []platform.Mouse {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]platform.Mouse, len(p.mice))
	for i, m := range p.mice {
		out[i] = m
	}
	return out
}

func (p *Platform) HideCursor() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursorHidden = true
}

func (p *Platform) UnhideCursor() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursorHidden = false
}

// CursorHidden reports the cursor state.
func (p *Platform) CursorHidden() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursorHidden
}

func (p *Platform) WindowFrame() platform.Rect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

// SetWindowFrame changes the focused window frame.
func (p *Platform) SetWindowFrame(r platform.Rect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame = r
}

func (p *Platform) MousePoint() platform.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mouse
}

func (p *Platform) ScreenCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screens
}

func (p *Platform) IsFullscreen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fullscreen
}

func (p *Platform) MainScreenFrame() platform.Rect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mainFrame
}

func (p *Platform) TerminateApplication() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.terminated = true
}

// Terminated reports whether TerminateApplication was called.
func (p *Platform) Terminated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.terminated
}

func (p *Platform) EliminateRedundantKeyPressEvents(suppress func() bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.suppress = suppress
}

// KeyDown runs the installed key-down filter and reports whether the
// event would be swallowed.
func (p *Platform) KeyDown() bool {
	p.mu.Lock()
	fn := p.suppress
	p.mu.Unlock()
	if fn == nil {
		return false
	}
	return fn()
}

func (p *Platform) SetupScrollWheel(onMoved func(dx, dy float64) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scroll = onMoved
}

// Scroll runs the installed scroll filter and reports whether the event
// was hidden from the application.
func (p *Platform) Scroll(dx, dy float64) bool {
	p.mu.Lock()
	fn := p.scroll
	p.mu.Unlock()
	if fn == nil {
		return false
	}
	return fn(dx, dy)
}

func (p *Platform) SetMenuBarVisible(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.menuBarVisible = visible
}

// MenuBarVisible reports the menu bar state.
func (p *Platform) MenuBarVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.menuBarVisible
}

// Keyboard is a fake keyboard.
type Keyboard struct {
	mu       sync.Mutex
	pressed  map[key.Code]bool
	changed  platform.KeyChangedHandler
	buttons  map[key.Code]func(bool)
	attaches int
}

func newKeyboard() *Keyboard {
	return &Keyboard{
		pressed: make(map[key.Code]bool),
		buttons: make(map[key.Code]func(bool)),
	}
}

func (k *Keyboard) SetKeyChangedHandler(h platform.KeyChangedHandler) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.changed = h
	if h != nil {
		k.attaches++
	}
}

// Attaches counts non-nil SetKeyChangedHandler calls.
func (k *Keyboard) Attaches() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.attaches
}

// HasKeyChangedHandler reports whether a key handler is attached.
func (k *Keyboard) HasKeyChangedHandler() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.changed != nil
}

func (k *Keyboard) SetButtonHandler(code key.Code, h func(pressed bool)) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if h == nil {
		delete(k.buttons, code)
		return
	}
	k.buttons[code] = h
}

func (k *Keyboard) IsPressed(code key.Code) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pressed[code]
}

// Hold marks code as held without delivering any event.
func (k *Keyboard) Hold(code key.Code, held bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pressed[code] = held
}

// Press delivers a key down and reports whether it was consumed.
func (k *Keyboard) Press(code key.Code) bool {
	return k.send(code, true)
}

// Release delivers a key up and reports whether it was consumed.
func (k *Keyboard) Release(code key.Code) bool {
	return k.send(code, false)
}

func (k *Keyboard) send(code key.Code, pressed bool) bool {
	k.mu.Lock()
	k.pressed[code] = pressed
	button := k.buttons[code]
	changed := k.changed
	k.mu.Unlock()

	if button != nil {
		button(pressed)
	}
	if changed == nil {
		return false
	}
	return changed(code, pressed)
}

// Controller is a fake extended gamepad.
type Controller struct {
	mu      sync.Mutex
	handler platform.ValueChangedHandler
}

func (c *Controller) SetValueChangedHandler(h platform.ValueChangedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

// HasHandler reports whether a value handler is attached.
func (c *Controller) HasHandler() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler != nil
}

// Send delivers an element change.
func (c *Controller) Send(e platform.Element) {
	c.mu.Lock()
	h := c.handler
	c.mu.Unlock()
	if h != nil {
		h(e)
	}
}

// PressButton sends a button element with the given alias.
func (c *Controller) PressButton(alias string, pressed bool) {
	c.Send(platform.Element{
		Kind:    platform.ElementButton,
		Aliases: []string{alias},
		Pressed: pressed,
	})
}

// MoveDirectionPad sends a d-pad element with standard sub-aliases.
func (c *Controller) MoveDirectionPad(x, y float64) {
	c.Send(DirectionPad(x, y))
}

// DirectionPad builds a d-pad element with standard sub-aliases.
func DirectionPad(x, y float64) platform.Element {
	return platform.Element{
		Kind:    platform.ElementDirectionPad,
		Aliases: []string{platform.DirectionPadAlias},
		X:       x,
		Y:       y,
		Up:      "Direction Pad Up",
		Down:    "Direction Pad Down",
		Left:    "Direction Pad Left",
		Right:   "Direction Pad Right",
	}
}

// Mouse is a fake mouse.
type Mouse struct {
	mu      sync.Mutex
	handler platform.MouseMovedHandler
}

func (m *Mouse) SetMouseMovedHandler(h platform.MouseMovedHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = h
}

// HasHandler reports whether a motion handler is attached.
func (m *Mouse) HasHandler() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handler != nil
}

// Move delivers relative motion.
func (m *Mouse) Move(dx, dy float64) {
	m.mu.Lock()
	h := m.handler
	m.mu.Unlock()
	if h != nil {
		h(dx, dy)
	}
}

// TouchEvent is one call recorded by Touches.
type TouchEvent struct {
	Op string // "press", "move" or "release"
	ID string
	At platform.Point
}

// Touches records touch emulator calls.
type Touches struct {
	mu     sync.Mutex
	events []TouchEvent
	down   map[string]platform.Point
}

var _ platform.TouchEmulator = (*Touches)(nil)

// NewTouches creates an empty recorder.
func NewTouches() *Touches {
	return &Touches{down: make(map[string]platform.Point)}
}

func (t *Touches) Press(id string, at platform.Point) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, TouchEvent{Op: "press", ID: id, At: at})
	t.down[id] = at
}

func (t *Touches) Move(id string, at platform.Point) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, TouchEvent{Op: "move", ID: id, At: at})
	if _, ok := t.down[id]; ok {
		t.down[id] = at
	}
}

func (t *Touches) Release(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, TouchEvent{Op: "release", ID: id})
	delete(t.down, id)
}

// Events returns a copy of the recorded calls.
func (t *Touches) Events() []TouchEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TouchEvent, len(t.events))
	copy(out, t.events)
	return out
}

// Down returns the position of a touch that is currently down.
func (t *Touches) Down(id string) (platform.Point, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.down[id]
	return p, ok
}

// DownCount returns how many touches are currently down.
func (t *Touches) DownCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.down)
}

// Reset forgets everything recorded.
func (t *Touches) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = nil
	t.down = make(map[string]platform.Point)
}
