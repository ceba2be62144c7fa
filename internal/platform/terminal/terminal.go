// Package terminal implements the platform shim on top of a tcell screen.
//
// A terminal has no key-up events, so every key press is followed by a
// synthesized release once the key has been quiet for the release delay.
// Terminal auto repeat keeps a held key down. Modifiers reported with a key
// are pressed just before it and released right after it.
//
// The window is the whole screen, measured in cells. Touches injected by
// the input core are drawn onto the screen by Canvas.
package terminal

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/dshills/playinput/internal/input/key"
	"github.com/dshills/playinput/internal/platform"
)

// DefaultReleaseDelay is how long a key stays down after its last press.
const DefaultReleaseDelay = 150 * time.Millisecond

// Option configures a Terminal.
type Option func(*Terminal)

// WithReleaseDelay sets how long a key stays down after its last press.
func WithReleaseDelay(d time.Duration) Option {
	return func(t *Terminal) {
		if d > 0 {
			t.releaseDelay = d
		}
	}
}

// WithNotifier announces the keyboard and mouse when the terminal starts.
func WithNotifier(n *platform.Notifier) Option {
	return func(t *Terminal) {
		t.notifier = n
	}
}

// WithPassthrough sets the receiver of events the input core did not take.
func WithPassthrough(fn func(ev tcell.Event)) Option {
	return func(t *Terminal) {
		t.passthrough = fn
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Terminal) {
		if log != nil {
			t.log = log
		}
	}
}

// Terminal implements platform.Platform and platform.Devices on a tcell
// screen. It exposes one keyboard and one mouse and never a controller.
type Terminal struct {
	mu sync.Mutex

	screen       tcell.Screen
	notifier     *platform.Notifier
	passthrough  func(ev tcell.Event)
	releaseDelay time.Duration
	log          logrus.FieldLogger

	keyboard *Keyboard
	mouse    *Mouse
	canvas   *Canvas

	cursorHidden bool
	menuBar      bool
	mousePos     platform.Point
	hasMousePos  bool

	suppress func() bool
	scroll   func(dx, dy float64) bool

	started bool
	quit    chan struct{}
	once    sync.Once
}

var (
	_ platform.Platform = (*Terminal)(nil)
	_ platform.Devices  = (*Terminal)(nil)
)

// New creates a terminal on the process's controlling tty.
func New(opts ...Option) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, opts...), nil
}

// NewWithScreen creates a terminal on an existing screen. The screen is
// initialized by Start.
func NewWithScreen(screen tcell.Screen, opts ...Option) *Terminal {
	t := &Terminal{
		screen:       screen,
		releaseDelay: DefaultReleaseDelay,
		menuBar:      true,
		quit:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		t.log = l
	}
	t.log = t.log.WithField("component", "terminal")

	t.keyboard = newKeyboard(t)
	t.mouse = &Mouse{}
	t.canvas = newCanvas(t)
	return t
}

// Start initializes the screen and announces the keyboard and mouse.
func (t *Terminal) Start() error {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return nil
	}
	if err := t.screen.Init(); err != nil {
		t.mu.Unlock()
		return err
	}
	t.screen.EnableMouse()
	t.started = true
	t.mu.Unlock()

	t.log.Debug("terminal started")
	if t.notifier != nil {
		t.notifier.Connected(platform.DeviceKeyboard)
		t.notifier.Connected(platform.DeviceMouse)
	}
	t.canvas.Draw()
	return nil
}

// Stop releases held keys and restores the terminal.
func (t *Terminal) Stop() {
	t.keyboard.releaseAll()

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		return
	}
	t.started = false
	t.screen.Fini()
}

// Run polls screen events until ctx is done, the application is
// terminated or the screen is finalized.
func (t *Terminal) Run(ctx context.Context) error {
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
		case <-t.quit:
		case <-stopped:
			return
		}
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // wakes PollEvent
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.quit:
			return nil
		default:
		}

		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		t.HandleEvent(ev)
		t.canvas.Draw()
	}
}

// Canvas returns the touch emulator that draws onto the screen.
func (t *Terminal) Canvas() *Canvas {
	return t.canvas
}

// HandleEvent routes one screen event.
func (t *Terminal) HandleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		t.handleKey(e)
	case *tcell.EventMouse:
		t.handleMouse(e)
	case *tcell.EventResize:
		t.screen.Sync()
		t.forward(ev)
	case *tcell.EventInterrupt:
	default:
		t.forward(ev)
	}
}

func (t *Terminal) handleKey(ev *tcell.EventKey) {
	if isInterrupt(ev) {
		t.TerminateApplication()
		return
	}

	code, ok := convertKey(ev)
	if !ok {
		t.forward(ev)
		return
	}

	mods := modifierCodes(ev.Modifiers())
	t.keyboard.pressModifiers(mods)
	consumed := t.keyboard.press(code)
	t.keyboard.releaseModifiers(mods)

	if consumed {
		return
	}
	t.mu.Lock()
	suppress := t.suppress
	t.mu.Unlock()
	if suppress != nil && suppress() {
		return
	}
	t.forward(ev)
}

// isInterrupt reports ctrl-c in either of the forms tcell may deliver.
func isInterrupt(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 &&
		(ev.Rune() == 'c' || ev.Rune() == 'C')
}

func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	if dx, dy, ok := wheelDelta(buttons); ok {
		t.mu.Lock()
		scroll := t.scroll
		t.mu.Unlock()
		if scroll != nil && scroll(dx, dy) {
			return
		}
		t.forward(ev)
		return
	}

	x, y := ev.Position()
	pos := platform.Point{X: float64(x), Y: float64(y)}

	t.mu.Lock()
	last, had := t.mousePos, t.hasMousePos
	t.mousePos, t.hasMousePos = pos, true
	t.mu.Unlock()

	if had && pos != last {
		t.mouse.move(pos.X-last.X, pos.Y-last.Y)
	}
	t.forward(ev)
}

func wheelDelta(b tcell.ButtonMask) (float64, float64, bool) {
	switch {
	case b&tcell.WheelUp != 0:
		return 0, -1, true
	case b&tcell.WheelDown != 0:
		return 0, 1, true
	case b&tcell.WheelLeft != 0:
		return -1, 0, true
	case b&tcell.WheelRight != 0:
		return 1, 0, true
	}
	return 0, 0, false
}

func (t *Terminal) forward(ev tcell.Event) {
	if t.passthrough != nil {
		t.passthrough(ev)
	}
}

// Keyboard returns the terminal keyboard.
func (t *Terminal) Keyboard() platform.Keyboard {
	return t.keyboard
}

// Controller returns nil; terminals have no game controllers.
func (t *Terminal) Controller() platform.Controller {
	return nil
}

// Mice returns the terminal mouse.
func (t *Terminal) Mice() []platform.Mouse {
	return []platform.Mouse{t.mouse}
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursorHidden = true
	t.screen.HideCursor()
}

func (t *Terminal) UnhideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursorHidden = false
	t.screen.ShowCursor(int(t.mousePos.X), int(t.mousePos.Y))
}

// CursorHidden reports whether the cursor is hidden.
func (t *Terminal) CursorHidden() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursorHidden
}

func (t *Terminal) WindowFrame() platform.Rect {
	w, h := t.screen.Size()
	return platform.Rect{Width: float64(w), Height: float64(h)}
}

func (t *Terminal) MousePoint() platform.Point {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mousePos
}

func (t *Terminal) ScreenCount() int { return 1 }

func (t *Terminal) IsFullscreen() bool { return true }

func (t *Terminal) MainScreenFrame() platform.Rect {
	return t.WindowFrame()
}

func (t *Terminal) TerminateApplication() {
	t.once.Do(func() {
		t.log.Info("terminate requested")
		close(t.quit)
	})
}

func (t *Terminal) EliminateRedundantKeyPressEvents(suppress func() bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.suppress = suppress
}

func (t *Terminal) SetupScrollWheel(onMoved func(dx, dy float64) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scroll = onMoved
}

// SetMenuBarVisible toggles the top status bar.
func (t *Terminal) SetMenuBarVisible(visible bool) {
	t.mu.Lock()
	t.menuBar = visible
	t.mu.Unlock()
	t.canvas.Draw()
}

// MenuBarVisible reports whether the top status bar is shown.
func (t *Terminal) MenuBarVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.menuBar
}

// Keyboard is the terminal keyboard. Releases are synthesized.
type Keyboard struct {
	mu      sync.Mutex
	term    *Terminal
	held    map[key.Code]*heldKey
	mods    map[key.Code]int
	changed platform.KeyChangedHandler
	buttons map[key.Code]func(bool)
}

func newKeyboard(t *Terminal) *Keyboard {
	return &Keyboard{
		term:    t,
		held:    make(map[key.Code]*heldKey),
		mods:    make(map[key.Code]int),
		buttons: make(map[key.Code]func(bool)),
	}
}

func (k *Keyboard) SetKeyChangedHandler(h platform.KeyChangedHandler) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.changed = h
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
	_, ok := k.held[code]
	return ok || k.mods[code] > 0
}

// pressModifiers presses the modifiers reported with a key. They count as
// held until releaseModifiers.
func (k *Keyboard) pressModifiers(codes []key.Code) {
	for _, code := range codes {
		k.mu.Lock()
		k.mods[code]++
		k.mu.Unlock()
		k.deliver(code, true)
	}
}

func (k *Keyboard) releaseModifiers(codes []key.Code) {
	for i := len(codes) - 1; i >= 0; i-- {
		code := codes[i]
		k.mu.Lock()
		if k.mods[code]--; k.mods[code] <= 0 {
			delete(k.mods, code)
		}
		k.mu.Unlock()
		k.deliver(code, false)
	}
}

type heldKey struct {
	timer    *time.Timer
	consumed bool
}

// press delivers a key down unless the key is already held, in which case
// only its release is postponed. It reports whether the press was consumed;
// a repeat reports what the first press did.
func (k *Keyboard) press(code key.Code) bool {
	delay := k.term.releaseDelay

	k.mu.Lock()
	if h, ok := k.held[code]; ok {
		h.timer.Reset(delay)
		consumed := h.consumed
		k.mu.Unlock()
		return consumed
	}
	h := &heldKey{}
	k.held[code] = h
	k.mu.Unlock()

	consumed := k.deliver(code, true)

	k.mu.Lock()
	h.consumed = consumed
	h.timer = time.AfterFunc(delay, func() { k.release(code) })
	k.mu.Unlock()
	return consumed
}

func (k *Keyboard) release(code key.Code) {
	k.mu.Lock()
	if _, ok := k.held[code]; !ok {
		k.mu.Unlock()
		return
	}
	delete(k.held, code)
	k.mu.Unlock()

	k.deliver(code, false)
}

func (k *Keyboard) releaseAll() {
	k.mu.Lock()
	codes := make([]key.Code, 0, len(k.held))
	for code, h := range k.held {
		if h.timer != nil {
			h.timer.Stop()
		}
		codes = append(codes, code)
	}
	k.mu.Unlock()

	for _, code := range codes {
		k.release(code)
	}
}

func (k *Keyboard) deliver(code key.Code, pressed bool) bool {
	k.mu.Lock()
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

// Mouse is the terminal mouse. Motion is reported in cells.
type Mouse struct {
	mu      sync.Mutex
	handler platform.MouseMovedHandler
}

func (m *Mouse) SetMouseMovedHandler(h platform.MouseMovedHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = h
}

func (m *Mouse) move(dx, dy float64) {
	m.mu.Lock()
	h := m.handler
	m.mu.Unlock()
	if h != nil {
		h(dx, dy)
	}
}

func (t *Terminal) isStarted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}
