package input

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/playinput/internal/input/action"
	"github.com/dshills/playinput/internal/input/key"
	"github.com/dshills/playinput/internal/input/keymap"
	"github.com/dshills/playinput/internal/input/mode"
	"github.com/dshills/playinput/internal/input/motion"
	"github.com/dshills/playinput/internal/input/rebind"
	"github.com/dshills/playinput/internal/input/registry"
	"github.com/dshills/playinput/internal/platform"
	"github.com/dshills/playinput/internal/toast"
)

// Config holds dispatcher settings.
type Config struct {
	// Keymapping enables the whole remapping layer. When false the
	// dispatcher never installs anything and input passes through.
	Keymapping bool

	// MouseMapping routes mouse motion to camera areas and enables the
	// alt key play/edit swap.
	MouseMapping bool

	// Sensitivity scales mouse and stick motion.
	Sensitivity float64
}

// DefaultConfig returns the default dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		Keymapping:  true,
		Sensitivity: 1,
	}
}

// KeymapSource supplies the keymap each setup builds from.
type KeymapSource interface {
	Keymap() *keymap.Keymap
}

// Capturer receives key candidates while the editor is open.
type Capturer interface {
	Capture(c rebind.Candidate) (bool, error)
}

// State describes where the dispatcher is in its lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateInactive
	StatePlay
	StateEdit
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInactive:
		return "inactive"
	case StatePlay:
		return "play"
	case StateEdit:
		return "edit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPlatform sets the platform shim.
func WithPlatform(p platform.Platform) Option {
	return func(d *Dispatcher) {
		d.platform = p
	}
}

// WithDevices sets where connected devices are looked up.
func WithDevices(devices platform.Devices) Option {
	return func(d *Dispatcher) {
		d.devices = devices
	}
}

// WithNotifier subscribes the dispatcher to device connections.
func WithNotifier(n *platform.Notifier) Option {
	return func(d *Dispatcher) {
		d.notifier = n
	}
}

// WithKeymap sets the keymap source.
func WithKeymap(src KeymapSource) Option {
	return func(d *Dispatcher) {
		if src != nil {
			d.source = src
		}
	}
}

// WithTouch sets the touch emulator actions drive.
func WithTouch(t platform.TouchEmulator) Option {
	return func(d *Dispatcher) {
		if t != nil {
			d.touch = t
		}
	}
}

// WithCapturer sets the receiver of editor key captures.
func WithCapturer(c Capturer) Option {
	return func(d *Dispatcher) {
		d.capturer = c
	}
}

// WithToast sets the notifier for user visible messages.
func WithToast(n toast.Notifier) Option {
	return func(d *Dispatcher) {
		if n != nil {
			d.toast = n
		}
	}
}

// WithScroll sets the scroll wheel callback. Returning true hides the
// scroll event from the application.
func WithScroll(fn func(dx, dy float64) bool) Option {
	return func(d *Dispatcher) {
		d.scroll = fn
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// Dispatcher owns the live remapping state: the handler registry, the
// motion router, the command key latch and the play/edit mode. It attaches
// itself to connected devices and rebuilds its actions from the keymap.
type Dispatcher struct {
	mu sync.RWMutex

	config   Config
	platform platform.Platform
	devices  platform.Devices
	notifier *platform.Notifier
	source   KeymapSource
	touch    platform.TouchEmulator
	capturer Capturer
	toast    toast.Notifier
	scroll   func(dx, dy float64) bool
	log      logrus.FieldLogger

	registry *registry.Registry
	motion   *motion.Router
	mods     *key.ModifierState
	mode     *mode.Manager
	stats    *Stats

	initialized bool
	active      bool
	closed      bool
	editorOpen  bool
	subs        []*platform.Subscription

	// setupMu serializes Setup, Rebuild and Invalidate.
	setupMu sync.Mutex
	actions *action.Set
}

// NewDispatcher creates a dispatcher. Nothing is attached until Initialize.
func NewDispatcher(config Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		config:   config,
		source:   keymap.NewMemoryStore(keymap.DefaultKeymap()),
		touch:    nopTouch{},
		toast:    toast.Nop,
		registry: registry.New(),
		motion:   motion.NewRouter(),
		mods:     key.NewModifierState(),
		stats:    NewStats(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		d.log = l
	}
	d.log = d.log.WithField("component", "input")

	var display mode.Display
	if d.platform != nil {
		display = d.platform
	}
	d.mode = mode.NewManager(display)
	d.mode.OnChange(func(from, to mode.Mode) {
		d.log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("mode changed")
	})

	return d
}

// Initialize subscribes to device connections, installs the hotkeys and
// the platform filters, and sets up the devices already connected.
// It does nothing when keymapping is disabled. Calling it again does nothing.
func (d *Dispatcher) Initialize() {
	d.mu.Lock()
	if d.initialized || d.closed {
		d.mu.Unlock()
		return
	}
	d.initialized = true
	if !d.config.Keymapping {
		d.mu.Unlock()
		d.log.Info("keymapping disabled, input passes through")
		return
	}
	d.active = true
	d.mu.Unlock()

	if d.notifier != nil {
		subs := []*platform.Subscription{
			d.notifier.SubscribeKind(platform.DeviceKeyboard, d.onKeyboardConnected),
			d.notifier.SubscribeKind(platform.DeviceMouse, d.onMouseConnected),
			d.notifier.SubscribeKind(platform.DeviceController, d.onControllerConnected),
		}
		d.mu.Lock()
		d.subs = subs
		d.mu.Unlock()
	}

	d.setupHotkeys()
	if d.platform != nil {
		d.platform.EliminateRedundantKeyPressEvents(d.SuppressKeyDown)
		d.platform.SetupScrollWheel(d.HandleScroll)
	}
	d.mode.Apply()

	d.setupLogged()
	d.log.WithField("mode", d.mode.Current()).Info("input dispatcher initialized")
}

// Close detaches from every device and stops connection notifications.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	subs := d.subs
	d.subs = nil
	d.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
	d.Invalidate()
	d.clearHotkeys()
	d.mods.Reset()
}

// Setup rebuilds the actions from the keymap source and attaches the play
// handlers to every connected device. Running it twice leaves exactly one
// set of handlers in place.
func (d *Dispatcher) Setup() error {
	if !d.isActive() {
		return nil
	}

	d.setupMu.Lock()
	defer d.setupMu.Unlock()

	if err := d.rebuildLocked(); err != nil {
		return err
	}
	d.motion.Start()
	d.attachPlayHandlers()
	d.stats.setups.Add(1)
	return nil
}

// Rebuild rebuilds the actions without touching device handlers. It is
// used after the keymap changes, including while the editor is open.
func (d *Dispatcher) Rebuild() error {
	if !d.isActive() {
		return nil
	}

	d.setupMu.Lock()
	defer d.setupMu.Unlock()
	return d.rebuildLocked()
}

// Invalidate tears down every action, stops mouse routing and detaches the
// dispatcher from all devices. Hotkeys stay installed.
func (d *Dispatcher) Invalidate() {
	d.setupMu.Lock()
	defer d.setupMu.Unlock()

	d.invalidateActionsLocked()
	d.motion.Stop()
	d.detachDevices()
}

// ToggleEditor opens or closes the keymap editor. Opening tears down the
// actions and routes input to the capturer; closing runs Setup.
func (d *Dispatcher) ToggleEditor(show bool) {
	if !d.isActive() {
		return
	}

	d.mu.Lock()
	d.editorOpen = show
	d.mu.Unlock()

	if show {
		d.Invalidate()
		d.mode.Show(true)
		d.attachCapture()
		return
	}

	d.mode.Show(false)
	d.setupLogged()
}

// Mode returns the current mode.
func (d *Dispatcher) Mode() mode.Mode {
	return d.mode.Current()
}

// ModeManager returns the mode manager.
func (d *Dispatcher) ModeManager() *mode.Manager {
	return d.mode
}

// EditorOpen reports whether the keymap editor is open.
func (d *Dispatcher) EditorOpen() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.editorOpen
}

// State returns the lifecycle state.
func (d *Dispatcher) State() State {
	d.mu.RLock()
	initialized, active := d.initialized, d.active
	d.mu.RUnlock()

	switch {
	case !initialized:
		return StateUninitialized
	case !active:
		return StateInactive
	case d.mode.Is(mode.Edit):
		return StateEdit
	default:
		return StatePlay
	}
}

// Stats returns the dispatcher counters.
func (d *Dispatcher) Stats() *Stats {
	return d.stats
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *registry.Registry {
	return d.registry
}

// Motion returns the motion router.
func (d *Dispatcher) Motion() *motion.Router {
	return d.motion
}

// Modifiers returns the command key latch.
func (d *Dispatcher) Modifiers() *key.ModifierState {
	return d.mods
}

// Actions returns the live actions, or nil when none are built.
func (d *Dispatcher) Actions() []action.Action {
	d.setupMu.Lock()
	defer d.setupMu.Unlock()
	if d.actions == nil {
		return nil
	}
	return d.actions.Actions()
}

// HandleKey routes one key change to the registry and reports whether it
// was consumed. Events pass through while a command key is held, outside
// play mode, for unknown codes and for names nothing listens on.
func (d *Dispatcher) HandleKey(code key.Code, pressed bool) bool {
	start := time.Now()
	consumed := d.handleKey(code, pressed)
	d.stats.recordKey(consumed, time.Since(start))
	return consumed
}

func (d *Dispatcher) handleKey(code key.Code, pressed bool) bool {
	if !d.isActive() || d.mods.IsActive() || d.mode.Is(mode.Edit) {
		return false
	}
	name, err := key.NameFor(code)
	if err != nil {
		return false
	}
	return d.registry.Invoke(name, pressed)
}

// SuppressKeyDown reports whether a local key-down should be hidden from
// the application: always in play mode with the editor closed, and
// whenever a command key is held.
func (d *Dispatcher) SuppressKeyDown() bool {
	d.mu.RLock()
	open := d.editorOpen
	d.mu.RUnlock()

	suppress := (d.mode.Is(mode.Play) && !open) || d.mods.IsActive()
	if suppress {
		d.stats.suppressed.Add(1)
	}
	return suppress
}

// HandleControllerElement routes one controller change in play mode.
// Buttons go to the registry, d-pads to the motion router.
func (d *Dispatcher) HandleControllerElement(e platform.Element) {
	d.stats.controllerEvents.Add(1)
	if !d.isActive() {
		return
	}

	alias, ok := e.Alias()
	switch e.Kind {
	case platform.ElementButton:
		if !ok || !d.registry.Has(alias) {
			return
		}
		d.toast.Show(fmt.Sprintf("%s: %t", alias, e.Pressed))
		d.registry.Invoke(alias, e.Pressed)
	case platform.ElementDirectionPad:
		if !ok {
			return
		}
		d.motion.HandleDirectionPad(alias, e.X, e.Y)
	default:
		d.toast.Show("unrecognised controller element input happens")
	}
}

// HandleScroll forwards a scroll event to the scroll callback.
func (d *Dispatcher) HandleScroll(dx, dy float64) bool {
	d.stats.scrollEvents.Add(1)
	if !d.isActive() || d.scroll == nil {
		return false
	}
	return d.scroll(dx, dy)
}

func (d *Dispatcher) isActive() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.active && !d.closed
}

func (d *Dispatcher) setupLogged() {
	if err := d.Setup(); err != nil {
		d.log.WithError(err).Error("input setup failed")
	}
}

func (d *Dispatcher) window() platform.Rect {
	if d.platform == nil {
		return platform.Rect{}
	}
	return d.platform.WindowFrame()
}

func (d *Dispatcher) invalidateActionsLocked() {
	if d.actions != nil {
		d.actions.Invalidate()
		d.actions = nil
	}
	d.registry.InvalidateAll()
}

func (d *Dispatcher) rebuildLocked() error {
	d.invalidateActionsLocked()
	d.motion.Reset()

	set, err := action.Build(d.source.Keymap(), action.Deps{
		Registry:     d.registry,
		Motion:       d.motion,
		Touch:        d.touch,
		Window:       d.window,
		MouseMapping: d.config.MouseMapping,
		Sensitivity:  d.config.Sensitivity,
		Logger:       d.log,
	})
	if err != nil {
		return fmt.Errorf("building actions: %w", err)
	}
	d.actions = set

	d.log.WithFields(logrus.Fields{
		"actions":  set.Len(),
		"handlers": d.registry.Len(),
	}).Debug("actions built")
	return nil
}

func (d *Dispatcher) attachPlayHandlers() {
	if d.devices == nil {
		return
	}
	if kb := d.devices.Keyboard(); kb != nil {
		kb.SetKeyChangedHandler(d.HandleKey)
	}
	if c := d.devices.Controller(); c != nil {
		c.SetValueChangedHandler(d.HandleControllerElement)
	}
	for _, m := range d.devices.Mice() {
		if m == nil {
			continue
		}
		if d.config.MouseMapping {
			m.SetMouseMovedHandler(d.motion.HandleMouseMoved)
		} else {
			m.SetMouseMovedHandler(d.motion.HandleFakeMouseMoved)
		}
	}
}

func (d *Dispatcher) detachDevices() {
	if d.devices == nil {
		return
	}
	if kb := d.devices.Keyboard(); kb != nil {
		kb.SetKeyChangedHandler(nil)
	}
	if c := d.devices.Controller(); c != nil {
		c.SetValueChangedHandler(nil)
	}
	for _, m := range d.devices.Mice() {
		if m != nil {
			m.SetMouseMovedHandler(nil)
		}
	}
}

func (d *Dispatcher) setupHotkeys() {
	if d.devices == nil {
		return
	}
	kb := d.devices.Keyboard()
	if kb == nil {
		return
	}
	for _, code := range []key.Code{key.CodeLeftGUI, key.CodeRightGUI} {
		code := code
		kb.SetButtonHandler(code, func(pressed bool) { d.mods.Track(code, pressed) })
	}
	kb.SetButtonHandler(key.CodeLeftAlt, d.swapMode)
	kb.SetButtonHandler(key.CodeRightAlt, d.swapMode)
}

func (d *Dispatcher) clearHotkeys() {
	if d.devices == nil {
		return
	}
	kb := d.devices.Keyboard()
	if kb == nil {
		return
	}
	for _, c := range []key.Code{key.CodeLeftGUI, key.CodeRightGUI, key.CodeLeftAlt, key.CodeRightAlt} {
		kb.SetButtonHandler(c, nil)
	}
}

// swapMode flips between play and edit on an alt press. It only works
// with mouse mapping on and never while the editor is open.
func (d *Dispatcher) swapMode(pressed bool) {
	if !pressed || !d.config.MouseMapping || !d.isActive() || d.EditorOpen() {
		return
	}

	if d.mode.Is(mode.Play) {
		d.Invalidate()
	}
	if d.mode.Toggle() == mode.Play {
		d.setupLogged()
	}
}

func (d *Dispatcher) onKeyboardConnected(platform.DeviceKind) {
	if !d.isActive() {
		return
	}
	d.log.Debug("keyboard connected")
	d.setupHotkeys()
	if !d.mode.Is(mode.Edit) {
		d.setupLogged()
	}
}

func (d *Dispatcher) onMouseConnected(platform.DeviceKind) {
	if !d.isActive() {
		return
	}
	d.log.Debug("mouse connected")
	if !d.mode.Is(mode.Edit) {
		d.setupLogged()
	}
}

func (d *Dispatcher) onControllerConnected(platform.DeviceKind) {
	if !d.isActive() {
		return
	}
	d.log.Debug("controller connected")
	if !d.mode.Is(mode.Edit) {
		d.setupLogged()
	}
	if d.EditorOpen() {
		d.attachCapture()
	}
}

// nopTouch is used when no touch emulator is configured.
type nopTouch struct{}

func (nopTouch) Press(string, platform.Point) {}
func (nopTouch) Move(string, platform.Point)  {}
func (nopTouch) Release(string)               {}
