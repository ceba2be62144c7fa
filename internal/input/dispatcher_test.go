package input

import (
	"bytes"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/playinput/internal/input/key"
	"github.com/dshills/playinput/internal/input/keymap"
	"github.com/dshills/playinput/internal/input/mode"
	"github.com/dshills/playinput/internal/input/rebind"
	"github.com/dshills/playinput/internal/platform"
	"github.com/dshills/playinput/internal/platform/fake"
	"github.com/dshills/playinput/internal/toast"
)

type recordingCapturer struct {
	mu         sync.Mutex
	candidates []rebind.Candidate
}

func (c *recordingCapturer) Capture(cand rebind.Candidate) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.candidates = append(c.candidates, cand)
	return cand.Allowed, nil
}

func (c *recordingCapturer) all() []rebind.Candidate {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]rebind.Candidate, len(c.candidates))
	copy(out, c.candidates)
	return out
}

type harness struct {
	d       *Dispatcher
	p       *fake.Platform
	touches *fake.Touches
	toasts  *toast.Recorder
}

func newHarness(t *testing.T, cfg Config, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		p:       fake.New(),
		touches: fake.NewTouches(),
		toasts:  &toast.Recorder{},
	}
	base := []Option{
		WithPlatform(h.p),
		WithDevices(h.p),
		WithTouch(h.touches),
		WithToast(h.toasts),
	}
	h.d = NewDispatcher(cfg, append(base, opts...)...)
	t.Cleanup(h.d.Close)
	return h
}

func gamepadKeymap() *keymap.Keymap {
	return &keymap.Keymap{
		Buttons: []keymap.Button{
			{KeyName: "Button A", Transform: keymap.Transform{X: 0.8, Y: 0.8, Size: 0.1}},
		},
		Joysticks: []keymap.Joystick{
			{KeyName: "Left Thumbstick", Transform: keymap.Transform{X: 0.2, Y: 0.7, Size: 0.2}},
		},
	}
}

func TestDispatcherKeymappingDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keymapping = false
	h := newHarness(t, cfg)
	kb := h.p.ConnectKeyboard()

	assert.Equal(t, StateUninitialized, h.d.State())
	h.d.Initialize()

	assert.Equal(t, StateInactive, h.d.State())
	assert.False(t, kb.HasKeyChangedHandler())
	assert.False(t, kb.Press(key.CodeW))
	assert.False(t, h.p.KeyDown())
	assert.False(t, h.p.CursorHidden())
	require.NoError(t, h.d.Setup())
	assert.Equal(t, 0, h.d.Registry().Len())
}

func TestDispatcherInitializeEntersPlay(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	kb := h.p.ConnectKeyboard()

	h.d.Initialize()

	assert.Equal(t, StatePlay, h.d.State())
	assert.Equal(t, mode.Play, h.d.Mode())
	assert.True(t, h.p.CursorHidden())
	assert.False(t, h.p.MenuBarVisible())
	assert.True(t, kb.HasKeyChangedHandler())
	assert.NotEmpty(t, h.d.Actions())
}

func TestDispatcherInitializeIdempotent(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	kb := h.p.ConnectKeyboard()

	h.d.Initialize()
	h.d.Initialize()

	assert.Equal(t, 1, kb.Attaches())
	assert.Equal(t, uint64(1), h.d.Stats().Snapshot().Setups)
}

func TestDispatcherKeyRouting(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()

	tests := []struct {
		name string
		code key.Code
		want bool
	}{
		{"bound button", key.CodeSpace, true},
		{"joystick direction", key.CodeW, true},
		{"unbound key", key.CodeQ, false},
		{"unknown code", key.Code(0x01), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kb.Press(tt.code))
			assert.Equal(t, tt.want, kb.Release(tt.code))
		})
	}
	assert.Equal(t, 0, h.touches.DownCount())
}

func TestDispatcherButtonDrivesTouch(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()

	require.True(t, kb.Press(key.CodeSpace))
	assert.Equal(t, 1, h.touches.DownCount())

	require.True(t, kb.Release(key.CodeSpace))
	assert.Equal(t, 0, h.touches.DownCount())
}

func TestDispatcherCommandKeyPassesThrough(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()

	assert.False(t, kb.Press(key.CodeLeftGUI))
	assert.True(t, h.d.Modifiers().IsActive())

	assert.False(t, kb.Press(key.CodeW), "command held")
	assert.Equal(t, 0, h.touches.DownCount())
	kb.Release(key.CodeW)

	kb.Release(key.CodeLeftGUI)
	assert.False(t, h.d.Modifiers().IsActive())
	assert.True(t, kb.Press(key.CodeW))
}

func TestDispatcherSuppressKeyDown(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()

	assert.True(t, h.p.KeyDown(), "play with editor closed")

	h.d.ToggleEditor(true)
	assert.False(t, h.p.KeyDown(), "editor open")

	kb.Press(key.CodeRightGUI)
	assert.True(t, h.p.KeyDown(), "command held")
	kb.Release(key.CodeRightGUI)

	h.d.ToggleEditor(false)
	assert.True(t, h.p.KeyDown())
	assert.Equal(t, uint64(3), h.d.Stats().Snapshot().Suppressed)
}

func TestDispatcherSetupIsIdempotent(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()

	require.NoError(t, h.d.Setup())
	require.NoError(t, h.d.Setup())

	assert.Equal(t, 1, h.d.Registry().Count("Space"))
	assert.Equal(t, 1, h.d.Registry().Count("W"))
	assert.Len(t, h.d.Actions(), 3)
	assert.Equal(t, 3, kb.Attaches())

	// one touch per press, not one per setup
	kb.Press(key.CodeE)
	assert.Len(t, h.touches.Events(), 1)
}

func TestDispatcherSetupReleasesHeldTouches(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()

	kb.Press(key.CodeSpace)
	require.Equal(t, 1, h.touches.DownCount())

	require.NoError(t, h.d.Setup())
	assert.Equal(t, 0, h.touches.DownCount())
}

func TestDispatcherInvalidateAndRebuild(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MouseMapping = true
	h := newHarness(t, cfg)
	kb := h.p.ConnectKeyboard()
	m := h.p.ConnectMouse()
	h.d.Initialize()
	require.True(t, m.HasHandler())

	kb.Press(key.CodeW)
	require.Equal(t, 1, h.touches.DownCount())

	h.d.Invalidate()
	assert.Equal(t, 0, h.touches.DownCount())
	assert.Equal(t, 0, h.d.Registry().Len())
	assert.Equal(t, 0, h.d.Motion().Len())
	assert.False(t, h.d.Motion().Running())
	assert.False(t, kb.HasKeyChangedHandler())
	assert.False(t, m.HasHandler())
	assert.Nil(t, h.d.Actions())

	h.d.Invalidate()

	require.NoError(t, h.d.Rebuild())
	assert.True(t, h.d.Registry().Has("Space"))
	assert.True(t, h.d.Motion().HasAxis("Mouse"))
	assert.False(t, kb.HasKeyChangedHandler(), "rebuild leaves devices alone")

	require.NoError(t, h.d.Setup())
	assert.True(t, kb.HasKeyChangedHandler())
	assert.True(t, m.HasHandler())
}

func TestDispatcherSetupRejectsInvalidKeymap(t *testing.T) {
	bad := &keymap.Keymap{Buttons: []keymap.Button{{KeyName: ""}}}
	h := newHarness(t, DefaultConfig(), WithKeymap(keymap.NewMemoryStore(bad)))
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()

	err := h.d.Setup()
	require.Error(t, err)
	assert.ErrorIs(t, err, keymap.ErrInvalidRecord)
	assert.False(t, kb.HasKeyChangedHandler())
	assert.Equal(t, 0, h.d.Registry().Len())
}

func TestDispatcherMouseRouting(t *testing.T) {
	t.Run("mouse mapping", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MouseMapping = true
		h := newHarness(t, cfg)
		m := h.p.ConnectMouse()
		h.d.Initialize()

		m.Move(5, 5)
		assert.Equal(t, 1, h.touches.DownCount(), "camera swipe")
	})

	t.Run("no mouse mapping", func(t *testing.T) {
		h := newHarness(t, DefaultConfig())
		m := h.p.ConnectMouse()
		h.d.Initialize()

		require.True(t, m.HasHandler())
		m.Move(5, 5)
		assert.Equal(t, 0, h.touches.DownCount())
		assert.False(t, h.d.Motion().HasAxis("Mouse"))
	})
}

func TestDispatcherControllerButton(t *testing.T) {
	h := newHarness(t, DefaultConfig(), WithKeymap(keymap.NewMemoryStore(gamepadKeymap())))
	c := h.p.ConnectController()
	h.d.Initialize()

	c.PressButton("Button A", true)
	assert.Equal(t, "Button A: true", h.toasts.Last())
	assert.Equal(t, 1, h.touches.DownCount())

	c.PressButton("Button A", false)
	assert.Equal(t, "Button A: false", h.toasts.Last())
	assert.Equal(t, 0, h.touches.DownCount())

	c.PressButton("Button B", true)
	assert.Len(t, h.toasts.Messages(), 2, "unbound buttons are silent")
}

func TestDispatcherControllerUnknownElement(t *testing.T) {
	h := newHarness(t, DefaultConfig(), WithKeymap(keymap.NewMemoryStore(gamepadKeymap())))
	c := h.p.ConnectController()
	h.d.Initialize()

	c.Send(platform.Element{Kind: platform.ElementOther, Aliases: []string{"Touchpad"}})
	assert.Equal(t, "unrecognised controller element input happens", h.toasts.Last())
	assert.Equal(t, uint64(1), h.d.Stats().Snapshot().ControllerEvents)
}

func TestDispatcherControllerThumbstick(t *testing.T) {
	h := newHarness(t, DefaultConfig(), WithKeymap(keymap.NewMemoryStore(gamepadKeymap())))
	c := h.p.ConnectController()
	h.d.Initialize()

	stick := platform.Element{Kind: platform.ElementDirectionPad, Aliases: []string{"Left Thumbstick"}, X: 1}
	c.Send(stick)
	assert.Equal(t, 1, h.touches.DownCount())

	stick.X = 0
	c.Send(stick)
	assert.Equal(t, 0, h.touches.DownCount())
}

func TestDispatcherToggleEditor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MouseMapping = true
	h := newHarness(t, cfg)
	kb := h.p.ConnectKeyboard()
	m := h.p.ConnectMouse()
	h.d.Initialize()

	kb.Press(key.CodeD)
	require.Equal(t, 1, h.touches.DownCount())

	h.d.ToggleEditor(true)
	assert.True(t, h.d.EditorOpen())
	assert.Equal(t, StateEdit, h.d.State())
	assert.False(t, h.p.CursorHidden())
	assert.True(t, h.p.MenuBarVisible())
	assert.Equal(t, 0, h.touches.DownCount())
	assert.False(t, m.HasHandler())
	assert.True(t, kb.HasKeyChangedHandler(), "capture handler")

	h.d.ToggleEditor(false)
	assert.False(t, h.d.EditorOpen())
	assert.Equal(t, StatePlay, h.d.State())
	assert.True(t, h.p.CursorHidden())
	assert.True(t, m.HasHandler())
	assert.True(t, kb.Press(key.CodeSpace))
}

func TestDispatcherCaptureKeys(t *testing.T) {
	capt := &recordingCapturer{}
	h := newHarness(t, DefaultConfig(), WithCapturer(capt))
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()
	h.d.ToggleEditor(true)

	assert.True(t, kb.Press(key.CodeK), "accepted capture is consumed")
	assert.False(t, kb.Release(key.CodeK), "releases are not offered")

	assert.False(t, kb.Press(key.CodePrintScreen))
	kb.Release(key.CodePrintScreen)

	kb.Press(key.CodeLeftGUI)
	assert.False(t, kb.Press(key.CodeJ))
	kb.Release(key.CodeLeftGUI)
	kb.Release(key.CodeJ)

	kb.Hold(key.CodeRightAlt, true)
	assert.False(t, kb.Press(key.CodeH), "forbidden key held")
	kb.Hold(key.CodeRightAlt, false)

	assert.False(t, kb.Press(key.Code(0x01)))

	want := []rebind.Candidate{
		{Name: "K", Allowed: true},
		{Name: "PrintScreen", Allowed: false},
		{Name: "LCmd", Allowed: false},
		{Name: "J", Allowed: false},
		{Name: "H", Allowed: false},
	}
	assert.Equal(t, want, capt.all())

	s := h.d.Stats().Snapshot()
	assert.Equal(t, uint64(1), s.Captures)
	assert.Equal(t, uint64(4), s.RejectedCaptures)
	assert.Equal(t, 0, h.touches.DownCount())
}

func TestDispatcherCaptureController(t *testing.T) {
	capt := &recordingCapturer{}
	h := newHarness(t, DefaultConfig(), WithCapturer(capt))
	c := h.p.ConnectController()
	h.d.Initialize()
	h.d.ToggleEditor(true)

	c.PressButton("Button X", true)
	c.MoveDirectionPad(1, -1)
	c.MoveDirectionPad(0, 0)
	c.Send(platform.Element{Kind: platform.ElementButton, Aliases: []string{platform.DirectionPadAlias}})

	want := []rebind.Candidate{
		{Name: "Button X", Allowed: true},
		{Name: "Direction Pad Up", Allowed: true},
	}
	assert.Equal(t, want, capt.all())
	assert.Equal(t, "cannot map direction pad: element type not recognizable", h.toasts.Last())
}

func TestResolveDirectionPad(t *testing.T) {
	tests := []struct {
		name    string
		element platform.Element
		want    string
		wantErr error
	}{
		{"plain button", platform.Element{Kind: platform.ElementButton, Aliases: []string{"Button A"}}, "Button A", nil},
		{"right", fake.DirectionPad(1, 0), "Direction Pad Right", nil},
		{"left", fake.DirectionPad(-0.5, 0), "Direction Pad Left", nil},
		{"down", fake.DirectionPad(0, 1), "Direction Pad Down", nil},
		{"up", fake.DirectionPad(0, -1), "Direction Pad Up", nil},
		{"y overrides x", fake.DirectionPad(1, 1), "Direction Pad Down", nil},
		{"centered", fake.DirectionPad(0, 0), platform.DirectionPadAlias, nil},
		{"no alias", platform.Element{Kind: platform.ElementButton}, "", ErrUnrecognizedElement},
		{"wrong kind", platform.Element{Kind: platform.ElementButton, Aliases: []string{platform.DirectionPadAlias}}, "", ErrUnmappableDirectionPad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDirectionPad(tt.element)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDispatcherAltSwap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MouseMapping = true
	h := newHarness(t, cfg)
	kb := h.p.ConnectKeyboard()
	m := h.p.ConnectMouse()
	h.d.Initialize()

	kb.Press(key.CodeLeftAlt)
	assert.Equal(t, mode.Edit, h.d.Mode())
	assert.False(t, h.d.EditorOpen())
	assert.False(t, kb.HasKeyChangedHandler())
	assert.False(t, m.HasHandler())
	assert.False(t, h.p.CursorHidden())

	kb.Release(key.CodeLeftAlt)
	assert.Equal(t, mode.Edit, h.d.Mode(), "release does nothing")
	assert.False(t, h.p.KeyDown(), "keys reach the app in edit")

	kb.Press(key.CodeRightAlt)
	assert.Equal(t, mode.Play, h.d.Mode())
	assert.True(t, kb.HasKeyChangedHandler())
	assert.True(t, m.HasHandler())
	assert.True(t, kb.Press(key.CodeSpace))
}

func TestDispatcherAltSwapNeedsMouseMapping(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()

	kb.Press(key.CodeLeftAlt)
	assert.Equal(t, mode.Play, h.d.Mode())
	assert.True(t, kb.HasKeyChangedHandler())
}

func TestDispatcherAltSwapIgnoredWithEditorOpen(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MouseMapping = true
	h := newHarness(t, cfg)
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()
	h.d.ToggleEditor(true)

	kb.Press(key.CodeLeftAlt)
	assert.Equal(t, mode.Edit, h.d.Mode())
	assert.True(t, h.d.EditorOpen())
}

func TestDispatcherDeviceConnect(t *testing.T) {
	n := platform.NewNotifier()
	h := newHarness(t, DefaultConfig(), WithNotifier(n))
	h.d.Initialize()

	kb := h.p.ConnectKeyboard()
	assert.False(t, kb.HasKeyChangedHandler())
	n.Connected(platform.DeviceKeyboard)
	assert.True(t, kb.HasKeyChangedHandler())
	assert.True(t, kb.Press(key.CodeW))

	kb.Press(key.CodeLeftGUI)
	assert.True(t, h.d.Modifiers().IsActive(), "hotkeys installed on connect")
	kb.Release(key.CodeLeftGUI)

	m := h.p.ConnectMouse()
	n.Connected(platform.DeviceMouse)
	assert.True(t, m.HasHandler())
}

func TestDispatcherControllerConnectWhileEditing(t *testing.T) {
	n := platform.NewNotifier()
	capt := &recordingCapturer{}
	h := newHarness(t, DefaultConfig(), WithNotifier(n), WithCapturer(capt))
	h.d.Initialize()
	h.d.ToggleEditor(true)

	c := h.p.ConnectController()
	n.Connected(platform.DeviceController)
	require.True(t, c.HasHandler())

	c.PressButton("Button Y", true)
	assert.Equal(t, []rebind.Candidate{{Name: "Button Y", Allowed: true}}, capt.all())
	assert.Equal(t, mode.Edit, h.d.Mode())
}

func TestDispatcherScroll(t *testing.T) {
	var got [2]float64
	h := newHarness(t, DefaultConfig(), WithScroll(func(dx, dy float64) bool {
		got = [2]float64{dx, dy}
		return true
	}))
	h.d.Initialize()

	assert.True(t, h.p.Scroll(1, -2))
	assert.Equal(t, [2]float64{1, -2}, got)
	assert.Equal(t, uint64(1), h.d.Stats().Snapshot().ScrollEvents)

	bare := newHarness(t, DefaultConfig())
	bare.d.Initialize()
	assert.False(t, bare.p.Scroll(1, 1))
}

func TestDispatcherStats(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()

	kb.Press(key.CodeSpace)
	kb.Release(key.CodeSpace)
	kb.Press(key.CodeQ)

	s := h.d.Stats().Snapshot()
	assert.Equal(t, uint64(3), s.KeyEvents)
	assert.Equal(t, uint64(2), s.Consumed)
	assert.Equal(t, uint64(1), s.Passed)
}

func TestDispatcherClose(t *testing.T) {
	n := platform.NewNotifier()
	h := newHarness(t, DefaultConfig(), WithNotifier(n))
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()

	kb.Press(key.CodeA)
	h.d.Close()
	h.d.Close()

	assert.Equal(t, 0, h.touches.DownCount())
	assert.False(t, kb.HasKeyChangedHandler())

	kb.Press(key.CodeLeftGUI)
	assert.False(t, h.d.Modifiers().IsActive(), "hotkeys removed")

	n.Connected(platform.DeviceKeyboard)
	assert.False(t, kb.HasKeyChangedHandler())
	assert.False(t, h.p.Scroll(1, 1))
	assert.NoError(t, h.d.Setup())
	assert.Equal(t, 0, h.d.Registry().Len())
}

func TestDispatcherCloseClearsCommandLatch(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()

	kb.Press(key.CodeRightGUI)
	require.True(t, h.d.Modifiers().IsActive())

	h.d.Close()
	assert.False(t, h.d.Modifiers().IsActive())
}

func TestDispatcherLogsModeChanges(t *testing.T) {
	var logs bytes.Buffer
	log := logrus.New()
	log.SetOutput(&logs)
	log.SetLevel(logrus.DebugLevel)

	cfg := DefaultConfig()
	cfg.MouseMapping = true
	h := newHarness(t, cfg, WithLogger(log))
	kb := h.p.ConnectKeyboard()
	h.d.Initialize()

	kb.Press(key.CodeLeftAlt)
	kb.Release(key.CodeLeftAlt)
	assert.Equal(t, StateEdit, h.d.State())
	assert.Contains(t, logs.String(), "mode changed")
	assert.Contains(t, logs.String(), "to=edit")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "play", StatePlay.String())
	assert.Equal(t, "edit", StateEdit.String())
	assert.Equal(t, "State(9)", State(9).String())
}
