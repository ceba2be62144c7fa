package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/dshills/playinput/internal/config"
	"github.com/dshills/playinput/internal/config/watcher"
	"github.com/dshills/playinput/internal/input"
	"github.com/dshills/playinput/internal/input/keymap"
	"github.com/dshills/playinput/internal/input/rebind"
	"github.com/dshills/playinput/internal/logging"
	"github.com/dshills/playinput/internal/platform"
	"github.com/dshills/playinput/internal/platform/terminal"
	"github.com/dshills/playinput/internal/toast"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 6),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initSettings,
		b.initLogging,
		b.initKeymap,
		b.initHost,
		b.initDispatcher,
		b.initWatcher,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	return nil
}

// initSettings loads the settings file and applies the option overrides.
func (b *bootstrapper) initSettings() error {
	path := b.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	s, err := config.Load(path)
	if err != nil {
		return &InitError{Component: "settings", Err: err}
	}
	if b.opts.KeymapPath != "" {
		s.KeymapPath = b.opts.KeymapPath
	}
	if b.opts.LogLevel != "" {
		s.LogLevel = b.opts.LogLevel
		if err := s.Validate(); err != nil {
			return &InitError{Component: "settings", Err: err}
		}
	}

	b.app.settings = s
	b.initOrder = append(b.initOrder, "settings")
	return nil
}

// initLogging creates the root logger.
func (b *bootstrapper) initLogging() error {
	out := b.opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	b.app.log = logging.New(logging.Config{
		Level:  b.app.settings.LogLevel,
		Output: out,
		JSON:   b.app.settings.LogJSON,
	})
	b.app.log.WithField("settings", b.app.settings.Path).Debug("settings loaded")
	b.initOrder = append(b.initOrder, "logging")
	return nil
}

// initKeymap opens the keymap file, writing the built-in layout to it
// first when it does not exist. Without a path the built-in layout is
// kept in memory.
func (b *bootstrapper) initKeymap() error {
	path := b.app.settings.KeymapPath
	store, err := openKeymap(path)
	if err != nil {
		return &InitError{Component: "keymap", Err: err}
	}

	b.app.store = store
	b.app.log.WithFields(logrus.Fields{
		"path":    path,
		"records": store.Keymap().Len(),
	}).Info("keymap loaded")
	b.initOrder = append(b.initOrder, "keymap")
	return nil
}

func openKeymap(path string) (*keymap.Store, error) {
	if path == "" {
		return keymap.NewMemoryStore(keymap.DefaultKeymap()), nil
	}

	store, err := keymap.Open(path)
	if err == nil {
		return store, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating keymap directory: %w", err)
	}
	return keymap.Create(path, keymap.DefaultKeymap())
}

// initHost creates the terminal host unless one was supplied.
func (b *bootstrapper) initHost() error {
	b.app.notifier = b.opts.Notifier
	if b.app.notifier == nil {
		b.app.notifier = platform.NewNotifier()
	}

	notifiers := toast.Multi{toast.NewLog(logging.Component(b.app.log, "toast"))}
	if b.opts.Toast != nil {
		notifiers = append(notifiers, b.opts.Toast)
	}
	b.app.touch = b.opts.Touch

	if b.opts.Host != nil {
		b.app.host = b.opts.Host
	} else {
		term, err := terminal.New(
			terminal.WithNotifier(b.app.notifier),
			terminal.WithLogger(b.app.log),
		)
		if err != nil {
			return &InitError{Component: "host", Err: err}
		}
		b.app.host = term
		if b.app.touch == nil {
			b.app.touch = term.Canvas()
		}
		notifiers = append(notifiers, term.Canvas())
	}

	b.app.toast = notifiers
	b.initOrder = append(b.initOrder, "host")
	return nil
}

// initDispatcher creates the editor, the rebind controller and the input
// dispatcher, which refer to each other.
func (b *bootstrapper) initDispatcher() error {
	s := b.app.settings
	cfg := input.Config{
		Keymapping:   s.Keymapping,
		MouseMapping: s.MouseMapping,
		Sensitivity:  s.Sensitivity,
	}

	editor := newEditor(b.app.store, b.app.toast)
	b.app.dispatcher = input.NewDispatcher(cfg,
		input.WithPlatform(b.app.host),
		input.WithDevices(b.app.host),
		input.WithNotifier(b.app.notifier),
		input.WithKeymap(b.app.store),
		input.WithTouch(b.app.touch),
		input.WithCapturer(editor),
		input.WithToast(b.app.toast),
		input.WithScroll(editor.Scroll),
		input.WithLogger(b.app.log),
	)
	b.app.rebind = rebind.New(b.app.store, editor,
		rebind.WithRebuild(b.app.dispatcher.Rebuild),
		rebind.WithLogger(logging.Component(b.app.log, "rebind")),
	)
	editor.bind(b.app.dispatcher, b.app.rebind)
	b.app.editor = editor

	b.initOrder = append(b.initOrder, "dispatcher")
	return nil
}

// initWatcher watches the keymap and settings files when requested.
func (b *bootstrapper) initWatcher() error {
	if !b.opts.Watch {
		return nil
	}

	var paths []string
	if p := b.app.store.Path(); p != "" {
		paths = append(paths, p)
	}
	if p := b.app.settings.Path; p != "" {
		paths = append(paths, p)
	}
	if len(paths) == 0 {
		return nil
	}

	w, err := watcher.New(watcher.WithLogger(logging.Component(b.app.log, "watcher")))
	if err != nil {
		return &InitError{Component: "watcher", Err: err}
	}
	b.app.watcher = w
	b.initOrder = append(b.initOrder, "watcher")

	for _, p := range paths {
		if err := w.Watch(p); err != nil {
			return &InitError{Component: "watcher", Err: NewComponentError("watcher", "watch "+p, err)}
		}
	}
	w.OnChange(b.app.onFileChanged)
	return nil
}

// cleanup performs cleanup in reverse initialization order.
// Called when bootstrap fails partway through.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(b.initOrder[i])
	}
}

// cleanupComponent cleans up a single component.
func (b *bootstrapper) cleanupComponent(component string) {
	switch component {
	case "watcher":
		if b.app.watcher != nil {
			_ = b.app.watcher.Close()
			b.app.watcher = nil
		}
	case "dispatcher":
		if b.app.dispatcher != nil {
			b.app.dispatcher.Close()
			b.app.dispatcher = nil
		}
	case "host":
		if b.app.notifier != nil && b.opts.Notifier == nil {
			b.app.notifier.Close()
		}
		b.app.host = nil
	case "keymap":
		b.app.store = nil
	}
}

// samePath reports whether a and b name the same file.
func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
