// Package app wires the settings, the keymap store, the host platform and
// the input dispatcher together and manages the application lifecycle.
package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/dshills/playinput/internal/config"
	"github.com/dshills/playinput/internal/config/watcher"
	"github.com/dshills/playinput/internal/input"
	"github.com/dshills/playinput/internal/input/key"
	"github.com/dshills/playinput/internal/input/keymap"
	"github.com/dshills/playinput/internal/input/rebind"
	"github.com/dshills/playinput/internal/platform"
	"github.com/dshills/playinput/internal/toast"
)

// EditorKey opens and closes the keymap editor.
const EditorKey = key.CodeF2

// Host is the platform the application runs on.
type Host interface {
	platform.Platform
	platform.Devices

	// Start prepares the host and announces its devices.
	Start() error

	// Run pumps host events until ctx is done or the host is asked to quit.
	Run(ctx context.Context) error

	// Stop releases the host.
	Stop()
}

// Application is the central coordinator. It owns every component and
// tears them down in reverse order.
type Application struct {
	mu sync.RWMutex

	settings config.Settings
	log      *logrus.Logger

	store    *keymap.Store
	watcher  *watcher.Watcher
	notifier *platform.Notifier

	host   Host
	touch  platform.TouchEmulator
	toast  toast.Notifier
	editor *Editor
	rebind *rebind.Controller

	dispatcher *input.Dispatcher
	subs       []*platform.Subscription

	// State
	running      atomic.Bool
	hostStarted  atomic.Bool
	stopped      atomic.Bool
	shutdownOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the settings file. Empty means the default location.
	ConfigPath string

	// KeymapPath overrides the keymap file named by the settings.
	KeymapPath string

	// LogLevel overrides the settings' log level.
	LogLevel string

	// LogOutput receives log output. Nil discards it.
	LogOutput io.Writer

	// Host is the platform to run on. Nil means the terminal.
	Host Host

	// Touch receives synthesized touches. Defaults to the terminal canvas
	// when Host is nil.
	Touch platform.TouchEmulator

	// Toast shows short messages to the user.
	Toast toast.Notifier

	// Notifier announces device connections. One is created if nil.
	Notifier *platform.Notifier

	// Watch reloads the keymap when its file changes.
	Watch bool
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}

	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Run starts the host and the dispatcher and blocks until ctx is done or
// the host quits. Everything is shut down before Run returns.
func (app *Application) Run(ctx context.Context) error {
	if app.stopped.Load() {
		return ErrStopped
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer func() {
		app.Shutdown()
		app.running.Store(false)
	}()

	if err := app.host.Start(); err != nil {
		return &InitError{Component: "host", Err: err}
	}
	app.hostStarted.Store(true)

	app.dispatcher.Initialize()
	app.installEditorKey()
	subs := []*platform.Subscription{
		app.notifier.SubscribeKind(platform.DeviceKeyboard, func(platform.DeviceKind) {
			app.installEditorKey()
		}),
		app.notifier.Subscribe(func(kind platform.DeviceKind) {
			app.log.WithField("device", kind.String()).Info("device connected")
		}),
	}
	app.mu.Lock()
	app.subs = subs
	app.mu.Unlock()

	app.log.WithFields(logrus.Fields{
		"state":  app.dispatcher.State().String(),
		"keymap": app.store.Path(),
	}).Info("application running")

	err := app.host.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// installEditorKey binds EditorKey on the current keyboard.
func (app *Application) installEditorKey() {
	kb := app.host.Keyboard()
	if kb == nil {
		return
	}
	kb.SetButtonHandler(EditorKey, func(pressed bool) {
		if !pressed {
			return
		}
		if err := app.editor.Toggle(); err != nil {
			app.log.WithError(err).Warn("toggling keymap editor")
		}
	})
}

// Shutdown releases every component in reverse initialization order.
// It is safe to call more than once.
func (app *Application) Shutdown() error {
	var errs ErrorList
	app.shutdownOnce.Do(func() {
		app.stopped.Store(true)

		app.mu.Lock()
		subs := app.subs
		app.subs = nil
		app.mu.Unlock()
		for _, sub := range subs {
			sub.Unsubscribe()
		}
		if app.dispatcher != nil {
			app.dispatcher.Close()
		}
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				errs.Add(NewComponentError("watcher", "close", err))
			}
		}
		if app.hostStarted.Load() {
			app.host.Stop()
		}
		if app.notifier != nil && app.opts.Notifier == nil {
			app.notifier.Close()
		}
		app.log.Info("application stopped")
	})
	return errs.AsError()
}

// Quit asks a running application to stop. Run returns once the host
// loop exits.
func (app *Application) Quit() error {
	if !app.running.Load() {
		return ErrNotRunning
	}
	app.host.TerminateApplication()
	return nil
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Settings returns the loaded settings.
func (app *Application) Settings() config.Settings {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.settings
}

// Logger returns the root logger.
func (app *Application) Logger() *logrus.Logger {
	return app.log
}

// Store returns the keymap store.
func (app *Application) Store() *keymap.Store {
	return app.store
}

// Dispatcher returns the input dispatcher.
func (app *Application) Dispatcher() *input.Dispatcher {
	return app.dispatcher
}

// Editor returns the keymap editor.
func (app *Application) Editor() *Editor {
	return app.editor
}

// Host returns the host platform.
func (app *Application) Host() Host {
	return app.host
}

// onFileChanged reacts to settings and keymap file changes.
func (app *Application) onFileChanged(ev watcher.Event) {
	log := app.log.WithFields(logrus.Fields{"path": ev.Path, "op": ev.Op.String()})

	app.mu.RLock()
	settingsPath := app.settings.Path
	app.mu.RUnlock()

	switch {
	case samePath(ev.Path, app.store.Path()):
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			log.Warn("keymap file removed, keeping the loaded layout")
			return
		}
		if err := app.store.Reload(); err != nil {
			log.WithError(err).Error("reloading keymap")
			app.toast.Show("keymap reload failed")
			return
		}
		if err := app.dispatcher.Rebuild(); err != nil {
			log.WithError(err).Error("rebuilding after keymap reload")
			return
		}
		log.Info("keymap reloaded")
		app.toast.Show("keymap reloaded")
	case samePath(ev.Path, settingsPath):
		log.Info("settings changed, restart to apply")
		app.toast.Show("settings changed, restart to apply")
	}
}
