package app

import (
	"errors"
	"fmt"
	"strings"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotRunning indicates the application is not running.
	ErrNotRunning = errors.New("application not running")

	// ErrStopped indicates the application was shut down and cannot run again.
	ErrStopped = errors.New("application stopped")

	// ErrNotTerminal is returned when run without an interactive terminal.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrEditorUnavailable indicates the keymap editor cannot open.
	ErrEditorUnavailable = errors.New("keymap editor unavailable")
)

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ComponentError is a failure of one component while performing an action,
// such as the watcher closing or the host stopping.
type ComponentError struct {
	Component string
	Action    string
	Err       error
}

// NewComponentError creates a new ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{
		Component: component,
		Action:    action,
		Err:       err,
	}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	parts := []string{e.Component}
	if e.Action != "" {
		parts = append(parts, e.Action)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements errors.Is for ComponentError.
// Matches both the wrapper itself and the wrapped error.
func (e *ComponentError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*ComponentError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}

// ErrorList collects the failures of a teardown that keeps going after
// an error. Not safe for concurrent use.
type ErrorList struct {
	errs []error
}

// Add records err. Nil is ignored.
func (l *ErrorList) Add(err error) {
	if err != nil {
		l.errs = append(l.errs, err)
	}
}

// Len returns the number of recorded errors.
func (l *ErrorList) Len() int { return len(l.errs) }

func (l *ErrorList) Error() string {
	if len(l.errs) < 2 {
		if len(l.errs) == 0 {
			return ""
		}
		return l.errs[0].Error()
	}
	return fmt.Sprintf("%d errors: first: %v", len(l.errs), l.errs[0])
}

// Unwrap exposes every recorded error to errors.Is and errors.As.
func (l *ErrorList) Unwrap() []error { return l.errs }

// AsError returns the list, or nil when it is empty.
func (l *ErrorList) AsError() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}
