package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitError(t *testing.T) {
	cause := errors.New("boom")
	err := &InitError{Component: "keymap", Err: cause}

	assert.Equal(t, "init keymap: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestComponentError(t *testing.T) {
	baseErr := errors.New("base error")

	tests := []struct {
		name     string
		err      *ComponentError
		expected string
	}{
		{
			name:     "full error",
			err:      NewComponentError("watcher", "watch", baseErr),
			expected: "watcher: watch: base error",
		},
		{
			name:     "no action",
			err:      NewComponentError("watcher", "", baseErr),
			expected: "watcher: base error",
		},
		{
			name:     "no underlying error",
			err:      NewComponentError("host", "stop", nil),
			expected: "host: stop",
		},
		{
			name:     "component only",
			err:      NewComponentError("host", "", nil),
			expected: "host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestComponentErrorIs(t *testing.T) {
	err := NewComponentError("watcher", "close", ErrNotRunning)
	other := NewComponentError("watcher", "close", ErrNotRunning)

	assert.True(t, errors.Is(err, ErrNotRunning))
	assert.True(t, errors.Is(err, err))
	assert.False(t, errors.Is(err, other))
	assert.False(t, errors.Is(err, ErrAlreadyRunning))

	var nilErr *ComponentError
	assert.Empty(t, nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}

func TestErrorList(t *testing.T) {
	var list ErrorList
	assert.NoError(t, list.AsError())
	assert.Empty(t, list.Error())

	list.Add(nil)
	assert.Equal(t, 0, list.Len())

	list.Add(ErrNotRunning)
	assert.Equal(t, "application not running", list.Error())

	list.Add(ErrStopped)
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, "2 errors: first: application not running", list.Error())

	err := list.AsError()
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.ErrorIs(t, err, ErrStopped)
}
