package rebind

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/playinput/internal/input/keymap"
)

type recordingEditor struct {
	keys []string
}

func (e *recordingEditor) SetKey(name string) {
	e.keys = append(e.keys, name)
}

func TestCaptureRejected(t *testing.T) {
	store := keymap.NewMemoryStore(keymap.DefaultKeymap())
	editor := &recordingEditor{}
	rebuilds := 0
	c := New(store, editor, WithRebuild(func() error { rebuilds++; return nil }))
	require.NoError(t, c.Select(keymap.Ref{Kind: keymap.KindButton}))

	ok, err := c.Capture(Candidate{Name: "J", Allowed: false})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, editor.keys, "no SetKey for rejected capture")
	assert.Equal(t, "Space", store.Keymap().Buttons[0].KeyName, "no partial commit")
	assert.Equal(t, 0, rebuilds)

	ok, err = c.Capture(Candidate{Name: "", Allowed: true})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCaptureWithoutSelection(t *testing.T) {
	store := keymap.NewMemoryStore(keymap.DefaultKeymap())
	editor := &recordingEditor{}
	c := New(store, editor)

	ok, err := c.Capture(Candidate{Name: "J", Allowed: true})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"J"}, editor.keys)
	assert.Equal(t, keymap.DefaultKeymap().KeyNames(), store.Keymap().KeyNames())
}

func TestCaptureCommitsAndRebuilds(t *testing.T) {
	store := keymap.NewMemoryStore(keymap.DefaultKeymap())
	editor := &recordingEditor{}
	rebuilds := 0
	c := New(store, editor, WithRebuild(func() error { rebuilds++; return nil }))

	ref := keymap.Ref{Kind: keymap.KindJoystick, Slot: keymap.SlotUp}
	require.NoError(t, c.Select(ref))
	got, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, ref, got)

	ok, err := c.Capture(Candidate{Name: "I", Allowed: true})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "I", store.Keymap().Joysticks[0].Up)
	assert.Equal(t, 1, rebuilds)

	c.ClearSelection()
	_, ok = c.Selected()
	assert.False(t, ok)
	assert.ErrorIs(t, c.Commit("K"), ErrNoSelection)
}

func TestSelectInvalidRef(t *testing.T) {
	c := New(keymap.NewMemoryStore(keymap.DefaultKeymap()), nil)
	err := c.Select(keymap.Ref{Kind: keymap.KindDraggableButton})
	assert.True(t, errors.Is(err, keymap.ErrInvalidRef))
	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestCommitWriteFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.yaml")
	data, err := keymap.Marshal(keymap.DefaultKeymap(), keymap.FormatYAML)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	store, err := keymap.Open(path)
	require.NoError(t, err)
	rebuilds := 0
	c := New(store, nil, WithRebuild(func() error { rebuilds++; return nil }))
	require.NoError(t, c.Select(keymap.Ref{Kind: keymap.KindButton}))

	// Removing the directory makes the atomic write fail.
	require.NoError(t, os.RemoveAll(dir))

	ok, err := c.Capture(Candidate{Name: "J", Allowed: true})
	assert.True(t, ok)
	require.Error(t, err)
	assert.Equal(t, "Space", store.Keymap().Buttons[0].KeyName)
	assert.Equal(t, 0, rebuilds)
}

func TestRebuildErrorReturned(t *testing.T) {
	boom := errors.New("boom")
	c := New(keymap.NewMemoryStore(keymap.DefaultKeymap()), nil, WithRebuild(func() error { return boom }))
	require.NoError(t, c.Select(keymap.Ref{Kind: keymap.KindButton, Index: 1}))
	_, err := c.Capture(Candidate{Name: "Q", Allowed: true})
	assert.ErrorIs(t, err, boom)
}
