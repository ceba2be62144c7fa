package key

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModifierStateIsActive(t *testing.T) {
	tests := []struct {
		left, right bool
		want        bool
	}{
		{false, false, false},
		{true, false, true},
		{false, true, true},
		{true, true, true},
	}

	for _, tt := range tests {
		m := NewModifierState()
		m.SetLeft(tt.left)
		m.SetRight(tt.right)
		assert.Equal(t, tt.want, m.IsActive(), "left=%v right=%v", tt.left, tt.right)
	}
}

func TestModifierStateTrack(t *testing.T) {
	m := NewModifierState()

	assert.False(t, m.Track(CodeA, true))
	assert.False(t, m.IsActive())

	assert.True(t, m.Track(CodeLeftGUI, true))
	assert.True(t, m.IsActive())

	assert.True(t, m.Track(CodeRightGUI, true))
	assert.True(t, m.Track(CodeLeftGUI, false))
	assert.True(t, m.IsActive(), "right still held")

	assert.True(t, m.Track(CodeRightGUI, false))
	assert.False(t, m.IsActive())
}

func TestModifierStateAltIsNotCommand(t *testing.T) {
	m := NewModifierState()
	assert.False(t, m.Track(CodeLeftAlt, true))
	assert.False(t, m.IsActive())
}

func TestModifierStateReset(t *testing.T) {
	m := NewModifierState()
	m.SetLeft(true)
	m.SetRight(true)
	m.Reset()
	assert.False(t, m.IsActive())
}

func TestModifierStateConcurrent(t *testing.T) {
	m := NewModifierState()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(on bool) {
			defer wg.Done()
			m.SetLeft(on)
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			_ = m.IsActive()
		}()
	}
	wg.Wait()
	m.SetLeft(false)
	assert.False(t, m.IsActive())
}
