package motion

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type axisCall struct {
	x, y float64
}

func TestRouterMouseGoesToMouseAxis(t *testing.T) {
	r := NewRouter()
	var got []axisCall
	r.RegisterAxis(NameMouse, uuid.New(), func(x, y float64) { got = append(got, axisCall{x, y}) })

	r.HandleMouseMoved(3, -4)
	assert.Equal(t, []axisCall{{3, -4}}, got)
}

func TestRouterHeldDragTakesPriority(t *testing.T) {
	r := NewRouter()
	held := true
	var cam, drag int
	r.RegisterAxis(NameMouse, uuid.New(), func(x, y float64) { cam++ })
	r.RegisterDrag(uuid.New(), func(dx, dy float64) bool {
		drag++
		return held
	})

	r.HandleMouseMoved(1, 1)
	assert.Equal(t, 1, drag)
	assert.Equal(t, 0, cam)

	held = false
	r.HandleMouseMoved(1, 1)
	assert.Equal(t, 2, drag)
	assert.Equal(t, 1, cam)
}

func TestRouterFakeMouseOnlyDrags(t *testing.T) {
	r := NewRouter()
	var cam, drag int
	r.RegisterAxis(NameMouse, uuid.New(), func(x, y float64) { cam++ })
	r.RegisterDrag(uuid.New(), func(dx, dy float64) bool {
		drag++
		return false
	})

	r.HandleFakeMouseMoved(5, 5)
	assert.Equal(t, 1, drag)
	assert.Equal(t, 0, cam)
}

func TestRouterDirectionPad(t *testing.T) {
	r := NewRouter()
	var got []axisCall
	r.RegisterAxis("RightThumbstick", uuid.New(), func(x, y float64) { got = append(got, axisCall{x, y}) })

	assert.True(t, r.HandleDirectionPad("RightThumbstick", 0.5, -0.25))
	assert.False(t, r.HandleDirectionPad("LeftThumbstick", 1, 1))
	assert.Equal(t, []axisCall{{0.5, -0.25}}, got)
}

func TestRouterRemoveOwner(t *testing.T) {
	r := NewRouter()
	a, b := uuid.New(), uuid.New()
	r.RegisterAxis(NameMouse, a, func(x, y float64) {})
	r.RegisterAxis("LeftThumbstick", b, func(x, y float64) {})
	r.RegisterDrag(a, func(dx, dy float64) bool { return false })

	assert.Equal(t, 2, r.RemoveOwner(a))
	assert.Equal(t, []string{"LeftThumbstick"}, r.Names())
	assert.Equal(t, 1, r.Len())
}

func TestRouterStopAndStart(t *testing.T) {
	r := NewRouter()
	calls := 0
	r.RegisterAxis(NameMouse, uuid.New(), func(x, y float64) { calls++ })

	r.Stop()
	assert.False(t, r.Running())
	assert.Equal(t, 0, r.Len())
	r.HandleMouseMoved(1, 1)

	r.Start()
	r.RegisterAxis(NameMouse, uuid.New(), func(x, y float64) { calls++ })
	r.HandleMouseMoved(1, 1)
	assert.Equal(t, 1, calls)
}

func TestRouterReset(t *testing.T) {
	r := NewRouter()
	r.RegisterAxis("X", uuid.New(), func(x, y float64) {})
	r.RegisterDrag(uuid.New(), func(dx, dy float64) bool { return true })

	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.True(t, r.Running())
	assert.False(t, r.HasAxis("X"))
}
