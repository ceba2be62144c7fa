package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceKindString(t *testing.T) {
	tests := []struct {
		kind DeviceKind
		want string
	}{
		{DeviceKeyboard, "keyboard"},
		{DeviceMouse, "mouse"},
		{DeviceController, "controller"},
		{DeviceKind(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestNotifierOrder(t *testing.T) {
	n := NewNotifier()
	var got []string

	n.Subscribe(func(DeviceKind) { got = append(got, "all-1") })
	n.SubscribeKind(DeviceController, func(DeviceKind) { got = append(got, "controller") })
	n.SubscribeKind(DeviceMouse, func(DeviceKind) { got = append(got, "mouse") })
	n.Subscribe(func(DeviceKind) { got = append(got, "all-2") })

	n.Connected(DeviceController)
	assert.Equal(t, []string{"all-1", "controller", "all-2"}, got)
}

func TestNotifierUnsubscribe(t *testing.T) {
	n := NewNotifier()
	calls := 0
	sub := n.SubscribeKind(DeviceKeyboard, func(DeviceKind) { calls++ })

	n.Connected(DeviceKeyboard)
	sub.Unsubscribe()
	sub.Unsubscribe()
	n.Connected(DeviceKeyboard)

	assert.Equal(t, 1, calls)
}

func TestNotifierClose(t *testing.T) {
	n := NewNotifier()
	calls := 0
	n.Subscribe(func(DeviceKind) { calls++ })

	n.Close()
	n.Close()
	n.Connected(DeviceMouse)
	assert.Equal(t, 0, calls)
}

func TestRectContainsAndCenter(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	assert.Equal(t, Point{X: 60, Y: 45}, r.Center())
	assert.True(t, r.Contains(Point{X: 10, Y: 20}))
	assert.True(t, r.Contains(Point{X: 110, Y: 70}))
	assert.False(t, r.Contains(Point{X: 111, Y: 70}))
	assert.False(t, r.IsEmpty())
	assert.True(t, Rect{Width: 0, Height: 5}.IsEmpty())
}

func TestElementAlias(t *testing.T) {
	_, ok := Element{}.Alias()
	assert.False(t, ok)

	_, ok = Element{Aliases: []string{""}}.Alias()
	assert.False(t, ok)

	a, ok := Element{Aliases: []string{"Button A", "A"}}.Alias()
	assert.True(t, ok)
	assert.Equal(t, "Button A", a)
}
