package key

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameFor(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeA, "A"},
		{CodeW, "W"},
		{CodeZ, "Z"},
		{Code1, "1"},
		{Code0, "0"},
		{CodeSpace, "Space"},
		{CodeEscape, "Esc"},
		{CodeF12, "F12"},
		{CodeUp, "Up"},
		{CodeKPEnter, "KPEnter"},
		{CodeLeftGUI, "LCmd"},
		{CodeRightAlt, "RAlt"},
		{CodePrintScreen, "PrintScreen"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := NameFor(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNameForUnknown(t *testing.T) {
	_, err := NameFor(Code(0x01))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKeyCode))
	assert.False(t, Code(0x01).IsKnown())
	assert.Equal(t, "Code(0x01)", Code(0x01).String())
}

func TestNameTableInjective(t *testing.T) {
	seen := make(map[string]Code)
	for code, name := range codeNames {
		if prev, dup := seen[name]; dup {
			t.Fatalf("name %q used by both %v and %v", name, uint16(prev), uint16(code))
		}
		seen[name] = code
	}
}

func TestCodeForRoundTrip(t *testing.T) {
	for _, name := range Names() {
		code, ok := CodeFor(name)
		require.True(t, ok, name)
		got, err := NameFor(code)
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}
}

func TestCodeForIsExact(t *testing.T) {
	_, ok := CodeFor("w")
	assert.False(t, ok)
	_, ok = CodeFor(" W")
	assert.False(t, ok)
	code, ok := CodeFor("W")
	assert.True(t, ok)
	assert.Equal(t, CodeW, code)
}

func TestIsForbidden(t *testing.T) {
	for _, c := range []Code{CodeLeftGUI, CodeRightGUI, CodeLeftAlt, CodeRightAlt, CodePrintScreen} {
		assert.True(t, IsForbidden(c), c.String())
	}
	for _, c := range []Code{CodeA, CodeLeftShift, CodeSpace, CodeEscape} {
		assert.False(t, IsForbidden(c), c.String())
	}
}

func TestIsModifier(t *testing.T) {
	assert.True(t, CodeLeftControl.IsModifier())
	assert.True(t, CodeRightGUI.IsModifier())
	assert.False(t, CodeA.IsModifier())
	assert.False(t, CodeNumLock.IsModifier())
}
