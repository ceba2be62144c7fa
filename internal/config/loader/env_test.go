package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnvLoader(env ...string) *EnvLoader {
	l := NewEnvLoader("PLAYINPUT_")
	l.environ = func() []string { return env }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := newTestEnvLoader(
		"PLAYINPUT_LOG_LEVEL=debug",
		"PLAYINPUT_MOUSE_MAPPING=true",
		"PLAYINPUT_SENSITIVITY=1.5",
		"PLAYINPUT_KEYMAP=/tmp/k.yaml",
		"HOME=/root",
	)

	got, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"logging": map[string]any{"level": "debug"},
		"input": map[string]any{
			"mouseMapping": true,
			"sensitivity":  1.5,
			"keymap":       "/tmp/k.yaml",
		},
	}, got)
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	l := newTestEnvLoader("PLAYINPUT_INPUT_KEY_REPEAT_DELAY=250")
	got, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"input": map[string]any{"keyRepeatDelay": int64(250)}}, got)
}

func TestEnvLoader_LoadEmpty(t *testing.T) {
	got, err := newTestEnvLoader("PATH=/bin").Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader("PLAYINPUT_")
	tests := []struct {
		env  string
		want string
	}{
		{"PLAYINPUT_INPUT_MOUSE_MAPPING", "input.mouseMapping"},
		{"PLAYINPUT_LOGGING_LEVEL", "logging.level"},
		{"PLAYINPUT_DEBUG", "debug"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.envToPath(tt.env), tt.env)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"ON", true},
		{"no", false},
		{"42", int64(42)},
		{"0", int64(0)},
		{"1", int64(1)},
		{"0.25", 0.25},
		{"info", "info"},
		{"", ""},
		{"1.2.3", "1.2.3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseValue(tt.in), tt.in)
	}
}
