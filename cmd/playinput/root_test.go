package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestKeysCommand(t *testing.T) {
	out, err := execute(t, "keys")
	require.NoError(t, err)

	assert.Contains(t, out, "Space\n")
	assert.Contains(t, out, "F2\n")
	assert.Contains(t, out, "(reserved)")
}

func TestInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "keymap.toml")

	out, err := execute(t, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	_, err = execute(t, "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init", "--force", path)
	require.NoError(t, err)

	out, err = execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "buttons:           2")
	assert.Contains(t, out, "joysticks:         1")
}

func TestValidateRejects(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("buttons:\n  - keyName: \"\"\n"), 0o644))

	tests := []struct {
		name string
		args []string
	}{
		{"missing argument", []string{"validate"}},
		{"missing file", []string{"validate", filepath.Join(dir, "none.yaml")}},
		{"unsupported format", []string{"validate", filepath.Join(dir, "keymap.ini")}},
		{"invalid record", []string{"validate", bad}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestValidateWarnsAboutReservedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keymap.json")
	data := `{"buttons":[` +
		`{"keyName":"PrintScreen","transform":{"x":0.5,"y":0.5,"size":0.1}},` +
		`{"keyName":"LAlt","transform":{"x":0.2,"y":0.5,"size":0.1}}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: PrintScreen cannot be rebound in the editor\n")
	assert.Contains(t, out, "warning: LAlt cannot be rebound in the editor\n")
	assert.NotContains(t, out, "never fires")
}
