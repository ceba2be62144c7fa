package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/playinput/internal/config/loader"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PLAYINPUT_"

// Settings are the user-facing switches.
type Settings struct {
	// Keymapping enables the input dispatcher. When false it never
	// activates and all input passes through.
	Keymapping bool

	// MouseMapping routes the mouse to camera areas and enables the alt
	// hotkey that frees the cursor.
	MouseMapping bool

	// Sensitivity scales mouse and stick motion.
	Sensitivity float64

	// KeymapPath is the keymap file. Empty means the built-in layout.
	KeymapPath string

	// LogLevel is debug, info, warn or error.
	LogLevel string

	// LogJSON switches logs to JSON.
	LogJSON bool

	// Path is the settings file these were loaded from, if any.
	Path string
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Keymapping:  true,
		Sensitivity: 1,
		LogLevel:    "info",
	}
}

// DefaultPath returns the settings file under the user config directory,
// or "" when that directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "playinput", "settings.toml")
}

// Load reads path (which may be empty or missing), applies environment
// overrides and validates the result.
func Load(path string) (Settings, error) {
	return load(loader.NewTOMLLoader(path), loader.NewEnvLoader(EnvPrefix))
}

func load(file *loader.TOMLLoader, env loader.Loader) (Settings, error) {
	s := Default()

	fileMap, err := file.Load()
	if err != nil {
		return s, err
	}
	if fileMap != nil {
		s.Path = file.Path()
	}
	envMap, err := env.Load()
	if err != nil {
		return s, err
	}

	merged := loader.DeepMerge(fileMap, envMap)
	if err := s.apply(merged); err != nil {
		return s, err
	}
	if s.KeymapPath != "" && s.Path != "" && !filepath.IsAbs(s.KeymapPath) {
		s.KeymapPath = filepath.Join(filepath.Dir(s.Path), s.KeymapPath)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.Sensitivity <= 0 {
		return &SettingError{Path: "input.sensitivity", Message: "must be positive", Value: s.Sensitivity}
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &SettingError{Path: "logging.level", Message: "must be debug, info, warn or error", Value: s.LogLevel}
	}
	return nil
}

func (s *Settings) apply(m map[string]any) error {
	input, err := section(m, "input")
	if err != nil {
		return err
	}
	logging, err := section(m, "logging")
	if err != nil {
		return err
	}

	fields := []struct {
		path string
		src  map[string]any
		key  string
		set  func(v any) error
	}{
		{"input.keymapping", input, "keymapping", boolInto(&s.Keymapping)},
		{"input.mouseMapping", input, "mouseMapping", boolInto(&s.MouseMapping)},
		{"input.sensitivity", input, "sensitivity", floatInto(&s.Sensitivity)},
		{"input.keymap", input, "keymap", stringInto(&s.KeymapPath)},
		{"logging.level", logging, "level", stringInto(&s.LogLevel)},
		{"logging.json", logging, "json", boolInto(&s.LogJSON)},
	}
	for _, f := range fields {
		v, ok := f.src[f.key]
		if !ok {
			continue
		}
		if err := f.set(v); err != nil {
			return &SettingError{Path: f.path, Message: err.Error(), Value: v}
		}
	}
	return nil
}

func section(m map[string]any, name string) (map[string]any, error) {
	v, ok := m[name]
	if !ok {
		return nil, nil
	}
	sec, ok := v.(map[string]any)
	if !ok {
		return nil, &SettingError{Path: name, Message: "must be a table", Value: v}
	}
	return sec, nil
}

func boolInto(dst *bool) func(any) error {
	return func(v any) error {
		switch b := v.(type) {
		case bool:
			*dst = b
		case int64:
			if b != 0 && b != 1 {
				return fmt.Errorf("expected bool, got %d", b)
			}
			*dst = b == 1
		default:
			return fmt.Errorf("expected bool, got %T", v)
		}
		return nil
	}
}

func floatInto(dst *float64) func(any) error {
	return func(v any) error {
		switch f := v.(type) {
		case float64:
			*dst = f
		case int64:
			*dst = float64(f)
		default:
			return fmt.Errorf("expected number, got %T", v)
		}
		return nil
	}
}

func stringInto(dst *string) func(any) error {
	return func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		*dst = s
		return nil
	}
}
