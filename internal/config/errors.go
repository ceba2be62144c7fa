package config

import (
	"errors"
	"fmt"
)

// ErrInvalidSetting is wrapped by every SettingError.
var ErrInvalidSetting = errors.New("invalid setting")

// SettingError describes one rejected setting.
type SettingError struct {
	// Path is the dotted setting path, e.g. "input.sensitivity".
	Path string
	// Message describes the problem.
	Message string
	// Value is the rejected value.
	Value any
}

// Error implements the error interface.
func (e *SettingError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is reports ErrInvalidSetting as a match.
func (e *SettingError) Is(target error) bool {
	return target == ErrInvalidSetting
}
