// Package config loads playinput settings.
//
// Settings are layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Command line flags      │  ← applied by the caller
//	├─────────────────────────────┤
//	│  2. Environment Variables   │  ← PLAYINPUT_*
//	├─────────────────────────────┤
//	│  1. Settings file           │  ← settings.toml
//	├─────────────────────────────┤
//	│  0. Built-in defaults       │
//	└─────────────────────────────┘
//
// # File Format
//
//	[input]
//	keymapping = true
//	mouseMapping = false
//	sensitivity = 1.0
//	keymap = "keymap.yaml"
//
//	[logging]
//	level = "info"
//	json = false
//
// A relative keymap path is resolved against the settings file's directory.
package config
