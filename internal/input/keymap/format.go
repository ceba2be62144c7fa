package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// Format is a keymap file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

var (
	// ErrUnsupportedFormat is returned for file extensions with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported keymap format")

	// ErrMalformed is returned when a file cannot be decoded.
	ErrMalformed = errors.New("malformed keymap")
)

// FormatFor picks a format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Parse decodes data in the given format. It does not validate records.
func Parse(data []byte, format Format) (*Keymap, error) {
	km := &Keymap{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, km); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, km); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case FormatJSON:
		return parseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return km, nil
}

func parseJSON(data []byte) (*Keymap, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Keymap{}, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformed)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformed)
	}

	km := &Keymap{}
	doc.Get("buttons").ForEach(func(_, v gjson.Result) bool {
		km.Buttons = append(km.Buttons, Button{
			KeyName:   v.Get("keyName").String(),
			Transform: transformOf(v),
		})
		return true
	})
	doc.Get("draggableButtons").ForEach(func(_, v gjson.Result) bool {
		km.DraggableButtons = append(km.DraggableButtons, DraggableButton{
			KeyName:   v.Get("keyName").String(),
			Transform: transformOf(v),
		})
		return true
	})
	doc.Get("mouseAreas").ForEach(func(_, v gjson.Result) bool {
		km.MouseAreas = append(km.MouseAreas, MouseArea{
			KeyName:   v.Get("keyName").String(),
			Transform: transformOf(v),
		})
		return true
	})
	doc.Get("joysticks").ForEach(func(_, v gjson.Result) bool {
		km.Joysticks = append(km.Joysticks, Joystick{
			KeyName:   v.Get("keyName").String(),
			Up:        v.Get("up").String(),
			Down:      v.Get("down").String(),
			Left:      v.Get("left").String(),
			Right:     v.Get("right").String(),
			Transform: transformOf(v),
		})
		return true
	})
	return km, nil
}

func transformOf(v gjson.Result) Transform {
	t := v.Get("transform")
	return Transform{
		X:    t.Get("x").Float(),
		Y:    t.Get("y").Float(),
		Size: t.Get("size").Float(),
	}
}

// Marshal encodes km in the given format.
func Marshal(km *Keymap, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(km)
	case FormatTOML:
		return toml.Marshal(km)
	case FormatJSON:
		return marshalJSON(km)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func marshalJSON(km *Keymap) ([]byte, error) {
	doc := []byte("{}")
	fields := []struct {
		path  string
		value any
	}{
		{KindButton.String(), nonNil(km.Buttons)},
		{KindDraggableButton.String(), nonNil(km.DraggableButtons)},
		{KindMouseArea.String(), nonNil(km.MouseAreas)},
		{KindJoystick.String(), nonNil(km.Joysticks)},
	}
	var err error
	for _, f := range fields {
		doc, err = sjson.SetBytesOptions(doc, f.path, f.value, &sjson.Options{Optimistic: true})
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.path, err)
		}
	}
	return doc, nil
}

// nonNil keeps empty collections as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
