package keymap

// DefaultKeymap returns the layout used when no keymap file is configured:
// a WASD stick, a jump button and a mouse-driven camera.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Buttons: []Button{
			{KeyName: "Space", Transform: Transform{X: 0.85, Y: 0.8, Size: 0.08}},
			{KeyName: "E", Transform: Transform{X: 0.75, Y: 0.85, Size: 0.06}},
		},
		MouseAreas: []MouseArea{
			{KeyName: "Mouse", Transform: Transform{X: 0.7, Y: 0.4, Size: 0.5}},
		},
		Joysticks: []Joystick{
			{
				KeyName:   "Keyboard",
				Up:        "W",
				Down:      "S",
				Left:      "A",
				Right:     "D",
				Transform: Transform{X: 0.15, Y: 0.75, Size: 0.2},
			},
		},
	}
}
