package key

import (
	"errors"
	"fmt"
	"sort"
)

// Code is a raw platform key code. Values follow the USB HID keyboard
// usage page, which is what game-controller style keyboard APIs report.
type Code uint16

// Letter keys.
const (
	CodeA Code = 0x04 + iota
	CodeB
	CodeC
	CodeD
	CodeE
	CodeF
	CodeG
	CodeH
	CodeI
	CodeJ
	CodeK
	CodeL
	CodeM
	CodeN
	CodeO
	CodeP
	CodeQ
	CodeR
	CodeS
	CodeT
	CodeU
	CodeV
	CodeW
	CodeX
	CodeY
	CodeZ
)

// Number row.
const (
	Code1 Code = 0x1E + iota
	Code2
	Code3
	Code4
	Code5
	Code6
	Code7
	Code8
	Code9
	Code0
)

// Editing and punctuation keys.
const (
	CodeEnter Code = 0x28 + iota
	CodeEscape
	CodeBackspace
	CodeTab
	CodeSpace
	CodeMinus
	CodeEqual
	CodeLeftBracket
	CodeRightBracket
	CodeBackslash
)

const (
	CodeSemicolon Code = 0x33 + iota
	CodeQuote
	CodeGrave
	CodeComma
	CodePeriod
	CodeSlash
	CodeCapsLock
)

// Function keys.
const (
	CodeF1 Code = 0x3A + iota
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12
)

// Navigation block.
const (
	CodePrintScreen Code = 0x46 + iota
	CodeScrollLock
	CodePause
	CodeInsert
	CodeHome
	CodePageUp
	CodeDelete
	CodeEnd
	CodePageDown
	CodeRight
	CodeLeft
	CodeDown
	CodeUp
	CodeNumLock
)

// Keypad.
const (
	CodeKPDivide Code = 0x54 + iota
	CodeKPMultiply
	CodeKPSubtract
	CodeKPAdd
	CodeKPEnter
	CodeKP1
	CodeKP2
	CodeKP3
	CodeKP4
	CodeKP5
	CodeKP6
	CodeKP7
	CodeKP8
	CodeKP9
	CodeKP0
	CodeKPDecimal
)

// Modifier keys. The GUI keys are the "command" keys on macOS.
const (
	CodeLeftControl Code = 0xE0 + iota
	CodeLeftShift
	CodeLeftAlt
	CodeLeftGUI
	CodeRightControl
	CodeRightShift
	CodeRightAlt
	CodeRightGUI
)

// ErrUnknownKeyCode is returned when a code has no logical name.
var ErrUnknownKeyCode = errors.New("unknown key code")

// codeNames maps codes to logical key names.
var codeNames = map[Code]string{
	CodeA: "A", CodeB: "B", CodeC: "C", CodeD: "D", CodeE: "E", CodeF: "F",
	CodeG: "G", CodeH: "H", CodeI: "I", CodeJ: "J", CodeK: "K", CodeL: "L",
	CodeM: "M", CodeN: "N", CodeO: "O", CodeP: "P", CodeQ: "Q", CodeR: "R",
	CodeS: "S", CodeT: "T", CodeU: "U", CodeV: "V", CodeW: "W", CodeX: "X",
	CodeY: "Y", CodeZ: "Z",

	Code1: "1", Code2: "2", Code3: "3", Code4: "4", Code5: "5",
	Code6: "6", Code7: "7", Code8: "8", Code9: "9", Code0: "0",

	CodeEnter:        "Enter",
	CodeEscape:       "Esc",
	CodeBackspace:    "Backspace",
	CodeTab:          "Tab",
	CodeSpace:        "Space",
	CodeMinus:        "-",
	CodeEqual:        "=",
	CodeLeftBracket:  "[",
	CodeRightBracket: "]",
	CodeBackslash:    "\\",
	CodeSemicolon:    ";",
	CodeQuote:        "'",
	CodeGrave:        "`",
	CodeComma:        ",",
	CodePeriod:       ".",
	CodeSlash:        "/",
	CodeCapsLock:     "CapsLock",

	CodeF1: "F1", CodeF2: "F2", CodeF3: "F3", CodeF4: "F4",
	CodeF5: "F5", CodeF6: "F6", CodeF7: "F7", CodeF8: "F8",
	CodeF9: "F9", CodeF10: "F10", CodeF11: "F11", CodeF12: "F12",

	CodePrintScreen: "PrintScreen",
	CodeScrollLock:  "ScrollLock",
	CodePause:       "Pause",
	CodeInsert:      "Insert",
	CodeHome:        "Home",
	CodePageUp:      "PageUp",
	CodeDelete:      "Delete",
	CodeEnd:         "End",
	CodePageDown:    "PageDown",
	CodeRight:       "Right",
	CodeLeft:        "Left",
	CodeDown:        "Down",
	CodeUp:          "Up",
	CodeNumLock:     "NumLock",

	CodeKPDivide:   "KP/",
	CodeKPMultiply: "KP*",
	CodeKPSubtract: "KP-",
	CodeKPAdd:      "KP+",
	CodeKPEnter:    "KPEnter",
	CodeKP1:        "KP1",
	CodeKP2:        "KP2",
	CodeKP3:        "KP3",
	CodeKP4:        "KP4",
	CodeKP5:        "KP5",
	CodeKP6:        "KP6",
	CodeKP7:        "KP7",
	CodeKP8:        "KP8",
	CodeKP9:        "KP9",
	CodeKP0:        "KP0",
	CodeKPDecimal:  "KP.",

	CodeLeftControl:  "LCtrl",
	CodeLeftShift:    "LShift",
	CodeLeftAlt:      "LAlt",
	CodeLeftGUI:      "LCmd",
	CodeRightControl: "RCtrl",
	CodeRightShift:   "RShift",
	CodeRightAlt:     "RAlt",
	CodeRightGUI:     "RCmd",
}

// nameCodes is the inverse of codeNames, built at init.
var nameCodes = func() map[string]Code {
	m := make(map[string]Code, len(codeNames))
	for c, n := range codeNames {
		m[n] = c
	}
	return m
}()

// NameFor returns the logical key name for a raw code.
func NameFor(code Code) (string, error) {
	if name, ok := codeNames[code]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: 0x%02X", ErrUnknownKeyCode, uint16(code))
}

// CodeFor returns the raw code for a logical key name.
// The lookup is exact: "w" does not match "W".
func CodeFor(name string) (Code, bool) {
	c, ok := nameCodes[name]
	return c, ok
}

// IsKnown reports whether the code has a logical name.
func (c Code) IsKnown() bool {
	_, ok := codeNames[c]
	return ok
}

// String returns the logical name, or a hex form for unknown codes.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(0x%02X)", uint16(c))
}

// IsModifier reports whether the code is one of the eight modifier keys.
func (c Code) IsModifier() bool {
	return c >= CodeLeftControl && c <= CodeRightGUI
}

// Names returns every known logical key name, sorted.
func Names() []string {
	names := make([]string, 0, len(codeNames))
	for _, n := range codeNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Forbidden lists the keys that can never be bound: both command keys,
// both alt keys and print screen. The platform and the hotkey layer own them.
var Forbidden = []Code{
	CodeLeftGUI,
	CodeRightGUI,
	CodeLeftAlt,
	CodeRightAlt,
	CodePrintScreen,
}

// IsForbidden reports whether the code is in the forbidden set.
func IsForbidden(code Code) bool {
	for _, f := range Forbidden {
		if f == code {
			return true
		}
	}
	return false
}
