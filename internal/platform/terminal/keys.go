package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/playinput/internal/input/key"
)

// shiftedRunes maps shifted punctuation back to the key that produces it
// on a US layout.
var shiftedRunes = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
	'_': '-', '+': '=', '{': '[', '}': ']', '|': '\\',
	':': ';', '"': '\'', '~': '`', '<': ',', '>': '.', '?': '/',
}

// convertKey converts a tcell key event to a raw key code.
func convertKey(ev *tcell.EventKey) (key.Code, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return convertRune(ev.Rune())
	case tcell.KeyEnter:
		return key.CodeEnter, true
	case tcell.KeyEscape:
		return key.CodeEscape, true
	case tcell.KeyTab:
		return key.CodeTab, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.CodeBackspace, true
	case tcell.KeyDelete:
		return key.CodeDelete, true
	case tcell.KeyInsert:
		return key.CodeInsert, true
	case tcell.KeyHome:
		return key.CodeHome, true
	case tcell.KeyEnd:
		return key.CodeEnd, true
	case tcell.KeyPgUp:
		return key.CodePageUp, true
	case tcell.KeyPgDn:
		return key.CodePageDown, true
	case tcell.KeyUp:
		return key.CodeUp, true
	case tcell.KeyDown:
		return key.CodeDown, true
	case tcell.KeyLeft:
		return key.CodeLeft, true
	case tcell.KeyRight:
		return key.CodeRight, true
	case tcell.KeyPrint:
		return key.CodePrintScreen, true
	case tcell.KeyPause:
		return key.CodePause, true
	case tcell.KeyF1:
		return key.CodeF1, true
	case tcell.KeyF2:
		return key.CodeF2, true
	case tcell.KeyF3:
		return key.CodeF3, true
	case tcell.KeyF4:
		return key.CodeF4, true
	case tcell.KeyF5:
		return key.CodeF5, true
	case tcell.KeyF6:
		return key.CodeF6, true
	case tcell.KeyF7:
		return key.CodeF7, true
	case tcell.KeyF8:
		return key.CodeF8, true
	case tcell.KeyF9:
		return key.CodeF9, true
	case tcell.KeyF10:
		return key.CodeF10, true
	case tcell.KeyF11:
		return key.CodeF11, true
	case tcell.KeyF12:
		return key.CodeF12, true
	}

	// Remaining control keys carry their letter
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return convertRune(rune('a' + (k - tcell.KeyCtrlA)))
	}
	return 0, false
}

// convertRune converts a printable rune to the key that types it.
func convertRune(r rune) (key.Code, bool) {
	if r == ' ' {
		return key.CodeSpace, true
	}
	if base, ok := shiftedRunes[r]; ok {
		r = base
	}
	return key.CodeFor(string(unicode.ToUpper(r)))
}

// modifierCodes returns the modifier keys held during ev. Terminals fold
// command into meta.
func modifierCodes(mods tcell.ModMask) []key.Code {
	var codes []key.Code
	if mods&tcell.ModCtrl != 0 {
		codes = append(codes, key.CodeLeftControl)
	}
	if mods&tcell.ModAlt != 0 {
		codes = append(codes, key.CodeLeftAlt)
	}
	if mods&tcell.ModMeta != 0 {
		codes = append(codes, key.CodeLeftGUI)
	}
	return codes
}
