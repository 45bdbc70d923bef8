package engine

import "fmt"

// Key codes understood by engines. Printable ASCII keys use their lowercase
// character value; the rest follow the classic doom key set.
const (
	KeyRightArrow = 0xae
	KeyLeftArrow  = 0xac
	KeyUpArrow    = 0xad
	KeyDownArrow  = 0xaf
	KeyStrafeL    = 0xa0
	KeyStrafeR    = 0xa1
	KeyUse        = 0xa2
	KeyFire       = 0xa3
	KeyEscape     = 27
	KeyEnter      = 13
	KeyTab        = 9
	KeyBackspace  = 0x7f
	KeyPause      = 0xff
	KeySpace      = ' '

	KeyRShift = 0x80 + 0x36
	KeyRCtrl  = 0x80 + 0x1d
	KeyRAlt   = 0x80 + 0x38

	KeyF1  = 0x80 + 0x3b
	KeyF2  = 0x80 + 0x3c
	KeyF3  = 0x80 + 0x3d
	KeyF4  = 0x80 + 0x3e
	KeyF5  = 0x80 + 0x3f
	KeyF6  = 0x80 + 0x40
	KeyF7  = 0x80 + 0x41
	KeyF8  = 0x80 + 0x42
	KeyF9  = 0x80 + 0x43
	KeyF10 = 0x80 + 0x44
	KeyF11 = 0x80 + 0x57
	KeyF12 = 0x80 + 0x58
)

// KeyName returns a short printable name for a key code.
func KeyName(key byte) string {
	switch key {
	case KeyRightArrow:
		return "right"
	case KeyLeftArrow:
		return "left"
	case KeyUpArrow:
		return "up"
	case KeyDownArrow:
		return "down"
	case KeyStrafeL:
		return "strafe-left"
	case KeyStrafeR:
		return "strafe-right"
	case KeyUse:
		return "use"
	case KeyFire:
		return "fire"
	case KeyEscape:
		return "escape"
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	case KeyBackspace:
		return "backspace"
	case KeyPause:
		return "pause"
	case KeySpace:
		return "space"
	case KeyRShift:
		return "shift"
	case KeyRCtrl:
		return "ctrl"
	case KeyRAlt:
		return "alt"
	}
	if key >= KeyF1 && key <= KeyF10 {
		return fmt.Sprintf("f%d", key-KeyF1+1)
	}
	switch key {
	case KeyF11:
		return "f11"
	case KeyF12:
		return "f12"
	}
	if key > ' ' && key < 0x7f {
		return string(rune(key))
	}
	return "?"
}
