package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/framehost/internal/engine"
)

// KeyMapper translates Bubble Tea key messages to engine key codes.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	named map[string]byte
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	named := map[string]byte{
		"up":        engine.KeyUpArrow,
		"down":      engine.KeyDownArrow,
		"left":      engine.KeyLeftArrow,
		"right":     engine.KeyRightArrow,
		"enter":     engine.KeyEnter,
		"esc":       engine.KeyEscape,
		"tab":       engine.KeyTab,
		"backspace": engine.KeyBackspace,
		" ":         engine.KeyUse,
		"ctrl+@":    engine.KeyFire, // ctrl+space
		"ctrl+f":    engine.KeyFire,
		",":         engine.KeyStrafeL,
		".":         engine.KeyStrafeR,
		"pause":     engine.KeyPause,
	}
	fkeys := []byte{
		engine.KeyF1, engine.KeyF2, engine.KeyF3, engine.KeyF4,
		engine.KeyF5, engine.KeyF6, engine.KeyF7, engine.KeyF8,
		engine.KeyF9, engine.KeyF10, engine.KeyF11, engine.KeyF12,
	}
	for i, k := range fkeys {
		named[fKeyName(i+1)] = k
	}
	return &KeyMapper{named: named}
}

func fKeyName(n int) string {
	if n < 10 {
		return "f" + string(rune('0'+n))
	}
	return "f1" + string(rune('0'+n-10))
}

// MapKey translates a key message to an engine key code. ok is false for
// keys engines never see.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (key byte, ok bool) {
	if k, found := km.named[msg.String()]; found {
		return k, true
	}

	// Printable ASCII goes through as its lowercase code
	if msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) == 1 {
		r := msg.Runes[0]
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r > ' ' && r < 0x7f {
			return byte(r), true
		}
	}
	return 0, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionSessions
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionSessions
	}

	return MenuActionNone
}
