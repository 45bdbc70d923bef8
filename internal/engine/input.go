package engine

// Action represents a semantic engine action, abstracted from key codes.
// Engines work with intents rather than raw keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow, W
	ActionDown           // Down arrow, S
	ActionLeft           // Left arrow, A
	ActionRight          // Right arrow, D
	ActionFire           // Fire (ctrl), Space
	ActionUse            // Use, E
	ActionConfirm        // Enter
	ActionRestart        // R
	ActionPause          // P, Escape, Pause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionUse:
		return "Use"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// ActionForKey maps a key code to the action it triggers.
func ActionForKey(key byte) Action {
	switch key {
	case KeyUpArrow, 'w':
		return ActionUp
	case KeyDownArrow, 's':
		return ActionDown
	case KeyLeftArrow, 'a':
		return ActionLeft
	case KeyRightArrow, 'd':
		return ActionRight
	case KeyFire, KeySpace, KeyRCtrl:
		return ActionFire
	case KeyUse, 'e':
		return ActionUse
	case KeyEnter:
		return ActionConfirm
	case 'r':
		return ActionRestart
	case 'p', KeyEscape, KeyPause:
		return ActionPause
	}
	return ActionNone
}

// InputFrame collects the actions triggered by key presses during one
// simulation step.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next step.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Drain polls host until it reports no pending key and returns the actions
// triggered by presses. Every event, press or release, is also passed to
// onKey when it is non-nil.
func Drain(host Host, onKey func(pressed bool, key byte)) InputFrame {
	frame := NewInputFrame()
	for {
		ok, pressed, key := host.PollKey()
		if !ok {
			return frame
		}
		if onKey != nil {
			onKey(pressed, key)
		}
		if pressed {
			frame.Set(ActionForKey(key))
		}
	}
}
