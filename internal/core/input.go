package core

// Action represents a semantic input intent, abstracted from physical keys.
type Action int

const (
	ActionNone         Action = iota
	ActionUp                  // Up arrow - snake turn; flap / jump in the other modes
	ActionDown                // Down arrow - snake turn; duck (held) in cat mode
	ActionLeft                // Left arrow - snake turn
	ActionRight               // Right arrow - snake turn
	ActionJump                // Space - flap / jump; starts the game from the menu
	ActionDuckRelease         // End of a held duck (key-up emulation or mouse release)
	ActionConfirm             // Enter - start from the menu
	ActionRestart             // R - restart after game over (cooldown applies)
	ActionForceRestart        // Explicit restart control, bypasses the cooldown
	ActionBack                // Esc / B - back to the demo menu
	ActionQuit                // Q, Ctrl+C - exit
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
	case ActionJump:
		return "Jump"
	case ActionDuckRelease:
		return "DuckRelease"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionForceRestart:
		return "ForceRestart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
