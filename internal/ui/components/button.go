package components

import (
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// Button is a labelled choice in a dialog, answered by pressing Key.
// The highlighted button is the one Esc or Enter falls back to.
type Button struct {
	Key    string
	Label  string
	Active bool
}

// NewButton creates a new button.
func NewButton(key, label string, active bool) Button {
	return Button{
		Key:    key,
		Label:  label,
		Active: active,
	}
}

// View renders the button as "[K] Label".
func (b Button) View() string {
	label := "  [" + b.Key + "] " + b.Label + " "
	if b.Active {
		return theme.ButtonActive.Render("▸" + label)
	}
	return theme.ButtonInactive.Render(" " + label)
}
