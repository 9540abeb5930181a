package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// Option is one labeled answer in a MultiChoice.
type Option struct {
	Label string
	Text  string
}

// MultiChoice is a multiple-choice selector component. Options are picked
// with the arrow keys or directly by label letter or position number.
type MultiChoice struct {
	Question string
	Options  []Option
	Selected int
	Revealed bool
	chosen   string
	correct  string
}

// NewMultiChoice creates a new multiple-choice component with the cursor
// on the first option.
func NewMultiChoice(question string, options []Option) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	default:
		if i := m.indexForKey(key); i >= 0 {
			m.Selected = i
		}
	}

	return m, nil
}

// indexForKey maps "a".."d" (any case) or "1".."4" to an option index.
func (m MultiChoice) indexForKey(key string) int {
	if len(key) != 1 {
		return -1
	}
	for i, opt := range m.Options {
		if strings.EqualFold(key, opt.Label) || key == fmt.Sprint(i+1) {
			return i
		}
	}
	return -1
}

// Current returns the option under the cursor.
func (m MultiChoice) Current() (Option, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return Option{}, false
	}
	return m.Options[m.Selected], true
}

// Reveal locks the component and marks the chosen and correct labels.
func (m *MultiChoice) Reveal(chosen, correct string) {
	m.Revealed = true
	m.chosen = chosen
	m.correct = correct
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Revealed {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, opt.Label, opt.Text)

		if m.Revealed {
			switch opt.Label {
			case m.correct:
				s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line+"  ✓") + "\n"
			case m.chosen:
				s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line+"  ✗") + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			if i == m.Selected {
				s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
			} else {
				s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
			}
		}
	}

	return s
}

// IsCorrect returns true if the revealed choice was the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Revealed && m.chosen != "" && m.chosen == m.correct
}
