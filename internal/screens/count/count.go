package count

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens"
	sessionscreen "github.com/abhisek/examtrainer/internal/screens/session"
	"github.com/abhisek/examtrainer/internal/selection"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/layout"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// CountScreen asks how many questions a random or exam quiz should have.
type CountScreen struct {
	deps     screens.Deps
	mode     selection.Mode
	fallback int
	max      int
	input    components.TextInput
	errMsg   string
}

var _ screen.Screen = (*CountScreen)(nil)
var _ screen.KeyHintProvider = (*CountScreen)(nil)

// New creates a count prompt for mode. An empty answer uses the mode's
// default count.
func New(deps screens.Deps, mode selection.Mode) *CountScreen {
	fallback := selection.DefaultRandomCount
	if mode == selection.ModeExam {
		fallback = selection.DefaultExamCount
	}
	limit := 0
	if view, err := deps.View(); err == nil {
		limit = view.Len()
	}
	return &CountScreen{
		deps:     deps,
		mode:     mode,
		fallback: fallback,
		max:      limit,
		input:    components.NewTextInput(fmt.Sprintf("%d", fallback), true, 4),
	}
}

func (s *CountScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *CountScreen) Title() string {
	return s.deps.ModeLabel(s.mode, "")
}

func (s *CountScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "0-9", Description: "Count"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CountScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, s.submit()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit validates the count and swaps in the quiz screen.
func (s *CountScreen) submit() tea.Cmd {
	n, err := s.count()
	if err != nil {
		s.errMsg = err.Error()
		s.input.Submit(false)
		return nil
	}
	s.errMsg = ""
	s.input.Submit(true)
	req := selection.Request{Mode: s.mode, Count: n}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sessionscreen.New(s.deps, req)}
	}
}

// count parses the input. Counts above the catalog size are clamped.
func (s *CountScreen) count() (int, error) {
	if strings.TrimSpace(s.input.Value()) == "" {
		return s.clamp(s.fallback), nil
	}
	n, err := s.input.NumericValue()
	if err != nil {
		return 0, errors.New("enter a whole number")
	}
	if n < 1 {
		return 0, errors.New("ask for at least one question")
	}
	return s.clamp(n), nil
}

func (s *CountScreen) clamp(n int) int {
	if s.max > 0 && n > s.max {
		return s.max
	}
	return n
}

func (s *CountScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("How many questions?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("1 to %d, empty for %d", s.max, s.clamp(s.fallback))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Count: "+s.input.View()))
	b.WriteString("\n")

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}
	return b.String()
}
