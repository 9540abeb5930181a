package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/quiz"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens"
	"github.com/abhisek/examtrainer/internal/screens/summary"
	"github.com/abhisek/examtrainer/internal/ui/layout"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []quiz.Session
	Err      error
}

// HistoryScreen lists finished quizzes, newest first.
type HistoryScreen struct {
	deps     screens.Deps
	sessions []quiz.Session
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps screens.Deps) *HistoryScreen {
	return &HistoryScreen{deps: deps}
}

func (s *HistoryScreen) Init() tea.Cmd {
	engine := s.deps.Engine
	return func() tea.Msg {
		sessions, err := engine.History(context.Background(), quiz.HistoryLimit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s, s.openSelected()
		}
	}
	return s, nil
}

// openSelected reloads the highlighted session by id and shows it.
func (s *HistoryScreen) openSelected() tea.Cmd {
	if s.selected < 0 || s.selected >= len(s.sessions) {
		return nil
	}
	res, err := s.deps.Engine.LoadSession(context.Background(), s.sessions[s.selected].ID)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: summary.NewDetail(s.deps, res)}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No finished quizzes yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	first, last := window(len(s.sessions), s.selected, height-2)
	for i := first; i < last; i++ {
		sess := s.sessions[i]
		dateStr := sess.StartedAt.Local().Format("Jan 02, 2006 15:04")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-28s  %3d/%-3d  %3.0f%%",
			prefix, dateStr, s.deps.ModeLabel(sess.Mode, sess.CategoryID),
			sess.CorrectCount, len(sess.QuestionIDs), sess.Percent())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

// window returns the [first, last) rows to show so that selected stays
// visible in rows lines.
func window(n, selected, rows int) (int, int) {
	if rows < 1 {
		rows = 1
	}
	if n <= rows {
		return 0, n
	}
	first := selected - rows/2
	if first < 0 {
		first = 0
	}
	if first+rows > n {
		first = n - rows
	}
	return first, first + rows
}
