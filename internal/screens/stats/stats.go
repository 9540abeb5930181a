package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/progress"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/layout"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

type categoryRow struct {
	name  string
	stats progress.CategoryStats
}

// StatsScreen shows overall and per-category progress.
type StatsScreen struct {
	deps         screens.Deps
	total        int
	answered     int
	correct      int
	successRate  float64
	weak         int
	streak       int
	categories   []categoryRow
	confirmReset bool
	notice       string
	errMsg       string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)
var _ screen.BackHandler = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(deps screens.Deps) *StatsScreen {
	s := &StatsScreen{deps: deps}
	s.load()
	return s
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

// HandlesBack lets Esc cancel the reset prompt.
func (s *StatsScreen) HandlesBack() bool {
	return true
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	if s.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete everything"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "R", Description: "Reset progress"},
		{Key: "Esc", Description: "Back"},
	}
}

// load recomputes every figure from the progress service.
func (s *StatsScreen) load() {
	view, err := s.deps.View()
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	p := s.deps.Progress

	s.total = view.Len()
	s.answered = p.TotalAnswered()
	s.correct = p.TotalCorrect()
	s.successRate = p.SuccessRate()
	s.weak = 0
	for _, id := range p.WeakIDs(progress.DefaultWeakThreshold) {
		if view.Has(id) {
			s.weak++
		}
	}
	s.streak = s.deps.Streak(context.Background())

	s.categories = s.categories[:0]
	for _, cs := range p.CategoryRollup(view.Mapping()) {
		name := cs.CategoryID
		if c, ok := view.Category(cs.CategoryID); ok {
			name = c.Name
		}
		s.categories = append(s.categories, categoryRow{name: name, stats: cs})
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.confirmReset {
		switch key {
		case "y", "Y":
			s.confirmReset = false
			if err := s.deps.Progress.ResetAll(context.Background()); err != nil {
				s.deps.Log.Error("reset progress", "error", err)
				s.notice = fmt.Sprintf("Reset failed: %v", err)
				return s, nil
			}
			s.deps.Log.Info("progress reset from statistics screen")
			s.notice = "All progress deleted."
			s.load()
		case "n", "N", "esc":
			s.confirmReset = false
		}
		return s, nil
	}

	switch key {
	case "r", "R":
		s.confirmReset = true
		s.notice = ""
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}

	cw := min(width-8, 70)
	var b strings.Builder
	b.WriteString("\n")

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	rows := []struct{ k, v string }{
		{"Answered", fmt.Sprintf("%d of %d", s.answered, s.total)},
		{"Ever correct", fmt.Sprintf("%d", s.correct)},
		{"Success rate", fmt.Sprintf("%.0f%%", s.successRate)},
		{"Weak questions", fmt.Sprintf("%d", s.weak)},
		{"Day streak", fmt.Sprintf("%d", s.streak)},
	}
	var lines []string
	for _, r := range rows {
		lines = append(lines, label.Render(fmt.Sprintf("%-16s", r.k))+value.Render(r.v))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Categories")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))))
	b.WriteString("\n")

	for _, row := range s.categories {
		cs := row.stats
		bar := components.NewProgressBar(fmt.Sprintf("%-24s", truncate(row.name, 24)), cs.Percent()/100, true, cw-10)
		line := bar.View() + lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d/%d", cs.Correct, cs.Total))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	if s.confirmReset {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Delete all progress and quiz history? [y/N]"))
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.notice))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
