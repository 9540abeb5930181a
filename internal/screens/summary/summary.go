package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/quiz"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/layout"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// PassPercent is the score shown as a pass.
const PassPercent = 75

// maxMistakes caps the missed-question list.
const maxMistakes = 8

// SummaryScreen displays the result of a quiz.
type SummaryScreen struct {
	deps      screens.Deps
	result    *quiz.Result
	popToRoot bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.BackHandler = (*SummaryScreen)(nil)

// New creates the results screen shown when a quiz ends. Leaving it
// returns to the home screen.
func New(deps screens.Deps, result *quiz.Result) *SummaryScreen {
	return &SummaryScreen{deps: deps, result: result, popToRoot: true}
}

// NewDetail shows a past session. Leaving it returns to the caller.
func NewDetail(deps screens.Deps, result *quiz.Result) *SummaryScreen {
	return &SummaryScreen{deps: deps, result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) HandlesBack() bool {
	return true
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.popToRoot {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			if s.popToRoot {
				return s, func() tea.Msg { return router.PopToRootMsg{} }
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	if s.result == nil || s.result.Session == nil {
		return ""
	}
	sess := s.result.Session

	var b strings.Builder

	// Title.
	title := "Quiz complete!"
	if !sess.Completed() {
		title = "Quiz in progress"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(s.deps.ModeLabel(sess.Mode, sess.CategoryID)))
	b.WriteString("\n\n")

	// Duration.
	if sess.CompletedAt != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%s  ·  Duration: %s",
				sess.StartedAt.Local().Format("Jan 02, 2006 15:04"),
				formatDuration(sess.CompletedAt.Sub(sess.StartedAt)))))
		b.WriteString("\n\n")
	}

	// Score.
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	verdict := "Keep practicing"
	if s.result.Percent >= PassPercent {
		scoreStyle = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		verdict = "Passed"
	}
	statsLine := fmt.Sprintf("Questions: %d    Correct: %d    Wrong: %d",
		len(sess.QuestionIDs), sess.CorrectCount, sess.WrongCount)
	card := scoreStyle.Render(fmt.Sprintf("%.0f%%  %s", s.result.Percent, verdict)) +
		"\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Render(statsLine)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ArcadeCard(card, components.ContentWidth(width))))
	b.WriteString("\n")

	bar := components.NewProgressBar("", s.result.Percent/100, false, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if mistakes := s.mistakes(); len(mistakes) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Missed questions")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")

		for _, line := range mistakes {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Width(min(width-8, 76)).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// mistakes lists wrongly answered questions with their correct answer.
func (s *SummaryScreen) mistakes() []string {
	view, err := s.deps.View()
	if err != nil {
		return nil
	}
	var out []string
	wrong := 0
	for _, a := range s.result.Session.Answers {
		if a.IsCorrect {
			continue
		}
		wrong++
		if len(out) >= maxMistakes {
			continue
		}
		q, ok := view.Question(a.QuestionID)
		if !ok {
			continue
		}
		out = append(out, fmt.Sprintf("#%d %s\n    → %s", q.Number, q.Text, q.Choice(catalog.CorrectKey)))
	}
	if wrong > len(out) && len(out) == maxMistakes {
		out = append(out, fmt.Sprintf("... and %d more", wrong-len(out)))
	}
	return out
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
