package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/quiz"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// renderQuestionView renders the active question, with feedback below it
// once an answer was submitted.
func (s *SessionScreen) renderQuestionView(width int) string {
	e := s.deps.Engine
	sess := e.Session()

	var b strings.Builder

	// Info line.
	label := s.deps.ModeLabel(sess.Mode, sess.CategoryID)
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + label)

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %s %d",
			e.CurrentNumber(), e.Total(),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			sess.CorrectCount,
			lipgloss.NewStyle().Foreground(theme.Error).Render("✗"),
			sess.WrongCount,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", e.Progress()/100, true, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	// Question number and category.
	meta := fmt.Sprintf("Question #%d", s.questionID)
	if view, err := s.deps.View(); err == nil {
		if c, ok := view.CategoryFor(s.questionID); ok {
			meta += "  ·  " + c.Name
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(meta)))
	b.WriteString("\n\n")

	block := lipgloss.NewStyle().Width(min(width-8, 76)).Render(s.mc.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	b.WriteString("\n")

	if e.Phase() == quiz.PhaseShowingFeedback {
		b.WriteString(s.renderFeedback(width))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.notice))
		b.WriteString("\n")
	}

	return b.String()
}

// renderFeedback renders the verdict for the last answer.
func (s *SessionScreen) renderFeedback(width int) string {
	var b strings.Builder

	a := s.lastAnswer
	if a == nil {
		a = s.deps.Engine.LastAnswer()
	}

	if a != nil && a.IsCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		if cur := s.deps.Engine.Current(); cur != nil {
			if c, ok := cur.Choice(cur.CorrectLabel()); ok {
				b.WriteString("\n")
				b.WriteString(lipgloss.NewStyle().
					Width(width).
					Align(lipgloss.Center).
					Foreground(theme.TextDim).
					Render(fmt.Sprintf("Correct answer: %s) %s", c.Label, c.Text)))
			}
		}
	}
	b.WriteString("\n\n")

	next := "Press Enter for the next question"
	if s.deps.Engine.IsLastQuestion() {
		next = "Press Enter to see your results"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(next))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, current, total int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("You are on question %d of %d.", current, total)))
	b.WriteString("\n\n")

	buttons := []components.Button{
		components.NewButton("Y", "Abandon quiz", false),
		components.NewButton("K", "Keep for later", false),
		components.NewButton("N", "Keep going", true),
	}
	for _, btn := range buttons {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, btn.View()))
		b.WriteString("\n")
	}

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Preparing your quiz...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}
