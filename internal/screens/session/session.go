package session

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/quiz"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens"
	"github.com/abhisek/examtrainer/internal/screens/summary"
	"github.com/abhisek/examtrainer/internal/selection"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/layout"
)

// SessionScreen implements screen.Screen for a running quiz.
type SessionScreen struct {
	deps        screens.Deps
	start       func(ctx context.Context) error
	started     bool
	mc          components.MultiChoice
	questionID  int
	lastAnswer  *quiz.Answer
	confirmQuit bool
	notice      string
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.BackHandler = (*SessionScreen)(nil)

// New creates a screen that starts a fresh quiz for req.
func New(deps screens.Deps, req selection.Request) *SessionScreen {
	return &SessionScreen{
		deps: deps,
		start: func(ctx context.Context) error {
			return deps.Engine.Start(ctx, req)
		},
	}
}

// NewResume creates a screen that continues the checkpointed quiz.
func NewResume(deps screens.Deps) *SessionScreen {
	return &SessionScreen{
		deps:  deps,
		start: deps.Engine.Resume,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return func() tea.Msg { return startMsg{} }
}

func (s *SessionScreen) Title() string {
	return "Quiz"
}

// HandlesBack keeps Esc for the quit confirmation.
func (s *SessionScreen) HandlesBack() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon"},
			{Key: "K", Description: "Keep for later"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.deps.Engine.Phase() == quiz.PhaseShowingFeedback {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Choose"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		return s.handleStart()

	case quizFinishedMsg:
		return s, s.showResults()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleStart() (screen.Screen, tea.Cmd) {
	if s.started {
		return s, nil
	}
	s.started = true

	if err := s.start(context.Background()); err != nil {
		s.deps.Log.Warn("start quiz", "error", err)
		s.errMsg = startErrorText(err)
		return s, nil
	}
	if s.deps.Engine.Phase() == quiz.PhaseCompleted {
		// A resumed checkpoint with every question answered.
		return s, func() tea.Msg { return quizFinishedMsg{} }
	}
	s.loadQuestion()
	return s, nil
}

func startErrorText(err error) string {
	switch {
	case errors.Is(err, selection.ErrNoQuestionsAvailable):
		return "No questions match this mode yet."
	case errors.Is(err, quiz.ErrNoActiveSession):
		return "There is no quiz to continue."
	case errors.Is(err, selection.ErrMissingCategory):
		return "Pick a category first."
	}
	return err.Error()
}

// loadQuestion rebuilds the choice widget from the engine's current
// question, keeping a selection restored from a checkpoint.
func (s *SessionScreen) loadQuestion() {
	cur := s.deps.Engine.Current()
	if cur == nil {
		return
	}
	opts := make([]components.Option, 0, len(cur.Choices))
	for _, c := range cur.Choices {
		opts = append(opts, components.Option{Label: c.Label, Text: c.Text})
	}
	s.mc = components.NewMultiChoice(cur.Question.Text, opts)
	if sel := s.deps.Engine.Selected(); sel != "" {
		for i, o := range opts {
			if o.Label == sel {
				s.mc.Selected = i
			}
		}
	}
	s.questionID = cur.Question.Number
	s.lastAnswer = nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		return s.handleQuitKey(key)
	}

	switch s.deps.Engine.Phase() {
	case quiz.PhaseAwaitingAnswer:
		switch key {
		case "esc":
			s.confirmQuit = true
			return s, nil
		case "enter":
			return s.submitAnswer()
		}
		before := s.mc.Selected
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		if s.mc.Selected == before {
			return s, cmd
		}
		if opt, ok := s.mc.Current(); ok {
			if err := s.deps.Engine.SelectAnswer(opt.Label); err != nil {
				s.notice = err.Error()
			}
		}
		return s, cmd

	case quiz.PhaseShowingFeedback:
		switch key {
		case "esc":
			s.confirmQuit = true
			return s, nil
		case "enter", " ", "space", "right", "n":
			return s.nextQuestion()
		}
	}

	return s, nil
}

func (s *SessionScreen) handleQuitKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "y", "Y":
		s.confirmQuit = false
		if err := s.deps.Engine.Abandon(context.Background()); err != nil {
			s.deps.Log.Warn("abandon quiz", "error", err)
		}
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "k", "K":
		// The checkpoint is already on disk.
		s.confirmQuit = false
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "n", "N", "esc":
		s.confirmQuit = false
	}
	return s, nil
}

// submitAnswer scores the highlighted choice.
func (s *SessionScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	opt, ok := s.mc.Current()
	if !ok {
		return s, nil
	}
	e := s.deps.Engine
	if err := e.SelectAnswer(opt.Label); err != nil {
		s.notice = err.Error()
		return s, nil
	}

	correctLabel := ""
	if cur := e.Current(); cur != nil {
		correctLabel = cur.CorrectLabel()
	}

	a, err := e.SubmitAnswer(context.Background())
	s.notice = ""
	if err != nil {
		if errors.Is(err, quiz.ErrNotActive) || errors.Is(err, quiz.ErrNoAnswerSelected) {
			s.notice = err.Error()
			return s, nil
		}
		s.notice = fmt.Sprintf("Not saved: %v", err)
	}

	switch e.Phase() {
	case quiz.PhaseShowingFeedback:
		s.lastAnswer = &a
		s.mc.Reveal(a.ChosenLabel, correctLabel)
	case quiz.PhaseCompleted:
		return s, func() tea.Msg { return quizFinishedMsg{} }
	case quiz.PhaseAwaitingAnswer:
		s.loadQuestion()
	}
	return s, nil
}

// nextQuestion leaves the feedback view.
func (s *SessionScreen) nextQuestion() (screen.Screen, tea.Cmd) {
	e := s.deps.Engine
	if err := e.NextQuestion(context.Background()); err != nil {
		s.notice = fmt.Sprintf("Could not continue: %v", err)
		return s, nil
	}
	s.notice = ""
	if e.Phase() == quiz.PhaseCompleted {
		return s, func() tea.Msg { return quizFinishedMsg{} }
	}
	s.loadQuestion()
	return s, nil
}

// showResults swaps this screen for the results of the finished quiz.
func (s *SessionScreen) showResults() tea.Cmd {
	res := s.deps.Engine.Results()
	if res == nil {
		return func() tea.Msg { return router.PopToRootMsg{} }
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(s.deps, res)}
	}
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if !s.started || s.deps.Engine.Current() == nil {
		return renderLoading(width)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width, s.deps.Engine.CurrentNumber(), s.deps.Engine.Total())
	}
	return s.renderQuestionView(width)
}
