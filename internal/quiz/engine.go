// Package quiz runs a quiz session: it builds the question sequence,
// scores answers, writes progress through and keeps a checkpoint so an
// interrupted quiz can be resumed.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/logger"
	"github.com/abhisek/examtrainer/internal/selection"
	"github.com/abhisek/examtrainer/internal/shuffle"
)

var (
	// ErrNoActiveSession is returned by Resume when there is nothing to resume.
	ErrNoActiveSession = errors.New("no active quiz session")

	// ErrNotActive is returned by operations that need a question on screen.
	ErrNotActive = errors.New("quiz is not awaiting an answer")

	// ErrNoAnswerSelected is returned by SubmitAnswer without a selection.
	ErrNoAnswerSelected = errors.New("no answer selected")

	// ErrUnknownChoice is returned by SelectAnswer for a label not shown.
	ErrUnknownChoice = errors.New("unknown answer choice")

	// ErrIncomplete is returned by Finish while questions are unanswered.
	ErrIncomplete = errors.New("quiz has unanswered questions")

	// ErrSessionNotFound is returned by LoadSession for an unknown id.
	ErrSessionNotFound = errors.New("session not found")
)

// Catalog hands out the question set of a variant.
type Catalog interface {
	View(v catalog.Variant) (*catalog.View, error)
}

// Selector picks question ids for a request.
type Selector interface {
	Select(cat selection.Catalog, req selection.Request) ([]int, error)
}

// ProgressRecorder receives every scored answer.
type ProgressRecorder interface {
	UpdateProgress(ctx context.Context, questionID int, correct bool) error
}

// SettingsSource is consulted on every Start and SubmitAnswer.
type SettingsSource interface {
	ImmediateFeedback() bool
	Variant() catalog.Variant
}

// Deps are the collaborators of an Engine.
type Deps struct {
	Catalog     Catalog
	Selector    Selector
	Progress    ProgressRecorder
	Persistence *Persistence
	Settings    SettingsSource
	Logger      *logger.Logger
	Shuffler    *shuffle.Shuffler
	Now         func() time.Time
	NewID       func() string
}

// Engine is the quiz state machine. It is not safe for concurrent use.
type Engine struct {
	catalog  Catalog
	selector Selector
	progress ProgressRecorder
	persist  *Persistence
	settings SettingsSource
	log      *logger.Logger
	shuffler *shuffle.Shuffler
	now      func() time.Time
	newID    func() string

	phase      Phase
	view       *catalog.View
	session    *Session
	index      int
	current    *ShuffledQuestion
	selected   string
	lastAnswer *Answer
}

// NewEngine creates an idle Engine.
func NewEngine(d Deps) *Engine {
	e := &Engine{
		catalog:  d.Catalog,
		selector: d.Selector,
		progress: d.Progress,
		persist:  d.Persistence,
		settings: d.Settings,
		log:      d.Logger,
		shuffler: d.Shuffler,
		now:      d.Now,
		newID:    d.NewID,
	}
	if e.log == nil {
		e.log = logger.Nop()
	}
	if e.shuffler == nil {
		e.shuffler = shuffle.Default()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	return e
}

// Start selects questions for req and begins a new session. On error the
// engine state is left untouched. A session already in progress is
// replaced.
func (e *Engine) Start(ctx context.Context, req selection.Request) error {
	view, err := e.catalog.View(e.settings.Variant())
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	ids, err := e.selector.Select(view, req)
	if err != nil {
		return err
	}

	mode := req.Mode
	if !mode.Valid() {
		mode = selection.ModeAll
	}
	s := &Session{
		ID:          e.newID(),
		Mode:        mode,
		StartedAt:   e.now(),
		QuestionIDs: ids,
		Answers:     []Answer{},
	}
	if mode == selection.ModeCategory {
		s.CategoryID = req.CategoryID
	}

	current, err := e.shuffled(view, ids[0])
	if err != nil {
		return err
	}

	e.view = view
	e.session = s
	e.index = 0
	e.current = current
	e.selected = ""
	e.lastAnswer = nil
	e.phase = PhaseAwaitingAnswer
	e.checkpoint(ctx)

	e.log.Info("quiz started", "session", s.ID, "mode", s.Mode, "category", s.CategoryID, "questions", len(ids))
	return nil
}

// SelectAnswer marks label as the chosen option. It is a no-op while
// feedback is shown.
func (e *Engine) SelectAnswer(label string) error {
	switch e.phase {
	case PhaseShowingFeedback:
		return nil
	case PhaseAwaitingAnswer:
	default:
		return ErrNotActive
	}
	if _, ok := e.current.Choice(label); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChoice, label)
	}
	e.selected = label
	return nil
}

// SubmitAnswer scores the selected option, records it in the session and
// the progress store and checkpoints. With immediate feedback the engine
// moves to PhaseShowingFeedback, otherwise it advances right away.
//
// A failed progress write does not undo the answer: the session keeps it,
// the state transition completes and the write error is returned.
func (e *Engine) SubmitAnswer(ctx context.Context) (Answer, error) {
	if e.phase != PhaseAwaitingAnswer {
		return Answer{}, ErrNotActive
	}
	if e.selected == "" {
		return Answer{}, ErrNoAnswerSelected
	}
	choice, ok := e.current.Choice(e.selected)
	if !ok {
		return Answer{}, fmt.Errorf("%w: %q", ErrUnknownChoice, e.selected)
	}

	qid := e.current.Question.Number
	a := Answer{
		QuestionID:  qid,
		ChosenLabel: e.selected,
		IsCorrect:   choice.IsCorrect,
		AnsweredAt:  e.now(),
	}
	e.session.Answers = append(e.session.Answers, a)
	e.session.recount()
	e.lastAnswer = &a

	var progressErr error
	if err := e.progress.UpdateProgress(ctx, qid, a.IsCorrect); err != nil {
		e.log.Error("record progress", "question", qid, "error", err)
		progressErr = fmt.Errorf("record progress: %w", err)
	}

	e.checkpoint(ctx)

	if e.settings.ImmediateFeedback() {
		e.phase = PhaseShowingFeedback
		return a, progressErr
	}
	if err := e.advance(ctx); err != nil {
		// Park on the feedback view so NextQuestion can retry.
		e.phase = PhaseShowingFeedback
		return a, errors.Join(progressErr, err)
	}
	return a, progressErr
}

// NextQuestion leaves the feedback view: it shows the next question or
// finishes the session after the last one.
func (e *Engine) NextQuestion(ctx context.Context) error {
	if e.phase != PhaseShowingFeedback {
		return ErrNotActive
	}
	return e.advance(ctx)
}

func (e *Engine) advance(ctx context.Context) error {
	if e.index >= len(e.session.QuestionIDs)-1 {
		return e.Finish(ctx)
	}

	current, err := e.shuffled(e.view, e.session.QuestionIDs[e.index+1])
	if err != nil {
		return err
	}
	e.index++
	e.current = current
	e.selected = ""
	e.phase = PhaseAwaitingAnswer
	e.checkpoint(ctx)
	return nil
}

// Finish finalizes the session: it is appended to history and the
// checkpoint is cleared. If the history write fails the session stays
// active and the checkpoint is kept.
func (e *Engine) Finish(ctx context.Context) error {
	if !e.phase.Active() || e.session == nil {
		return ErrNotActive
	}
	if len(e.session.Answers) < len(e.session.QuestionIDs) {
		return fmt.Errorf("%w: %d of %d answered", ErrIncomplete, len(e.session.Answers), len(e.session.QuestionIDs))
	}
	return e.finalize(ctx)
}

func (e *Engine) finalize(ctx context.Context) error {
	done := e.now()
	e.session.CompletedAt = &done
	e.session.recount()

	if err := e.persist.AppendHistory(ctx, e.session); err != nil {
		e.session.CompletedAt = nil
		return fmt.Errorf("save session history: %w", err)
	}
	if err := e.persist.ClearCheckpoint(ctx); err != nil {
		e.log.Warn("clear checkpoint", "session", e.session.ID, "error", err)
	}

	e.phase = PhaseCompleted
	e.current = nil
	e.selected = ""
	e.log.Info("quiz finished", "session", e.session.ID,
		"correct", e.session.CorrectCount, "wrong", e.session.WrongCount)
	return nil
}

// Resume restores the checkpointed session at its first unanswered
// question. A checkpoint whose questions are all answered is finalized.
func (e *Engine) Resume(ctx context.Context) error {
	cp, err := e.persist.LoadCheckpoint(ctx)
	if err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	}
	if cp == nil {
		return ErrNoActiveSession
	}

	view, err := e.catalog.View(e.settings.Variant())
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	s := cp.Session.clone()
	s.CompletedAt = nil
	if s.Answers == nil {
		s.Answers = []Answer{}
	}

	index := cp.CurrentIndex
	for index < len(s.QuestionIDs) && s.Answered(s.QuestionIDs[index]) {
		index++
	}

	e.view = view
	e.session = s
	e.selected = ""
	e.lastAnswer = nil

	if index >= len(s.QuestionIDs) {
		e.index = len(s.QuestionIDs) - 1
		e.phase = PhaseAwaitingAnswer
		e.log.Info("resumed quiz had no questions left", "session", s.ID)
		if err := e.finalize(ctx); err != nil {
			e.reset()
			return err
		}
		return nil
	}

	current, err := e.shuffled(view, s.QuestionIDs[index])
	if err != nil {
		e.reset()
		return err
	}
	e.index = index
	e.current = current
	e.phase = PhaseAwaitingAnswer
	e.checkpoint(ctx)

	e.log.Info("quiz resumed", "session", s.ID, "index", index, "total", len(s.QuestionIDs))
	return nil
}

// Abandon discards the current session and clears the checkpoint. It
// also clears a checkpoint left by an earlier process.
func (e *Engine) Abandon(ctx context.Context) error {
	if e.session != nil && e.phase.Active() {
		e.log.Info("quiz abandoned", "session", e.session.ID, "answered", len(e.session.Answers))
	}
	e.reset()
	if err := e.persist.ClearCheckpoint(ctx); err != nil {
		return fmt.Errorf("clear checkpoint: %w", err)
	}
	return nil
}

// ActiveInfo describes the resumable quiz, or returns nil if there is none.
func (e *Engine) ActiveInfo(ctx context.Context) (*ActiveInfo, error) {
	cp, err := e.persist.LoadCheckpoint(ctx)
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	if cp == nil {
		return nil, nil
	}
	return &ActiveInfo{
		SessionID:  cp.Session.ID,
		Mode:       cp.Session.Mode,
		CategoryID: cp.Session.CategoryID,
		StartedAt:  cp.Session.StartedAt,
		Answered:   len(cp.Session.Answers),
		Total:      len(cp.Session.QuestionIDs),
	}, nil
}

// Results returns the finished session, or nil before completion.
func (e *Engine) Results() *Result {
	if e.phase != PhaseCompleted || e.session == nil {
		return nil
	}
	return newResult(e.session.clone())
}

// LoadSession reads a finished session from history.
func (e *Engine) LoadSession(ctx context.Context, id string) (*Result, error) {
	s, err := e.persist.Session(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return newResult(s), nil
}

// History lists finished sessions, newest first.
func (e *Engine) History(ctx context.Context, limit int) ([]Session, error) {
	sessions, err := e.persist.History(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return sessions, nil
}

// Phase returns the current state.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Session returns a copy of the loaded session, or nil.
func (e *Engine) Session() *Session {
	if e.session == nil {
		return nil
	}
	return e.session.clone()
}

// Current returns the question on screen, or nil.
func (e *Engine) Current() *ShuffledQuestion {
	return e.current
}

// Selected returns the chosen label, or "".
func (e *Engine) Selected() string {
	return e.selected
}

// LastAnswer returns the most recently submitted answer, or nil.
func (e *Engine) LastAnswer() *Answer {
	return e.lastAnswer
}

// Progress is the answered share of the session, as a percentage.
func (e *Engine) Progress() float64 {
	if e.session == nil || len(e.session.QuestionIDs) == 0 {
		return 0
	}
	return float64(len(e.session.Answers)) / float64(len(e.session.QuestionIDs)) * 100
}

// CurrentNumber is the 1-based position of the current question.
func (e *Engine) CurrentNumber() int {
	if e.session == nil {
		return 0
	}
	return e.index + 1
}

// Total is the number of questions in the session.
func (e *Engine) Total() int {
	if e.session == nil {
		return 0
	}
	return len(e.session.QuestionIDs)
}

// IsLastQuestion reports whether the current question is the final one.
func (e *Engine) IsLastQuestion() bool {
	return e.session != nil && e.index == len(e.session.QuestionIDs)-1
}

func (e *Engine) shuffled(view *catalog.View, id int) (*ShuffledQuestion, error) {
	q, ok := view.Question(id)
	if !ok {
		return nil, fmt.Errorf("question %d not in %s catalog", id, view.Variant())
	}
	return NewShuffledQuestion(q, e.shuffler), nil
}

// checkpoint saves the session. Failures are logged only.
func (e *Engine) checkpoint(ctx context.Context) {
	if err := e.persist.SaveCheckpoint(ctx, e.session, e.index); err != nil {
		e.log.Warn("save checkpoint", "session", e.session.ID, "error", err)
	}
}

func (e *Engine) reset() {
	e.phase = PhaseIdle
	e.view = nil
	e.session = nil
	e.index = 0
	e.current = nil
	e.selected = ""
	e.lastAnswer = nil
}
