package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/selection"
	"github.com/abhisek/examtrainer/internal/shuffle"
	"github.com/abhisek/examtrainer/internal/store"
)

func TestFullRunEveryMode(t *testing.T) {
	requests := []selection.Request{
		{Mode: selection.ModeAll},
		{Mode: selection.ModeRandom, Count: 4},
		{Mode: selection.ModeCategory, CategoryID: "even"},
		{Mode: selection.ModeWeak},
		{Mode: selection.ModeExam, Count: 6},
	}
	for _, feedback := range []bool{true, false} {
		for _, req := range requests {
			t.Run(string(req.Mode), func(t *testing.T) {
				f := newFixture(t, 8, feedback)
				ctx := context.Background()

				require.NoError(t, f.engine.Start(ctx, req))
				assert.Equal(t, PhaseAwaitingAnswer, f.engine.Phase())
				runToEnd(t, f.engine)

				require.Equal(t, PhaseCompleted, f.engine.Phase())
				res := f.engine.Results()
				require.NotNil(t, res)
				s := res.Session
				if len(s.Answers) != len(s.QuestionIDs) {
					t.Errorf("answers = %d, want %d", len(s.Answers), len(s.QuestionIDs))
				}
				if s.CorrectCount+s.WrongCount != len(s.Answers) {
					t.Errorf("correct+wrong = %d, want %d", s.CorrectCount+s.WrongCount, len(s.Answers))
				}
				require.NotNil(t, s.CompletedAt)

				cp, err := f.persist.LoadCheckpoint(ctx)
				require.NoError(t, err)
				assert.Nil(t, cp, "checkpoint must be cleared after finish")

				hist, err := f.persist.History(ctx, 0)
				require.NoError(t, err)
				require.Len(t, hist, 1)
				assert.Equal(t, s.ID, hist[0].ID)
			})
		}
	}
}

func TestStartFirstQuestion(t *testing.T) {
	f := newFixture(t, 5, true)
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, selection.Request{Mode: selection.ModeAll}))
	assert.Equal(t, 1, f.engine.CurrentNumber())
	assert.Equal(t, 5, f.engine.Total())
	assert.Equal(t, 1, f.engine.Current().Question.Number)
	assert.False(t, f.engine.IsLastQuestion())
	assert.Equal(t, 0.0, f.engine.Progress())

	s := f.engine.Session()
	assert.Equal(t, "session-1", s.ID)
	assert.Equal(t, selection.ModeAll, s.Mode)
	assert.Empty(t, s.CategoryID)

	info, err := f.engine.ActiveInfo(ctx)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 5, info.Total)
	assert.Equal(t, 1, info.Position())
}

func TestStartUnknownModeRecordsAll(t *testing.T) {
	f := newFixture(t, 3, true)
	require.NoError(t, f.engine.Start(context.Background(), selection.Request{Mode: "marathon"}))
	assert.Equal(t, selection.ModeAll, f.engine.Session().Mode)
	assert.Equal(t, 3, f.engine.Total())
}

func TestStartErrorStaysIdle(t *testing.T) {
	f := newFixture(t, 4, true)
	ctx := context.Background()

	err := f.engine.Start(ctx, selection.Request{Mode: selection.ModeCategory, CategoryID: "nope"})
	if !errors.Is(err, selection.ErrMissingCategory) {
		t.Fatalf("err = %v, want ErrMissingCategory", err)
	}
	assert.Equal(t, PhaseIdle, f.engine.Phase())
	assert.Nil(t, f.engine.Session())

	info, err := f.engine.ActiveInfo(ctx)
	require.NoError(t, err)
	assert.Nil(t, info, "failed start must not checkpoint")
}

func TestStartCategoryKeepsCategoryID(t *testing.T) {
	f := newFixture(t, 6, true)
	require.NoError(t, f.engine.Start(context.Background(), selection.Request{Mode: selection.ModeCategory, CategoryID: "odd"}))
	s := f.engine.Session()
	assert.Equal(t, "odd", s.CategoryID)
	assert.ElementsMatch(t, []int{1, 3, 5}, s.QuestionIDs)
}

func TestSubmitWithoutSelection(t *testing.T) {
	f := newFixture(t, 3, true)
	ctx := context.Background()
	require.NoError(t, f.engine.Start(ctx, selection.Request{Mode: selection.ModeAll}))

	_, err := f.engine.SubmitAnswer(ctx)
	if !errors.Is(err, ErrNoAnswerSelected) {
		t.Fatalf("err = %v, want ErrNoAnswerSelected", err)
	}
	assert.Equal(t, PhaseAwaitingAnswer, f.engine.Phase())
	assert.Empty(t, f.engine.Session().Answers)
}

func TestSelectAnswerRules(t *testing.T) {
	f := newFixture(t, 3, true)
	ctx := context.Background()

	if err := f.engine.SelectAnswer("A"); !errors.Is(err, ErrNotActive) {
		t.Errorf("select while idle: err = %v, want ErrNotActive", err)
	}

	require.NoError(t, f.engine.Start(ctx, selection.Request{Mode: selection.ModeAll}))
	if err := f.engine.SelectAnswer("E"); !errors.Is(err, ErrUnknownChoice) {
		t.Errorf("select E: err = %v, want ErrUnknownChoice", err)
	}

	answer(t, f.engine, true)
	require.Equal(t, PhaseShowingFeedback, f.engine.Phase())
	selected := f.engine.Selected()

	// Ignored while feedback is shown.
	other := "A"
	if selected == "A" {
		other = "B"
	}
	require.NoError(t, f.engine.SelectAnswer(other))
	assert.Equal(t, selected, f.engine.Selected())

	_, err := f.engine.SubmitAnswer(ctx)
	if !errors.Is(err, ErrNotActive) {
		t.Errorf("second submit: err = %v, want ErrNotActive", err)
	}
	assert.Len(t, f.engine.Session().Answers, 1)
}

func TestSubmitScoresAndWritesProgress(t *testing.T) {
	f := newFixture(t, 3, true)
	ctx := context.Background()
	require.NoError(t, f.engine.Start(ctx, selection.Request{Mode: selection.ModeAll}))

	a := answer(t, f.engine, true)
	assert.True(t, a.IsCorrect)
	assert.Equal(t, 1, a.QuestionID)
	assert.Equal(t, a, *f.engine.LastAnswer())

	p, ok := f.progress.Get(1)
	require.True(t, ok)
	assert.Equal(t, 1, p.CorrectCount)

	require.NoError(t, f.engine.NextQuestion(ctx))
	a = answer(t, f.engine, false)
	assert.False(t, a.IsCorrect)

	p, ok = f.progress.Get(2)
	require.True(t, ok)
	assert.Equal(t, 1, p.WrongCount)

	s := f.engine.Session()
	assert.Equal(t, 1, s.CorrectCount)
	assert.Equal(t, 1, s.WrongCount)
	assert.InDelta(t, 66.67, f.engine.Progress(), 0.01)

	// The checkpoint reflects the answers.
	cp, err := f.persist.LoadCheckpoint(ctx)
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.Len(t, cp.Session.Answers, 2)
	assert.Equal(t, 1, cp.CurrentIndex)
}

func TestNoFeedbackAdvancesImmediately(t *testing.T) {
	f := newFixture(t, 3, false)
	ctx := context.Background()
	require.NoError(t, f.engine.Start(ctx, selection.Request{Mode: selection.ModeAll}))

	answer(t, f.engine, true)
	assert.Equal(t, PhaseAwaitingAnswer, f.engine.Phase())
	assert.Equal(t, 2, f.engine.CurrentNumber())
	assert.Empty(t, f.engine.Selected())

	answer(t, f.engine, true)
	assert.True(t, f.engine.IsLastQuestion())
	answer(t, f.engine, false)
	assert.Equal(t, PhaseCompleted, f.engine.Phase())

	res := f.engine.Results()
	require.NotNil(t, res)
	assert.InDelta(t, 66.67, res.Percent, 0.01)
}

func TestNextQuestionRequiresFeedback(t *testing.T) {
	f := newFixture(t, 3, true)
	ctx := context.Background()
	require.NoError(t, f.engine.Start(ctx, selection.Request{Mode: selection.ModeAll}))

	if err := f.engine.NextQuestion(ctx); !errors.Is(err, ErrNotActive) {
		t.Errorf("err = %v, want ErrNotActive", err)
	}
	assert.Equal(t, 1, f.engine.CurrentNumber())
}

func TestFinishRequiresAllAnswers(t *testing.T) {
	f := newFixture(t, 3, true)
	ctx := context.Background()

	if err := f.engine.Finish(ctx); !errors.Is(err, ErrNotActive) {
		t.Errorf("idle finish: err = %v, want ErrNotActive", err)
	}

	require.NoError(t, f.engine.Start(ctx, selection.Request{Mode: selection.ModeAll}))
	answer(t, f.engine, true)
	if err := f.engine.Finish(ctx); !errors.Is(err, ErrIncomplete) {
		t.Errorf("early finish: err = %v, want ErrIncomplete", err)
	}
	assert.Nil(t, f.engine.Results())
}

func TestResumeAdvancesPastAnsweredIndex(t *testing.T) {
	f := newFixture(t, 5, true)
	ctx := context.Background()

	s := &Session{
		ID:          "resume-me",
		Mode:        selection.ModeAll,
		StartedAt:   f.now,
		QuestionIDs: []int{1, 2, 3, 4, 5},
		Answers: []Answer{
			{QuestionID: 1, ChosenLabel: "A", IsCorrect: true, AnsweredAt: f.now},
			{QuestionID: 2, ChosenLabel: "B", IsCorrect: false, AnsweredAt: f.now},
			{QuestionID: 3, ChosenLabel: "C", IsCorrect: true, AnsweredAt: f.now},
		},
	}
	require.NoError(t, f.persist.SaveCheckpoint(ctx, s, 2))

	require.NoError(t, f.engine.Resume(ctx))
	assert.Equal(t, PhaseAwaitingAnswer, f.engine.Phase())
	assert.Equal(t, 4, f.engine.CurrentNumber(), "index 2 was answered, so resume lands on index 3")
	assert.Equal(t, 4, f.engine.Current().Question.Number)

	got := f.engine.Session()
	assert.Equal(t, "resume-me", got.ID)
	assert.Equal(t, 2, got.CorrectCount)
	assert.Equal(t, 1, got.WrongCount)
}

func TestResumeWithoutCheckpoint(t *testing.T) {
	f := newFixture(t, 3, true)
	err := f.engine.Resume(context.Background())
	if !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("err = %v, want ErrNoActiveSession", err)
	}
	assert.Equal(t, PhaseIdle, f.engine.Phase())
}

func TestResumeFullyAnsweredFinalizes(t *testing.T) {
	f := newFixture(t, 2, true)
	ctx := context.Background()

	s := &Session{
		ID:          "all-done",
		Mode:        selection.ModeAll,
		StartedAt:   f.now,
		QuestionIDs: []int{1, 2},
		Answers: []Answer{
			{QuestionID: 1, ChosenLabel: "A", IsCorrect: true, AnsweredAt: f.now},
			{QuestionID: 2, ChosenLabel: "A", IsCorrect: true, AnsweredAt: f.now},
		},
	}
	require.NoError(t, f.persist.SaveCheckpoint(ctx, s, 1))

	require.NoError(t, f.engine.Resume(ctx))
	assert.Equal(t, PhaseCompleted, f.engine.Phase())

	cp, err := f.persist.LoadCheckpoint(ctx)
	require.NoError(t, err)
	assert.Nil(t, cp)

	res, err := f.engine.LoadSession(ctx, "all-done")
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Percent)
}

func TestResumeAcrossRestart(t *testing.T) {
	f := newFixture(t, 5, true)
	ctx := context.Background()
	require.NoError(t, f.engine.Start(ctx, selection.Request{Mode: selection.ModeAll}))
	answer(t, f.engine, true)
	require.NoError(t, f.engine.NextQuestion(ctx))
	answer(t, f.engine, false)
	id := f.engine.Session().ID

	// A second engine over the same database picks the quiz up.
	g := newFixtureOn(t, f.store, 5, true)
	info, err := g.engine.ActiveInfo(ctx)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, id, info.SessionID)
	assert.Equal(t, 2, info.Answered)
	assert.Equal(t, 3, info.Position())

	require.NoError(t, g.engine.Resume(ctx))
	assert.Equal(t, 3, g.engine.CurrentNumber())
	runToEnd(t, g.engine)

	res := g.engine.Results()
	require.NotNil(t, res)
	assert.Equal(t, id, res.Session.ID)
	assert.Len(t, res.Session.Answers, 5)
}

func TestAbandon(t *testing.T) {
	f := newFixture(t, 3, true)
	ctx := context.Background()
	require.NoError(t, f.engine.Start(ctx, selection.Request{Mode: selection.ModeAll}))
	answer(t, f.engine, true)

	require.NoError(t, f.engine.Abandon(ctx))
	assert.Equal(t, PhaseIdle, f.engine.Phase())
	assert.Nil(t, f.engine.Session())

	info, err := f.engine.ActiveInfo(ctx)
	require.NoError(t, err)
	assert.Nil(t, info)

	hist, err := f.engine.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, hist, "abandoned sessions are not kept")

	// Progress written before abandoning stays.
	_, ok := f.progress.Get(1)
	assert.True(t, ok)
}

func TestLoadSessionNotFound(t *testing.T) {
	f := newFixture(t, 3, true)
	_, err := f.engine.LoadSession(context.Background(), "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

type brokenProgress struct{}

func (brokenProgress) UpdateProgress(context.Context, int, bool) error {
	return errors.New("database is locked")
}

func TestProgressFailureStillRecordsAnswer(t *testing.T) {
	f := newFixture(t, 2, true)
	f.engine.progress = brokenProgress{}
	ctx := context.Background()
	require.NoError(t, f.engine.Start(ctx, selection.Request{Mode: selection.ModeAll}))

	require.NoError(t, f.engine.SelectAnswer(f.engine.Current().CorrectLabel()))
	_, err := f.engine.SubmitAnswer(ctx)
	require.Error(t, err)
	assert.Equal(t, PhaseShowingFeedback, f.engine.Phase())
	assert.Len(t, f.engine.Session().Answers, 1)
}

type failingHistory struct {
	store.SessionRepo
}

func (failingHistory) Upsert(context.Context, store.SessionRecord) error {
	return errors.New("disk full")
}

func TestHistoryFailureKeepsCheckpoint(t *testing.T) {
	f := newFixture(t, 1, true)
	f.engine.persist = NewPersistence(f.store.CheckpointRepo(), failingHistory{f.store.SessionRepo()}, nil)
	f.persist = f.engine.persist
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, selection.Request{Mode: selection.ModeAll}))
	answer(t, f.engine, true)
	require.Error(t, f.engine.NextQuestion(ctx))

	assert.Equal(t, PhaseShowingFeedback, f.engine.Phase())
	assert.Nil(t, f.engine.Session().CompletedAt)

	cp, err := f.persist.LoadCheckpoint(ctx)
	require.NoError(t, err)
	assert.NotNil(t, cp, "checkpoint must survive a failed finish")
}

func TestShuffledQuestion(t *testing.T) {
	q := catalog.Question{Number: 1, Text: "Q", A: "right", B: "b", C: "c", D: "d"}
	sh := shuffle.NewSeeded(11)

	seenCorrectAt := map[string]bool{}
	for i := 0; i < 200; i++ {
		sq := NewShuffledQuestion(q, sh)
		require.Len(t, sq.Choices, 4)

		keys := map[string]bool{}
		correct := 0
		for j, c := range sq.Choices {
			assert.Equal(t, catalog.ChoiceKeys[j], c.Label)
			assert.Equal(t, q.Choice(c.OriginalKey), c.Text)
			keys[c.OriginalKey] = true
			if c.IsCorrect {
				correct++
				assert.Equal(t, "right", c.Text)
			}
		}
		assert.Len(t, keys, 4)
		assert.Equal(t, 1, correct)
		seenCorrectAt[sq.CorrectLabel()] = true
	}
	assert.Len(t, seenCorrectAt, 4, "correct answer should land on every label")
}
