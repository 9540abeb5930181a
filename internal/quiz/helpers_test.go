package quiz

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/progress"
	"github.com/abhisek/examtrainer/internal/selection"
	"github.com/abhisek/examtrainer/internal/settings"
	"github.com/abhisek/examtrainer/internal/shuffle"
	"github.com/abhisek/examtrainer/internal/store"
)

type staticCatalog struct {
	view *catalog.View
}

func (c staticCatalog) View(catalog.Variant) (*catalog.View, error) {
	return c.view, nil
}

// testView builds n questions; odd numbers map to "odd", even to "even".
func testView(n int) *catalog.View {
	qs := make([]catalog.Question, n)
	mapping := make(map[int]string, n)
	for i := range qs {
		id := i + 1
		qs[i] = catalog.Question{
			Number: id,
			Text:   fmt.Sprintf("Question %d", id),
			A:      fmt.Sprintf("right %d", id),
			B:      "wrong b",
			C:      "wrong c",
			D:      "wrong d",
		}
		if id%2 == 1 {
			mapping[id] = "odd"
		} else {
			mapping[id] = "even"
		}
	}
	cats := []catalog.Category{{ID: "odd", Name: "Odd"}, {ID: "even", Name: "Even"}}
	return catalog.NewView(catalog.VariantBZF, qs, cats, mapping)
}

type fixture struct {
	engine   *Engine
	store    *store.Store
	progress *progress.Service
	persist  *Persistence
	settings *settings.Provider
	view     *catalog.View
	now      time.Time
}

func newFixture(t *testing.T, questions int, feedback bool) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "quiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return newFixtureOn(t, st, questions, feedback)
}

func newFixtureOn(t *testing.T, st *store.Store, questions int, feedback bool) *fixture {
	t.Helper()
	f := &fixture{
		store: st,
		view:  testView(questions),
		now:   time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC),
	}

	prog, err := progress.NewService(context.Background(), st.ProgressRepo(), st.SessionRepo(), st)
	require.NoError(t, err)
	f.progress = prog

	s := settings.Defaults()
	s.ImmediateFeedback = feedback
	f.settings = settings.Static(s)
	f.persist = NewPersistence(st.CheckpointRepo(), st.SessionRepo(), nil)

	sh := shuffle.NewSeeded(42)
	ids := 0
	f.engine = NewEngine(Deps{
		Catalog:     staticCatalog{f.view},
		Selector:    selection.NewSelector(prog, sh),
		Progress:    prog,
		Persistence: f.persist,
		Settings:    f.settings,
		Shuffler:    sh,
		Now: func() time.Time {
			f.now = f.now.Add(time.Second)
			return f.now
		},
		NewID: func() string {
			ids++
			return fmt.Sprintf("session-%d", ids)
		},
	})
	return f
}

// answer selects the correct or a wrong option and submits it.
func answer(t *testing.T, e *Engine, correct bool) Answer {
	t.Helper()
	q := e.Current()
	require.NotNil(t, q, "no question on screen")

	label := q.CorrectLabel()
	if !correct {
		for _, c := range q.Choices {
			if !c.IsCorrect {
				label = c.Label
				break
			}
		}
	}
	require.NoError(t, e.SelectAnswer(label))
	a, err := e.SubmitAnswer(context.Background())
	require.NoError(t, err)
	return a
}

// runToEnd answers every remaining question, alternating right and wrong.
func runToEnd(t *testing.T, e *Engine) {
	t.Helper()
	ctx := context.Background()
	for i := 0; e.Phase().Active(); i++ {
		answer(t, e, i%2 == 0)
		if e.Phase() == PhaseShowingFeedback {
			require.NoError(t, e.NextQuestion(ctx))
		}
	}
}
