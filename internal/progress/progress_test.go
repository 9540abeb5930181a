package progress

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examtrainer/internal/store"
)

var fixedNow = time.Date(2025, 1, 3, 15, 0, 0, 0, time.Local)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc, err := NewService(context.Background(), st.ProgressRepo(), st.SessionRepo(), st,
		WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return svc, st
}

func TestUpdateProgressCountsTwice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateProgress(ctx, 5, true))
	require.NoError(t, svc.UpdateProgress(ctx, 5, true))

	p, ok := svc.Get(5)
	require.True(t, ok)
	if p.CorrectCount != 2 {
		t.Errorf("correctCount = %d, want 2", p.CorrectCount)
	}
	if p.WrongCount != 0 {
		t.Errorf("wrongCount = %d, want 0", p.WrongCount)
	}
	assert.True(t, p.LastCorrect)
	assert.True(t, p.LastAnsweredAt.Equal(fixedNow))
}

func TestUpdateProgressPersists(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateProgress(ctx, 1, false))
	require.NoError(t, svc.UpdateProgress(ctx, 1, true))
	require.NoError(t, svc.UpdateProgress(ctx, 2, false))

	reloaded, err := NewService(ctx, st.ProgressRepo(), st.SessionRepo(), st)
	require.NoError(t, err)

	p, ok := reloaded.Get(1)
	require.True(t, ok)
	assert.Equal(t, 1, p.CorrectCount)
	assert.Equal(t, 1, p.WrongCount)
	assert.True(t, p.LastCorrect)
	assert.Equal(t, 2, reloaded.TotalAnswered())
	assert.Equal(t, 1, reloaded.TotalCorrect())
}

type failingRepo struct {
	store.ProgressRepo
}

func (failingRepo) Upsert(context.Context, store.ProgressRecord) error {
	return errors.New("disk full")
}

func (failingRepo) All(context.Context) ([]store.ProgressRecord, error) {
	return nil, nil
}

func TestUpdateProgressWriteFailureLeavesLedger(t *testing.T) {
	svc, err := NewService(context.Background(), failingRepo{}, nil, nil)
	require.NoError(t, err)

	err = svc.UpdateProgress(context.Background(), 9, true)
	require.Error(t, err)

	_, ok := svc.Get(9)
	assert.False(t, ok, "ledger must not change when the write fails")
}

func TestWeakIDs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// 1: one wrong -> weak. 2: wrong then right -> tie, not weak.
	// 3: two wrong one right -> weak. 4: right only -> not weak.
	answers := []struct {
		id      int
		correct bool
	}{
		{1, false},
		{2, false}, {2, true},
		{3, false}, {3, true}, {3, false},
		{4, true},
	}
	for _, a := range answers {
		require.NoError(t, svc.UpdateProgress(ctx, a.id, a.correct))
	}

	assert.Equal(t, []int{1, 3}, svc.WeakIDs(DefaultWeakThreshold))
	assert.Equal(t, []int{3}, svc.WeakIDs(2))
}

func TestNeverAnsweredIDs(t *testing.T) {
	svc, _ := newTestService(t)
	all := []int{1, 2, 3, 4, 5}
	assert.Equal(t, all, svc.NeverAnsweredIDs(all))

	require.NoError(t, svc.UpdateProgress(context.Background(), 3, true))
	assert.Equal(t, []int{1, 2, 4, 5}, svc.NeverAnsweredIDs(all))
}

func TestSuccessRate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if got := svc.SuccessRate(); got != 0 {
		t.Errorf("success rate (empty) = %v, want 0", got)
	}

	require.NoError(t, svc.UpdateProgress(ctx, 1, true))
	require.NoError(t, svc.UpdateProgress(ctx, 1, true))
	require.NoError(t, svc.UpdateProgress(ctx, 2, false))
	require.NoError(t, svc.UpdateProgress(ctx, 3, true))

	assert.InDelta(t, 75.0, svc.SuccessRate(), 0.001)
}

func TestCategoryRollup(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// q1: right once -> both criteria.
	require.NoError(t, svc.UpdateProgress(ctx, 1, true))
	// q2: right, right, wrong -> balance only.
	require.NoError(t, svc.UpdateProgress(ctx, 2, true))
	require.NoError(t, svc.UpdateProgress(ctx, 2, true))
	require.NoError(t, svc.UpdateProgress(ctx, 2, false))
	// q3: wrong, wrong, right -> last only.
	require.NoError(t, svc.UpdateProgress(ctx, 3, false))
	require.NoError(t, svc.UpdateProgress(ctx, 3, false))
	require.NoError(t, svc.UpdateProgress(ctx, 3, true))
	// q5: wrong -> neither.
	require.NoError(t, svc.UpdateProgress(ctx, 5, false))

	mapping := map[int]string{1: "a", 2: "a", 3: "a", 4: "a", 5: "b", 6: "c"}
	got := svc.CategoryRollup(mapping)
	require.Len(t, got, 3)

	want := []CategoryStats{
		{CategoryID: "a", Total: 4, Answered: 3, Correct: 3, CorrectByLast: 2, CorrectByBalance: 2, Divergent: 2},
		{CategoryID: "b", Total: 1, Answered: 1},
		{CategoryID: "c", Total: 1},
	}
	assert.Equal(t, want, got)
	assert.InDelta(t, 75.0, got[0].Percent(), 0.001)
	assert.Equal(t, 0.0, got[2].Percent())
}

func TestResetAll(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateProgress(ctx, 1, true))
	done := fixedNow
	require.NoError(t, st.SessionRepo().Upsert(ctx, store.SessionRecord{ID: "s", Mode: "all", StartedAt: fixedNow, CompletedAt: &done}))

	require.NoError(t, svc.ResetAll(ctx))
	assert.Equal(t, 0, svc.TotalAnswered())

	rows, err := st.ProgressRepo().All(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
	n, err := st.SessionRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

type failingResetter struct{}

func (failingResetter) Reset(context.Context) error { return errors.New("locked") }

func TestResetAllFailureKeepsLedger(t *testing.T) {
	_, st := newTestService(t)
	ctx := context.Background()
	svc, err := NewService(ctx, st.ProgressRepo(), st.SessionRepo(), failingResetter{})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateProgress(ctx, 1, true))

	require.Error(t, svc.ResetAll(ctx))
	assert.Equal(t, 1, svc.TotalAnswered())
}
