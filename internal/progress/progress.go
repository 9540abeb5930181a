// Package progress keeps the per-question mastery ledger and derives the
// learner statistics shown on the stats screen.
package progress

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/examtrainer/internal/store"
)

// DefaultWeakThreshold is the minimum wrong count for a weak question.
const DefaultWeakThreshold = 1

// QuestionProgress is the mastery state of one question.
type QuestionProgress struct {
	QuestionID     int
	CorrectCount   int
	WrongCount     int
	LastAnsweredAt time.Time
	LastCorrect    bool
}

// Attempts is CorrectCount + WrongCount.
func (p QuestionProgress) Attempts() int {
	return p.CorrectCount + p.WrongCount
}

// IsWeak reports wrongCount >= threshold and wrongCount > correctCount.
func (p QuestionProgress) IsWeak(threshold int) bool {
	return p.WrongCount >= threshold && p.WrongCount > p.CorrectCount
}

// Resetter wipes progress and history atomically.
type Resetter interface {
	Reset(ctx context.Context) error
}

// Service holds the in-memory ledger mirrored from the progress table.
type Service struct {
	ledger   map[int]*QuestionProgress
	repo     store.ProgressRepo
	sessions store.SessionRepo
	resetter Resetter
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService loads every progress row into memory.
func NewService(ctx context.Context, repo store.ProgressRepo, sessions store.SessionRepo, resetter Resetter, opts ...Option) (*Service, error) {
	s := &Service{
		ledger:   make(map[int]*QuestionProgress),
		repo:     repo,
		sessions: sessions,
		resetter: resetter,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	rows, err := repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	for _, r := range rows {
		s.ledger[r.QuestionID] = &QuestionProgress{
			QuestionID:     r.QuestionID,
			CorrectCount:   r.CorrectCount,
			WrongCount:     r.WrongCount,
			LastAnsweredAt: r.LastAnsweredAt,
			LastCorrect:    r.LastCorrect,
		}
	}
	return s, nil
}

// UpdateProgress records one answer. The row is written first and the
// in-memory ledger only changes once the write succeeded. Calling it
// twice counts twice.
func (s *Service) UpdateProgress(ctx context.Context, questionID int, correct bool) error {
	next := QuestionProgress{QuestionID: questionID}
	if cur, ok := s.ledger[questionID]; ok {
		next = *cur
	}
	if correct {
		next.CorrectCount++
	} else {
		next.WrongCount++
	}
	next.LastAnsweredAt = s.now()
	next.LastCorrect = correct

	err := s.repo.Upsert(ctx, store.ProgressRecord{
		QuestionID:     next.QuestionID,
		CorrectCount:   next.CorrectCount,
		WrongCount:     next.WrongCount,
		LastAnsweredAt: next.LastAnsweredAt,
		LastCorrect:    next.LastCorrect,
	})
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}

	s.ledger[questionID] = &next
	return nil
}

// Get returns the progress of one question.
func (s *Service) Get(questionID int) (QuestionProgress, bool) {
	p, ok := s.ledger[questionID]
	if !ok {
		return QuestionProgress{}, false
	}
	return *p, true
}

// All returns every row ordered by question id.
func (s *Service) All() []QuestionProgress {
	out := make([]QuestionProgress, 0, len(s.ledger))
	for _, p := range s.ledger {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}

// WeakIDs returns the weak question ids in ascending order.
func (s *Service) WeakIDs(threshold int) []int {
	var out []int
	for id, p := range s.ledger {
		if p.IsWeak(threshold) {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

// NeverAnsweredIDs returns the members of all that have no progress row,
// preserving their order.
func (s *Service) NeverAnsweredIDs(all []int) []int {
	var out []int
	for _, id := range all {
		if _, ok := s.ledger[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// SuccessRate is total correct attempts over total attempts, as a
// percentage. It is 0 when nothing has been answered.
func (s *Service) SuccessRate() float64 {
	var correct, attempts int
	for _, p := range s.ledger {
		correct += p.CorrectCount
		attempts += p.Attempts()
	}
	if attempts == 0 {
		return 0
	}
	return float64(correct) / float64(attempts) * 100
}

// TotalAnswered is the number of distinct questions answered at least once.
func (s *Service) TotalAnswered() int {
	return len(s.ledger)
}

// TotalCorrect is the number of questions answered correctly at least once.
func (s *Service) TotalCorrect() int {
	n := 0
	for _, p := range s.ledger {
		if p.CorrectCount > 0 {
			n++
		}
	}
	return n
}

// ResetAll deletes all progress and session history. The ledger is only
// cleared after the store reset committed.
func (s *Service) ResetAll(ctx context.Context) error {
	if err := s.resetter.Reset(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	s.ledger = make(map[int]*QuestionProgress)
	return nil
}
