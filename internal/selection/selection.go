// Package selection turns a quiz mode into an ordered list of question
// ids.
package selection

import (
	"errors"
	"fmt"

	"github.com/abhisek/examtrainer/internal/shuffle"
)

// Mode is the kind of quiz being started.
type Mode string

const (
	ModeAll      Mode = "all"
	ModeRandom   Mode = "random"
	ModeCategory Mode = "category"
	ModeWeak     Mode = "weak"
	ModeExam     Mode = "exam"
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeAll, ModeRandom, ModeCategory, ModeWeak, ModeExam}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	for _, k := range Modes {
		if m == k {
			return true
		}
	}
	return false
}

// Default question counts.
const (
	DefaultRandomCount       = 20
	DefaultExamCount         = 100
	DefaultWeakFallbackCount = 20
)

var (
	// ErrNoQuestionsAvailable means the mode produced an empty list.
	ErrNoQuestionsAvailable = errors.New("no questions available")

	// ErrMissingCategory means category mode was requested without a
	// known category id.
	ErrMissingCategory = errors.New("missing or unknown category")
)

// Catalog is the read side of the question catalog.
type Catalog interface {
	QuestionIDs() []int
	Has(id int) bool
	HasCategory(id string) bool
	CategoryQuestionIDs(categoryID string) []int
}

// Progress is the read side of the mastery ledger.
type Progress interface {
	WeakIDs(threshold int) []int
	NeverAnsweredIDs(all []int) []int
}

// Request describes what to select.
type Request struct {
	Mode       Mode
	CategoryID string // category mode only
	Count      int    // random and exam modes; <= 0 uses the default
}

// Selector picks question ids.
type Selector struct {
	progress      Progress
	shuffler      *shuffle.Shuffler
	weakThreshold int
}

// NewSelector creates a Selector. A nil shuffler uses the default one.
func NewSelector(progress Progress, sh *shuffle.Shuffler) *Selector {
	if sh == nil {
		sh = shuffle.Default()
	}
	return &Selector{progress: progress, shuffler: sh, weakThreshold: 1}
}

// Select returns a duplicate-free ordered id list for req, or an error.
// An unknown mode selects every question.
func (s *Selector) Select(cat Catalog, req Request) ([]int, error) {
	var (
		ids []int
		err error
	)
	switch req.Mode {
	case ModeRandom:
		ids = shuffle.Sample(s.shuffler, cat.QuestionIDs(), countOr(req.Count, DefaultRandomCount))
	case ModeExam:
		ids = shuffle.Sample(s.shuffler, cat.QuestionIDs(), countOr(req.Count, DefaultExamCount))
	case ModeCategory:
		ids, err = s.category(cat, req.CategoryID)
	case ModeWeak:
		ids = s.weak(cat)
	default:
		ids = cat.QuestionIDs()
	}
	if err != nil {
		return nil, err
	}

	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%s: %w", modeName(req.Mode), ErrNoQuestionsAvailable)
	}
	return ids, nil
}

func (s *Selector) category(cat Catalog, categoryID string) ([]int, error) {
	if categoryID == "" || !cat.HasCategory(categoryID) {
		return nil, fmt.Errorf("%w: %q", ErrMissingCategory, categoryID)
	}
	ids := cat.CategoryQuestionIDs(categoryID)
	shuffle.Permute(s.shuffler, ids)
	return ids, nil
}

// weak falls back to never-answered questions, then to a random sample.
func (s *Selector) weak(cat Catalog) []int {
	var ids []int
	for _, id := range s.progress.WeakIDs(s.weakThreshold) {
		if cat.Has(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		ids = s.progress.NeverAnsweredIDs(cat.QuestionIDs())
	}
	if len(ids) == 0 {
		return shuffle.Sample(s.shuffler, cat.QuestionIDs(), DefaultWeakFallbackCount)
	}
	shuffle.Permute(s.shuffler, ids)
	return ids
}

func countOr(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

func modeName(m Mode) string {
	if m.Valid() {
		return string(m)
	}
	return string(ModeAll)
}

func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
