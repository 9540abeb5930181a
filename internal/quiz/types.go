package quiz

import (
	"time"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/selection"
	"github.com/abhisek/examtrainer/internal/shuffle"
)

// Answer is one submitted answer. Answers are only ever appended.
type Answer struct {
	QuestionID  int       `json:"questionId"`
	ChosenLabel string    `json:"chosenLabel"`
	IsCorrect   bool      `json:"isCorrect"`
	AnsweredAt  time.Time `json:"answeredAt"`
}

// Session is one quiz run. It is mutable until CompletedAt is set.
type Session struct {
	ID           string         `json:"id"`
	Mode         selection.Mode `json:"mode"`
	CategoryID   string         `json:"categoryId,omitempty"`
	StartedAt    time.Time      `json:"startedAt"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
	QuestionIDs  []int          `json:"questionIds"`
	Answers      []Answer       `json:"answers"`
	CorrectCount int            `json:"correctCount"`
	WrongCount   int            `json:"wrongCount"`
}

// Completed reports whether the session has been finalized.
func (s *Session) Completed() bool {
	return s.CompletedAt != nil
}

// Answered reports whether questionID already has an answer.
func (s *Session) Answered(questionID int) bool {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return true
		}
	}
	return false
}

// Percent is correct answers over answered questions, as a percentage.
func (s *Session) Percent() float64 {
	if len(s.Answers) == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(len(s.Answers)) * 100
}

// recount derives the counters from Answers.
func (s *Session) recount() {
	s.CorrectCount, s.WrongCount = 0, 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			s.CorrectCount++
		} else {
			s.WrongCount++
		}
	}
}

// clone returns a deep copy.
func (s *Session) clone() *Session {
	c := *s
	c.QuestionIDs = append([]int(nil), s.QuestionIDs...)
	c.Answers = append([]Answer(nil), s.Answers...)
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// Phase is the engine's position in the quiz state machine.
type Phase int

const (
	PhaseIdle            Phase = iota // No session loaded
	PhaseAwaitingAnswer               // Question shown, waiting for submit
	PhaseShowingFeedback              // Answer submitted, feedback shown
	PhaseCompleted                    // Session finalized
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseShowingFeedback:
		return "showing-feedback"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// Active reports whether a session is in progress.
func (p Phase) Active() bool {
	return p == PhaseAwaitingAnswer || p == PhaseShowingFeedback
}

// Choice is one answer option as presented.
type Choice struct {
	Label       string
	Text        string
	IsCorrect   bool
	OriginalKey string
}

// ShuffledQuestion is a question with its choices in display order.
// A fresh one is built each time a question is shown.
type ShuffledQuestion struct {
	Question catalog.Question
	Choices  []Choice
}

// NewShuffledQuestion permutes q's four choices and relabels them A..D.
func NewShuffledQuestion(q catalog.Question, sh *shuffle.Shuffler) *ShuffledQuestion {
	choices := make([]Choice, 0, len(catalog.ChoiceKeys))
	for _, key := range catalog.ChoiceKeys {
		choices = append(choices, Choice{
			Text:        q.Choice(key),
			IsCorrect:   key == catalog.CorrectKey,
			OriginalKey: key,
		})
	}
	shuffle.Permute(sh, choices)
	for i := range choices {
		choices[i].Label = catalog.ChoiceKeys[i]
	}
	return &ShuffledQuestion{Question: q, Choices: choices}
}

// Choice returns the option displayed under label.
func (sq *ShuffledQuestion) Choice(label string) (Choice, bool) {
	for _, c := range sq.Choices {
		if c.Label == label {
			return c, true
		}
	}
	return Choice{}, false
}

// CorrectLabel returns the display label of the correct option.
func (sq *ShuffledQuestion) CorrectLabel() string {
	for _, c := range sq.Choices {
		if c.IsCorrect {
			return c.Label
		}
	}
	return ""
}

// ActiveInfo summarizes a resumable quiz without loading it.
type ActiveInfo struct {
	SessionID  string
	Mode       selection.Mode
	CategoryID string
	StartedAt  time.Time
	Answered   int
	Total      int
}

// Position is the 1-based number of the next question to answer.
func (a ActiveInfo) Position() int {
	if a.Answered >= a.Total {
		return a.Total
	}
	return a.Answered + 1
}

// Result is a finished session plus its score.
type Result struct {
	Session *Session
	Percent float64
}

func newResult(s *Session) *Result {
	return &Result{Session: s, Percent: s.Percent()}
}
