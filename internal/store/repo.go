package store

import (
	"context"
	"time"
)

// ProgressRecord is the durable mastery row for one question.
type ProgressRecord struct {
	QuestionID     int
	CorrectCount   int
	WrongCount     int
	LastAnsweredAt time.Time
	LastCorrect    bool
}

// AnswerRecord is one stored answer inside a session row.
type AnswerRecord struct {
	QuestionID  int       `json:"questionId"`
	ChosenLabel string    `json:"chosenLabel"`
	IsCorrect   bool      `json:"isCorrect"`
	AnsweredAt  time.Time `json:"answeredAt"`
}

// SessionRecord is one quiz session as stored in history.
type SessionRecord struct {
	ID           string
	Mode         string
	CategoryID   string
	StartedAt    time.Time
	CompletedAt  *time.Time
	QuestionIDs  []int
	Answers      []AnswerRecord
	CorrectCount int
	WrongCount   int
}

// ProgressRepo manages per-question mastery rows.
type ProgressRepo interface {
	// Upsert inserts or replaces the row for rec.QuestionID.
	Upsert(ctx context.Context, rec ProgressRecord) error

	// All returns every stored row ordered by question id.
	All(ctx context.Context) ([]ProgressRecord, error)
}

// SessionRepo manages the quiz history collection.
type SessionRepo interface {
	// Upsert inserts or replaces a session by id.
	Upsert(ctx context.Context, rec SessionRecord) error

	// Get returns the session with id, or nil if it does not exist.
	Get(ctx context.Context, id string) (*SessionRecord, error)

	// Recent returns up to limit sessions, newest start first.
	// A limit of 0 returns all sessions.
	Recent(ctx context.Context, limit int) ([]SessionRecord, error)

	// Prune deletes all but the keep most recently started sessions.
	// It returns the number of rows deleted.
	Prune(ctx context.Context, keep int) (int, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)
}

// CheckpointRepo manages named opaque blobs. The quiz engine keeps its
// resumable state in a single slot.
type CheckpointRepo interface {
	// Put overwrites the slot.
	Put(ctx context.Context, name string, data []byte) error

	// Get returns the slot contents, or nil if the slot is empty.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete empties the slot. Deleting an empty slot is not an error.
	Delete(ctx context.Context, name string) error
}
