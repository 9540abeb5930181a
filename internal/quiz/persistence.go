package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/examtrainer/internal/logger"
	"github.com/abhisek/examtrainer/internal/selection"
	"github.com/abhisek/examtrainer/internal/store"
)

// HistoryLimit is the number of finished sessions kept.
const HistoryLimit = 50

const checkpointSlot = "active"

// ErrCorruptCheckpoint marks a checkpoint that could not be decoded. It
// is logged and never returned to callers.
var ErrCorruptCheckpoint = errors.New("corrupt checkpoint")

// Checkpoint is the resumable state of an unfinished session.
type Checkpoint struct {
	Session      Session `json:"session"`
	CurrentIndex int     `json:"currentIndex"`
}

// Persistence stores the checkpoint slot and the session history.
type Persistence struct {
	checkpoints store.CheckpointRepo
	sessions    store.SessionRepo
	log         *logger.Logger
}

// NewPersistence creates a Persistence. A nil logger discards output.
func NewPersistence(checkpoints store.CheckpointRepo, sessions store.SessionRepo, log *logger.Logger) *Persistence {
	if log == nil {
		log = logger.Nop()
	}
	return &Persistence{checkpoints: checkpoints, sessions: sessions, log: log}
}

// SaveCheckpoint overwrites the slot with s at index.
func (p *Persistence) SaveCheckpoint(ctx context.Context, s *Session, index int) error {
	data, err := json.Marshal(Checkpoint{Session: *s, CurrentIndex: index})
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	return p.checkpoints.Put(ctx, checkpointSlot, data)
}

// LoadCheckpoint returns the saved checkpoint, or nil if there is none.
// An unreadable checkpoint is logged, cleared and reported as absent.
func (p *Persistence) LoadCheckpoint(ctx context.Context) (*Checkpoint, error) {
	data, err := p.checkpoints.Get(ctx, checkpointSlot)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	cp, err := decodeCheckpoint(data)
	if err != nil {
		p.log.Warn("discarding unreadable checkpoint", "error", err)
		if clearErr := p.ClearCheckpoint(ctx); clearErr != nil {
			p.log.Error("clear unreadable checkpoint", "error", clearErr)
		}
		return nil, nil
	}
	return cp, nil
}

// ClearCheckpoint empties the slot.
func (p *Persistence) ClearCheckpoint(ctx context.Context) error {
	return p.checkpoints.Delete(ctx, checkpointSlot)
}

// AppendHistory stores s (replacing an entry with the same id) and then
// evicts the oldest sessions beyond HistoryLimit.
func (p *Persistence) AppendHistory(ctx context.Context, s *Session) error {
	if err := p.sessions.Upsert(ctx, toRecord(s)); err != nil {
		return err
	}
	n, err := p.sessions.Prune(ctx, HistoryLimit)
	if err != nil {
		// The session itself is stored; an oversized history is harmless.
		p.log.Warn("prune session history", "error", err)
		return nil
	}
	if n > 0 {
		p.log.Debug("pruned session history", "evicted", n)
	}
	return nil
}

// History returns up to limit finished sessions, newest first. A limit
// of 0 returns everything kept.
func (p *Persistence) History(ctx context.Context, limit int) ([]Session, error) {
	recs, err := p.sessions.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Session, 0, len(recs))
	for _, r := range recs {
		out = append(out, *fromRecord(r))
	}
	return out, nil
}

// Session returns the stored session with id, or nil.
func (p *Persistence) Session(ctx context.Context, id string) (*Session, error) {
	rec, err := p.sessions.Get(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return fromRecord(*rec), nil
}

func decodeCheckpoint(data []byte) (*Checkpoint, error) {
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCheckpoint, err)
	}
	s := &cp.Session
	switch {
	case s.ID == "":
		return nil, fmt.Errorf("%w: missing session id", ErrCorruptCheckpoint)
	case len(s.QuestionIDs) == 0:
		return nil, fmt.Errorf("%w: no questions", ErrCorruptCheckpoint)
	case len(s.Answers) > len(s.QuestionIDs):
		return nil, fmt.Errorf("%w: %d answers for %d questions", ErrCorruptCheckpoint, len(s.Answers), len(s.QuestionIDs))
	case cp.CurrentIndex < 0 || cp.CurrentIndex >= len(s.QuestionIDs):
		return nil, fmt.Errorf("%w: index %d out of range", ErrCorruptCheckpoint, cp.CurrentIndex)
	}
	s.recount()
	return &cp, nil
}

func toRecord(s *Session) store.SessionRecord {
	answers := make([]store.AnswerRecord, len(s.Answers))
	for i, a := range s.Answers {
		answers[i] = store.AnswerRecord{
			QuestionID:  a.QuestionID,
			ChosenLabel: a.ChosenLabel,
			IsCorrect:   a.IsCorrect,
			AnsweredAt:  a.AnsweredAt,
		}
	}
	return store.SessionRecord{
		ID:           s.ID,
		Mode:         string(s.Mode),
		CategoryID:   s.CategoryID,
		StartedAt:    s.StartedAt,
		CompletedAt:  s.CompletedAt,
		QuestionIDs:  s.QuestionIDs,
		Answers:      answers,
		CorrectCount: s.CorrectCount,
		WrongCount:   s.WrongCount,
	}
}

func fromRecord(r store.SessionRecord) *Session {
	answers := make([]Answer, len(r.Answers))
	for i, a := range r.Answers {
		answers[i] = Answer{
			QuestionID:  a.QuestionID,
			ChosenLabel: a.ChosenLabel,
			IsCorrect:   a.IsCorrect,
			AnsweredAt:  a.AnsweredAt,
		}
	}
	s := &Session{
		ID:          r.ID,
		Mode:        selection.Mode(r.Mode),
		CategoryID:  r.CategoryID,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
		QuestionIDs: r.QuestionIDs,
		Answers:     answers,
	}
	s.recount()
	return s
}
