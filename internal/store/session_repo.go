package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// sessionRepo implements SessionRepo with the ent SQL builder.
type sessionRepo struct {
	db *sql.DB
}

var sessionSelectColumns = []string{
	colID, colMode, colCategoryID, colStartedAt, colCompletedAt,
	colQuestionIDs, colAnswers, colCorrectCount, colWrongCount,
}

func (r *sessionRepo) Upsert(ctx context.Context, rec SessionRecord) error {
	qids, err := json.Marshal(nonNilInts(rec.QuestionIDs))
	if err != nil {
		return fmt.Errorf("marshal question ids: %w", err)
	}
	answers := rec.Answers
	if answers == nil {
		answers = []AnswerRecord{}
	}
	ans, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	var completed any
	if rec.CompletedAt != nil {
		completed = rec.CompletedAt.UTC()
	}

	query, args := builder().Insert(tableSessions).
		Columns(sessionSelectColumns...).
		Values(
			rec.ID, rec.Mode, rec.CategoryID, rec.StartedAt.UTC(), completed,
			string(qids), string(ans), rec.CorrectCount, rec.WrongCount,
		).
		OnConflict(
			entsql.ConflictColumns(colID),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert session %s: %w", rec.ID, err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*SessionRecord, error) {
	query, args := builder().
		Select(sessionSelectColumns...).
		From(entsql.Table(tableSessions)).
		Where(entsql.EQ(colID, id)).
		Query()

	rec, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query session %s: %w", id, err)
	}
	return rec, nil
}

func (r *sessionRepo) Recent(ctx context.Context, limit int) ([]SessionRecord, error) {
	sel := builder().
		Select(sessionSelectColumns...).
		From(entsql.Table(tableSessions)).
		OrderBy(entsql.Desc(colStartedAt))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func (r *sessionRepo) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	// Collect the overflow ids first; the single connection must be free
	// again before the delete runs.
	query, args := builder().
		Select(colID).
		From(entsql.Table(tableSessions)).
		OrderBy(entsql.Desc(colStartedAt), entsql.Desc(colID)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("query sessions for prune: %w", err)
	}
	var (
		stale []driver.Value
		seen  int
	)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan session id: %w", err)
		}
		seen++
		if seen > keep {
			stale = append(stale, id)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate sessions for prune: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	query, args = builder().Delete(tableSessions).
		Where(entsql.InValues(colID, stale...)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return len(stale), nil
	}
	return int(n), nil
}

func (r *sessionRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table(tableSessions)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*SessionRecord, error) {
	var (
		rec       SessionRecord
		completed sql.NullTime
		qids, ans string
	)
	err := row.Scan(
		&rec.ID, &rec.Mode, &rec.CategoryID, &rec.StartedAt, &completed,
		&qids, &ans, &rec.CorrectCount, &rec.WrongCount,
	)
	if err != nil {
		return nil, err
	}
	if completed.Valid {
		t := completed.Time
		rec.CompletedAt = &t
	}
	if err := json.Unmarshal([]byte(qids), &rec.QuestionIDs); err != nil {
		return nil, fmt.Errorf("decode question ids of %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(ans), &rec.Answers); err != nil {
		return nil, fmt.Errorf("decode answers of %s: %w", rec.ID, err)
	}
	return &rec, nil
}

func nonNilInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
