package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// progressRepo implements ProgressRepo with the ent SQL builder.
type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Upsert(ctx context.Context, rec ProgressRecord) error {
	query, args := builder().Insert(tableProgress).
		Columns(colQuestionID, colCorrectCount, colWrongCount, colLastAnsweredAt, colLastCorrect).
		Values(rec.QuestionID, rec.CorrectCount, rec.WrongCount, rec.LastAnsweredAt.UTC(), rec.LastCorrect).
		OnConflict(
			entsql.ConflictColumns(colQuestionID),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert progress %d: %w", rec.QuestionID, err)
	}
	return nil
}

func (r *progressRepo) All(ctx context.Context) ([]ProgressRecord, error) {
	query, args := builder().
		Select(colQuestionID, colCorrectCount, colWrongCount, colLastAnsweredAt, colLastCorrect).
		From(entsql.Table(tableProgress)).
		OrderBy(colQuestionID).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []ProgressRecord
	for rows.Next() {
		var rec ProgressRecord
		if err := rows.Scan(&rec.QuestionID, &rec.CorrectCount, &rec.WrongCount, &rec.LastAnsweredAt, &rec.LastCorrect); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return out, nil
}
