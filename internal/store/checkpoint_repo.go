package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// checkpointRepo implements CheckpointRepo with the ent SQL builder.
type checkpointRepo struct {
	db *sql.DB
}

func (r *checkpointRepo) Put(ctx context.Context, name string, data []byte) error {
	query, args := builder().Insert(tableCheckpoints).
		Columns(colName, colData, colUpdatedAt).
		Values(name, data, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns(colName),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save checkpoint %s: %w", name, err)
	}
	return nil
}

func (r *checkpointRepo) Get(ctx context.Context, name string) ([]byte, error) {
	query, args := builder().
		Select(colData).
		From(entsql.Table(tableCheckpoints)).
		Where(entsql.EQ(colName, name)).
		Query()

	var data []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load checkpoint %s: %w", name, err)
	}
	return data, nil
}

func (r *checkpointRepo) Delete(ctx context.Context, name string) error {
	query, args := builder().Delete(tableCheckpoints).
		Where(entsql.EQ(colName, name)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete checkpoint %s: %w", name, err)
	}
	return nil
}
