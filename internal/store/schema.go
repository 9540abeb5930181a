package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableProgress    = "question_progress"
	tableSessions    = "quiz_sessions"
	tableCheckpoints = "checkpoints"

	colQuestionID     = "question_id"
	colCorrectCount   = "correct_count"
	colWrongCount     = "wrong_count"
	colLastAnsweredAt = "last_answered_at"
	colLastCorrect    = "last_correct"

	colID          = "id"
	colMode        = "mode"
	colCategoryID  = "category_id"
	colStartedAt   = "started_at"
	colCompletedAt = "completed_at"
	colQuestionIDs = "question_ids"
	colAnswers     = "answers"

	colName      = "name"
	colData      = "data"
	colUpdatedAt = "updated_at"
)

var (
	progressColumns = []*schema.Column{
		{Name: colQuestionID, Type: field.TypeInt},
		{Name: colCorrectCount, Type: field.TypeInt, Default: 0},
		{Name: colWrongCount, Type: field.TypeInt, Default: 0},
		{Name: colLastAnsweredAt, Type: field.TypeTime},
		{Name: colLastCorrect, Type: field.TypeBool, Default: false},
	}
	progressTable = &schema.Table{
		Name:       tableProgress,
		Columns:    progressColumns,
		PrimaryKey: []*schema.Column{progressColumns[0]},
	}

	sessionColumns = []*schema.Column{
		{Name: colID, Type: field.TypeString, Size: 36},
		{Name: colMode, Type: field.TypeString},
		{Name: colCategoryID, Type: field.TypeString, Default: ""},
		{Name: colStartedAt, Type: field.TypeTime},
		{Name: colCompletedAt, Type: field.TypeTime, Nullable: true},
		{Name: colQuestionIDs, Type: field.TypeJSON},
		{Name: colAnswers, Type: field.TypeJSON},
		{Name: colCorrectCount, Type: field.TypeInt, Default: 0},
		{Name: colWrongCount, Type: field.TypeInt, Default: 0},
	}
	sessionsTable = &schema.Table{
		Name:       tableSessions,
		Columns:    sessionColumns,
		PrimaryKey: []*schema.Column{sessionColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "quizsession_started_at",
				Columns: []*schema.Column{sessionColumns[3]},
			},
		},
	}

	checkpointColumns = []*schema.Column{
		{Name: colName, Type: field.TypeString},
		{Name: colData, Type: field.TypeBytes},
		{Name: colUpdatedAt, Type: field.TypeTime},
	}
	checkpointsTable = &schema.Table{
		Name:       tableCheckpoints,
		Columns:    checkpointColumns,
		PrimaryKey: []*schema.Column{checkpointColumns[0]},
	}

	// tables lists every table managed by the auto-migration.
	tables = []*schema.Table{
		progressTable,
		sessionsTable,
		checkpointsTable,
	}
)

// migrate creates missing tables, columns and indexes.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
