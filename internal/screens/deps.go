// Package screens holds the dependencies shared by the TUI screens. Each
// screen lives in its own subpackage.
package screens

import (
	"context"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/logger"
	"github.com/abhisek/examtrainer/internal/progress"
	"github.com/abhisek/examtrainer/internal/quiz"
	"github.com/abhisek/examtrainer/internal/selection"
	"github.com/abhisek/examtrainer/internal/settings"
)

// Deps is handed to every screen constructor.
type Deps struct {
	Engine   *quiz.Engine
	Progress *progress.Service
	Catalog  *catalog.Catalog
	Settings *settings.Provider
	Log      *logger.Logger
}

// View returns the catalog view for the configured variant.
func (d Deps) View() (*catalog.View, error) {
	return d.Catalog.View(d.Settings.Variant())
}

// Streak returns the current day streak, or 0 if history is unreadable.
func (d Deps) Streak(ctx context.Context) int {
	n, err := d.Progress.Streak(ctx)
	if err != nil {
		d.Log.Warn("read streak", "error", err)
		return 0
	}
	return n
}

// CategoryName resolves a category id to its display name.
func (d Deps) CategoryName(id string) string {
	if id == "" {
		return ""
	}
	v, err := d.View()
	if err != nil {
		return id
	}
	if c, ok := v.Category(id); ok {
		return c.Name
	}
	return id
}

// ModeLabel is the display name of a quiz mode.
func (d Deps) ModeLabel(mode selection.Mode, categoryID string) string {
	switch mode {
	case selection.ModeAll:
		return "All questions"
	case selection.ModeRandom:
		return "Random quiz"
	case selection.ModeWeak:
		return "Weak questions"
	case selection.ModeExam:
		return "Exam simulation"
	case selection.ModeCategory:
		return "Category: " + d.CategoryName(categoryID)
	}
	return string(mode)
}
