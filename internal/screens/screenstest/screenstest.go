// Package screenstest wires real screen dependencies over a throwaway
// database and the built-in catalog.
package screenstest

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/logger"
	"github.com/abhisek/examtrainer/internal/progress"
	"github.com/abhisek/examtrainer/internal/quiz"
	"github.com/abhisek/examtrainer/internal/screens"
	"github.com/abhisek/examtrainer/internal/selection"
	"github.com/abhisek/examtrainer/internal/settings"
	"github.com/abhisek/examtrainer/internal/shuffle"
	"github.com/abhisek/examtrainer/internal/store"
)

// NewDeps opens a store under t.TempDir and wires an engine with the
// given settings. The store is closed when the test ends.
func NewDeps(t *testing.T, s settings.Settings) screens.Deps {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(filepath.Join(t.TempDir(), "screens.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cat, err := catalog.LoadDefault(ctx)
	require.NoError(t, err)

	prog, err := progress.NewService(ctx, st.ProgressRepo(), st.SessionRepo(), st)
	require.NoError(t, err)

	prefs := settings.Static(s)
	sh := shuffle.NewSeeded(7)
	log := logger.Nop()
	engine := quiz.NewEngine(quiz.Deps{
		Catalog:     cat,
		Selector:    selection.NewSelector(prog, sh),
		Progress:    prog,
		Persistence: quiz.NewPersistence(st.CheckpointRepo(), st.SessionRepo(), log),
		Settings:    prefs,
		Logger:      log,
		Shuffler:    sh,
	})

	return screens.Deps{
		Engine:   engine,
		Progress: prog,
		Catalog:  cat,
		Settings: prefs,
		Log:      log,
	}
}

// KeyPress builds a printable key press.
func KeyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// SpecialKey builds a non-printable key press such as tea.KeyEnter.
func SpecialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Drain runs cmd and every command it batches, returning the messages
// produced. Do not pass commands that tick, such as a cursor blink.
func Drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch m := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, Drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
