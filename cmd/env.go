package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/logger"
	"github.com/abhisek/examtrainer/internal/progress"
	"github.com/abhisek/examtrainer/internal/quiz"
	"github.com/abhisek/examtrainer/internal/selection"
	"github.com/abhisek/examtrainer/internal/settings"
	"github.com/abhisek/examtrainer/internal/shuffle"
	"github.com/abhisek/examtrainer/internal/store"
)

const logModeEnv = "EXAMTRAINER_LOG_MODE"

// env bundles everything a command needs. Close releases it.
type env struct {
	store    *store.Store
	catalog  *catalog.Catalog
	settings *settings.Provider
	progress *progress.Service
	engine   *quiz.Engine
	log      *logger.Logger
}

// openEnv resolves paths from flags and environment, opens the store and
// wires the quiz engine.
func openEnv(cmd *cobra.Command) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	log, err := openLogger(dbPath)
	if err != nil {
		return nil, err
	}

	settingsPath, err := resolveSettingsPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}
	prefs, err := settings.NewProvider(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	cat, err := loadCatalog(ctx, resolveCatalogDir(cmd))
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	prog, err := progress.NewService(ctx, st.ProgressRepo(), st.SessionRepo(), st)
	if err != nil {
		st.Close()
		return nil, err
	}

	sh := shuffle.Default()
	engine := quiz.NewEngine(quiz.Deps{
		Catalog:     cat,
		Selector:    selection.NewSelector(prog, sh),
		Progress:    prog,
		Persistence: quiz.NewPersistence(st.CheckpointRepo(), st.SessionRepo(), log.With("component", "persistence")),
		Settings:    prefs,
		Logger:      log.With("component", "quiz"),
		Shuffler:    sh,
	})

	log.Debug("environment ready", "db", dbPath, "settings", settingsPath, "variant", prefs.Variant())
	return &env{
		store:    st,
		catalog:  cat,
		settings: prefs,
		progress: prog,
		engine:   engine,
		log:      log,
	}, nil
}

// Close closes the store and flushes the log.
func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store", "error", err)
	}
	e.log.Sync()
}

// view returns the catalog view for the configured variant.
func (e *env) view() (*catalog.View, error) {
	return e.catalog.View(e.settings.Variant())
}

func loadCatalog(ctx context.Context, dir string) (*catalog.Catalog, error) {
	if dir == "" {
		cat, err := catalog.LoadDefault(ctx)
		if err != nil {
			return nil, fmt.Errorf("load built-in catalog: %w", err)
		}
		return cat, nil
	}
	cat, err := catalog.LoadDir(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", dir, err)
	}
	return cat, nil
}

// openLogger writes to examtrainer.log next to the database so terminal
// output stays clean.
func openLogger(dbPath string) (*logger.Logger, error) {
	logPath := filepath.Join(filepath.Dir(dbPath), "examtrainer.log")
	log, err := logger.New(os.Getenv(logModeEnv), logPath)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return log, nil
}
