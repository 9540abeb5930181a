package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/examtrainer/internal/app"
)

// runApp opens the environment and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	e.log.Info("starting tui")
	return app.Run(app.Options{
		Engine:   e.engine,
		Progress: e.progress,
		Catalog:  e.catalog,
		Settings: e.settings,
		Log:      e.log.With("component", "tui"),
	})
}
