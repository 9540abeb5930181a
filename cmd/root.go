package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/examtrainer/internal/settings"
	"github.com/abhisek/examtrainer/internal/store"
)

const catalogEnv = "EXAMTRAINER_CATALOG"

var rootCmd = &cobra.Command{
	Use:   "examtrainer",
	Short: "Offline multiple-choice exam trainer",
	Long:  "examtrainer drills the radio-telephony question catalog in the terminal and remembers which questions you keep getting wrong.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EXAMTRAINER_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to settings file (overrides EXAMTRAINER_CONFIG env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Directory with questions.json, questions-e.json and categories.json (overrides EXAMTRAINER_CATALOG env var)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EXAMTRAINER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveSettingsPath returns the settings file path using --config,
// then EXAMTRAINER_CONFIG, then the default XDG path.
func resolveSettingsPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	return settings.DefaultPath()
}

// resolveCatalogDir returns the catalog directory, or "" for the
// embedded catalog.
func resolveCatalogDir(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		return p
	}
	return os.Getenv(catalogEnv)
}
