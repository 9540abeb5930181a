package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examtrainer/internal/quiz"
	"github.com/abhisek/examtrainer/internal/selection"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Run a quiz in plain line mode",
}

var quizStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new quiz",
	Long: `Start a new quiz. Modes:
  all       every question in catalog order
  random    a random sample (--count, default 20)
  category  one category, shuffled (--category)
  weak      questions you got wrong more often than right
  exam      exam simulation (--count, default 100)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		category, _ := cmd.Flags().GetString("category")
		count, _ := cmd.Flags().GetInt("count")

		m := selection.Mode(mode)
		if !m.Valid() {
			return fmt.Errorf("unknown mode %q (want all, random, category, weak or exam)", mode)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		if info, err := e.engine.ActiveInfo(ctx); err == nil && info != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Replacing unfinished %s quiz (%d/%d answered).\n", info.Mode, info.Answered, info.Total)
		}

		err = e.engine.Start(ctx, selection.Request{Mode: m, CategoryID: category, Count: count})
		switch {
		case errors.Is(err, selection.ErrMissingCategory):
			return fmt.Errorf("%w; list categories with: examtrainer catalog categories", err)
		case err != nil:
			return err
		}
		return runLineQuiz(cmd.Context(), e, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var quizResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Continue the unfinished quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		err = e.engine.Resume(cmd.Context())
		if errors.Is(err, quiz.ErrNoActiveSession) {
			fmt.Fprintln(cmd.OutOrStdout(), "No quiz in progress.")
			return nil
		}
		if err != nil {
			return err
		}
		return runLineQuiz(cmd.Context(), e, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var quizAbandonCmd = &cobra.Command{
	Use:   "abandon",
	Short: "Discard the unfinished quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		info, err := e.engine.ActiveInfo(cmd.Context())
		if err != nil {
			return err
		}
		if info == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No quiz in progress.")
			return nil
		}
		if err := e.engine.Abandon(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Abandoned %s quiz after %d of %d questions.\n", info.Mode, info.Answered, info.Total)
		return nil
	},
}

var quizStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the unfinished quiz, if any",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		info, err := e.engine.ActiveInfo(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if info == nil {
			fmt.Fprintln(out, "No quiz in progress.")
			return nil
		}
		fmt.Fprintf(out, "Mode:      %s\n", modeLabel(info.Mode, info.CategoryID, e))
		fmt.Fprintf(out, "Started:   %s\n", info.StartedAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprintf(out, "Progress:  %d / %d answered\n", info.Answered, info.Total)
		fmt.Fprintf(out, "Next:      question %d\n", info.Position())
		return nil
	},
}

// modeLabel names a mode, with the category name for category quizzes.
func modeLabel(mode selection.Mode, categoryID string, e *env) string {
	if mode != selection.ModeCategory || categoryID == "" {
		return string(mode)
	}
	if view, err := e.view(); err == nil {
		if c, ok := view.Category(categoryID); ok {
			return fmt.Sprintf("category: %s", c.Name)
		}
	}
	return fmt.Sprintf("category: %s", categoryID)
}

func init() {
	quizStartCmd.Flags().String("mode", string(selection.ModeRandom), "Quiz mode: all, random, category, weak or exam")
	quizStartCmd.Flags().String("category", "", "Category id for --mode category")
	quizStartCmd.Flags().Int("count", 0, "Number of questions for random and exam modes (0 = default)")

	quizCmd.AddCommand(quizStartCmd)
	quizCmd.AddCommand(quizResumeCmd)
	quizCmd.AddCommand(quizAbandonCmd)
	quizCmd.AddCommand(quizStatusCmd)
}
