package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examtrainer/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		view, err := e.view()
		if err != nil {
			return err
		}
		streak, err := e.progress.Streak(cmd.Context())
		if err != nil {
			return err
		}
		sessions, err := e.store.SessionRepo().Count(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Questions:     %d (%s)\n", view.Len(), view.Variant())
		fmt.Fprintf(out, "Answered:      %d\n", e.progress.TotalAnswered())
		fmt.Fprintf(out, "Ever correct:  %d\n", e.progress.TotalCorrect())
		fmt.Fprintf(out, "Success rate:  %.1f%%\n", e.progress.SuccessRate())
		fmt.Fprintf(out, "Weak:          %d\n", len(e.progress.WeakIDs(progress.DefaultWeakThreshold)))
		fmt.Fprintf(out, "Quizzes kept:  %d\n", sessions)
		fmt.Fprintf(out, "Day streak:    %d\n", streak)

		fmt.Fprintf(out, "\n%-28s  %7s  %8s  %7s  %5s\n", "Category", "Total", "Answered", "Correct", "%")
		fmt.Fprintln(out, strings.Repeat("─", 64))
		for _, cs := range e.progress.CategoryRollup(view.Mapping()) {
			name := cs.CategoryID
			if c, ok := view.Category(cs.CategoryID); ok {
				name = c.Name
			}
			fmt.Fprintf(out, "%-28s  %7d  %8d  %7d  %5.0f\n", name, cs.Total, cs.Answered, cs.Correct, cs.Percent())
			if cs.Divergent > 0 {
				fmt.Fprintf(out, "  %d judged correct only by last answer or only by balance\n", cs.Divergent)
			}
		}
		return nil
	},
}
