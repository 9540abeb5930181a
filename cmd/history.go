package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examtrainer/internal/quiz"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List finished quizzes, or show one in detail",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			res, err := e.engine.LoadSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printSessionDetail(cmd, e, res)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		sessions, err := e.engine.History(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No finished quizzes yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-22s  %9s  %5s\n", "ID", "Started", "Mode", "Score", "%")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		for i := range sessions {
			s := &sessions[i]
			fmt.Fprintf(out, "%-36s  %-16s  %-22s  %4d/%-4d  %5.0f\n",
				s.ID, s.StartedAt.Local().Format("2006-01-02 15:04"),
				modeLabel(s.Mode, s.CategoryID, e),
				s.CorrectCount, len(s.QuestionIDs), s.Percent())
		}
		return nil
	},
}

func printSessionDetail(cmd *cobra.Command, e *env, res *quiz.Result) error {
	out := cmd.OutOrStdout()
	s := res.Session
	fmt.Fprintf(out, "Session:   %s\n", s.ID)
	fmt.Fprintf(out, "Mode:      %s\n", modeLabel(s.Mode, s.CategoryID, e))
	fmt.Fprintf(out, "Started:   %s\n", s.StartedAt.Local().Format("2006-01-02 15:04"))
	if s.CompletedAt != nil {
		fmt.Fprintf(out, "Finished:  %s\n", s.CompletedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(out, "Score:     %d correct, %d wrong (%.0f%%)\n\n", s.CorrectCount, s.WrongCount, res.Percent)

	view, err := e.view()
	if err != nil {
		return err
	}
	for _, a := range s.Answers {
		mark := "✗"
		if a.IsCorrect {
			mark = "✓"
		}
		text := fmt.Sprintf("#%d", a.QuestionID)
		if q, ok := view.Question(a.QuestionID); ok {
			text = fmt.Sprintf("#%d %s", q.Number, q.Text)
		}
		fmt.Fprintf(out, "  %s %s\n", mark, text)
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of quizzes to list (0 = all)")
}
