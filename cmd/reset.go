package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all progress and quiz history",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		out := cmd.OutOrStdout()

		if !yes {
			fmt.Fprint(out, "This deletes all progress and quiz history. Type 'yes' to continue: ")
			sc := bufio.NewScanner(cmd.InOrStdin())
			if !sc.Scan() || strings.TrimSpace(strings.ToLower(sc.Text())) != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.progress.ResetAll(cmd.Context()); err != nil {
			return err
		}
		e.log.Info("learner data reset")
		fmt.Fprintln(out, "All progress and history deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
