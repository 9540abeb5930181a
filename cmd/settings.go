package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examtrainer/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveSettingsPath(cmd)
		if err != nil {
			return err
		}
		s, err := settings.Load(path)
		if err != nil {
			return err
		}
		data, err := s.Marshal()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, data)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Change one setting",
	Args:      cobra.ExactArgs(2),
	ValidArgs: settings.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveSettingsPath(cmd)
		if err != nil {
			return err
		}
		p, err := settings.NewProvider(path)
		if err != nil {
			return err
		}
		s := p.Get()
		if err := s.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := p.Update(s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
