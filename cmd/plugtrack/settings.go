package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/plugtrack/internal/tracker"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change display settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			st, err := svc.Settings(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "theme:      %s\n", st.Theme)
			fmt.Fprintf(out, "accent:     %s\n", st.Accent)
			fmt.Fprintf(out, "background: %s\n", st.Background)
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <theme|accent|background> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			st, err := svc.Settings(cmd.Context())
			if err != nil {
				return err
			}
			if err := st.Set(args[0], args[1]); err != nil {
				return err
			}
			_, err = svc.SaveSettings(cmd.Context(), st)
			return err
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
