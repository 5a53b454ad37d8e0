package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/plugtrack/internal/textutil"
	"github.com/kk-code-lab/plugtrack/internal/tracker"
)

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Manage apps",
}

var appListCmd = &cobra.Command{
	Use:   "list",
	Short: "List apps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			apps, err := svc.Apps(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tSLUG")
			for _, a := range apps {
				fmt.Fprintf(w, "%s\t%s\t%s\n", a.ID, cell(a.Name), a.Slug)
			}
			return w.Flush()
		})
	},
}

var appAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an app",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			app, err := svc.AddApp(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.ID)
			return nil
		})
	},
}

var appRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename an app",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			_, err := svc.RenameApp(cmd.Context(), args[0], args[1])
			return err
		})
	},
}

var appRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an app with its groups and plugins",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			return svc.DeleteApp(cmd.Context(), args[0])
		})
	},
}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage plugin groups",
}

var groupListCmd = &cobra.Command{
	Use:   "list <app-id>",
	Short: "List the groups of an app",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			if _, err := svc.App(cmd.Context(), args[0]); err != nil {
				return err
			}
			groups, err := svc.Groups(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME")
			for _, g := range groups {
				fmt.Fprintf(w, "%s\t%s\n", g.ID, cell(g.Name))
			}
			return w.Flush()
		})
	},
}

var groupAddCmd = &cobra.Command{
	Use:   "add <app-id> <name>",
	Short: "Add a group to an app",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			g, err := svc.AddGroup(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), g.ID)
			return nil
		})
	},
}

var groupRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			_, err := svc.RenameGroup(cmd.Context(), args[0], args[1])
			return err
		})
	},
}

var groupRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a group and its plugins",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			return svc.DeleteGroup(cmd.Context(), args[0])
		})
	},
}

func init() {
	appCmd.AddCommand(appListCmd, appAddCmd, appRenameCmd, appRmCmd)
	groupCmd.AddCommand(groupListCmd, groupAddCmd, groupRenameCmd, groupRmCmd)
	rootCmd.AddCommand(appCmd, groupCmd)
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// maxCellWidth bounds free-text table columns.
const maxCellWidth = 40

// cell makes user text safe for a single table cell.
func cell(text string) string {
	return textutil.Truncate(textutil.SanitizeTerminalText(text), maxCellWidth)
}
