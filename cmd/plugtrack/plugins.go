package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/plugtrack/internal/preview"
	"github.com/kk-code-lab/plugtrack/internal/tracker"
)

var (
	pluginApp         string
	pluginGroup       string
	pluginQuery       string
	pluginURL         string
	pluginDescription string
	pluginInstalled   bool
	pluginName        string
)

var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Manage plugins",
}

var pluginListCmd = &cobra.Command{
	Use:   "list",
	Short: "List plugins",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			plugins, err := svc.Plugins(cmd.Context(), tracker.Filter{
				AppID:   pluginApp,
				GroupID: pluginGroup,
				Query:   pluginQuery,
			})
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tGROUP\tINSTALLED")
			for _, p := range plugins {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, cell(p.Name), p.GroupID, installedLabel(p.Installed))
			}
			return w.Flush()
		})
	},
}

var pluginShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a plugin with its rendered description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			p, err := svc.Plugin(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			html, err := svc.DescriptionHTML(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:      %s\n", cell(p.Name))
			fmt.Fprintf(out, "App:       %s\n", p.AppID)
			fmt.Fprintf(out, "Group:     %s\n", p.GroupID)
			fmt.Fprintf(out, "URL:       %s\n", p.URL)
			fmt.Fprintf(out, "Status:    %s\n", installedLabel(p.Installed))
			if html != "" {
				fmt.Fprintf(out, "\n%s\n", html)
			}
			return nil
		})
	},
}

var pluginAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a plugin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			p, err := svc.SavePlugin(cmd.Context(), tracker.Plugin{
				AppID:       pluginApp,
				GroupID:     pluginGroup,
				Name:        args[0],
				URL:         pluginURL,
				Description: pluginDescription,
				Installed:   pluginInstalled,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		})
	},
}

var pluginSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Change plugin fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			p, err := svc.Plugin(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = pluginName
			}
			if flags.Changed("group") {
				p.GroupID = pluginGroup
			}
			if flags.Changed("url") {
				p.URL = pluginURL
			}
			if flags.Changed("description") {
				p.Description = pluginDescription
			}
			if flags.Changed("installed") {
				p.Installed = pluginInstalled
			}
			_, err = svc.SavePlugin(cmd.Context(), p)
			return err
		})
	},
}

var pluginEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a plugin description with a live preview",
	Long:  "Open the live preview on the plugin's description. Ctrl-S saves it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			p, err := svc.Plugin(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return runEditor(p.Description, preview.Options{
				Title:    p.Name,
				Renderer: svc.Renderer(),
				TabWidth: cfg.Preview.TabWidth,
				Save: func(text string) error {
					p.Description = text
					saved, err := svc.SavePlugin(cmd.Context(), p)
					if err == nil {
						p = saved
					}
					return err
				},
			})
		})
	},
}

var pluginRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a plugin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			return svc.DeletePlugin(cmd.Context(), args[0])
		})
	},
}

func init() {
	pluginListCmd.Flags().StringVar(&pluginApp, "app", "", "Only plugins of this app")
	pluginListCmd.Flags().StringVar(&pluginGroup, "group", "", `Only plugins of this group ("all" for every group)`)
	pluginListCmd.Flags().StringVarP(&pluginQuery, "query", "q", "", "Case-insensitive match on plugin or group name")

	pluginAddCmd.Flags().StringVar(&pluginApp, "app", "", "App id")
	pluginAddCmd.Flags().StringVar(&pluginGroup, "group", "", "Group id")
	pluginAddCmd.Flags().StringVar(&pluginURL, "url", "", "Install or product page")
	pluginAddCmd.Flags().StringVar(&pluginDescription, "description", "", "Markup description")
	pluginAddCmd.Flags().BoolVar(&pluginInstalled, "installed", false, "Mark as installed")
	_ = pluginAddCmd.MarkFlagRequired("app")

	pluginSetCmd.Flags().StringVar(&pluginName, "name", "", "New name")
	pluginSetCmd.Flags().StringVar(&pluginGroup, "group", "", "Group id")
	pluginSetCmd.Flags().StringVar(&pluginURL, "url", "", "Install or product page")
	pluginSetCmd.Flags().StringVar(&pluginDescription, "description", "", "Markup description")
	pluginSetCmd.Flags().BoolVar(&pluginInstalled, "installed", false, "Installed state")

	pluginCmd.AddCommand(pluginListCmd, pluginShowCmd, pluginAddCmd, pluginSetCmd, pluginEditCmd, pluginRmCmd)
	rootCmd.AddCommand(pluginCmd)
}

func installedLabel(installed bool) string {
	if installed {
		return "installed"
	}
	return "not installed"
}
