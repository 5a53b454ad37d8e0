package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/plugtrack/internal/source"
	"github.com/kk-code-lab/plugtrack/internal/store"
	"github.com/kk-code-lab/plugtrack/internal/tracker"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all data as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			snap, err := svc.Export(cmd.Context())
			if err != nil {
				return err
			}
			data, err := snap.Marshal()
			if err != nil {
				return err
			}
			data = append(data, '\n')
			if len(args) == 0 || args[0] == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			logrus.Infof("exported %d apps, %d groups, %d plugins to %s",
				len(snap.Apps), len(snap.Groups), len(snap.Plugins), args[0])
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with an export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := source.ReadFile(args[0], source.DefaultLimit)
		if err != nil {
			return err
		}
		snap, err := store.ParseSnapshot([]byte(text))
		if err != nil {
			return err
		}
		return withService(func(svc *tracker.Service) error {
			return svc.Import(cmd.Context(), snap)
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample data into an empty store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			seeded, err := svc.Seed(cmd.Context())
			if err != nil {
				return err
			}
			if seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "seeded sample data")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "store already has data")
			}
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace all data with the sample data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *tracker.Service) error {
			return svc.Reset(cmd.Context())
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd, seedCmd, resetCmd)
}
