package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/plugtrack/internal/server"
	"github.com/kk-code-lab/plugtrack/internal/tracker"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve the tracker and the markup renderer over HTTP.

An empty store is seeded with sample data on startup.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides serve.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Serve.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withService(func(svc *tracker.Service) error {
		seeded, err := svc.Seed(ctx)
		if err != nil {
			return err
		}
		if seeded {
			logrus.Info("seeded empty store with sample data")
		}
		return server.NewServer(svc, addr).ListenAndServe(ctx)
	})
}
