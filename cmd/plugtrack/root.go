package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/plugtrack/internal/config"
	"github.com/kk-code-lab/plugtrack/internal/markup"
	"github.com/kk-code-lab/plugtrack/internal/store"
	"github.com/kk-code-lab/plugtrack/internal/tracker"
)

var (
	configPath string
	logLevel   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "plugtrack",
	Short: "Track the plugins you use across apps",
	Long: `plugtrack keeps a list of apps, plugin groups and plugins with short
markup descriptions, and renders that markup to HTML.

Examples:
  plugtrack render notes.md            # render markup to HTML
  plugtrack preview notes.md           # live two-pane editor
  plugtrack plugin list --app app-live # list plugins of one app
  plugtrack serve                      # HTTP API on 127.0.0.1:8417`,
	SilenceUsage:      true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return setupLogging(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/plugtrack/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: "+strings.Join(logLevels(), ", "))
}

func logLevels() []string {
	levels := make([]string, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		levels = append(levels, l.String())
	}
	return levels
}

func setupLogging(cmd *cobra.Command) error {
	level := cfg.Log.Level
	if cmd.Flags().Changed("log-level") {
		level = logLevel
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q is not supported, choose from: %s", level, strings.Join(logLevels(), ", "))
	}
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(parsed)
	logrus.Debugf("%s filtering at log level %s", cmd.CommandPath(), logrus.GetLevel())
	return nil
}

// newRenderer builds the renderer selected by configuration.
func newRenderer(safeLinks bool) markup.Renderer {
	if safeLinks {
		return markup.Renderer{Links: markup.SafeLinks}
	}
	return markup.Renderer{}
}

// openService opens the configured store. The caller closes it with
// svc.Store().Close().
func openService() (*tracker.Service, error) {
	s, err := store.NewStore(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return tracker.New(s, newRenderer(cfg.Render.SafeLinks)), nil
}

// withService runs fn with an open service and closes the store afterwards.
func withService(fn func(svc *tracker.Service) error) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Store().Close(); err != nil {
			logrus.Warnf("closing store: %v", err)
		}
	}()
	return fn(svc)
}
