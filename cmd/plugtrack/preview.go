package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/plugtrack/internal/preview"
	"github.com/kk-code-lab/plugtrack/internal/source"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Edit markup with a live rendered preview",
	Long: `Open a two-pane editor: text on the left, rendered HTML on the right.

Ctrl-S writes the file, Esc or Ctrl-C quits. A missing file is created on
the first save.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	var path, text string
	if len(args) == 1 {
		path = args[0]
		loaded, err := source.ReadFile(path, source.DefaultLimit)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case errors.Is(err, source.ErrTooLarge):
			return fmt.Errorf("refusing to edit %s: %w", path, err)
		case err != nil:
			return err
		default:
			text = loaded
		}
	}

	opts := preview.Options{
		Title:    filepath.Base(path),
		Renderer: newRenderer(cfg.Render.SafeLinks),
		TabWidth: cfg.Preview.TabWidth,
	}
	if path != "" {
		opts.Save = func(text string) error {
			return os.WriteFile(path, []byte(text), 0644)
		}
	} else {
		opts.Title = ""
	}
	return runEditor(text, opts)
}

// runEditor opens the terminal and runs a preview session until it ends.
func runEditor(text string, opts preview.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	logrus.Debugf("starting preview session %q", opts.Title)
	preview.NewSession(screen, preview.NewEditor(text), opts).Run()
	return nil
}
