package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/plugtrack/internal/markup"
	"github.com/kk-code-lab/plugtrack/internal/source"
)

var (
	renderSafeLinks bool
	renderStats     bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render markup to HTML",
	Long: `Render a file, or standard input when the file is "-" or omitted.

Headings (#, ##, ###), "-" or "*" list items and paragraphs are supported,
with ` + "`code`" + `, **bold**, *italic* and [label](url) inline.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderSafeLinks, "safe-links", true, "Leave javascript:, data: and similar links as plain text (overrides render.safe_links)")
	renderCmd.Flags().BoolVar(&renderStats, "stats", false, "Print block counts to stderr")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	text, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	safe := cfg.Render.SafeLinks
	if cmd.Flags().Changed("safe-links") {
		safe = renderSafeLinks
	}
	if err := renderDocument(cmd.OutOrStdout(), newRenderer(safe), text); err != nil {
		return err
	}
	if renderStats {
		st := markup.Stats(text)
		fmt.Fprintf(cmd.ErrOrStderr(), "headings: %d, lists: %d (%d items), paragraphs: %d\n",
			st.Headings, st.Lists, st.ListItems, st.Paragraphs)
	}
	return nil
}

// readInput reads all of path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		text, err := source.ReadAll(stdin, 0)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return text, nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return source.ReadFile(path, 0)
}

func renderDocument(w io.Writer, r markup.Renderer, text string) error {
	html := r.Render(text)
	if html == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, html)
	return err
}
