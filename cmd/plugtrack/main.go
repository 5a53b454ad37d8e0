package main

import (
	"os"

	"github.com/gdamore/tcell/v2"
)

func main() {
	// Set UTF-8 as fallback encoding so non-ASCII plugin names display correctly
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
