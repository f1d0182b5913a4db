package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "libroready",
	Short: "LibroReady - prepare manuscripts for KDP publishing",
	Long: `LibroReady formats .docx manuscripts for Kindle Direct Publishing.

It detects chapters, finds common formatting problems (tab characters,
missing first-line indents, inconsistent line spacing, unstyled chapter
headings), applies fixes, and exports print-ready DOCX, EPUB, and PDF.

Use "format" for the automatic pipeline, "check" for a compliance report,
and "review" to confirm chapters and fixes interactively.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(reviewCmd)
}
