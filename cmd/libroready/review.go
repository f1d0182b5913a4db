package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/config"
	"github.com/libroready/libroready/internal/fix"
	"github.com/libroready/libroready/internal/review"
)

var (
	reviewOutputDir string
	reviewAssumeYes bool
)

var reviewCmd = &cobra.Command{
	Use:   "review <manuscript.docx>",
	Short: "Confirm chapters and fixes interactively, then export",
	Args:  cobra.ExactArgs(1),
	RunE:  runReview,
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewOutputDir, "output", "o", ".", "Output directory")
	reviewCmd.Flags().BoolVarP(&reviewAssumeYes, "yes", "y", false, "Accept all detected chapters and fixes")
}

func runReview(cmd *cobra.Command, args []string) error {
	input := args[0]

	doc, err := loadManuscript(input)
	if err != nil {
		return err
	}

	cfg := config.Load()
	opts := review.Options{In: os.Stdin, Out: os.Stdout, AssumeYes: reviewAssumeYes}

	chapters := review.Chapters(doc, analyze.DetectChapters(doc), opts)
	issues := analyze.DetectIssues(doc, chapters, cfg.Thresholds())
	fixIDs := review.Fixes(issues, opts)

	formatted, applied := fix.Apply(doc, fixIDs, chapters)

	files, err := exportAll(formatted, chapters, reviewOutputDir, stemOf(input))
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)

	bold.Println("\nDone")
	for _, desc := range applied {
		fmt.Printf("  applied: %s\n", desc)
	}
	for _, format := range []string{"docx", "epub", "pdf"} {
		green.Printf("  ✓ %s\n", files[format])
	}
	return nil
}
