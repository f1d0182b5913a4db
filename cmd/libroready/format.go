package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/fix"
)

var formatOutputDir string

var formatCmd = &cobra.Command{
	Use:   "format <manuscript.docx>",
	Short: "Format a manuscript automatically and export DOCX, EPUB, and PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runFormat,
}

func init() {
	formatCmd.Flags().StringVarP(&formatOutputDir, "output", "o", ".", "Output directory")
}

func runFormat(cmd *cobra.Command, args []string) error {
	input := args[0]

	doc, err := loadManuscript(input)
	if err != nil {
		return err
	}

	chapters := analyze.DetectChapters(doc)
	formatted := fix.AutoFormat(doc, chapters)

	files, err := exportAll(formatted, chapters, formatOutputDir, stemOf(input))
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)

	bold.Printf("Formatted %s\n", input)
	fmt.Printf("  Chapters detected: %d\n", len(chapters))
	fmt.Printf("  Paragraphs: %d, words: %d\n", len(formatted.Paragraphs), formatted.WordCount())
	for _, format := range []string{"docx", "epub", "pdf"} {
		green.Printf("  ✓ %s\n", files[format])
	}
	return nil
}
