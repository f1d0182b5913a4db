package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/config"
	"github.com/libroready/libroready/internal/docio"
	"github.com/libroready/libroready/internal/fix"
)

var (
	checkOutputPath  string
	checkApplyFixes  bool
	checkAnalyzeOnly bool
)

var checkCmd = &cobra.Command{
	Use:   "check <manuscript.docx>",
	Short: "Report KDP compliance problems, optionally fixing them",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkOutputPath, "output", "o", "", "Output path for the fixed manuscript")
	checkCmd.Flags().BoolVar(&checkApplyFixes, "fix", false, "Apply automatic fixes and write the result")
	checkCmd.Flags().BoolVar(&checkAnalyzeOnly, "analyze-only", false, "Report only, never write output")
	checkCmd.MarkFlagsMutuallyExclusive("fix", "analyze-only")
}

func runCheck(cmd *cobra.Command, args []string) error {
	input := args[0]

	doc, err := loadManuscript(input)
	if err != nil {
		return err
	}

	cfg := config.Load()
	th := cfg.Thresholds()

	chapters := analyze.DetectChapters(doc)
	issues := analyze.Compliance(doc, th)
	stats := analyze.Stats(doc)

	printReport(input, issues, stats, len(chapters))

	if !checkApplyFixes || checkAnalyzeOnly {
		return nil
	}

	formatted := fix.AutoFormat(doc, chapters)
	outPath := checkOutputPath
	if outPath == "" {
		outPath = filepath.Join(filepath.Dir(input), stemOf(input)+"_kdp_formatted.docx")
	}
	if err := docio.WriteFile(formatted, outPath); err != nil {
		return err
	}

	color.New(color.FgGreen, color.Bold).Printf("\n✓ Fixed manuscript written to %s\n", outPath)
	return nil
}

func printReport(input string, issues []analyze.Issue, stats analyze.DocStats, chapterCount int) {
	color.New(color.Bold).Printf("KDP compliance report for %s\n", filepath.Base(input))
	fmt.Printf("  %d paragraphs, %d words, %d chapters detected\n",
		stats.TotalParagraphs, stats.TotalWords, chapterCount)

	sections := []struct {
		severity analyze.Severity
		title    string
		c        *color.Color
	}{
		{analyze.SeverityCritical, "Critical", color.New(color.FgRed, color.Bold)},
		{analyze.SeverityWarning, "Warnings", color.New(color.FgYellow)},
		{analyze.SeveritySuccess, "Good", color.New(color.FgGreen)},
		{analyze.SeverityInfo, "Info", color.New(color.FgCyan)},
	}

	for _, sec := range sections {
		var matched []analyze.Issue
		for _, issue := range issues {
			if issue.Severity == sec.severity {
				matched = append(matched, issue)
			}
		}
		if len(matched) == 0 {
			continue
		}
		sec.c.Printf("\n%s\n", sec.title)
		for _, issue := range matched {
			line := "  - " + issue.Name
			if issue.Count > 0 {
				line += fmt.Sprintf(" (%d)", issue.Count)
			}
			fmt.Println(line)
			if issue.Detail != "" {
				fmt.Printf("      %s\n", issue.Detail)
			}
		}
	}
}
