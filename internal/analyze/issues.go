package analyze

import (
	"fmt"
	"strings"

	"github.com/libroready/libroready/internal/bookdoc"
)

// Severity classifies a formatting issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
)

// Fix identifiers. These are the values clients send back in a process
// request to select which fixes to apply.
const (
	IssueTabs     = "fix_tabs"
	IssueIndent   = "fix_indent"
	IssueSpacing  = "fix_spacing"
	IssueHeadings = "apply_headings"
)

// Issue is one reportable formatting defect. At most one Issue per
// category is produced per analysis pass.
type Issue struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Detail      string   `json:"detail"`
	Severity    Severity `json:"severity"`
	Count       int      `json:"count"`
	Selected    bool     `json:"selected"`
}

// Thresholds holds the counting cutoffs that turn raw defect counts into
// reportable issues. One canonical set is used on every code path; the
// values are configurable through the server/CLI config.
type Thresholds struct {
	Indent        int // no-indent paragraphs tolerated before reporting
	Spacing       int // no-spacing paragraphs tolerated before reporting
	MinPageBreaks int // fewer explicit page breaks than this draws a warning
}

// DefaultThresholds returns the canonical cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{Indent: 5, Spacing: 10, MinPageBreaks: 2}
}

type issueCounts struct {
	tabs      int
	noIndent  int
	noSpacing int
}

// countDefects runs the single scan shared by DetectIssues and Compliance.
// Empty paragraphs are ignored for every counter.
func countDefects(doc *bookdoc.Document) issueCounts {
	var c issueCounts
	for i := range doc.Paragraphs {
		p := &doc.Paragraphs[i]
		if strings.TrimSpace(p.Text()) == "" {
			continue
		}

		for _, r := range p.Runs {
			if strings.Contains(r.Text, "\t") {
				c.tabs++
				break
			}
		}

		if p.FirstLineIndent == nil && !p.IsHeading() {
			c.noIndent++
		}

		if p.LineSpacing == nil {
			c.noSpacing++
		}
	}
	return c
}

// DetectIssues scans all paragraphs once and converts defect counts that
// exceed the thresholds into issues. Output order is fixed: tabs, indent,
// spacing, then the heading-style issue appended whenever any chapters were
// detected. Every issue starts selected.
func DetectIssues(doc *bookdoc.Document, chapters []ChapterCandidate, th Thresholds) []Issue {
	c := countDefects(doc)
	var issues []Issue

	if c.tabs > 0 {
		issues = append(issues, Issue{
			ID:          IssueTabs,
			Name:        "Remove tab characters",
			Description: fmt.Sprintf("Found %d paragraphs with tab indentation", c.tabs),
			Detail:      "Tabs don't convert well to eBook format. Will replace with proper indentation.",
			Severity:    SeverityCritical,
			Count:       c.tabs,
			Selected:    true,
		})
	}

	if c.noIndent > th.Indent {
		issues = append(issues, Issue{
			ID:          IssueIndent,
			Name:        "Add paragraph indentation",
			Description: fmt.Sprintf("%d paragraphs missing first-line indent", c.noIndent),
			Detail:      `Will add 0.5" first-line indent to body paragraphs.`,
			Severity:    SeverityWarning,
			Count:       c.noIndent,
			Selected:    true,
		})
	}

	if c.noSpacing > th.Spacing {
		issues = append(issues, Issue{
			ID:          IssueSpacing,
			Name:        "Apply consistent line spacing",
			Description: fmt.Sprintf("%d paragraphs with inconsistent spacing", c.noSpacing),
			Detail:      "Will apply 1.15 line spacing throughout.",
			Severity:    SeverityWarning,
			Count:       c.noSpacing,
			Selected:    true,
		})
	}

	if len(chapters) > 0 {
		issues = append(issues, Issue{
			ID:          IssueHeadings,
			Name:        "Apply chapter heading styles",
			Description: fmt.Sprintf("Apply Heading 1 style to %d detected chapters", len(chapters)),
			Detail:      "Required for automatic table of contents.",
			Severity:    SeverityCritical,
			Count:       len(chapters),
			Selected:    true,
		})
	}

	return issues
}

// Compliance produces the publish-readiness report used by the check
// command: the defect issues plus heading-structure, page-break, table of
// contents, and image checks.
func Compliance(doc *bookdoc.Document, th Thresholds) []Issue {
	c := countDefects(doc)
	var issues []Issue

	if c.tabs > 0 {
		issues = append(issues, Issue{
			ID:          IssueTabs,
			Name:        "Remove tab characters",
			Description: fmt.Sprintf("Found %d paragraphs using TAB indentation", c.tabs),
			Detail:      "Tabs don't convert properly to eBook format",
			Severity:    SeverityCritical,
			Count:       c.tabs,
			Selected:    true,
		})
	}

	if c.noIndent > th.Indent {
		issues = append(issues, Issue{
			ID:          IssueIndent,
			Name:        "Add paragraph indentation",
			Description: fmt.Sprintf("%d paragraphs missing first-line indentation", c.noIndent),
			Detail:      "Body paragraphs should have consistent indentation",
			Severity:    SeverityWarning,
			Count:       c.noIndent,
			Selected:    true,
		})
	}

	headings := 0
	for i := range doc.Paragraphs {
		if doc.Paragraphs[i].Style == bookdoc.StyleHeading1 {
			headings++
		}
	}
	if headings == 0 {
		issues = append(issues, Issue{
			ID:          "no_headings",
			Name:        "No Heading 1 styles found",
			Description: "Chapter titles need Heading 1 style for a proper table of contents",
			Detail:      "Apply Heading 1 style to chapter titles",
			Severity:    SeverityCritical,
		})
	} else {
		issues = append(issues, Issue{
			ID:          "headings_ok",
			Name:        fmt.Sprintf("Found %d chapter headings", headings),
			Description: "Good heading structure for navigation",
			Severity:    SeveritySuccess,
			Count:       headings,
		})
	}

	if doc.PageBreakCount < th.MinPageBreaks {
		issues = append(issues, Issue{
			ID:          "few_page_breaks",
			Name:        "Few or no page breaks found",
			Description: "Use page breaks to separate major sections",
			Detail:      "Add page breaks before chapter headings",
			Severity:    SeverityWarning,
			Count:       doc.PageBreakCount,
		})
	}

	if !doc.HasTOC {
		issues = append(issues, Issue{
			ID:          "no_toc",
			Name:        "No table of contents detected",
			Description: "A TOC improves reader navigation in eBooks",
			Detail:      "Insert an automatic table of contents",
			Severity:    SeverityWarning,
		})
	}

	if doc.ImageCount > 0 {
		issues = append(issues, Issue{
			ID:          "images",
			Name:        fmt.Sprintf("Found %d images", doc.ImageCount),
			Description: "Ensure images are 300+ DPI for best quality",
			Detail:      "Check image resolution and file size",
			Severity:    SeverityInfo,
			Count:       doc.ImageCount,
		})
	}

	return issues
}

// DocStats is the summary block returned with an analysis.
type DocStats struct {
	TotalParagraphs int `json:"total_paragraphs"`
	TotalWords      int `json:"total_words"`
	HasImages       int `json:"has_images"`
}

// Stats summarizes the document for the analysis payload.
func Stats(doc *bookdoc.Document) DocStats {
	return DocStats{
		TotalParagraphs: len(doc.Paragraphs),
		TotalWords:      doc.WordCount(),
		HasImages:       doc.ImageCount,
	}
}
