// Package fix mutates a manuscript snapshot to correct the defects the
// analyze package reports. Apply never touches the document it is given:
// it clones first and returns the new value, so analysis results stay
// consistent with the document they were computed from.
package fix

import (
	"fmt"
	"strings"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/bookdoc"
)

// Target formatting values. Fixes are idempotent because these are
// absolute: re-applying overwrites an attribute with the same value.
const (
	BodyIndentTwips = 720 // 0.5 inch
	BodyLineSpacing = 1.15
	BodySizePts     = 11
	BodyFont        = "Garamond"

	HeadingFont           = "Garamond"
	HeadingSizePts        = 18
	HeadingSpaceBeforePts = 24
	HeadingSpaceAfterPts  = 12
)

// Apply clones doc and applies the fixes whose identifiers appear in
// fixIDs. Chapter promotion runs only when analyze.IssueHeadings is among
// them, and then only for the still-selected candidates; an empty fixIDs
// returns the document unchanged.
// It returns the new document and a human-readable list of applied fixes.
func Apply(doc *bookdoc.Document, fixIDs []string, chapters []analyze.ChapterCandidate) (*bookdoc.Document, []string) {
	out := doc.Clone()
	selected := make(map[string]bool, len(fixIDs))
	for _, id := range fixIDs {
		selected[id] = true
	}

	var applied []string

	if selected[analyze.IssueTabs] {
		if n := stripTabs(out); n > 0 {
			applied = append(applied, fmt.Sprintf("Removed tab characters from %d paragraphs", n))
		}
	}

	if selected[analyze.IssueIndent] {
		if n := normalizeIndent(out); n > 0 {
			applied = append(applied, fmt.Sprintf("Applied first-line indentation to %d paragraphs", n))
		}
	}

	if selected[analyze.IssueSpacing] {
		if n := normalizeSpacing(out); n > 0 {
			applied = append(applied, fmt.Sprintf("Applied consistent line spacing to %d paragraphs", n))
		}
	}

	if selected[analyze.IssueHeadings] {
		if active := analyze.SelectedChapters(chapters); len(active) > 0 {
			n := promoteChapters(out, active)
			applied = append(applied, fmt.Sprintf("Applied Heading 1 style to %d chapters", n))
		}
	}

	return out, applied
}

// AutoFormat clones doc and applies the full automatic treatment: chapter
// promotion plus body typography (indent, spacing, zero space-after, and
// default font/size on runs that have none). Used by the non-interactive
// format command.
func AutoFormat(doc *bookdoc.Document, chapters []analyze.ChapterCandidate) *bookdoc.Document {
	out := doc.Clone()

	active := analyze.SelectedChapters(chapters)
	if len(active) > 0 {
		promoteChapters(out, active)
	}

	indent := BodyIndentTwips
	spacing := BodyLineSpacing
	zero := 0
	for i := range out.Paragraphs {
		p := &out.Paragraphs[i]
		if p.IsHeading() {
			continue
		}
		if strings.TrimSpace(p.Text()) == "" {
			continue
		}

		v1, v2, v3 := indent, spacing, zero
		p.FirstLineIndent = &v1
		p.LineSpacing = &v2
		p.SpaceAfterPts = &v3

		for j := range p.Runs {
			r := &p.Runs[j]
			if r.Font == "" {
				r.Font = BodyFont
			}
			if r.SizePts == 0 {
				r.SizePts = BodySizePts
			}
		}
	}

	return out
}

func stripTabs(doc *bookdoc.Document) int {
	n := 0
	for i := range doc.Paragraphs {
		changed := false
		for j := range doc.Paragraphs[i].Runs {
			r := &doc.Paragraphs[i].Runs[j]
			if strings.Contains(r.Text, "\t") {
				r.Text = strings.ReplaceAll(r.Text, "\t", "")
				changed = true
			}
		}
		if changed {
			n++
		}
	}
	return n
}

func normalizeIndent(doc *bookdoc.Document) int {
	n := 0
	for i := range doc.Paragraphs {
		p := &doc.Paragraphs[i]
		if p.IsHeading() || strings.TrimSpace(p.Text()) == "" {
			continue
		}
		v := BodyIndentTwips
		p.FirstLineIndent = &v
		n++
	}
	return n
}

func normalizeSpacing(doc *bookdoc.Document) int {
	// Every paragraph, headings and blanks included.
	for i := range doc.Paragraphs {
		v := BodyLineSpacing
		doc.Paragraphs[i].LineSpacing = &v
	}
	return len(doc.Paragraphs)
}

// promoteChapters sets Heading 1 on each candidate's paragraph, creating
// or reconfiguring the style catalog entry first. Candidates whose index
// no longer references a paragraph are skipped.
func promoteChapters(doc *bookdoc.Document, chapters []analyze.ChapterCandidate) int {
	ensureHeadingStyle(doc)
	n := 0
	for _, c := range chapters {
		if c.Index < 0 || c.Index >= len(doc.Paragraphs) {
			continue
		}
		doc.Paragraphs[c.Index].Style = bookdoc.StyleHeading1
		n++
	}
	return n
}

func ensureHeadingStyle(doc *bookdoc.Document) {
	def := bookdoc.StyleDef{
		Name:           bookdoc.StyleHeading1,
		Font:           HeadingFont,
		SizePts:        HeadingSizePts,
		Bold:           true,
		Centered:       true,
		SpaceBeforePts: HeadingSpaceBeforePts,
		SpaceAfterPts:  HeadingSpaceAfterPts,
	}
	for i := range doc.Styles {
		if doc.Styles[i].Name == bookdoc.StyleHeading1 {
			doc.Styles[i] = def
			return
		}
	}
	doc.Styles = append(doc.Styles, def)
}
