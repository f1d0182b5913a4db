// Package export turns a fixed manuscript into its deliverable renditions:
// an EPUB with one content unit per chapter and a paginated print PDF.
// Both consume the same projection built by Project.
package export

import (
	"fmt"
	"strings"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/bookdoc"
)

// Section is one exported content unit: a chapter heading (empty for
// front-matter content that precedes the first heading) plus its body
// paragraphs in order. Blank body paragraphs are kept as empty strings so
// exporters can render vertical space.
type Section struct {
	Title      string
	Heading    string
	Paragraphs []string
}

// Project segments the final paragraph sequence at Heading 1 boundaries.
// The chapters argument is the selected-only candidate list; each entry
// resolves the display title for its paragraph. Every selected chapter must
// reference a paragraph actually styled Heading 1 in doc, otherwise the
// document and the chapter list are out of sync and Project refuses to
// produce an export.
func Project(doc *bookdoc.Document, chapters []analyze.ChapterCandidate) ([]Section, error) {
	titles := make(map[int]string, len(chapters))
	for _, c := range chapters {
		if c.Index < 0 || c.Index >= len(doc.Paragraphs) {
			return nil, fmt.Errorf("chapter %q references paragraph %d, document has %d", c.Text, c.Index, len(doc.Paragraphs))
		}
		if doc.Paragraphs[c.Index].Style != bookdoc.StyleHeading1 {
			return nil, fmt.Errorf("chapter %q at paragraph %d is not styled %s", c.Text, c.Index, bookdoc.StyleHeading1)
		}
		titles[c.Index] = c.Text
	}

	var sections []Section
	var cur *Section

	appendBody := func(text string) {
		if cur == nil {
			// Content before the first heading becomes section zero.
			cur = &Section{Title: "Chapter 0"}
		}
		cur.Paragraphs = append(cur.Paragraphs, text)
	}

	for i := range doc.Paragraphs {
		p := &doc.Paragraphs[i]
		text := strings.TrimSpace(p.Text())
		if text == "" {
			appendBody("")
			continue
		}

		if p.Style == bookdoc.StyleHeading1 {
			if cur != nil {
				sections = append(sections, *cur)
			}
			title := titles[i]
			if title == "" {
				title = text
			}
			cur = &Section{Title: title, Heading: text}
			continue
		}

		appendBody(text)
	}
	if cur != nil {
		sections = append(sections, *cur)
	}

	return sections, nil
}
