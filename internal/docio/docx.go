// Package docio reads and writes .docx manuscripts, converting between the
// on-disk format and the bookdoc model. Nothing outside this package
// touches the docx library.
package docio

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/libroready/libroready/internal/bookdoc"
)

// ReadFile parses a .docx file into a bookdoc.Document. The document title
// is the file stem. Package-level facts (image count, page breaks, TOC
// presence) are gathered from the OOXML parts alongside the paragraph
// model.
func ReadFile(path string) (*bookdoc.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat docx: %w", err)
	}

	parsed, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	doc := &bookdoc.Document{
		Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	for _, item := range parsed.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		doc.Paragraphs = append(doc.Paragraphs, convertParagraph(para))
	}

	pkg, err := inspectPackage(path)
	if err == nil {
		doc.ImageCount = pkg.images
		doc.PageBreakCount = pkg.pageBreaks
		doc.HasTOC = pkg.hasTOC
	}

	return doc, nil
}

func convertParagraph(para *docx.Paragraph) bookdoc.Paragraph {
	var out bookdoc.Paragraph

	if para.Properties != nil {
		if para.Properties.Style != nil {
			out.Style = normalizeStyleName(para.Properties.Style.Val)
		}
		if para.Properties.Ind != nil && para.Properties.Ind.FirstLine != 0 {
			v := para.Properties.Ind.FirstLine
			out.FirstLineIndent = &v
		}
		if spc := para.Properties.Spacing; spc != nil && spc.Line > 0 &&
			(spc.LineRule == "" || spc.LineRule == "auto") {
			// w:line is in 240ths of a line when the rule is "auto";
			// "exact" and "atLeast" measure twips instead.
			v := float64(spc.Line) / 240
			out.LineSpacing = &v
		}
	}

	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var r bookdoc.Run
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				r.Text += t.Text
			}
		}
		if run.RunProperties != nil {
			r.Bold = run.RunProperties.Bold != nil
			if run.RunProperties.Size != nil {
				if hp, err := strconv.Atoi(run.RunProperties.Size.Val); err == nil {
					r.SizePts = float64(hp) / 2
				}
			}
			if run.RunProperties.Fonts != nil {
				r.Font = run.RunProperties.Fonts.ASCII
			}
		}
		out.Runs = append(out.Runs, r)
	}

	return out
}

// normalizeStyleName maps the common docx spellings of heading styles onto
// the model's names.
func normalizeStyleName(val string) string {
	switch {
	case strings.EqualFold(val, "Heading1") || strings.EqualFold(val, "heading 1"):
		return bookdoc.StyleHeading1
	}
	return val
}

// WriteFile renders the document as a fresh .docx at path. Heading
// paragraphs carry both the Heading1 style reference and the explicit
// heading typography, so they look right even in viewers that ignore the
// style catalog.
func WriteFile(doc *bookdoc.Document, path string) error {
	w := docx.New().WithDefaultTheme()

	var headingDef *bookdoc.StyleDef
	for i := range doc.Styles {
		if doc.Styles[i].Name == bookdoc.StyleHeading1 {
			headingDef = &doc.Styles[i]
		}
	}

	for i := range doc.Paragraphs {
		para := &doc.Paragraphs[i]
		p := w.AddParagraph()

		props := &docx.ParagraphProperties{}
		if para.Style == bookdoc.StyleHeading1 {
			props.Style = &docx.Style{Val: "Heading1"}
			if headingDef != nil {
				if headingDef.Centered {
					props.Justification = &docx.Justification{Val: "center"}
				}
				// The spacing element only carries space-before; the
				// library has no field for space-after.
				props.Spacing = &docx.Spacing{Before: headingDef.SpaceBeforePts * 20}
			}
		} else {
			if para.FirstLineIndent != nil {
				props.Ind = &docx.Ind{FirstLine: *para.FirstLineIndent}
			}
			if para.LineSpacing != nil {
				props.Spacing = &docx.Spacing{
					Line:     int(*para.LineSpacing * 240),
					LineRule: "auto",
				}
			}
		}
		p.Properties = props

		if para.Style == bookdoc.StyleHeading1 && headingDef != nil {
			text := strings.TrimSpace(para.Text())
			r := p.AddText(text)
			r.Size(strconv.Itoa(int(headingDef.SizePts * 2)))
			if headingDef.Bold {
				r.Bold()
			}
			if headingDef.Font != "" {
				r.Font(headingDef.Font, headingDef.Font, headingDef.Font, "")
			}
			continue
		}

		for _, run := range para.Runs {
			if run.Text == "" {
				continue
			}
			r := p.AddText(run.Text)
			if run.SizePts > 0 {
				r.Size(strconv.Itoa(int(run.SizePts * 2)))
			}
			if run.Bold {
				r.Bold()
			}
			if run.Font != "" {
				r.Font(run.Font, run.Font, run.Font, "")
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}
	defer f.Close()

	if _, err := w.WriteTo(f); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
