package export

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/bookdoc"
)

// Print layout, letter size with one-inch margins. All values in points.
const (
	pdfMargin       = 72
	headingFontSize = 18
	headingLineHt   = 22
	headingGap      = 21.6 // 0.3 inch after each chapter heading
	bodyFontSize    = 11
	bodyLeading     = 14
	bodyIndent      = 36 // 0.5 inch first-line indent
	paraGap         = 7.2
	blankGap        = 14.4
)

// WritePDF renders the document as a paginated print PDF at path, with a
// forced page break before every chapter heading after the first flowable.
// Paragraphs whose text cannot be encoded for the core fonts are skipped;
// the skip count is returned so callers can surface the loss.
func WritePDF(doc *bookdoc.Document, chapters []analyze.ChapterCandidate, path string) (int, error) {
	sections, err := Project(doc, chapters)
	if err != nil {
		return 0, fmt.Errorf("project document: %w", err)
	}

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	skipped := 0
	wrote := false

	// Justification stretches ordinary spaces only, so a run of
	// non-breaking spaces makes a first-line indent that keeps its width.
	pdf.SetFont("Times", "", bodyFontSize)
	nbsp := tr(" ")
	indentPrefix := ""
	if w := pdf.GetStringWidth(nbsp); w > 0 {
		indentPrefix = strings.Repeat(nbsp, int(bodyIndent/w))
	}

	for _, sec := range sections {
		if sec.Heading != "" {
			if wrote {
				pdf.AddPage()
			}
			pdf.SetFont("Times", "B", headingFontSize)
			pdf.CellFormat(0, headingLineHt, tr(sec.Heading), "", 1, "C", false, 0, "")
			pdf.Ln(headingGap)
			wrote = true
		}

		pdf.SetFont("Times", "", bodyFontSize)
		for _, text := range sec.Paragraphs {
			if text == "" {
				pdf.Ln(blankGap)
				continue
			}
			rendered := strings.TrimSpace(tr(text))
			if rendered == "" {
				skipped++
				continue
			}
			pdf.MultiCell(0, bodyLeading, indentPrefix+rendered, "", "J", false)
			pdf.Ln(paraGap)
			wrote = true
		}
	}

	if pdf.Err() {
		return skipped, fmt.Errorf("render pdf: %w", pdf.Error())
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return skipped, fmt.Errorf("write pdf: %w", err)
	}
	return skipped, nil
}
