package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/bookdoc"
	"github.com/libroready/libroready/internal/docio"
	"github.com/libroready/libroready/internal/export"
)

// loadManuscript validates the input path and parses it.
func loadManuscript(path string) (*bookdoc.Document, error) {
	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		return nil, fmt.Errorf("input must be a .docx file, got %q", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input file: %w", err)
	}
	return docio.ReadFile(path)
}

// exportAll writes the three output formats for a formatted document and
// returns the written paths keyed by format.
func exportAll(doc *bookdoc.Document, candidates []analyze.ChapterCandidate, outDir, stem string) (map[string]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	exportable := styledCandidates(doc, candidates)
	files := map[string]string{}

	docxPath := filepath.Join(outDir, stem+"_formatted.docx")
	if err := docio.WriteFile(doc, docxPath); err != nil {
		return nil, err
	}
	files["docx"] = docxPath

	epubPath := filepath.Join(outDir, stem+".epub")
	if err := export.WriteEPUB(doc, exportable, "", epubPath); err != nil {
		return nil, err
	}
	files["epub"] = epubPath

	pdfPath := filepath.Join(outDir, stem+".pdf")
	if _, err := export.WritePDF(doc, exportable, pdfPath); err != nil {
		return nil, err
	}
	files["pdf"] = pdfPath

	return files, nil
}

// styledCandidates keeps the selected candidates whose paragraph carries
// the heading style, which is what the exporters segment on.
func styledCandidates(doc *bookdoc.Document, candidates []analyze.ChapterCandidate) []analyze.ChapterCandidate {
	var out []analyze.ChapterCandidate
	for _, c := range candidates {
		if !c.Selected || c.Index < 0 || c.Index >= len(doc.Paragraphs) {
			continue
		}
		if doc.Paragraphs[c.Index].Style == bookdoc.StyleHeading1 {
			out = append(out, c)
		}
	}
	return out
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
