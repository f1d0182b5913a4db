package premium

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/libroready/libroready/internal/docio"
)

const (
	sampleParagraphs = 100
	sampleBytes      = 5000
)

// SampleText extracts a bounded text sample from a manuscript for the
// keyword and category heuristics. It reads the first paragraphs of a
// .docx or the leading pages of a .pdf and caps the result at sampleBytes.
func SampleText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return sampleFromDocx(path)
	case ".pdf":
		return sampleFromPDF(path)
	default:
		return "", fmt.Errorf("unsupported manuscript type %q", filepath.Ext(path))
	}
}

func sampleFromDocx(path string) (string, error) {
	doc, err := docio.ReadFile(path)
	if err != nil {
		return "", err
	}

	var parts []string
	for i := range doc.Paragraphs {
		if len(parts) >= sampleParagraphs {
			break
		}
		text := strings.TrimSpace(doc.Paragraphs[i].Text())
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return truncateSample(strings.Join(parts, " ")), nil
}

func sampleFromPDF(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages && buf.Len() < sampleBytes; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(strings.TrimSpace(text))
	}
	return truncateSample(buf.String()), nil
}

// truncateSample cuts at sampleBytes without splitting a UTF-8 sequence.
func truncateSample(s string) string {
	if len(s) <= sampleBytes {
		return s
	}
	cut := sampleBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
