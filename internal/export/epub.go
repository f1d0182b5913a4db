package export

import (
	"fmt"
	"html"
	"strings"

	epub "github.com/bmaupin/go-epub"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/bookdoc"
)

// WriteEPUB renders the document as a reflowable EPUB at path: one XHTML
// content unit per projected section, section titles forming the navigation
// document. chapters must be the selected-only candidate list.
func WriteEPUB(doc *bookdoc.Document, chapters []analyze.ChapterCandidate, author, path string) error {
	sections, err := Project(doc, chapters)
	if err != nil {
		return fmt.Errorf("project document: %w", err)
	}

	if author == "" {
		author = "Author"
	}

	e := epub.NewEpub(doc.Title)
	e.SetIdentifier("libroready-" + doc.Title)
	e.SetLang("en")
	e.SetAuthor(author)

	for i, sec := range sections {
		name := fmt.Sprintf("chap_%02d.xhtml", i)
		if _, err := e.AddSection(sectionXHTML(sec), sec.Title, name, ""); err != nil {
			return fmt.Errorf("add section %q: %w", sec.Title, err)
		}
	}

	if err := e.Write(path); err != nil {
		return fmt.Errorf("write epub: %w", err)
	}
	return nil
}

func sectionXHTML(sec Section) string {
	var b strings.Builder
	if sec.Heading != "" {
		b.WriteString("<h1>")
		b.WriteString(html.EscapeString(sec.Heading))
		b.WriteString("</h1>")
	}
	for _, text := range sec.Paragraphs {
		if text == "" {
			b.WriteString("<p>&#160;</p>")
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(text))
		b.WriteString("</p>")
	}
	return b.String()
}
