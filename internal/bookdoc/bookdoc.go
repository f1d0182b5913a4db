package bookdoc

import "strings"

// StyleHeading1 is the paragraph style that marks a chapter heading.
// Exporters segment the document at paragraphs carrying this style.
const StyleHeading1 = "Heading 1"

// Document is an in-memory manuscript: the ordered paragraph sequence plus
// the style catalog. Format-specific reading and writing lives in docio;
// everything else in the pipeline operates on this model.
type Document struct {
	Title      string
	Paragraphs []Paragraph
	Styles     []StyleDef

	// Package-level facts gathered at load time from parts the paragraph
	// model does not cover.
	ImageCount     int
	PageBreakCount int
	HasTOC         bool
}

// Paragraph is one block of the document. Formatting values are pointers:
// nil means the document carries no explicit value for the attribute, which
// is a signal the issue scan cares about.
type Paragraph struct {
	Style           string // style name, empty for body text
	Runs            []Run
	FirstLineIndent *int     // twips
	LineSpacing     *float64 // multiple of single spacing
	SpaceAfterPts   *int
}

// Run is a span of text with uniform character formatting.
type Run struct {
	Text    string
	Bold    bool
	SizePts float64 // 0 = inherited
	Font    string  // "" = inherited
}

// StyleDef is an entry in the document's style catalog.
type StyleDef struct {
	Name           string
	Font           string
	SizePts        float64
	Bold           bool
	Centered       bool
	SpaceBeforePts int
	SpaceAfterPts  int
}

// Text returns the concatenated run text of the paragraph, untrimmed.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// IsHeading reports whether the paragraph carries any heading style.
func (p *Paragraph) IsHeading() bool {
	return strings.HasPrefix(p.Style, "Heading")
}

// HasStyle reports whether the style catalog contains the named style.
func (d *Document) HasStyle(name string) bool {
	for _, s := range d.Styles {
		if s.Name == name {
			return true
		}
	}
	return false
}

// WordCount counts whitespace-separated words across all paragraphs.
func (d *Document) WordCount() int {
	n := 0
	for i := range d.Paragraphs {
		n += len(strings.Fields(d.Paragraphs[i].Text()))
	}
	return n
}

// Clone returns a deep copy of the document. Fix application works on a
// clone so that analysis results stay tied to an unmodified snapshot.
func (d *Document) Clone() *Document {
	out := &Document{
		Title:          d.Title,
		ImageCount:     d.ImageCount,
		PageBreakCount: d.PageBreakCount,
		HasTOC:         d.HasTOC,
		Paragraphs:     make([]Paragraph, len(d.Paragraphs)),
		Styles:         append([]StyleDef(nil), d.Styles...),
	}
	for i, p := range d.Paragraphs {
		cp := p
		cp.Runs = append([]Run(nil), p.Runs...)
		if p.FirstLineIndent != nil {
			v := *p.FirstLineIndent
			cp.FirstLineIndent = &v
		}
		if p.LineSpacing != nil {
			v := *p.LineSpacing
			cp.LineSpacing = &v
		}
		if p.SpaceAfterPts != nil {
			v := *p.SpaceAfterPts
			cp.SpaceAfterPts = &v
		}
		out.Paragraphs[i] = cp
	}
	return out
}
