package analyze

import (
	"strings"
	"unicode/utf8"

	"github.com/libroready/libroready/internal/bookdoc"
)

// DetectionMethod records which signal identified a chapter candidate.
type DetectionMethod string

const (
	MethodPattern    DetectionMethod = "pattern"
	MethodFormatting DetectionMethod = "formatting"
	MethodManual     DetectionMethod = "manual"
)

// ChapterCandidate is a paragraph heuristically identified as a chapter or
// section boundary. Candidates are kept as a side list keyed by paragraph
// index; nothing is ever written into the document during detection.
type ChapterCandidate struct {
	Index    int             `json:"index"`
	Text     string          `json:"text"`
	Method   DetectionMethod `json:"method"`
	Selected bool            `json:"selected"`
}

const (
	// Chapter titles are assumed short; anything longer is body text.
	maxTitleRunes = 100
	// The formatting signal skips the front matter (title page, copyright,
	// dedication), which is routinely bold and large without being a chapter.
	frontMatterParagraphs = 30
	maxFormattingRunes    = 50
	minHeadingSizePts     = 20
)

// DetectChapters scans the paragraph sequence and returns chapter
// candidates in document order, each initially selected. Detection is a
// pure function of paragraph content and position: re-running it on an
// unmodified document yields identical candidates. An empty result means
// the document is one unbroken section; no fallback chapter is invented.
func DetectChapters(doc *bookdoc.Document) []ChapterCandidate {
	var out []ChapterCandidate
	for i := range doc.Paragraphs {
		p := &doc.Paragraphs[i]
		text := strings.TrimSpace(p.Text())
		if text == "" || utf8.RuneCountInString(text) > maxTitleRunes {
			continue
		}

		if MatchesChapterPattern(text) {
			out = append(out, ChapterCandidate{Index: i, Text: text, Method: MethodPattern, Selected: true})
			continue
		}

		if i > frontMatterParagraphs &&
			utf8.RuneCountInString(text) < maxFormattingRunes &&
			len(p.Runs) > 0 {
			first := p.Runs[0]
			if first.Bold && first.SizePts >= minHeadingSizePts {
				out = append(out, ChapterCandidate{Index: i, Text: text, Method: MethodFormatting, Selected: true})
			}
		}
	}
	return out
}

// SelectedChapters filters candidates down to the ones still selected,
// preserving document order.
func SelectedChapters(candidates []ChapterCandidate) []ChapterCandidate {
	var out []ChapterCandidate
	for _, c := range candidates {
		if c.Selected {
			out = append(out, c)
		}
	}
	return out
}
