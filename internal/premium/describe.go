package premium

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

// DescriptionResult is the output of the description optimizer.
type DescriptionResult struct {
	HTML           string   `json:"html"`
	Plain          string   `json:"plain"`
	CharacterCount int      `json:"character_count"`
	Tips           []string `json:"tips"`
}

const maxBodyParagraphs = 3

// OptimizeDescription formats a raw description (plain text, Markdown, or
// pasted HTML) into the KDP-friendly shape: a bolded opening hook, up to
// three body paragraphs, and a keyword bullet list when enough keywords
// are available.
func OptimizeDescription(raw, genre string, keywords []string) DescriptionResult {
	paragraphs := descriptionParagraphs(raw)

	var parts []string
	if len(paragraphs) > 0 {
		parts = append(parts, "<b>"+html.EscapeString(paragraphs[0])+"</b>")
		paragraphs = paragraphs[1:]
	}
	for _, p := range head(paragraphs, maxBodyParagraphs) {
		parts = append(parts, "<p>"+html.EscapeString(p)+"</p>")
	}

	if len(keywords) > 3 {
		parts = append(parts, "<p><b>In this book, you'll discover:</b></p>")
		parts = append(parts, "<ul>")
		for _, kw := range head(keywords, 4) {
			parts = append(parts, "<li>"+html.EscapeString(capitalize(kw))+"</li>")
		}
		parts = append(parts, "</ul>")
	}

	out := strings.Join(parts, "\n")
	return DescriptionResult{
		HTML:           out,
		Plain:          raw,
		CharacterCount: len(out),
		Tips:           descriptionTips(genre),
	}
}

// descriptionParagraphs normalizes the raw input to plain paragraphs.
// Markdown (and plain text, which Markdown subsumes) is rendered to HTML
// first, then all block-level text is extracted, so pasted HTML and
// Markdown both come out the same way.
func descriptionParagraphs(raw string) []string {
	src := raw
	if !strings.Contains(raw, "<") {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(raw), &buf); err == nil {
			src = buf.String()
		}
	}

	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		// Fall back to line splitting on unparseable input.
		return nonEmptyLines(raw)
	}

	var paragraphs []string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li":
				if text := strings.TrimSpace(nodeText(n)); text != "" {
					paragraphs = append(paragraphs, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)

	if len(paragraphs) == 0 {
		return nonEmptyLines(raw)
	}
	return paragraphs
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func descriptionTips(genre string) []string {
	return []string{
		"Start with a hook in the first sentence",
		"Keep it under 4000 characters",
		"Use HTML formatting (<b>, <i>, <ul>, <li>)",
		"Include keywords naturally",
		"End with a call-to-action",
		fmt.Sprintf("For %s: focus on what makes your book unique", genre),
	}
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
