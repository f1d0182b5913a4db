// Package review implements the interactive confirmation step of the CLI:
// the user inspects detected chapters and issues and decides what gets
// applied. Input and output are injected so the loops are testable.
package review

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/bookdoc"
)

// Options configures a review session.
type Options struct {
	In  io.Reader
	Out io.Writer

	// AssumeYes accepts every detected chapter and fix without prompting.
	AssumeYes bool
}

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	selectedMark = color.New(color.FgGreen)
	skippedMark  = color.New(color.FgYellow)
	promptColor  = color.New(color.FgWhite, color.Bold)
)

// Chapters runs the chapter confirmation loop. The user can toggle a
// candidate by its list number, add a paragraph as a manual chapter, remove
// a candidate, or finish. The returned slice reflects the final selection.
func Chapters(doc *bookdoc.Document, candidates []analyze.ChapterCandidate, opts Options) []analyze.ChapterCandidate {
	out := make([]analyze.ChapterCandidate, len(candidates))
	copy(out, candidates)

	if opts.AssumeYes {
		return out
	}

	scanner := bufio.NewScanner(opts.In)
	for {
		printChapters(opts.Out, out)
		promptColor.Fprint(opts.Out, "chapters> ")
		if !scanner.Scan() {
			return out
		}
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "d", "done":
			return out
		case "a", "add":
			if len(fields) < 2 {
				fmt.Fprintln(opts.Out, "usage: add <paragraph-number>")
				continue
			}
			idx, err := strconv.Atoi(fields[1])
			if err != nil || idx < 0 || idx >= len(doc.Paragraphs) {
				fmt.Fprintln(opts.Out, "no such paragraph")
				continue
			}
			out = addManual(out, idx, strings.TrimSpace(doc.Paragraphs[idx].Text()))
		case "r", "remove":
			if len(fields) < 2 {
				fmt.Fprintln(opts.Out, "usage: remove <list-number>")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 || n > len(out) {
				fmt.Fprintln(opts.Out, "no such entry")
				continue
			}
			out = append(out[:n-1], out[n:]...)
		default:
			n, err := strconv.Atoi(fields[0])
			if err != nil || n < 1 || n > len(out) {
				fmt.Fprintln(opts.Out, "enter a list number, add <p>, remove <n>, or done")
				continue
			}
			out[n-1].Selected = !out[n-1].Selected
		}
	}
}

func printChapters(w io.Writer, candidates []analyze.ChapterCandidate) {
	headerColor.Fprintln(w, "\nDetected chapters")
	if len(candidates) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for i, c := range candidates {
		mark := skippedMark
		state := " "
		if c.Selected {
			mark = selectedMark
			state = "x"
		}
		mark.Fprintf(w, "  %2d. [%s] %s", i+1, state, c.Text)
		fmt.Fprintf(w, "  (paragraph %d, %s)\n", c.Index, c.Method)
	}
}

func addManual(candidates []analyze.ChapterCandidate, idx int, text string) []analyze.ChapterCandidate {
	for i := range candidates {
		if candidates[i].Index == idx {
			candidates[i].Selected = true
			return candidates
		}
	}
	added := append(candidates, analyze.ChapterCandidate{
		Index:    idx,
		Text:     text,
		Method:   analyze.MethodManual,
		Selected: true,
	})
	// Keep document order.
	for i := len(added) - 1; i > 0 && added[i].Index < added[i-1].Index; i-- {
		added[i], added[i-1] = added[i-1], added[i]
	}
	return added
}

// Fixes runs the issue menu and returns the IDs of the fixes to apply:
// everything, an individual selection, or nothing.
func Fixes(issues []analyze.Issue, opts Options) []string {
	fixable := fixableIssues(issues)
	if len(fixable) == 0 {
		return nil
	}
	if opts.AssumeYes {
		return issueIDs(fixable)
	}

	headerColor.Fprintln(opts.Out, "\nDetected issues")
	for _, issue := range fixable {
		fmt.Fprintf(opts.Out, "  - %s (%d found)\n", issue.Name, issue.Count)
	}
	fmt.Fprintln(opts.Out, "\n  1) apply all fixes")
	fmt.Fprintln(opts.Out, "  2) choose fixes individually")
	fmt.Fprintln(opts.Out, "  3) skip fixes")

	scanner := bufio.NewScanner(opts.In)
	for {
		promptColor.Fprint(opts.Out, "fixes> ")
		if !scanner.Scan() {
			return nil
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			return issueIDs(fixable)
		case "2":
			return chooseFixes(fixable, scanner, opts.Out)
		case "3":
			return nil
		default:
			fmt.Fprintln(opts.Out, "enter 1, 2, or 3")
		}
	}
}

func chooseFixes(fixable []analyze.Issue, scanner *bufio.Scanner, out io.Writer) []string {
	var ids []string
	for _, issue := range fixable {
		promptColor.Fprintf(out, "apply %s? [y/N] ", issue.Name)
		if !scanner.Scan() {
			break
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer == "y" || answer == "yes" {
			ids = append(ids, issue.ID)
		}
	}
	return ids
}

func fixableIssues(issues []analyze.Issue) []analyze.Issue {
	var out []analyze.Issue
	for _, issue := range issues {
		switch issue.ID {
		case analyze.IssueTabs, analyze.IssueIndent, analyze.IssueSpacing, analyze.IssueHeadings:
			out = append(out, issue)
		}
	}
	return out
}

func issueIDs(issues []analyze.Issue) []string {
	ids := make([]string, len(issues))
	for i, issue := range issues {
		ids[i] = issue.ID
	}
	return ids
}
