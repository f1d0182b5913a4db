package review

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/bookdoc"
)

func init() {
	color.NoColor = true
}

func reviewDoc() *bookdoc.Document {
	return &bookdoc.Document{Paragraphs: []bookdoc.Paragraph{
		{Runs: []bookdoc.Run{{Text: "Chapter 1"}}},
		{Runs: []bookdoc.Run{{Text: "It began at sea."}}},
		{Runs: []bookdoc.Run{{Text: "Chapter 2"}}},
		{Runs: []bookdoc.Run{{Text: "The storm broke."}}},
		{Runs: []bookdoc.Run{{Text: "Interlude"}}},
	}}
}

func candidatesFor(doc *bookdoc.Document) []analyze.ChapterCandidate {
	return analyze.DetectChapters(doc)
}

func TestChaptersAssumeYesKeepsDetection(t *testing.T) {
	doc := reviewDoc()
	in := candidatesFor(doc)
	out := Chapters(doc, in, Options{AssumeYes: true})
	if len(out) != len(in) {
		t.Fatalf("expected %d candidates, got %d", len(in), len(out))
	}
	for i := range out {
		if !out[i].Selected {
			t.Errorf("candidate %d deselected without input", i)
		}
	}
}

func TestChaptersToggle(t *testing.T) {
	doc := reviewDoc()
	var outBuf bytes.Buffer
	out := Chapters(doc, candidatesFor(doc), Options{
		In:  strings.NewReader("2\ndone\n"),
		Out: &outBuf,
	})
	if out[0].Selected != true || out[1].Selected != false {
		t.Errorf("expected second candidate toggled off, got %+v", out)
	}
}

func TestChaptersAddManual(t *testing.T) {
	doc := reviewDoc()
	var outBuf bytes.Buffer
	out := Chapters(doc, candidatesFor(doc), Options{
		In:  strings.NewReader("add 4\ndone\n"),
		Out: &outBuf,
	})
	if len(out) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(out))
	}
	last := out[len(out)-1]
	if last.Index != 4 || last.Method != analyze.MethodManual || !last.Selected {
		t.Errorf("unexpected manual candidate %+v", last)
	}
	if last.Text != "Interlude" {
		t.Errorf("expected paragraph text, got %q", last.Text)
	}
}

func TestChaptersAddExistingJustSelects(t *testing.T) {
	doc := reviewDoc()
	var outBuf bytes.Buffer
	out := Chapters(doc, candidatesFor(doc), Options{
		In:  strings.NewReader("2\nadd 2\ndone\n"),
		Out: &outBuf,
	})
	if len(out) != 2 {
		t.Fatalf("expected no duplicate candidate, got %d", len(out))
	}
	if !out[1].Selected {
		t.Error("expected re-added candidate selected")
	}
}

func TestChaptersRemove(t *testing.T) {
	doc := reviewDoc()
	var outBuf bytes.Buffer
	out := Chapters(doc, candidatesFor(doc), Options{
		In:  strings.NewReader("remove 1\ndone\n"),
		Out: &outBuf,
	})
	if len(out) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(out))
	}
	if out[0].Index != 2 {
		t.Errorf("expected remaining candidate at paragraph 2, got %d", out[0].Index)
	}
}

func TestChaptersEOFFinishes(t *testing.T) {
	doc := reviewDoc()
	var outBuf bytes.Buffer
	out := Chapters(doc, candidatesFor(doc), Options{
		In:  strings.NewReader(""),
		Out: &outBuf,
	})
	if len(out) != 2 {
		t.Fatalf("expected detection preserved on EOF, got %d", len(out))
	}
}

func fixtureIssues() []analyze.Issue {
	return []analyze.Issue{
		{ID: analyze.IssueTabs, Name: "Remove tab characters", Count: 3},
		{ID: analyze.IssueIndent, Name: "Add first-line indent", Count: 10},
		{ID: "no_toc", Name: "No table of contents"},
	}
}

func TestFixesApplyAll(t *testing.T) {
	var outBuf bytes.Buffer
	ids := Fixes(fixtureIssues(), Options{In: strings.NewReader("1\n"), Out: &outBuf})
	want := []string{analyze.IssueTabs, analyze.IssueIndent}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("fix %d: expected %q, got %q", i, want[i], ids[i])
		}
	}
}

func TestFixesSkip(t *testing.T) {
	var outBuf bytes.Buffer
	if ids := Fixes(fixtureIssues(), Options{In: strings.NewReader("3\n"), Out: &outBuf}); ids != nil {
		t.Errorf("expected no fixes, got %v", ids)
	}
}

func TestFixesIndividualSelection(t *testing.T) {
	var outBuf bytes.Buffer
	ids := Fixes(fixtureIssues(), Options{In: strings.NewReader("2\ny\nn\n"), Out: &outBuf})
	if len(ids) != 1 || ids[0] != analyze.IssueTabs {
		t.Errorf("expected only tabs fix, got %v", ids)
	}
}

func TestFixesAssumeYes(t *testing.T) {
	ids := Fixes(fixtureIssues(), Options{AssumeYes: true})
	if len(ids) != 2 {
		t.Errorf("expected all fixable issues, got %v", ids)
	}
}

func TestFixesNoFixableIssues(t *testing.T) {
	issues := []analyze.Issue{{ID: "no_toc", Name: "No table of contents"}}
	if ids := Fixes(issues, Options{AssumeYes: true}); ids != nil {
		t.Errorf("expected nil, got %v", ids)
	}
}
