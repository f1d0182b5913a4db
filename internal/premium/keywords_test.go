package premium

import (
	"strings"
	"testing"
)

func TestDetectGenreRomance(t *testing.T) {
	sample := "A story of love and passion. Her heart belonged to him, a romance for the ages."
	if got := DetectGenre(sample, "The Lovers"); got != "romance" {
		t.Errorf("expected romance, got %q", got)
	}
}

func TestDetectGenreThriller(t *testing.T) {
	sample := "The detective studied the murder scene. The investigation pointed to a crime of suspense."
	if got := DetectGenre(sample, "Cold Case"); got != "thriller" {
		t.Errorf("expected thriller, got %q", got)
	}
}

func TestDetectGenreNoSignalDefaultsLiterary(t *testing.T) {
	if got := DetectGenre("xyzzy qwerty plugh", "Untitled"); got != GenreLiterary {
		t.Errorf("expected %q, got %q", GenreLiterary, got)
	}
}

func TestDetectGenreTieKeepsEarlierEntry(t *testing.T) {
	// One hit each for romance ("love") and thriller ("murder").
	// Romance is declared first, so it must win the tie.
	if got := DetectGenre("love murder", ""); got != "romance" {
		t.Errorf("expected romance on tie, got %q", got)
	}
}

func TestDetectGenreUsesTitle(t *testing.T) {
	if got := DetectGenre("plain words only", "Dragon Kingdom Magic Quest"); got != "fantasy" {
		t.Errorf("expected fantasy from title signal, got %q", got)
	}
}

func TestExtractThemesFiltersStopwordsAndShortWords(t *testing.T) {
	themes := ExtractThemes("the cat sat and the ocean waves rolled over the ocean")
	for _, th := range themes {
		if stopwords[th] {
			t.Errorf("stopword %q leaked into themes", th)
		}
		if len(th) < 4 {
			t.Errorf("short word %q leaked into themes", th)
		}
	}
	if len(themes) == 0 || themes[0] != "ocean" {
		t.Errorf("expected most frequent theme first, got %v", themes)
	}
}

func TestExtractThemesTiePreservesFirstSeenOrder(t *testing.T) {
	themes := ExtractThemes("mountain river valley")
	want := []string{"mountain", "river", "valley"}
	if len(themes) != len(want) {
		t.Fatalf("expected %d themes, got %v", len(want), themes)
	}
	for i := range want {
		if themes[i] != want[i] {
			t.Errorf("theme %d: expected %q, got %q", i, want[i], themes[i])
		}
	}
}

func TestExtractThemesCapped(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString(strings.Repeat(string(rune('a'+i%26)), 4+i%3))
		b.WriteString("word")
		b.WriteString(" ")
	}
	if got := ExtractThemes(b.String()); len(got) > maxThemes {
		t.Errorf("expected at most %d themes, got %d", maxThemes, len(got))
	}
}

func TestGenerateKeywordsShape(t *testing.T) {
	themes := []string{"ocean", "voyage", "storm", "island", "compass"}
	keywords := GenerateKeywords("thriller", themes, "The Drowned Coast")

	if keywords[0] != "suspense" || keywords[1] != "mystery" || keywords[2] != "crime" {
		t.Errorf("expected leading genre keywords, got %v", keywords[:3])
	}
	for _, th := range themes[:4] {
		if !containsKeyword(keywords, th) {
			t.Errorf("expected theme %q in keywords", th)
		}
	}
	if !containsKeyword(keywords, "ocean suspense") {
		t.Errorf("expected theme+genre combo, got %v", keywords)
	}
	if !containsKeyword(keywords, "drowned") || !containsKeyword(keywords, "coast") {
		t.Errorf("expected title words, got %v", keywords)
	}
}

func TestGenerateKeywordsNoDuplicateCombos(t *testing.T) {
	keywords := GenerateKeywords("romance", []string{"heart", "garden"}, "")
	seen := make(map[string]int)
	for _, k := range keywords {
		seen[k]++
	}
	for k, n := range seen {
		if n > 1 {
			t.Errorf("keyword %q appears %d times", k, n)
		}
	}
}

func TestAnalyzeKeywordsLimits(t *testing.T) {
	sample := strings.Repeat("magic dragon kingdom quest sword wizard castle forest tower crown ", 5)
	a := AnalyzeKeywords(sample, "The Last Wizard")

	if a.Genre != "fantasy" {
		t.Errorf("expected fantasy, got %q", a.Genre)
	}
	if len(a.Themes) > analysisThemes {
		t.Errorf("expected at most %d themes, got %d", analysisThemes, len(a.Themes))
	}
	if len(a.SuggestedKeywords) > analysisSuggested {
		t.Errorf("expected at most %d suggestions, got %d", analysisSuggested, len(a.SuggestedKeywords))
	}
	if len(a.Recommended7) > analysisRecommended7 {
		t.Errorf("expected at most %d recommended, got %d", analysisRecommended7, len(a.Recommended7))
	}
	if len(a.KeywordTips) == 0 {
		t.Error("expected keyword tips")
	}
}

func TestKeywordTipsGenreSpecific(t *testing.T) {
	if tips := KeywordTips("romance"); !strings.Contains(strings.Join(tips, " "), "tropes") {
		t.Errorf("expected romance tips, got %v", tips)
	}
	generic := KeywordTips("literary")
	if len(generic) != 3 {
		t.Errorf("expected 3 generic tips, got %v", generic)
	}
}

func containsKeyword(keywords []string, want string) bool {
	for _, k := range keywords {
		if k == want {
			return true
		}
	}
	return false
}
