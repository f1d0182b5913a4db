// Package premium implements the catalog-optimization heuristics: genre
// inference, theme extraction, keyword suggestions, BISAC category
// recommendations, description formatting, and the templated cover.
// Everything here is stateless and deterministic; score ties are broken by
// declaration order, never by map iteration.
package premium

import (
	"regexp"
	"sort"
	"strings"
)

// genreTable is ordered: when two genres score equally the one declared
// first wins.
var genreTable = []struct {
	Name     string
	Keywords []string
}{
	{"romance", []string{"love", "relationship", "passion", "heart", "romance", "lovers", "dating", "marriage"}},
	{"thriller", []string{"suspense", "mystery", "crime", "detective", "murder", "investigation", "thriller"}},
	{"fantasy", []string{"magic", "dragon", "quest", "kingdom", "sword", "fantasy", "adventure", "wizard"}},
	{"self-help", []string{"guide", "improve", "success", "mindset", "growth", "habits", "productivity", "life"}},
	{"business", []string{"entrepreneur", "startup", "business", "marketing", "sales", "leadership", "strategy"}},
	{"horror", []string{"fear", "terror", "haunted", "ghost", "supernatural", "dark", "nightmare"}},
	{"literary", []string{"life", "family", "story", "journey", "memoir", "coming-of-age", "character"}},
}

// GenreLiterary is the fallback genre when no keyword scores at all.
const GenreLiterary = "literary"

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "been": true, "be": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "must": true,
	"can": true, "this": true, "that": true, "these": true, "those": true,
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true,
	"they": true, "what": true, "which": true,
}

var themeWordRE = regexp.MustCompile(`\b[a-z]{4,}\b`)

const (
	maxThemes            = 30
	analysisThemes       = 10
	analysisSuggested    = 15
	analysisRecommended7 = 7
)

// KeywordAnalysis is the payload of a keyword research run.
type KeywordAnalysis struct {
	Genre             string   `json:"genre"`
	Themes            []string `json:"themes"`
	SuggestedKeywords []string `json:"suggested_keywords"`
	Recommended7      []string `json:"recommended_7"`
	KeywordTips       []string `json:"keyword_tips"`
}

// AnalyzeKeywords runs genre detection, theme extraction, and keyword
// generation over a text sample and the book title.
func AnalyzeKeywords(sample, title string) KeywordAnalysis {
	genre := DetectGenre(sample, title)
	themes := ExtractThemes(sample)
	keywords := GenerateKeywords(genre, themes, title)

	return KeywordAnalysis{
		Genre:             genre,
		Themes:            head(themes, analysisThemes),
		SuggestedKeywords: head(keywords, analysisSuggested),
		Recommended7:      head(keywords, analysisRecommended7),
		KeywordTips:       KeywordTips(genre),
	}
}

// DetectGenre sums substring occurrences of each genre's keyword list over
// the lowercased sample and title, and returns the highest-scoring genre.
// A tie keeps the earlier table entry; an all-zero score means the text
// gave no signal and the result defaults to literary.
func DetectGenre(sample, title string) string {
	combined := strings.ToLower(sample) + " " + strings.ToLower(title)

	best := GenreLiterary
	bestScore := 0
	for _, g := range genreTable {
		score := 0
		for _, kw := range g.Keywords {
			score += strings.Count(combined, kw)
		}
		if score > bestScore {
			best = g.Name
			bestScore = score
		}
	}
	if bestScore == 0 {
		return GenreLiterary
	}
	return best
}

// ExtractThemes returns the most frequent 4+ letter lowercase words in the
// sample, stopwords removed, at most 30 entries. Count ties preserve
// first-seen order.
func ExtractThemes(sample string) []string {
	words := themeWordRE.FindAllString(strings.ToLower(sample), -1)

	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if stopwords[w] {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return head(order, maxThemes)
}

// GenerateKeywords combines genre keywords, top themes, theme+genre-word
// pairs, and title words into a suggestion list.
func GenerateKeywords(genre string, themes []string, title string) []string {
	var keywords []string

	genreWords := genreKeywords(genre)
	keywords = append(keywords, head(genreWords, 3)...)
	keywords = append(keywords, head(themes, 4)...)

	seen := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		seen[k] = true
	}
	for _, theme := range head(themes, 5) {
		for _, gw := range head(genreWords, 3) {
			combo := theme + " " + gw
			if !seen[combo] {
				keywords = append(keywords, combo)
				seen[combo] = true
			}
		}
	}

	titleWords := themeWordRE.FindAllString(strings.ToLower(title), -1)
	keywords = append(keywords, head(titleWords, 2)...)

	return keywords
}

// KeywordTips returns genre-specific optimization advice.
func KeywordTips(genre string) []string {
	switch genre {
	case "romance":
		return []string{
			"Include sub-genre specifics (contemporary, historical, paranormal)",
			"Mention heat level if relevant (sweet, steamy)",
			"Add tropes (enemies to lovers, second chance, fake relationship)",
		}
	case "thriller":
		return []string{
			"Specify thriller type (psychological, legal, medical)",
			"Include setting if unique (Nordic noir, Southern gothic)",
			"Mention protagonist type (detective, lawyer, journalist)",
		}
	case "fantasy":
		return []string{
			"Specify fantasy type (epic, urban, dark)",
			"Include magical elements (dragons, wizards, fae)",
			"Mention world-building elements (kingdoms, magic systems)",
		}
	case "self-help":
		return []string{
			"Focus on specific transformation (productivity, mindfulness, habits)",
			"Include target audience (entrepreneurs, parents, students)",
			"Mention methodology if applicable (workbook, journal, guide)",
		}
	default:
		return []string{
			"Use specific, searchable terms",
			"Include your target audience",
			"Add relevant sub-categories",
		}
	}
}

func genreKeywords(genre string) []string {
	for _, g := range genreTable {
		if g.Name == genre {
			return g.Keywords
		}
	}
	return nil
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
