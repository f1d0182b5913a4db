package premium

import (
	"sort"
	"strings"
)

// Category is one recommended BISAC classification.
type Category struct {
	Main        string `json:"main"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	FullPath    string `json:"full_path"`
	Confidence  int    `json:"confidence"`
}

type taxonomyEntry struct {
	Name string
	Subs []string
}

// Simplified BISAC taxonomy. Both levels are ordered slices: score ties
// keep the earlier entry, which makes recommendations stable across runs.
var fictionTaxonomy = []taxonomyEntry{
	{"Romance", []string{"Contemporary", "Historical", "Paranormal", "Suspense", "Western"}},
	{"Thriller", []string{"Psychological", "Legal", "Medical", "Political", "Espionage"}},
	{"Fantasy", []string{"Epic", "Urban", "Historical", "Paranormal", "Dark"}},
	{"Mystery & Detective", []string{"Cozy", "Police Procedural", "Private Investigator", "Historical"}},
	{"Science Fiction", []string{"Space Opera", "Cyberpunk", "Time Travel", "Dystopian"}},
	{"Literary", []string{"General", "Coming of Age", "Family Life", "Women"}},
	{"Horror", []string{"General", "Occult & Supernatural", "Vampires"}},
}

var nonfictionTaxonomy = []taxonomyEntry{
	{"Self-Help", []string{"Personal Growth", "Success", "Motivational", "Creativity"}},
	{"Business & Economics", []string{"Entrepreneurship", "Marketing", "Leadership", "Personal Finance"}},
	{"Biography & Autobiography", []string{"Personal Memoirs", "Literary", "Business"}},
	{"Health & Fitness", []string{"Diet", "Exercise", "Mental Health", "Wellness"}},
	{"Psychology", []string{"General", "Personality", "Cognitive Psychology"}},
	{"Religion & Spirituality", []string{"Inspiration", "Meditation", "Prayer"}},
}

var fictionIndicators = []string{"story", "novel", "tale", "romance", "fantasy", "thriller", "mystery"}
var nonfictionIndicators = []string{"guide", "how", "learn", "improve", "understand", "master", "success"}

// RecommendCategories scores the taxonomy against the combined
// genre+themes+title text and returns the top two categories, each with
// its best-matching subcategory.
func RecommendCategories(genre string, themes []string, title string) []Category {
	text := strings.ToLower(genre + " " + strings.Join(themes, " ") + " " + title)

	main := "NON-FICTION"
	taxonomy := nonfictionTaxonomy
	if isFiction(text) {
		main = "FICTION"
		taxonomy = fictionTaxonomy
	}

	type scored struct {
		entry taxonomyEntry
		score int
	}
	ranked := make([]scored, 0, len(taxonomy))
	for _, e := range taxonomy {
		ranked = append(ranked, scored{entry: e, score: scoreCategory(e, text)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	var out []Category
	for _, r := range ranked[:2] {
		sub := bestSubcategory(r.entry.Subs, themes, title)
		out = append(out, Category{
			Main:        main,
			Category:    r.entry.Name,
			Subcategory: sub,
			FullPath:    main + " > " + r.entry.Name + " > " + sub,
			Confidence:  min(100, r.score*10),
		})
	}
	return out
}

// isFiction compares fiction and non-fiction indicator counts over the
// combined text. Fiction wins ties.
func isFiction(text string) bool {
	fiction := 0
	for _, w := range fictionIndicators {
		fiction += strings.Count(text, w)
	}
	nonfiction := 0
	for _, w := range nonfictionIndicators {
		nonfiction += strings.Count(text, w)
	}
	return fiction >= nonfiction
}

func scoreCategory(e taxonomyEntry, text string) int {
	label := strings.ToLower(e.Name + " " + strings.Join(e.Subs, " "))
	score := 0
	for _, word := range strings.Fields(label) {
		if strings.Contains(text, word) {
			score++
		}
	}
	return score
}

// bestSubcategory picks the subcategory whose label words appear most in
// the themes+title text. A tie keeps the first-listed entry.
func bestSubcategory(subs []string, themes []string, title string) string {
	text := strings.ToLower(strings.Join(themes, " ") + " " + title)

	best := subs[0]
	bestScore := 0
	for _, sub := range subs {
		score := 0
		for _, word := range strings.Fields(strings.ToLower(sub)) {
			if strings.Contains(text, word) {
				score++
			}
		}
		if score > bestScore {
			best = sub
			bestScore = score
		}
	}
	return best
}
