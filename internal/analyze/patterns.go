package analyze

import "regexp"

// chapterPatterns is the ordered table of chapter-heading shapes, English
// and Spanish. Order is priority: the first match wins and no further
// patterns are tried. All matching is case-insensitive and anchored to the
// start of the trimmed paragraph text.
var chapterPatterns = []*regexp.Regexp{
	// "Chapter 12", "Capítulo IV", "Chapter three", "Capítulo dos"
	regexp.MustCompile(`(?i)^(Chapter|Capítulo)\s+(\d+|[IVXLCDM]+|one|two|three|four|five|six|seven|eight|nine|ten|uno|dos|tres|cuatro|cinco|seis|siete|ocho|nueve|diez)`),
	// "Ch. 3", "Cap 7"
	regexp.MustCompile(`(?i)^(Ch|Cap)\.?\s*(\d+)`),
	// "1. Title", "IV. Title"
	regexp.MustCompile(`(?i)^(\d+|[IVXLCDM]+)\.\s*[A-Z]`),
	// "Part 2", "Parte III"
	regexp.MustCompile(`(?i)^(Part|Parte)\s+(\d+|[IVXLCDM]+)`),
	// Standalone section names.
	regexp.MustCompile(`(?i)^(Prólogo|Epílogo|Prologue|Epilogue|Introduction|Introducción)`),
}

// MatchesChapterPattern reports whether trimmed paragraph text has the
// shape of a chapter heading.
func MatchesChapterPattern(text string) bool {
	for _, re := range chapterPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
