package study

import (
	"math"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var (
	formulaPattern  = regexp.MustCompile(`[a-zA-Z]\s*=\s*[^,\n]+`)
	citationPattern = regexp.MustCompile(`\[[0-9]+\]|\([A-Za-z]+,\s*\d{4}\)`)
	sentenceEnd     = regexp.MustCompile(`[.!?]+`)
)

const scholarSearchURL = "https://scholar.google.com/scholar?q="

// Narration pacing in seconds, by reading difficulty.
const (
	DurationEasy   = 60
	DurationMedium = 120
	DurationHard   = 180
)

// Analysis is the deterministic, generation-free view of a document.
type Analysis struct {
	WordCount           int        `json:"word_count"`
	ReadingEase         float64    `json:"reading_ease_score"`
	RecommendedDuration int        `json:"recommended_duration_seconds"`
	Formulas            []string   `json:"formulas_found"`
	Citations           []Citation `json:"citations_found"`
}

// Citation is an in-text reference with a search link.
type Citation struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Analyze computes word count, readability, pacing, formulas and citations.
func Analyze(text string) Analysis {
	a := Analysis{
		WordCount:           WordCount(text),
		RecommendedDuration: RecommendedDuration(text),
		Formulas:            ExtractFormulas(text),
		Citations:           CitationLinks(ExtractCitations(text)),
	}
	if strings.TrimSpace(text) != "" {
		a.ReadingEase = FleschReadingEase(text)
	}
	return a
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ExtractFormulas returns the distinct "x = ..." expressions in text, sorted.
func ExtractFormulas(text string) []string {
	return distinctSorted(formulaPattern.FindAllString(text, -1))
}

// ExtractCitations returns the distinct "[n]" and "(Author, YYYY)" references in text, sorted.
func ExtractCitations(text string) []string {
	return distinctSorted(citationPattern.FindAllString(text, -1))
}

// CitationLinks pairs each citation with a Google Scholar search link.
func CitationLinks(citations []string) []Citation {
	links := make([]Citation, 0, len(citations))
	for _, c := range citations {
		links = append(links, Citation{
			Title: c,
			Link:  scholarSearchURL + url.QueryEscape(c),
		})
	}
	return links
}

// RecommendedDuration maps reading difficulty to a narration length in seconds.
// Empty text gets the minimum.
func RecommendedDuration(text string) int {
	if strings.TrimSpace(text) == "" {
		return DurationEasy
	}

	score := FleschReadingEase(text)
	switch {
	case score > 60:
		return DurationEasy
	case score >= 30:
		return DurationMedium
	default:
		return DurationHard
	}
}

// FleschReadingEase scores text readability; higher is easier.
// Returns 0 for text without words.
func FleschReadingEase(text string) float64 {
	words := 0
	syllables := 0
	for _, w := range strings.Fields(text) {
		w = strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		if w == "" {
			continue
		}
		words++
		syllables += countSyllables(w)
	}
	if words == 0 {
		return 0
	}

	sentences := 0
	for _, part := range sentenceEnd.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	score := 206.835 -
		1.015*(float64(words)/float64(sentences)) -
		84.6*(float64(syllables)/float64(words))
	return math.Round(score*100) / 100
}

// countSyllables estimates English syllables by counting vowel groups.
func countSyllables(word string) int {
	word = strings.ToLower(word)

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	// silent trailing e ("make"), but not "-le" ("table")
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func distinctSorted(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}
