package study

import (
	"strings"
	"unicode"
)

// negativeThreshold is the polarity below which a question reads as frustrated.
const negativeThreshold = -0.1

var negativeWords = map[string]struct{}{
	"annoyed": {}, "annoying": {}, "awful": {}, "bad": {}, "confused": {},
	"confusing": {}, "difficult": {}, "dumb": {}, "frustrated": {}, "frustrating": {},
	"hard": {}, "hate": {}, "horrible": {}, "impossible": {}, "lost": {},
	"nonsense": {}, "stuck": {}, "stupid": {}, "terrible": {}, "ugh": {},
	"upset": {}, "useless": {}, "worst": {}, "wrong": {},
}

var positiveWords = map[string]struct{}{
	"amazing": {}, "awesome": {}, "clear": {}, "cool": {}, "easy": {},
	"excellent": {}, "fun": {}, "good": {}, "great": {}, "helpful": {},
	"interesting": {}, "love": {}, "nice": {}, "thanks": {},
	"understand": {},
}

var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "dont": {}, "don't": {}, "cant": {},
	"can't": {}, "isnt": {}, "isn't": {}, "doesnt": {}, "doesn't": {},
}

// Polarity scores text sentiment in [-1, 1] from a small lexicon.
// A negator flips the next sentiment word ("not clear" counts as negative).
func Polarity(text string) float64 {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	var pos, neg int
	negate := false
	for _, tok := range tokens {
		if _, ok := negators[tok]; ok {
			negate = true
			continue
		}

		_, isPos := positiveWords[tok]
		_, isNeg := negativeWords[tok]
		if negate && (isPos || isNeg) {
			isPos, isNeg = isNeg, isPos
		}
		switch {
		case isPos:
			pos++
		case isNeg:
			neg++
		}
		if isPos || isNeg {
			negate = false
		}
	}

	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}

// IsNegative reports whether text reads as frustrated or upset.
func IsNegative(text string) bool {
	return Polarity(text) < negativeThreshold
}
