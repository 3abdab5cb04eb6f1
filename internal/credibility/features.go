package credibility

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Phrase lists are matched as lowercase substrings, so multi-word
// phrases hit regardless of word boundaries.
var suspiciousPhrases = []string{
	"shocking", "unbelievable", "secret", "they dont want you to know",
	"miracle", "conspiracy", "breaking", "exclusive", "viral",
	"you wont believe", "doctors hate", "one weird trick",
}

var emotionalWords = []string{
	"outraged", "furious", "devastating", "alarming", "terrifying",
	"amazing", "incredible", "fantastic", "horrific", "scandalous",
}

var crediblePhrases = []string{
	"according to", "research shows", "study found", "experts say",
	"data indicates", "survey revealed", "analysis suggests",
}

// Features holds the signals extracted from a piece of analysis text.
// ReadingGrade is only meaningful when GradeKnown is true.
type Features struct {
	SuspiciousPhrases int
	CapsRatio         float64
	PunctDensity      float64
	ReadingGrade      float64
	GradeKnown        bool
	EmotionalWords    int
	CrediblePhrases   int
}

// ExtractFeatures computes all credibility signals for the given text.
func ExtractFeatures(text string) Features {
	lower := strings.ToLower(text)

	f := Features{
		SuspiciousPhrases: countMatches(lower, suspiciousPhrases),
		CapsRatio:         capsRatio(text),
		PunctDensity:      punctDensity(text),
		EmotionalWords:    countMatches(lower, emotionalWords),
		CrediblePhrases:   countMatches(lower, crediblePhrases),
	}

	if grade, err := FleschKincaidGrade(text); err == nil {
		f.ReadingGrade = grade
		f.GradeKnown = true
	}

	return f
}

// countMatches counts how many phrases from the list occur in the text.
// Each phrase contributes at most once, however often it repeats.
func countMatches(lower string, phrases []string) int {
	count := 0
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			count++
		}
	}
	return count
}

// capsRatio is the fraction of whitespace-split tokens that are fully
// upper-case and longer than 2 characters. Shouty headlines push this
// toward 1.0; normal prose stays near 0.
func capsRatio(text string) float64 {
	tokens := strings.Fields(text)
	caps := 0
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) > 2 && isUpperToken(tok) {
			caps++
		}
	}
	return float64(caps) / float64(max(len(tokens), 1))
}

// isUpperToken reports whether a token contains at least one letter and
// no lower-case letters ("WORD!" counts, "Word" and "123" do not).
func isUpperToken(tok string) bool {
	hasLetter := false
	for _, r := range tok {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// punctDensity is the count of '!' and '?' divided by the text length
// in characters.
func punctDensity(text string) float64 {
	punct := strings.Count(text, "!") + strings.Count(text, "?")
	return float64(punct) / float64(max(utf8.RuneCountInString(text), 1))
}
