package credibility

import (
	"errors"
	"strings"
	"unicode"
)

var errDegenerateText = errors.New("text too degenerate for readability estimate")

// FleschKincaidGrade estimates the U.S. school grade level needed to
// read the text:
//
//	0.39*(words/sentences) + 11.8*(syllables/words) - 15.59
//
// It returns an error for degenerate input (no words), in which case
// callers should treat the reading-grade feature as absent.
func FleschKincaidGrade(text string) (float64, error) {
	words := extractWords(text)
	if len(words) == 0 {
		return 0, errDegenerateText
	}

	sentences := countSentences(text)
	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	grade := 0.39*(float64(len(words))/float64(sentences)) +
		11.8*(float64(syllables)/float64(len(words))) - 15.59
	return grade, nil
}

// extractWords splits the text into tokens that contain at least one letter.
func extractWords(text string) []string {
	var words []string
	for _, tok := range strings.Fields(text) {
		trimmed := strings.TrimFunc(tok, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if containsLetter(trimmed) {
			words = append(words, trimmed)
		}
	}
	return words
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// countSentences counts runs of terminal punctuation. Text without any
// terminator counts as a single sentence.
func countSentences(text string) int {
	count := 0
	inTerminator := false
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if !inTerminator {
				count++
				inTerminator = true
			}
		} else {
			inTerminator = false
		}
	}
	return max(count, 1)
}

// countSyllables approximates syllables by counting vowel groups,
// dropping a trailing silent 'e'. Every word has at least one.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	return max(count, 1)
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
