package summarize

import (
	"context"
	"log"
	"strings"
)

const (
	// Texts below this length don't get a remote call; the text is
	// effectively its own summary.
	minSummarizableChars = 100

	shortTextCutoff   = 200
	fallbackSentences = 3
)

// Summarizer produces article summaries: best-effort remote generation
// with a cheap deterministic extractive fallback. Summarize never
// fails; a broken provider just degrades summary quality.
type Summarizer struct {
	provider  Provider
	maxLength int
}

// New creates a Summarizer. provider may be nil, in which case every
// summary is extractive.
func New(provider Provider, maxLength int) *Summarizer {
	if maxLength <= 0 {
		maxLength = 150
	}
	return &Summarizer{provider: provider, maxLength: maxLength}
}

// Summarize returns a summary for the text.
func (s *Summarizer) Summarize(ctx context.Context, text string) string {
	if len(strings.TrimSpace(text)) < minSummarizableChars {
		return shorten(text, shortTextCutoff)
	}

	if s.provider != nil && s.provider.IsConfigured() {
		summary, err := s.provider.Summarize(ctx, text, s.maxLength)
		if err == nil && strings.TrimSpace(summary) != "" {
			return strings.TrimSpace(summary)
		}
		if err != nil {
			log.Printf("Remote summarization failed, using extractive fallback: %v", err)
		}
	}

	return ExtractiveSummary(text, s.maxLength)
}

// ExtractiveSummary builds a summary from the first few sentences of
// the text, truncated to maxLength characters.
func ExtractiveSummary(text string, maxLength int) string {
	sentences := strings.Split(text, ".")
	if len(sentences) > fallbackSentences {
		sentences = sentences[:fallbackSentences]
	}

	summary := strings.TrimSpace(strings.Join(sentences, ". "))
	if len([]rune(summary)) > maxLength {
		summary = string([]rune(summary)[:maxLength]) + "..."
	}

	if summary == "" {
		return shorten(text, shortTextCutoff)
	}
	return summary
}

// shorten truncates text to limit characters, appending an ellipsis
// when anything was cut.
func shorten(text string, limit int) string {
	runes := []rune(text)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return text
}
