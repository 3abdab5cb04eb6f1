package credibility

const (
	// Detection looks at the title plus the first 500 characters of
	// content; the lead carries most of the sensationalism signal.
	maxContentChars = 500

	detectConfidence   = 0.75
	fallbackScore      = 0.6
	fallbackConfidence = 0.3
)

// scoreText is swappable in tests to exercise the failure path.
var scoreText = Score

// Result is the outcome of a fake-news detection call. Score is a
// credibility score in [0.1, 1.0]; Confidence reflects how much to
// trust it (fixed, since this is a heuristic rather than a calibrated
// model).
type Result struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// Detect scores an article's title and content for credibility. It is
// total: any internal failure degrades to a neutral-leaning fallback
// result instead of surfacing an error, so ingestion never blocks on
// scoring.
func Detect(title, content string) (result Result) {
	defer func() {
		if recover() != nil {
			result = Result{Score: fallbackScore, Confidence: fallbackConfidence}
		}
	}()

	return Result{
		Score:      scoreText(analysisText(title, content)),
		Confidence: detectConfidence,
	}
}

// analysisText builds "{title}. {content}" with content truncated to
// maxContentChars characters. The title is never truncated.
func analysisText(title, content string) string {
	runes := []rune(content)
	if len(runes) > maxContentChars {
		content = string(runes[:maxContentChars])
	}
	return title + ". " + content
}
