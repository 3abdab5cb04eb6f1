package credibility

// Tuning constants for the scoring formula. The weights are heuristic:
// each one shifts the base score by a fixed amount per unit of signal,
// and the final score is clamped so extreme inputs stay usable.
const (
	baseScore  = 0.7
	scoreFloor = 0.1
	scoreCeil  = 1.0

	suspiciousWeight = 0.05
	capsWeight       = 0.3
	punctWeight      = 20.0
	emotionalWeight  = 0.03
	credibleWeight   = 0.05

	simpleGradeMax      = 6.0
	complexGradeMin     = 16.0
	simpleGradePenalty  = 0.1
	complexGradePenalty = 0.05
)

// Score computes a credibility score in [0.1, 1.0] for the given
// analysis text. Higher means more credible. The adjustments are
// independent and additive, so the result is fully reproducible from
// the input string alone.
func Score(text string) float64 {
	return ScoreFeatures(ExtractFeatures(text))
}

// ScoreFeatures applies the scoring formula to an already-extracted
// feature set.
func ScoreFeatures(f Features) float64 {
	score := baseScore

	score -= float64(f.SuspiciousPhrases) * suspiciousWeight
	score -= f.CapsRatio * capsWeight
	score -= f.PunctDensity * punctWeight

	if f.GradeKnown {
		switch {
		case f.ReadingGrade < simpleGradeMax:
			score -= simpleGradePenalty
		case f.ReadingGrade > complexGradeMin:
			score -= complexGradePenalty
		}
	}

	score -= float64(f.EmotionalWords) * emotionalWeight
	score += float64(f.CrediblePhrases) * credibleWeight

	return clamp(score)
}

func clamp(score float64) float64 {
	if score < scoreFloor {
		return scoreFloor
	}
	if score > scoreCeil {
		return scoreCeil
	}
	return score
}
