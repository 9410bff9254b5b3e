package allocator

// BaseScore is the confidence of a pairing with no soft rule firings
const BaseScore = 100.0

// DefaultCleanMatchThreshold is the confidence below which deviation
// reasons are produced. Overridable through Config.
const DefaultCleanMatchThreshold = 90.0

// Deviation explains one soft rule that pulled a pairing's confidence
// below the clean-match threshold. Downstream surfaces show these to
// explain why a suggestion isn't a perfect fit.
type Deviation struct {
	Rule      string
	Magnitude float64
}

// Score converts a constraint evaluation into a confidence value in
// [0, 100] plus deviation reasons. Pure function of its inputs: no
// randomness, no wall clock.
func Score(result ConstraintResult, cleanMatchThreshold float64) (float64, []Deviation) {
	confidence := BaseScore
	for _, firing := range result.Firings {
		confidence -= firing.Weighted
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > BaseScore {
		confidence = BaseScore
	}

	if confidence >= cleanMatchThreshold {
		return confidence, nil
	}

	deviations := make([]Deviation, 0, len(result.Firings))
	for _, firing := range result.Firings {
		deviations = append(deviations, Deviation{
			Rule:      firing.Rule,
			Magnitude: firing.Weighted,
		})
	}
	return confidence, deviations
}
