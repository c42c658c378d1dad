package risk

import "github.com/tracepoint/tracepoint/internal/model"

// FindingWeight is the score contribution of a single finding.
//
// Every finding weighs the same regardless of category: a private key
// and a generic exposure both add 20 points. Scoring counts volume of
// exposure, not category severity; per-exposure risk_level carries the
// severity signal instead. Category-weighted scoring would change
// every published score, so changing this is a product decision.
const FindingWeight = 20

// MaxScore is the upper bound of the risk score.
const MaxScore = 100

// Score reduces a list of findings to a risk score.
// An empty list scores 0; the sum of weights is capped at MaxScore.
// The input includes synthesized GENERAL_EXPOSURE findings, so every
// exposure that reported anything at all raises the score.
func Score(findings []model.Finding) int {
	if len(findings) == 0 {
		return 0
	}

	score := len(findings) * FindingWeight
	if score > MaxScore {
		return MaxScore
	}
	return score
}
