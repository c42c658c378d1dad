package risk

import (
	"testing"

	"github.com/tracepoint/tracepoint/internal/model"
)

// TestScore tests the fixed-weight capped scoring policy.
func TestScore(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		count    int
		expected int
	}{
		{"no findings", 0, 0},
		{"one finding", 1, 20},
		{"two findings", 2, 40},
		{"five findings reach the cap", 5, 100},
		{"cap holds beyond five", 9, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			findings := make([]model.Finding, tc.count)
			for i := range findings {
				findings[i] = model.Finding{
					Category:   model.CategoryEmail,
					Match:      "user@example.com",
					Confidence: model.ConfidenceHigh,
				}
			}

			got := Score(findings)
			if got != tc.expected {
				t.Errorf("Score with %d findings = %d, expected %d", tc.count, got, tc.expected)
			}
			if got < 0 || got > MaxScore {
				t.Errorf("Score %d outside [0, %d]", got, MaxScore)
			}
		})
	}
}

// TestScoreNilSlice tests that a nil slice behaves like an empty one.
func TestScoreNilSlice(t *testing.T) {
	t.Parallel()

	if got := Score(nil); got != 0 {
		t.Errorf("Score(nil) = %d, expected 0", got)
	}
}

// TestScoreCountsSynthesizedFindings tests that low-confidence
// general-exposure findings weigh the same as pattern matches.
func TestScoreCountsSynthesizedFindings(t *testing.T) {
	t.Parallel()

	findings := []model.Finding{
		{Category: model.CategoryGeneralExposure, Confidence: model.ConfidenceLow},
		{Category: model.CategoryPrivateKey, Match: "api_key", Confidence: model.ConfidenceHigh},
	}

	if got := Score(findings); got != 40 {
		t.Errorf("Score = %d, expected 40 (both findings weigh %d)", got, FindingWeight)
	}
}
