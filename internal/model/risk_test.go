package model

import (
	"encoding/json"
	"testing"
)

// TestRiskLevelString tests the String method of RiskLevel.
func TestRiskLevelString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		level    RiskLevel
		expected string
	}{
		{RiskLow, "LOW"},
		{RiskMedium, "MEDIUM"},
		{RiskHigh, "HIGH"},
		{RiskCritical, "CRITICAL"},
		{RiskLevel(999), "UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.level.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.level.String(), tc.expected)
			}
		})
	}
}

// TestRiskLevelOrdering tests that enrichment can rely on the ordering
// Low < Medium < High < Critical.
func TestRiskLevelOrdering(t *testing.T) {
	t.Parallel()

	if RiskLow >= RiskMedium {
		t.Error("expected RiskLow < RiskMedium")
	}
	if RiskMedium >= RiskHigh {
		t.Error("expected RiskMedium < RiskHigh")
	}
	if RiskHigh >= RiskCritical {
		t.Error("expected RiskHigh < RiskCritical")
	}
}

// TestParseRiskLevel tests parsing of wire strings.
func TestParseRiskLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected RiskLevel
		wantErr  bool
	}{
		{"LOW", RiskLow, false},
		{"MEDIUM", RiskMedium, false},
		{"HIGH", RiskHigh, false},
		{"CRITICAL", RiskCritical, false},
		{"critical", RiskLow, true},
		{"", RiskLow, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseRiskLevel(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseRiskLevel(%q) expected error, got %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRiskLevel(%q) unexpected error: %v", tc.input, err)
			}
			if got != tc.expected {
				t.Errorf("ParseRiskLevel(%q) = %v, expected %v", tc.input, got, tc.expected)
			}
		})
	}
}

// TestRiskLevelJSONRoundTrip tests that risk levels serialize as
// strings on the wire and parse back.
func TestRiskLevelJSONRoundTrip(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(RiskCritical)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"CRITICAL"` {
		t.Errorf("expected %q, got %q", `"CRITICAL"`, string(data))
	}

	var level RiskLevel
	if err := json.Unmarshal(data, &level); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if level != RiskCritical {
		t.Errorf("round trip produced %v, expected RiskCritical", level)
	}

	if err := json.Unmarshal([]byte(`"WEIRD"`), &level); err == nil {
		t.Error("expected error for unknown risk level string")
	}
}
