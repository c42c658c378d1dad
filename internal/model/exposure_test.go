package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestExposureAddPII tests insertion-order preservation and dedup.
func TestExposureAddPII(t *testing.T) {
	t.Parallel()

	var e Exposure
	e.AddPII("EMAIL: user@example.com")
	e.AddPII("PAN_CARD: ABCDE1234F")
	e.AddPII("EMAIL: user@example.com") // exact duplicate, skipped
	e.AddPII("EMAIL: other@example.com")

	expected := []string{
		"EMAIL: user@example.com",
		"PAN_CARD: ABCDE1234F",
		"EMAIL: other@example.com",
	}

	if len(e.PIIFound) != len(expected) {
		t.Fatalf("expected %d labels, got %d: %v", len(expected), len(e.PIIFound), e.PIIFound)
	}
	for i, want := range expected {
		if e.PIIFound[i] != want {
			t.Errorf("PIIFound[%d] = %q, expected %q", i, e.PIIFound[i], want)
		}
	}
}

// TestNewScanResult tests that an empty result serializes exposures
// as an empty array rather than null.
func TestNewScanResult(t *testing.T) {
	t.Parallel()

	result := NewScanResult(NewTarget("nobody@example.com", ""))

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if !strings.Contains(string(data), `"exposures":[]`) {
		t.Errorf("expected empty exposures array in output, got %s", data)
	}
	if result.Target != "nobody@example.com" {
		t.Errorf("Target = %q, expected normalized identifier", result.Target)
	}
}

// TestFindingLabel tests the pii_found label format.
func TestFindingLabel(t *testing.T) {
	t.Parallel()

	f := Finding{Category: CategoryPANCard, Match: "ABCDE1234F", Confidence: ConfidenceHigh}
	if f.Label() != "PAN_CARD: ABCDE1234F" {
		t.Errorf("Label() = %q, expected %q", f.Label(), "PAN_CARD: ABCDE1234F")
	}
}
