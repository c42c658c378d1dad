package model

import (
	"encoding/json"
	"fmt"
)

// RiskLevel represents the severity a source assigns to an exposure.
//
// Design decision: We use iota-based constants rather than string
// constants for efficiency in comparisons and ordering (the enrichment
// step must be able to escalate a level, which requires ordering).
// The String() method and JSON marshaling provide the wire form.
type RiskLevel int

const (
	// RiskLow indicates an exposure with limited direct impact.
	// Example: a suspended account found under the target's handle.
	RiskLow RiskLevel = iota

	// RiskMedium indicates an exposure that provides correlation clues.
	// Example: an active profile confirming cross-platform handle reuse.
	RiskMedium

	// RiskHigh indicates an exposure that leaks usable personal data.
	// Example: an email hardcoded in public source code.
	RiskHigh

	// RiskCritical indicates an exposure containing directly abusable
	// data such as credentials, financial identifiers, or private keys.
	RiskCritical
)

// String returns the wire representation of the risk level.
func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the risk level as its string form so API
// consumers see "CRITICAL" rather than an opaque integer.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes the string form of a risk level.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	level, err := ParseRiskLevel(s)
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// ParseRiskLevel converts a wire string into a RiskLevel.
// It returns an error for unknown values so malformed adapter payloads
// are caught at the boundary instead of silently mapping to LOW.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch s {
	case "LOW":
		return RiskLow, nil
	case "MEDIUM":
		return RiskMedium, nil
	case "HIGH":
		return RiskHigh, nil
	case "CRITICAL":
		return RiskCritical, nil
	default:
		return RiskLow, fmt.Errorf("unknown risk level %q", s)
	}
}
