package model

// Exposure is one source's reported leak about the target.
// Adapters create exposures; the orchestrator's enrichment step is the
// only mutator afterwards, and once a ScanResult is assembled the
// exposure is frozen.
type Exposure struct {
	// Platform is the reporting source's display name. Degraded-mode
	// responses carry a "(Simulated)" suffix so analysts can tell
	// fabricated demonstrations from live data.
	Platform string `json:"platform"`

	// RiskLevel is the severity the adapter assigned. Enrichment
	// overrides it to CRITICAL when the detector finds concrete
	// sensitive data in the description.
	RiskLevel RiskLevel `json:"risk_level"`

	// Description is the source's free-text account of what leaked.
	// This is the text the detector scans.
	Description string `json:"description"`

	// PIIFound lists human-readable labels of leaked data types, in
	// insertion order with exact duplicates skipped.
	PIIFound []string `json:"pii_found"`

	// URL optionally references the exposed data.
	URL string `json:"url,omitempty"`

	// ComplianceNotes lists regulatory sections implicated by this
	// exposure, populated during enrichment.
	ComplianceNotes []string `json:"compliance_notes"`
}

// AddPII appends a label to PIIFound unless an identical label is
// already present. Insertion order is preserved.
func (e *Exposure) AddPII(label string) {
	for _, existing := range e.PIIFound {
		if existing == label {
			return
		}
	}
	e.PIIFound = append(e.PIIFound, label)
}

// AddComplianceNote appends a violation-section label.
func (e *Exposure) AddComplianceNote(note string) {
	e.ComplianceNotes = append(e.ComplianceNotes, note)
}

// ScanResult is the consolidated report returned to the caller.
//
// Design decision: The struct holds exactly the four wire fields and
// nothing volatile (no timestamps, no scan IDs) so that a degraded-mode
// scan of the same identifier serializes byte-identically every run.
// Demo stability depends on this.
type ScanResult struct {
	// Target is the normalized identifier that was scanned.
	Target string `json:"target"`

	// TotalLeaks counts exposures, not findings.
	TotalLeaks int `json:"total_leaks"`

	// RiskScore is the aggregate privacy risk in [0, 100]. It is zero
	// exactly when no findings were produced across all exposures.
	RiskScore int `json:"risk_score"`

	// Exposures lists what each source reported, in adapter
	// declaration order regardless of completion order.
	Exposures []Exposure `json:"exposures"`
}

// NewScanResult creates an empty result for the given target.
// Exposures is non-nil so an all-miss scan serializes as [] not null.
func NewScanResult(target Target) *ScanResult {
	return &ScanResult{
		Target:    target.Identifier,
		Exposures: make([]Exposure, 0),
	}
}
