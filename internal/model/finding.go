package model

// Category identifies the kind of sensitive data a finding represents.
//
// Design decision: Unlike RiskLevel, categories are typed strings
// rather than iota constants because the set is open-ended (the
// detector's pattern table may grow) and the wire form is the identity.
type Category string

const (
	// CategoryAadhaar is an Indian Aadhaar identity number.
	CategoryAadhaar Category = "AADHAAR_ID"

	// CategoryPANCard is an Indian permanent account number.
	CategoryPANCard Category = "PAN_CARD"

	// CategoryPhoneNumber is an Indian mobile number.
	CategoryPhoneNumber Category = "PHONE_NUMBER"

	// CategoryPrivateKey is a private key block or credential marker
	// such as an api_key or passwd assignment.
	CategoryPrivateKey Category = "PRIVATE_KEY"

	// CategoryEmail is an email address.
	CategoryEmail Category = "EMAIL"

	// CategoryGeneralExposure marks an exposure whose description
	// matched no pattern. It is synthesized by the orchestrator, never
	// by the detector, so that every reported exposure carries at
	// least baseline risk weight.
	CategoryGeneralExposure Category = "GENERAL_EXPOSURE"
)

// Confidence expresses how certain the detector is about a finding.
type Confidence string

const (
	// ConfidenceLow is used for synthesized findings where no concrete
	// pattern matched.
	ConfidenceLow Confidence = "LOW"

	// ConfidenceHigh is used for direct pattern matches.
	ConfidenceHigh Confidence = "HIGH"
)

// Finding is a single sensitive-data match inside one exposure's text.
// Findings are ephemeral: they exist only during a scan and feed the
// risk scorer and compliance mapper. The Match field contains the
// matched substring and is sensitive itself; it must only reach logs
// through the masking log handler and reaches compliance records in
// masked form.
type Finding struct {
	// Category is the sensitive-data category that matched.
	Category Category

	// Match is the matched substring. Treat as write-only.
	Match string

	// Confidence is HIGH for pattern matches, LOW for synthesized
	// general-exposure findings.
	Confidence Confidence
}

// Label returns the human-readable form stored in an exposure's
// pii_found list, e.g. "PAN_CARD: ABCDE1234F".
func (f Finding) Label() string {
	return string(f.Category) + ": " + f.Match
}
