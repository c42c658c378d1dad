package compliance

import (
	"strings"

	"github.com/tracepoint/tracepoint/internal/model"
)

// Record is a regulatory-violation citation derived from a finding.
// Section is the unique key: one call to Map never emits two records
// with the same section.
type Record struct {
	// Section is the DPDP Act citation, e.g. "Section 8(5)".
	Section string `json:"section"`

	// Violation is the short name of the violated obligation.
	Violation string `json:"violation"`

	// Clause explains the obligation in plain language.
	Clause string `json:"clause"`

	// Penalty describes the penalty range for the violation.
	Penalty string `json:"penalty"`

	// DataType is the finding category that triggered the record.
	DataType string `json:"data_type"`

	// MaskedValue is the matched substring with its middle masked.
	// The raw match never leaves the scan pipeline.
	MaskedValue string `json:"masked_value"`
}

// GenericNote is appended to exposures whose description matched no
// pattern. The exposure still represents a potential DPDP-relevant
// leak even when its contents are unknown.
const GenericNote = "DPDP Audit: Potential Exposure"

// violationTable maps sensitive-data categories to DPDP Act sections.
//
// Design decision: We keep this as an in-code table rather than a data
// file because legal citations change through code review, not runtime
// configuration, and the table doubles as documentation of which
// categories the scanner treats as legally significant.
var violationTable = map[model.Category]Record{
	model.CategoryAadhaar: {
		Section:   "Section 8(5)",
		Violation: "Breach of Security Safeguards",
		Clause:    "Fiduciaries must protect personal data in their custody by taking reasonable security safeguards.",
		Penalty:   "Up to ₹250 Crores",
	},
	model.CategoryPANCard: {
		Section:   "Section 11",
		Violation: "Right to Data Portability/Erasure",
		Clause:    "Financial data exposed without active consent or purpose limitation.",
		Penalty:   "Significant administrative fines",
	},
	model.CategoryPrivateKey: {
		Section:   "Section 8(1)",
		Violation: "General Obligation of Data Fiduciary",
		Clause:    "Failure to ensure the accuracy and safety of sensitive security credentials.",
		Penalty:   "Case-specific high-impact fines",
	},
}

// defaultViolation covers categories absent from the table, such as
// plain email addresses, phone numbers, and general exposures.
var defaultViolation = Record{
	Section:   "Section 12",
	Violation: "Right to Correction and Erasure",
	Clause:    "Data principal has the right to seek erasure of data that is no longer necessary.",
	Penalty:   "Standard compliance penalties",
}

// Map converts findings into deduplicated violation records.
//
// The function is pure and order-preserving: findings are visited in
// input order, each category is looked up in the static table (falling
// back to the default record), and a record is emitted only the first
// time its section appears in this call. Deduplication is scoped to a
// single call, which in practice means a single exposure; the same
// section may legitimately appear across exposures of one scan.
func Map(findings []model.Finding) []Record {
	if len(findings) == 0 {
		return []Record{}
	}

	records := make([]Record, 0, len(findings))
	seen := make(map[string]bool, len(findings))

	for _, finding := range findings {
		record, ok := violationTable[finding.Category]
		if !ok {
			record = defaultViolation
		}
		if seen[record.Section] {
			continue
		}
		seen[record.Section] = true

		record.DataType = string(finding.Category)
		record.MaskedValue = MaskValue(finding.Match)
		records = append(records, record)
	}

	return records
}

// RecordForLabel rebuilds a violation record from a stored PII label.
// Labels produced by the scan pipeline have the form "CATEGORY: value";
// anything else is treated as a bare data type with no matched value.
// This lets removal notices be generated from a persisted result
// without re-running detection.
func RecordForLabel(label string) Record {
	dataType := label
	value := ""
	if i := strings.Index(label, ": "); i >= 0 {
		dataType = label[:i]
		value = label[i+2:]
	}

	record, ok := violationTable[model.Category(dataType)]
	if !ok {
		record = defaultViolation
	}
	record.DataType = dataType
	record.MaskedValue = MaskValue(value)

	return record
}

// MaskValue redacts the middle of a sensitive value, keeping at most
// the first and last two runes. Short values are fully masked.
func MaskValue(value string) string {
	runes := []rune(value)
	if len(runes) == 0 {
		return ""
	}
	if len(runes) <= 6 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-2:])
}
