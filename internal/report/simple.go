package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/tracepoint/tracepoint/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no exposures are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the scan result in human-readable format.
func (w *SimpleWriter) Write(result *model.ScanResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeSummary(&sb, result)
	w.writeExposures(&sb, result)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.ScanResult) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        TRACEPOINT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Target:      %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Exposures:   %d\n", result.TotalLeaks))
	sb.WriteString(fmt.Sprintf("Risk Score:  %d / 100\n", result.RiskScore))
	sb.WriteString("\n")
}

// writeSummary writes the severity summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, result *model.ScanResult) {
	counts := countSeverities(result)

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SEVERITY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  CRITICAL: %d\n", counts.critical))
	sb.WriteString(fmt.Sprintf("  HIGH:     %d\n", counts.high))
	sb.WriteString(fmt.Sprintf("  MEDIUM:   %d\n", counts.medium))
	sb.WriteString(fmt.Sprintf("  LOW:      %d\n", counts.low))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  TOTAL:    %d exposures\n", result.TotalLeaks))
	sb.WriteString("\n")
}

// writeExposures writes each source's exposure with its details.
func (w *SimpleWriter) writeExposures(sb *strings.Builder, result *model.ScanResult) {
	if len(result.Exposures) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("EXPOSURES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(result.Exposures) == 0 {
		sb.WriteString("  No exposures found\n\n")
		return
	}

	for _, exposure := range result.Exposures {
		indicator := w.getRiskIndicator(exposure.RiskLevel)
		sb.WriteString(fmt.Sprintf("[%s] %s (%s)\n", indicator, exposure.Platform, exposure.RiskLevel.String()))
		sb.WriteString(fmt.Sprintf("  %s\n", exposure.Description))

		if len(exposure.PIIFound) > 0 {
			sb.WriteString(fmt.Sprintf("  Leaked: %s\n", strings.Join(exposure.PIIFound, ", ")))
		}
		if exposure.URL != "" {
			sb.WriteString(fmt.Sprintf("  Reference: %s\n", exposure.URL))
		}
		if w.verbose && len(exposure.ComplianceNotes) > 0 {
			sb.WriteString(fmt.Sprintf("  Compliance: %s\n", strings.Join(exposure.ComplianceNotes, "; ")))
		}
		sb.WriteString("\n")
	}
}

// getRiskIndicator returns a visual indicator for the risk level.
func (w *SimpleWriter) getRiskIndicator(level model.RiskLevel) string {
	switch level {
	case model.RiskCritical:
		return "!!!"
	case model.RiskHigh:
		return "!!"
	case model.RiskMedium:
		return "!"
	case model.RiskLow:
		return "-"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by tracepoint\n")
	sb.WriteString("https://github.com/tracepoint/tracepoint\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
