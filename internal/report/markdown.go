package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/tracepoint/tracepoint/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the scan result in Markdown format.
func (w *MarkdownWriter) Write(result *model.ScanResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeSummary(md, result)
	w.writeExposures(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.ScanResult) {
	md.H1("Tracepoint Exposure Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + result.Target + "`"},
			{"Exposures", strconv.Itoa(result.TotalLeaks)},
			{"Risk Score", strconv.Itoa(result.RiskScore) + " / 100"},
		},
	})
	md.PlainText("")
}

// writeSummary writes the severity summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, result *model.ScanResult) {
	counts := countSeverities(result)

	md.H2("Severity Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Critical", strconv.Itoa(counts.critical)},
			{"🟠 High", strconv.Itoa(counts.high)},
			{"🟡 Medium", strconv.Itoa(counts.medium)},
			{"🔵 Low", strconv.Itoa(counts.low)},
			{"**Total**", "**" + strconv.Itoa(result.TotalLeaks) + "**"},
		},
	})
	md.PlainText("")

	if result.TotalLeaks > 0 {
		w.writePieChart(md, counts)
	}

	w.writeAlert(md, result, counts)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts severityCounts) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Exposure Severity Distribution"),
		piechart.WithShowData(true),
	)

	if counts.critical > 0 {
		chart.LabelAndIntValue("Critical", uint64(counts.critical))
	}
	if counts.high > 0 {
		chart.LabelAndIntValue("High", uint64(counts.high))
	}
	if counts.medium > 0 {
		chart.LabelAndIntValue("Medium", uint64(counts.medium))
	}
	if counts.low > 0 {
		chart.LabelAndIntValue("Low", uint64(counts.low))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.ScanResult, counts severityCounts) {
	switch {
	case counts.critical > 0:
		md.Cautionf(
			"Critical exposures detected! %d source(s) report leaked sensitive data requiring immediate action.",
			counts.critical,
		)
	case counts.high > 0:
		md.Warningf(
			"High severity exposures detected. %d source(s) should be reviewed promptly.",
			counts.high,
		)
	case counts.medium > 0:
		md.Importantf(
			"Medium severity exposures found. %d source(s) may enable cross-platform correlation.",
			counts.medium,
		)
	case result.TotalLeaks > 0:
		md.Note("Only low severity exposures detected.")
	default:
		md.Tip("No public exposures detected for this identifier.")
	}
	md.PlainText("")
}

// writeExposures writes one section per reporting source.
func (w *MarkdownWriter) writeExposures(md *markdown.Markdown, result *model.ScanResult) {
	md.H2("Exposures")
	md.PlainText("")

	if len(result.Exposures) == 0 {
		md.PlainText("No exposures found.")
		md.PlainText("")
		return
	}

	for _, exposure := range result.Exposures {
		md.H3(exposure.Platform)
		md.PlainText("")

		rows := [][]string{
			{"Risk Level", exposure.RiskLevel.String()},
			{"Description", exposure.Description},
		}
		if len(exposure.PIIFound) > 0 {
			rows = append(rows, []string{"Leaked Data", strings.Join(exposure.PIIFound, ", ")})
		}
		if exposure.URL != "" {
			rows = append(rows, []string{"Reference", exposure.URL})
		}
		if len(exposure.ComplianceNotes) > 0 {
			rows = append(rows, []string{"DPDP Sections", strings.Join(exposure.ComplianceNotes, "; ")})
		}

		md.Table(markdown.TableSet{
			Header: []string{"Property", "Value"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [tracepoint](https://github.com/tracepoint/tracepoint)*")
}
