package detect

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/tracepoint/tracepoint/internal/model"
)

// PatternDef pairs a sensitive-data category with its regular
// expression source. Definitions may come from the built-in table or
// from user configuration.
type PatternDef struct {
	// Category is the category every match of this pattern produces.
	Category model.Category

	// Expr is the regular expression source. It is compiled
	// case-insensitively.
	Expr string
}

// defaultPatterns is the built-in sensitive-data pattern table.
//
// Design decision: We use an ordered slice rather than a map because
// detection order determines the order of pii_found labels in the
// final report, and that order must be reproducible run to run.
var defaultPatterns = []PatternDef{
	{
		// 12-digit Aadhaar number, spaced or contiguous. The first
		// digit is never 0 or 1 per UIDAI allocation rules.
		Category: model.CategoryAadhaar,
		Expr:     `\b[2-9][0-9]{3}\s[0-9]{4}\s[0-9]{4}\b|\b[2-9][0-9]{11}\b`,
	},
	{
		// Permanent account number: five letters, four digits, one letter.
		Category: model.CategoryPANCard,
		Expr:     `\b[A-Z]{5}[0-9]{4}[A-Z]\b`,
	},
	{
		// Indian mobile number with optional +91/91/0 prefix.
		Category: model.CategoryPhoneNumber,
		Expr:     `\b(?:\+91|91|0)?[6-9][0-9]{9}\b`,
	},
	{
		// PEM private-key blocks and common credential markers.
		Category: model.CategoryPrivateKey,
		Expr:     `-----BEGIN (?:RSA )?PRIVATE KEY-----|secret_key|api_key|passwd`,
	},
	{
		Category: model.CategoryEmail,
		Expr:     `[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`,
	},
}

// compiledPattern is a pattern ready for scanning.
type compiledPattern struct {
	category model.Category
	re       *regexp.Regexp
}

// Detector scans free text for sensitive-data patterns.
// A Detector is immutable after construction and safe for concurrent
// use by multiple scans.
type Detector struct {
	patterns []compiledPattern
	logger   *slog.Logger
}

// Option configures a Detector.
type Option func(*options)

type options struct {
	defs   []PatternDef
	logger *slog.Logger
}

// WithPatterns replaces the built-in pattern table. Used when the
// configuration file supplies custom patterns.
func WithPatterns(defs []PatternDef) Option {
	return func(o *options) {
		o.defs = defs
	}
}

// WithLogger sets the logger used to report per-pattern evaluation
// problems. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewDetector compiles the pattern table and returns a ready Detector.
//
// A compile failure is a configuration failure: the service cannot
// reason about sensitive data with a broken table, so the error is
// surfaced to the caller rather than absorbed.
func NewDetector(opts ...Option) (*Detector, error) {
	o := options{defs: defaultPatterns}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	compiled := make([]compiledPattern, 0, len(o.defs))
	for _, def := range o.defs {
		// Case-insensitivity is applied here rather than inside each
		// pattern source so table entries stay plain.
		re, err := regexp.Compile(`(?i)` + def.Expr)
		if err != nil {
			return nil, fmt.Errorf("compile pattern for category %s: %w", def.Category, err)
		}
		compiled = append(compiled, compiledPattern{category: def.Category, re: re})
	}

	return &Detector{patterns: compiled, logger: o.logger}, nil
}

// Scan applies every pattern to the text and returns one finding per
// match with HIGH confidence. Empty text yields an empty slice; Scan
// never fails. Multiple matches of the same category are all reported;
// deduplication happens downstream in the exposure's pii_found list.
func (d *Detector) Scan(text string) []model.Finding {
	if text == "" {
		return nil
	}

	findings := make([]model.Finding, 0)
	for _, p := range d.patterns {
		findings = append(findings, d.scanCategory(p, text)...)
	}
	return findings
}

// scanCategory evaluates a single pattern. A failure in one category
// must not abort the remaining categories, so any panic from pattern
// evaluation is contained here and logged.
func (d *Detector) scanCategory(p compiledPattern, text string) (findings []model.Finding) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("pattern evaluation failed",
				"category", p.category,
				"panic", r,
			)
			findings = nil
		}
	}()

	for _, match := range p.re.FindAllString(text, -1) {
		findings = append(findings, model.Finding{
			Category:   p.category,
			Match:      match,
			Confidence: model.ConfidenceHigh,
		})
	}
	return findings
}

// DefaultPatterns returns a copy of the built-in pattern table.
// Exposed so configuration loading can list or extend it.
func DefaultPatterns() []PatternDef {
	defs := make([]PatternDef, len(defaultPatterns))
	copy(defs, defaultPatterns)
	return defs
}
