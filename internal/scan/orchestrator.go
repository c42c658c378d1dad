package scan

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tracepoint/tracepoint/internal/compliance"
	"github.com/tracepoint/tracepoint/internal/detect"
	"github.com/tracepoint/tracepoint/internal/model"
	"github.com/tracepoint/tracepoint/internal/risk"
	"github.com/tracepoint/tracepoint/internal/source"
)

var (
	// ErrEmptyIdentifier means the caller submitted a blank identifier.
	ErrEmptyIdentifier = errors.New("scan: identifier is empty")

	// ErrNoDetector means the orchestrator was built without a detector.
	ErrNoDetector = errors.New("scan: detector is nil")

	// ErrNoAdapters means the orchestrator was built without sources.
	ErrNoAdapters = errors.New("scan: no source adapters configured")
)

// Orchestrator runs one scan at a time over a fixed adapter set.
// It holds no per-scan state, so a single Orchestrator is safe for
// concurrent scans of different identifiers.
type Orchestrator struct {
	detector *detect.Detector
	adapters []source.Adapter
	logger   *slog.Logger
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the orchestrator's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// New creates an Orchestrator over the given detector and adapters.
// The adapter slice order is the order exposures appear in results.
func New(detector *detect.Detector, adapters []source.Adapter, opts ...Option) (*Orchestrator, error) {
	if detector == nil {
		return nil, ErrNoDetector
	}
	if len(adapters) == 0 {
		return nil, ErrNoAdapters
	}

	o := &Orchestrator{
		detector: detector,
		adapters: adapters,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o, nil
}

// Scan investigates the identifier across all applicable sources and
// returns the consolidated, scored result.
//
// Individual source failures are absorbed: they are logged and the
// scan continues with whatever the other sources reported. Even a scan
// where every source failed returns a well-formed empty result, not an
// error. The only error conditions are an empty identifier and caller
// cancellation.
func (o *Orchestrator) Scan(ctx context.Context, identifier, usernameHint string) (*model.ScanResult, error) {
	target := model.NewTarget(identifier, usernameHint)
	if target.Identifier == "" {
		return nil, ErrEmptyIdentifier
	}

	applicable := make([]source.Adapter, 0, len(o.adapters))
	for _, adapter := range o.adapters {
		if adapter.Accepts(target.Kind) {
			applicable = append(applicable, adapter)
		}
	}

	o.logger.Info("scan started",
		"target", target.Identifier,
		"kind", target.Kind.String(),
		"sources", len(applicable))

	outcomes := o.fanOut(ctx, target, applicable)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := model.NewScanResult(target)
	findings := make([]model.Finding, 0)

	for i, outcome := range outcomes {
		name := applicable[i].Name()
		switch outcome.Status {
		case source.StatusFound:
			exposure := outcome.Exposure
			findings = append(findings, o.enrich(exposure)...)
			result.Exposures = append(result.Exposures, *exposure)
		case source.StatusNotFound:
			o.logger.Debug("nothing found", "source", name)
		case source.StatusFailed:
			o.logger.Warn("source query failed", "source", name, "error", outcome.Err)
		}
	}

	result.TotalLeaks = len(result.Exposures)
	result.RiskScore = risk.Score(findings)

	o.logger.Info("scan finished",
		"target", target.Identifier,
		"exposures", result.TotalLeaks,
		"risk_score", result.RiskScore)

	return result, nil
}

// fanOut queries every applicable adapter concurrently and returns
// their outcomes indexed by adapter position.
//
// This is a join-all barrier, not a race: one adapter's failure never
// cancels its siblings, and fanOut does not return until every query
// has resolved. Each goroutine writes only its own slice slot, so no
// locking is needed.
func (o *Orchestrator) fanOut(ctx context.Context, target model.Target, adapters []source.Adapter) []source.Outcome {
	outcomes := make([]source.Outcome, len(adapters))

	var g errgroup.Group
	for i, adapter := range adapters {
		g.Go(func() error {
			outcomes[i] = adapter.Query(ctx, target)
			return nil
		})
	}
	// Goroutines always return nil; Wait is purely the barrier.
	_ = g.Wait()

	return outcomes
}

// enrich runs the detector over the exposure's description and folds
// the output back into the exposure. It returns the findings that feed
// the risk scorer.
//
// An exposure whose text matched nothing still yields one synthetic
// low-confidence finding: the source says something leaked even if we
// cannot tell what, and that is itself risk-bearing.
func (o *Orchestrator) enrich(exposure *model.Exposure) []model.Finding {
	findings := o.detector.Scan(exposure.Description)
	if len(findings) == 0 {
		exposure.AddComplianceNote(compliance.GenericNote)
		return []model.Finding{{
			Category:   model.CategoryGeneralExposure,
			Confidence: model.ConfidenceLow,
		}}
	}

	// Concrete sensitive data in the open overrides whatever severity
	// the source guessed.
	exposure.RiskLevel = model.RiskCritical

	for _, finding := range findings {
		exposure.AddPII(finding.Label())
	}
	for _, record := range compliance.Map(findings) {
		exposure.AddComplianceNote(record.Section)
	}

	return findings
}
