package scan

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tracepoint/tracepoint/internal/compliance"
	"github.com/tracepoint/tracepoint/internal/detect"
	"github.com/tracepoint/tracepoint/internal/model"
	"github.com/tracepoint/tracepoint/internal/risk"
	"github.com/tracepoint/tracepoint/internal/source"
)

// fakeAdapter is a scripted source for orchestrator tests.
type fakeAdapter struct {
	name    string
	kinds   []model.IdentifierKind
	outcome source.Outcome
	delay   time.Duration
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Accepts(kind model.IdentifierKind) bool {
	for _, k := range f.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (f *fakeAdapter) Query(ctx context.Context, _ model.Target) source.Outcome {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return source.Failed(ctx.Err())
		}
	}

	// Enrichment mutates exposures, so hand out a copy each call.
	outcome := f.outcome
	if outcome.Exposure != nil {
		exposure := *outcome.Exposure
		outcome.Exposure = &exposure
	}
	return outcome
}

func bothKinds() []model.IdentifierKind {
	return []model.IdentifierKind{model.KindEmail, model.KindHandle}
}

func found(platform, description string) source.Outcome {
	return source.Found(&model.Exposure{
		Platform:    platform,
		RiskLevel:   model.RiskMedium,
		Description: description,
	})
}

func newTestOrchestrator(t *testing.T, adapters ...source.Adapter) *Orchestrator {
	t.Helper()

	detector, err := detect.NewDetector()
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}
	orchestrator, err := New(detector, adapters)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return orchestrator
}

// TestNewValidation tests the construction error paths.
func TestNewValidation(t *testing.T) {
	t.Parallel()

	detector, err := detect.NewDetector()
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}

	if _, err := New(nil, []source.Adapter{&fakeAdapter{}}); !errors.Is(err, ErrNoDetector) {
		t.Errorf("expected ErrNoDetector, got %v", err)
	}
	if _, err := New(detector, nil); !errors.Is(err, ErrNoAdapters) {
		t.Errorf("expected ErrNoAdapters, got %v", err)
	}
}

// TestScanEmptyIdentifier tests that blank input is rejected before
// any adapter runs.
func TestScanEmptyIdentifier(t *testing.T) {
	t.Parallel()

	orchestrator := newTestOrchestrator(t, &fakeAdapter{name: "a", kinds: bothKinds()})

	if _, err := orchestrator.Scan(context.Background(), "   ", ""); !errors.Is(err, ErrEmptyIdentifier) {
		t.Errorf("expected ErrEmptyIdentifier, got %v", err)
	}
}

// TestScanDeclarationOrder tests that exposures appear in adapter
// declaration order even when completion order is reversed.
func TestScanDeclarationOrder(t *testing.T) {
	t.Parallel()

	orchestrator := newTestOrchestrator(t,
		&fakeAdapter{name: "slow", kinds: bothKinds(), delay: 80 * time.Millisecond, outcome: found("Slow", "nothing concrete")},
		&fakeAdapter{name: "fast", kinds: bothKinds(), outcome: found("Fast", "nothing concrete")},
	)

	result, err := orchestrator.Scan(context.Background(), "jane@example.com", "")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(result.Exposures) != 2 {
		t.Fatalf("got %d exposures, expected 2", len(result.Exposures))
	}
	if result.Exposures[0].Platform != "Slow" || result.Exposures[1].Platform != "Fast" {
		t.Errorf("exposures out of declaration order: %s, %s",
			result.Exposures[0].Platform, result.Exposures[1].Platform)
	}
}

// TestScanAbsorbsFailures tests that NotFound and Failed outcomes are
// dropped without affecting the rest of the scan.
func TestScanAbsorbsFailures(t *testing.T) {
	t.Parallel()

	orchestrator := newTestOrchestrator(t,
		&fakeAdapter{name: "down", kinds: bothKinds(), outcome: source.Failed(errors.New("boom"))},
		&fakeAdapter{name: "clean", kinds: bothKinds(), outcome: source.NotFound()},
		&fakeAdapter{name: "hit", kinds: bothKinds(), outcome: found("Hit", "nothing concrete")},
	)

	result, err := orchestrator.Scan(context.Background(), "jane@example.com", "")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if result.TotalLeaks != 1 || len(result.Exposures) != 1 {
		t.Fatalf("TotalLeaks = %d, exposures = %d, expected 1 and 1", result.TotalLeaks, len(result.Exposures))
	}
	if result.Exposures[0].Platform != "Hit" {
		t.Errorf("Platform = %q, expected Hit", result.Exposures[0].Platform)
	}
}

// TestScanAllMissed tests the well-formed empty result when every
// source failed or found nothing.
func TestScanAllMissed(t *testing.T) {
	t.Parallel()

	orchestrator := newTestOrchestrator(t,
		&fakeAdapter{name: "down", kinds: bothKinds(), outcome: source.Failed(errors.New("boom"))},
		&fakeAdapter{name: "clean", kinds: bothKinds(), outcome: source.NotFound()},
	)

	result, err := orchestrator.Scan(context.Background(), "jane@example.com", "")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if result.TotalLeaks != 0 || result.RiskScore != 0 {
		t.Errorf("got leaks=%d score=%d, expected both 0", result.TotalLeaks, result.RiskScore)
	}
	if result.Exposures == nil || len(result.Exposures) != 0 {
		t.Errorf("Exposures = %#v, expected non-nil empty slice", result.Exposures)
	}
}

// TestScanShapeFiltering tests that handle-only adapters are skipped
// for email targets.
func TestScanShapeFiltering(t *testing.T) {
	t.Parallel()

	orchestrator := newTestOrchestrator(t,
		&fakeAdapter{name: "handleOnly", kinds: []model.IdentifierKind{model.KindHandle}, outcome: found("HandleOnly", "x")},
		&fakeAdapter{name: "both", kinds: bothKinds(), outcome: found("Both", "x")},
	)

	result, err := orchestrator.Scan(context.Background(), "jane@example.com", "janedoe")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(result.Exposures) != 1 || result.Exposures[0].Platform != "Both" {
		t.Errorf("expected only the shape-matching adapter to run, got %#v", result.Exposures)
	}
}

// TestScanEnrichmentWithMatches tests that concrete pattern matches
// force CRITICAL, populate pii labels, and attach violation sections.
func TestScanEnrichmentWithMatches(t *testing.T) {
	t.Parallel()

	orchestrator := newTestOrchestrator(t,
		&fakeAdapter{
			name:    "leaky",
			kinds:   bothKinds(),
			outcome: found("Leaky", "Dumped PAN ABCDE1234F and phone 9876543210 in the open."),
		},
	)

	result, err := orchestrator.Scan(context.Background(), "jane@example.com", "")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(result.Exposures) != 1 {
		t.Fatalf("got %d exposures, expected 1", len(result.Exposures))
	}

	exposure := result.Exposures[0]
	if exposure.RiskLevel != model.RiskCritical {
		t.Errorf("RiskLevel = %v, expected CRITICAL after concrete matches", exposure.RiskLevel)
	}

	expectedPII := []string{"PAN_CARD: ABCDE1234F", "PHONE_NUMBER: 9876543210"}
	if !reflect.DeepEqual(exposure.PIIFound, expectedPII) {
		t.Errorf("PIIFound = %v, expected %v", exposure.PIIFound, expectedPII)
	}

	expectedNotes := []string{"Section 11", "Section 12"}
	if !reflect.DeepEqual(exposure.ComplianceNotes, expectedNotes) {
		t.Errorf("ComplianceNotes = %v, expected %v", exposure.ComplianceNotes, expectedNotes)
	}

	if result.RiskScore != 40 {
		t.Errorf("RiskScore = %d, expected 40 for two findings", result.RiskScore)
	}
}

// TestScanEnrichmentWithoutMatches tests the synthetic baseline
// finding: risk level untouched, generic note, 20 points.
func TestScanEnrichmentWithoutMatches(t *testing.T) {
	t.Parallel()

	orchestrator := newTestOrchestrator(t,
		&fakeAdapter{name: "vague", kinds: bothKinds(), outcome: found("Vague", "Something leaked somewhere.")},
	)

	result, err := orchestrator.Scan(context.Background(), "jane@example.com", "")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	exposure := result.Exposures[0]
	if exposure.RiskLevel != model.RiskMedium {
		t.Errorf("RiskLevel = %v, expected the adapter's MEDIUM untouched", exposure.RiskLevel)
	}
	if len(exposure.PIIFound) != 0 {
		t.Errorf("PIIFound = %v, expected none for a synthetic finding", exposure.PIIFound)
	}
	if !reflect.DeepEqual(exposure.ComplianceNotes, []string{compliance.GenericNote}) {
		t.Errorf("ComplianceNotes = %v, expected just the generic note", exposure.ComplianceNotes)
	}
	if result.RiskScore != 20 {
		t.Errorf("RiskScore = %d, expected the 20-point baseline", result.RiskScore)
	}
}

// TestScanJoinAllLatency tests that concurrent adapters are bounded by
// the slowest one, not the sum of their delays.
func TestScanJoinAllLatency(t *testing.T) {
	t.Parallel()

	orchestrator := newTestOrchestrator(t,
		&fakeAdapter{name: "a", kinds: bothKinds(), delay: 100 * time.Millisecond, outcome: source.NotFound()},
		&fakeAdapter{name: "b", kinds: bothKinds(), delay: 100 * time.Millisecond, outcome: source.NotFound()},
		&fakeAdapter{name: "c", kinds: bothKinds(), delay: 100 * time.Millisecond, outcome: source.NotFound()},
	)

	start := time.Now()
	if _, err := orchestrator.Scan(context.Background(), "jane@example.com", ""); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Errorf("scan took %v, expected roughly the max adapter delay", elapsed)
	}
}

// TestScanCancellation tests that caller aborts surface as an error
// after all in-flight queries resolve.
func TestScanCancellation(t *testing.T) {
	t.Parallel()

	orchestrator := newTestOrchestrator(t,
		&fakeAdapter{name: "slow", kinds: bothKinds(), delay: 5 * time.Second, outcome: found("Slow", "x")},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := orchestrator.Scan(ctx, "jane@example.com", "")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

// TestDemoResultDeterminism tests that demo seeding is stable and
// scoped to the exact demo identifiers.
func TestDemoResultDeterminism(t *testing.T) {
	t.Parallel()

	first, ok := DemoResult("demo@tracepoint.com")
	if !ok {
		t.Fatal("expected the demo email to seed a result")
	}
	second, _ := DemoResult("Demo@Tracepoint.COM")
	if !reflect.DeepEqual(first, second) {
		t.Error("demo results must be identical across runs and casings")
	}

	if first.TotalLeaks != 3 || len(first.Exposures) != 3 {
		t.Errorf("TotalLeaks = %d with %d exposures, expected 3 and 3", first.TotalLeaks, len(first.Exposures))
	}
	if first.RiskScore != 60 {
		t.Errorf("RiskScore = %d, expected 60", first.RiskScore)
	}
	// The canned score must track the scorer, not a copy of its weight.
	if first.RiskScore != len(first.Exposures)*risk.FindingWeight {
		t.Errorf("RiskScore = %d, expected one finding weight per exposure", first.RiskScore)
	}
	for _, exposure := range first.Exposures {
		if !reflect.DeepEqual(exposure.ComplianceNotes, []string{compliance.GenericNote}) {
			t.Errorf("%s notes = %v, expected generic note", exposure.Platform, exposure.ComplianceNotes)
		}
	}

	handle, ok := DemoResult("demo_user")
	if !ok {
		t.Fatal("expected the demo handle to seed a result")
	}
	if handle.Exposures[2].Platform != "Reddit (Simulated)" {
		t.Errorf("handle demo should include Reddit, got %q", handle.Exposures[2].Platform)
	}

	if _, ok := DemoResult("jane@example.com"); ok {
		t.Error("non-demo identifiers must not seed results")
	}
}
