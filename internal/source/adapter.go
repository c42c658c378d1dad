package source

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/tracepoint/tracepoint/internal/model"
)

// Status classifies an adapter's outcome.
type Status int

const (
	// StatusFound means the source reported an exposure.
	StatusFound Status = iota

	// StatusNotFound means the source positively confirmed absence,
	// e.g. the profile does not exist. Ambiguous results are never
	// NotFound.
	StatusNotFound

	// StatusFailed means transport failure, timeout, non-2xx status,
	// or a malformed response. Failures are local to the adapter and
	// never abort the scan.
	StatusFailed
)

// String returns a human-readable form of the status.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the single result of one adapter query within one scan.
//
// Design decision: We use a small sum-type struct rather than
// (\*Exposure, error) because a nil exposure with a nil error would be
// ambiguous between "not found" and "failed", and the orchestrator
// must treat those identically to neither (NotFound is silent,
// Failed is logged).
type Outcome struct {
	// Status classifies the outcome.
	Status Status

	// Exposure is set only when Status is StatusFound.
	Exposure *model.Exposure

	// Err is set only when Status is StatusFailed. It is logged at
	// the adapter boundary and never surfaced to the scan caller.
	Err error
}

// Found wraps an exposure into a successful outcome.
func Found(exposure *model.Exposure) Outcome {
	return Outcome{Status: StatusFound, Exposure: exposure}
}

// NotFound reports a positive absence signal.
func NotFound() Outcome {
	return Outcome{Status: StatusNotFound}
}

// Failed reports a transport-level failure.
func Failed(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err}
}

// Adapter is the capability contract every source implements.
//
// Design decision: We use an interface with N variant implementations
// rather than ad hoc query functions because the orchestrator's
// fan-out must be adapter-count-agnostic and testable with fakes, and
// because adapters carry per-source configuration (credentials,
// timeouts) that function values would have to close over invisibly.
type Adapter interface {
	// Name returns the source's display name, e.g. "GitHub".
	Name() string

	// Accepts reports whether this source can be queried with an
	// identifier of the given kind. The orchestrator only invokes
	// adapters whose accepted shape matches the classified target.
	Accepts(kind model.IdentifierKind) bool

	// Query investigates the target at this source. It enforces its
	// own timeout, never blocks past it, and never returns transport
	// errors except inside a Failed outcome. Implementations must
	// respect context cancellation.
	Query(ctx context.Context, target model.Target) Outcome
}

// settings holds the knobs shared by all concrete adapters.
type settings struct {
	client  *http.Client
	logger  *slog.Logger
	baseURL string
	timeout time.Duration
	policy  DegradedPolicy
}

// Option configures a concrete adapter.
type Option func(*settings)

// WithHTTPClient sets the HTTP client used for live queries.
// The default client has no proxy and follows redirects.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		s.client = client
	}
}

// WithLogger sets the adapter's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithBaseURL overrides the source's API base URL.
//
// Design decision: Base URLs are injectable rather than constant so
// adapter tests can point at an httptest server instead of mocking
// the transport.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) {
		s.baseURL = baseURL
	}
}

// WithTimeout overrides the adapter's per-query timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.timeout = timeout
	}
}

// WithDegradedPolicy replaces the adapter's degraded-mode policy.
func WithDegradedPolicy(policy DegradedPolicy) Option {
	return func(s *settings) {
		s.policy = policy
	}
}

// newSettings applies defaults and options for a concrete adapter.
func newSettings(baseURL string, timeout time.Duration, opts ...Option) settings {
	s := settings{
		client:  &http.Client{},
		baseURL: baseURL,
		timeout: timeout,
		policy:  NewDegradedPolicy(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// userAgent identifies the scanner in outbound requests. Service
// operators should be able to recognize scanner traffic in their logs.
const userAgent = "tracepoint/1.0 (+https://github.com/tracepoint/tracepoint)"
