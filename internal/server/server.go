package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/tracepoint/tracepoint/internal/ai"
	"github.com/tracepoint/tracepoint/internal/compliance"
	"github.com/tracepoint/tracepoint/internal/model"
	"github.com/tracepoint/tracepoint/internal/scan"
)

// DefaultScanTimeout bounds a single HTTP-triggered scan.
const DefaultScanTimeout = 30 * time.Second

var (
	// ErrNoOrchestrator is returned when New is called without an orchestrator.
	ErrNoOrchestrator = errors.New("server: orchestrator must not be nil")

	// errNoReport signals that no scan has been run for the requested target.
	errNoReport = errors.New("no previous scans for this target")

	// errBadRequest wraps client-side input errors.
	errBadRequest = errors.New("bad request")
)

// Server handles scan requests over HTTP and caches results in memory
// so reports and notices can be fetched after the scan completes.
type Server struct {
	orchestrator *scan.Orchestrator
	analyst      *ai.Analyst
	logger       *slog.Logger
	scanTimeout  time.Duration

	mu      sync.RWMutex
	results map[string]*model.ScanResult
}

// Option configures a Server.
type Option func(*Server)

// WithAnalyst enables the AI summary endpoint.
func WithAnalyst(analyst *ai.Analyst) Option {
	return func(s *Server) {
		s.analyst = analyst
	}
}

// WithLogger sets the Server's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithScanTimeout bounds each scan triggered over HTTP.
func WithScanTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.scanTimeout = timeout
	}
}

// New creates a Server around the given orchestrator.
func New(orchestrator *scan.Orchestrator, opts ...Option) (*Server, error) {
	if orchestrator == nil {
		return nil, ErrNoOrchestrator
	}

	s := &Server{
		orchestrator: orchestrator,
		scanTimeout:  DefaultScanTimeout,
		results:      make(map[string]*model.ScanResult),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s, nil
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.RealIP)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Route("/api/v1", func(rt chi.Router) {
		rt.Post("/scan", s.wrap(s.handleScan))
		rt.Get("/report/{target}", s.wrap(s.handleReport))
		rt.Get("/report/{target}/notice", s.wrap(s.handleNotice))
		rt.Get("/report/{target}/summary", s.wrap(s.handleSummary))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap translates handler errors into HTTP status codes.
func (s *Server) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		switch {
		case errors.Is(err, errNoReport):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, errBadRequest), errors.Is(err, scan.ErrEmptyIdentifier):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusGatewayTimeout, err)
		default:
			s.logger.Error("request failed", "path", req.URL.Path, "error", err)
			writeError(w, http.StatusInternalServerError, err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// scanRequest is the POST /api/v1/scan body.
type scanRequest struct {
	Identifier   string `json:"identifier"`
	UsernameHint string `json:"username_hint"`
}

// handleScan runs a scan synchronously and returns the result.
// Demo identifiers short-circuit to the canned walkthrough result.
func (s *Server) handleScan(w http.ResponseWriter, req *http.Request) error {
	var body scanRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if body.Identifier == "" {
		return fmt.Errorf("%w: identifier is required", errBadRequest)
	}

	scanID := uuid.NewString()
	s.logger.Info("scan requested", "scan_id", scanID)

	result, demo := scan.DemoResult(body.Identifier)
	if !demo {
		ctx, cancel := context.WithTimeout(req.Context(), s.scanTimeout)
		defer cancel()

		var err error
		result, err = s.orchestrator.Scan(ctx, body.Identifier, body.UsernameHint)
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.results[result.Target] = result
	s.mu.Unlock()

	s.logger.Info("scan completed",
		"scan_id", scanID,
		"exposures", result.TotalLeaks,
		"risk_score", result.RiskScore,
		"demo", demo,
	)

	w.Header().Set("X-Scan-Id", scanID)
	return writeJSON(w, result)
}

// handleReport returns the cached result for a previously scanned target.
func (s *Server) handleReport(w http.ResponseWriter, req *http.Request) error {
	result, err := s.cachedResult(chi.URLParam(req, "target"))
	if err != nil {
		return err
	}
	return writeJSON(w, result)
}

// handleNotice renders DPDP removal notices for every exposure of a
// cached result, one notice per platform, as a single Markdown document.
func (s *Server) handleNotice(w http.ResponseWriter, req *http.Request) error {
	result, err := s.cachedResult(chi.URLParam(req, "target"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, exposure := range result.Exposures {
		records := make([]compliance.Record, 0, len(exposure.PIIFound))
		seen := make(map[string]bool, len(exposure.PIIFound))
		for _, label := range exposure.PIIFound {
			record := compliance.RecordForLabel(label)
			if seen[record.Section] {
				continue
			}
			seen[record.Section] = true
			records = append(records, record)
		}

		notice := compliance.Notice{
			UserName: result.Target,
			Platform: exposure.Platform,
			Records:  records,
			Date:     time.Now(),
		}
		if err := notice.Write(&buf); err != nil {
			return err
		}
		buf.WriteString("\n\n")
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, err = w.Write(buf.Bytes())
	return err
}

// handleSummary returns the AI analyst narrative for a cached result.
func (s *Server) handleSummary(w http.ResponseWriter, req *http.Request) error {
	if s.analyst == nil {
		writeError(w, http.StatusServiceUnavailable,
			errors.New("analyst summaries are not configured"))
		return nil
	}

	result, err := s.cachedResult(chi.URLParam(req, "target"))
	if err != nil {
		return err
	}

	summary, err := s.analyst.Summarize(req.Context(), result)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"target": result.Target, "summary": summary})
}

// cachedResult looks up a stored result by the normalized form of the
// given target, so lookups match no matter how the caller cased it.
func (s *Server) cachedResult(target string) (*model.ScanResult, error) {
	normalized := model.NewTarget(target, "").Identifier

	s.mu.RLock()
	result, ok := s.results[normalized]
	s.mu.RUnlock()
	if !ok {
		return nil, errNoReport
	}
	return result, nil
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.scanTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
