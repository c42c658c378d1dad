package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tracepoint/tracepoint/internal/model"
	"golang.org/x/sync/errgroup"
)

// githubTimeout is generous because the adapter issues two searches.
const githubTimeout = 7 * time.Second

// errRateLimited marks a 403/429 response from the GitHub API.
// Unauthenticated clients hit the 60 requests/hour ceiling quickly.
var errRateLimited = errors.New("rate limited")

// GitHub searches public commits and code for the identifier.
// It accepts both emails and handles: commit-author search keys on the
// email while code search matches any string.
type GitHub struct {
	settings

	// token is the optional API token. Without it the adapter runs
	// unauthenticated against much tighter rate limits.
	token string
}

// NewGitHub creates the GitHub adapter.
func NewGitHub(token string, opts ...Option) *GitHub {
	return &GitHub{
		settings: newSettings("https://api.github.com", githubTimeout, opts...),
		token:    token,
	}
}

// Name returns the source's display name.
func (g *GitHub) Name() string { return "GitHub" }

// Accepts reports that GitHub handles both identifier shapes.
func (g *GitHub) Accepts(model.IdentifierKind) bool { return true }

// Query searches commit metadata and code content concurrently and
// merges both results into one exposure.
func (g *GitHub) Query(ctx context.Context, target model.Target) Outcome {
	// Sentinel targets never hit the live API; they must produce the
	// same exposure on every run.
	if g.policy.MatchesSentinel(target) {
		g.logger.Info("degraded mode", "source", g.Name(), "reason", "sentinel")
		return Found(g.simulated(target))
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var commitCount, codeCount int
	var commitErr, codeErr error

	// Both searches run concurrently; each failure is recorded rather
	// than returned so one failing search never cancels the other.
	var eg errgroup.Group
	eg.Go(func() error {
		commitCount, commitErr = g.searchCount(ctx, "/search/commits?q="+url.QueryEscape("author-email:"+target.Identifier))
		return nil
	})
	eg.Go(func() error {
		codeCount, codeErr = g.searchCount(ctx, "/search/code?q="+url.QueryEscape(target.Identifier))
		return nil
	})
	_ = eg.Wait() //nolint:errcheck // Closures always return nil.

	if commitCount > 0 || codeCount > 0 {
		return Found(g.exposure(target, commitCount, codeCount))
	}

	rateLimited := errors.Is(commitErr, errRateLimited) || errors.Is(codeErr, errRateLimited)
	if g.policy.Triggered(target, false, rateLimited) {
		g.logger.Warn("degraded mode", "source", g.Name(), "reason", "rate_limited")
		return Found(g.simulated(target))
	}

	if commitErr != nil || codeErr != nil {
		return Failed(errors.Join(commitErr, codeErr))
	}

	// Both searches completed and found nothing.
	return NotFound()
}

// searchCount runs one search API call and returns total_count.
func (g *GitHub) searchCount(ctx context.Context, path string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var body struct {
			TotalCount int `json:"total_count"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return 0, fmt.Errorf("decode search response: %w", err)
		}
		return body.TotalCount, nil
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return 0, errRateLimited
	default:
		return 0, fmt.Errorf("github search returned status %d", resp.StatusCode)
	}
}

// exposure builds the live exposure from the two search counts.
func (g *GitHub) exposure(target model.Target, commitCount, codeCount int) *model.Exposure {
	exposure := &model.Exposure{
		Platform:  g.Name(),
		RiskLevel: model.RiskLow,
		URL:       "https://github.com/search?q=" + url.QueryEscape(target.Identifier) + "&type=commits",
	}

	var parts []string
	if commitCount > 0 {
		exposure.AddPII("Email (in Commit Metadata)")
		parts = append(parts, fmt.Sprintf("Found %d public commits exposing this email.", commitCount))
		exposure.RiskLevel = model.RiskMedium
	}
	if codeCount > 0 {
		// Code hits outrank commit metadata: the identifier is
		// embedded in file contents anyone can clone.
		exposure.AddPII("Hardcoded Email in Source Code")
		parts = append(parts, fmt.Sprintf("Identifier hardcoded in %d public repositories.", codeCount))
		exposure.RiskLevel = model.RiskHigh
	}
	exposure.Description = strings.Join(parts, " | ")

	return exposure
}

// simulated is the degraded-mode payload. It is constant apart from
// the search URL so demo scans serialize identically on every run.
func (g *GitHub) simulated(target model.Target) *model.Exposure {
	return &model.Exposure{
		Platform:    "GitHub (Simulated)",
		RiskLevel:   model.RiskHigh,
		Description: "Exposed API keys and personal email found in 'test-repo' commits.",
		PIIFound:    []string{"Email", "AWS Access Key (Simulated)", "Commit History"},
		URL:         "https://github.com/search?q=" + url.QueryEscape(target.Identifier) + "&type=commits",
	}
}
