package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tracepoint/tracepoint/internal/model"
)

const redditTimeout = 5 * time.Second

// Reddit checks whether the target's username exists on Reddit and
// gathers public footprint metadata. People commonly reuse the same
// handle across platforms, so a hit here is a correlation signal even
// without leaked data.
//
// This is the one handle-only adapter: the orchestrator passes the
// username hint, never a full email.
type Reddit struct {
	settings
}

// NewReddit creates the Reddit adapter.
func NewReddit(opts ...Option) *Reddit {
	return &Reddit{
		settings: newSettings("https://www.reddit.com", redditTimeout, opts...),
	}
}

// Name returns the source's display name.
func (r *Reddit) Name() string { return "Reddit" }

// Accepts reports that Reddit handles only handle-shaped identifiers.
func (r *Reddit) Accepts(kind model.IdentifierKind) bool {
	return kind == model.KindHandle
}

// Query fetches the user's about page via the JSON API.
func (r *Reddit) Query(ctx context.Context, target model.Target) Outcome {
	if r.policy.MatchesSentinel(target) {
		r.logger.Info("degraded mode", "source", r.Name(), "reason", "sentinel")
		return Found(r.simulated(target))
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	endpoint := r.baseURL + "/user/" + url.PathEscape(target.Username) + "/about.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Failed(err)
	}
	// Reddit rejects default client User-Agents outright; a custom
	// descriptive one is mandatory.
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return Failed(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body struct {
			Data struct {
				IsSuspended bool `json:"is_suspended"`
				LinkKarma   int  `json:"link_karma"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return Failed(fmt.Errorf("decode about response: %w", err))
		}
		return Found(r.exposure(target, body.Data.IsSuspended, body.Data.LinkKarma))
	case http.StatusNotFound:
		// The username does not exist: positive absence.
		return NotFound()
	default:
		return Failed(fmt.Errorf("reddit returned status %d", resp.StatusCode))
	}
}

// exposure builds the live exposure from the profile metadata.
func (r *Reddit) exposure(target model.Target, suspended bool, karma int) *model.Exposure {
	exposure := &model.Exposure{
		Platform: r.Name(),
		PIIFound: []string{"Username", "Activity Metadata"},
		URL:      "https://www.reddit.com/user/" + url.PathEscape(target.Username),
	}

	if suspended {
		exposure.RiskLevel = model.RiskLow
		exposure.Description = fmt.Sprintf("Reddit account '%s' found but is currently suspended.", target.Username)
	} else {
		exposure.RiskLevel = model.RiskMedium
		exposure.Description = fmt.Sprintf(
			"Active Reddit profile found. Account has %d karma. High chance of cross-platform username reuse.",
			karma,
		)
	}

	return exposure
}

// simulated is the degraded-mode payload.
func (r *Reddit) simulated(target model.Target) *model.Exposure {
	return &model.Exposure{
		Platform:    "Reddit (Simulated)",
		RiskLevel:   model.RiskMedium,
		Description: "Profile found. User has posted in r/cybersecurity and r/hyderabad. Possible location leakage.",
		PIIFound:    []string{"Username", "Geographic Location (Inferred)"},
		URL:         "https://www.reddit.com/user/" + url.PathEscape(target.Username),
	}
}
