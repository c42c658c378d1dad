package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tracepoint/tracepoint/internal/model"
)

const hibpTimeout = 5 * time.Second

// HIBP queries the Have I Been Pwned breached-account API.
// The API is keyed on email addresses, so this adapter is email-only;
// the orchestrator never invokes it for handles.
type HIBP struct {
	settings

	// apiKey is required for live queries. Its absence is a standing
	// degraded-mode trigger, not an error: the scanner must stay
	// demonstrable without a paid key.
	apiKey string
}

// NewHIBP creates the Have I Been Pwned adapter.
func NewHIBP(apiKey string, opts ...Option) *HIBP {
	return &HIBP{
		settings: newSettings("https://haveibeenpwned.com", hibpTimeout, opts...),
		apiKey:   apiKey,
	}
}

// Name returns the source's display name.
func (h *HIBP) Name() string { return "HaveIBeenPwned" }

// Accepts reports that HIBP handles only email-shaped identifiers.
func (h *HIBP) Accepts(kind model.IdentifierKind) bool {
	return kind == model.KindEmail
}

// Query looks up the email in known breach corpora.
func (h *HIBP) Query(ctx context.Context, target model.Target) Outcome {
	if h.policy.Triggered(target, h.apiKey == "", false) {
		h.logger.Info("degraded mode", "source", h.Name(), "reason", "no credential or sentinel")
		return Found(h.simulated())
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	endpoint := h.baseURL + "/api/v3/breachedaccount/" + url.PathEscape(target.Identifier) + "?truncateResponse=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Failed(err)
	}
	req.Header.Set("hibp-api-key", h.apiKey)
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return Failed(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var breaches []breachEntry
		if err := json.NewDecoder(resp.Body).Decode(&breaches); err != nil {
			return Failed(fmt.Errorf("decode breach response: %w", err))
		}
		return Found(h.exposure(breaches))
	case http.StatusNotFound:
		// The one positive absence signal: the account appears in no
		// known breach.
		return NotFound()
	default:
		return Failed(fmt.Errorf("hibp returned status %d", resp.StatusCode))
	}
}

// breachEntry is the slice element of the HIBP breach response.
type breachEntry struct {
	Name string `json:"Name"` //nolint:tagliatelle // HIBP uses PascalCase
}

// exposure summarizes the breach list. The first two breach names are
// quoted to keep the description readable for long lists.
func (h *HIBP) exposure(breaches []breachEntry) *model.Exposure {
	names := make([]string, 0, 2)
	for _, b := range breaches {
		if len(names) == 2 {
			break
		}
		names = append(names, b.Name)
	}

	return &model.Exposure{
		Platform:  "HaveIBeenPwned (Data Breaches)",
		RiskLevel: model.RiskCritical,
		Description: fmt.Sprintf("Email found in %d known corporate data breaches (e.g., %s).",
			len(breaches), strings.Join(names, ", ")),
		PIIFound: []string{"Email", "Passwords", "Historical Data"},
		URL:      "https://haveibeenpwned.com/",
	}
}

// simulated is the degraded-mode payload, constant for reproducible
// demo scans.
func (h *HIBP) simulated() *model.Exposure {
	return &model.Exposure{
		Platform:    "HaveIBeenPwned (Historical Breaches)",
		RiskLevel:   model.RiskCritical,
		Description: "Email and password hash exposed in 2012 LinkedIn and 2019 Canva data breaches.",
		PIIFound:    []string{"Email", "Password Hash", "IP Address", "Geographic Location"},
		URL:         "https://haveibeenpwned.com/PwnedWebsites#LinkedIn",
	}
}
