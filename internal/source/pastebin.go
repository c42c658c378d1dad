package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tracepoint/tracepoint/internal/model"
	"golang.org/x/net/html"
)

// pastebinTimeout is deliberately short: the dump-search service is
// frequently slow or behind an interstitial, and one laggard must not
// hold up the whole scan.
const pastebinTimeout = 3 * time.Second

// Pastebin searches public text-dump indexes for the identifier.
// Presence in a dump almost always means leaked credentials or source
// code, so any hit is reported as CRITICAL.
type Pastebin struct {
	settings
}

// NewPastebin creates the text-dump adapter.
func NewPastebin(opts ...Option) *Pastebin {
	return &Pastebin{
		settings: newSettings("https://psbdmp.ws", pastebinTimeout, opts...),
	}
}

// Name returns the source's display name.
func (p *Pastebin) Name() string { return "Pastebin" }

// Accepts reports that dump search handles both identifier shapes.
func (p *Pastebin) Accepts(model.IdentifierKind) bool { return true }

// Query searches the dump index for the identifier.
func (p *Pastebin) Query(ctx context.Context, target model.Target) Outcome {
	if p.policy.MatchesSentinel(target) {
		p.logger.Info("degraded mode", "source", p.Name(), "reason", "sentinel")
		return Found(p.simulated(target))
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	endpoint := p.baseURL + "/api/search/" + url.PathEscape(target.Identifier)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Failed(err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return Failed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Failed(fmt.Errorf("dump search returned status %d", resp.StatusCode))
	}

	count, err := p.countResults(resp)
	if err != nil {
		return Failed(err)
	}
	if count == 0 {
		// An empty result set from a healthy endpoint is a positive
		// absence signal.
		return NotFound()
	}

	return Found(p.exposure(target, count))
}

// countResults extracts the number of matching dumps from either
// response shape the service produces.
//
// The service normally answers JSON, but behind its CDN it sometimes
// serves the equivalent HTML results page instead. Rather than treat
// that as a failure we parse the page and count dump links, the same
// way a browser user would read it.
func (p *Pastebin) countResults(resp *http.Response) (int, error) {
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return countDumpLinks(resp.Body)
	}

	var body struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode dump search response: %w", err)
	}
	return len(body.Data), nil
}

// countDumpLinks counts anchors pointing at individual dumps in an
// HTML results page.
func countDumpLinks(r io.Reader) (int, error) {
	root, err := html.Parse(r)
	if err != nil {
		return 0, fmt.Errorf("parse dump search page: %w", err)
	}

	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && strings.HasPrefix(attr.Val, "/dump/") {
					count++
					break
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return count, nil
}

// exposure builds the live exposure from the dump count.
func (p *Pastebin) exposure(target model.Target, count int) *model.Exposure {
	return &model.Exposure{
		Platform:  "Pastebin / Text Dumps",
		RiskLevel: model.RiskCritical,
		Description: fmt.Sprintf(
			"Found %d public text dumps containing this identifier. Highly likely to be a password combo list.",
			count,
		),
		PIIFound: []string{"Email", "Possible Plaintext Passwords"},
		URL:      dorkURL(target),
	}
}

// simulated is the degraded-mode payload.
func (p *Pastebin) simulated(target model.Target) *model.Exposure {
	return &model.Exposure{
		Platform:  "Pastebin (Simulated Dork)",
		RiskLevel: model.RiskCritical,
		Description: "Identifier found in a recent 'combolist' text dump. " +
			"This means hackers are actively trying to use these credentials.",
		PIIFound: []string{"Email", "Plaintext Password", "Username"},
		URL:      dorkURL(target),
	}
}

// dorkURL builds a search-engine dork the analyst can follow manually.
func dorkURL(target model.Target) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(`site:pastebin.com "`+target.Identifier+`"`)
}
