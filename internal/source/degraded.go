package source

import (
	"strings"

	"github.com/tracepoint/tracepoint/internal/model"
)

// defaultSentinelTokens trigger degraded mode when they appear in the
// identifier or username. They mark demonstration targets that must
// produce reproducible results without live connectivity.
var defaultSentinelTokens = []string{"demo", "test", "admin"}

// DegradedPolicy decides whether an adapter should fabricate a
// synthetic response instead of making a live call.
//
// Design decision: The original per-adapter fallback branching is
// consolidated into this one pure type so the decision is unit-testable
// in isolation from network code. The policy sees only the target and
// two condition flags; it performs no I/O.
type DegradedPolicy struct {
	tokens []string
}

// NewDegradedPolicy creates a policy with the given sentinel tokens,
// defaulting to "demo", "test", and "admin".
func NewDegradedPolicy(tokens ...string) DegradedPolicy {
	if len(tokens) == 0 {
		tokens = defaultSentinelTokens
	}
	return DegradedPolicy{tokens: tokens}
}

// Triggered reports whether the adapter should take the degraded path.
// missingCredential is true when the source requires a credential that
// is not configured; rateLimited is true when the source signalled a
// rate limit on this query.
func (p DegradedPolicy) Triggered(target model.Target, missingCredential, rateLimited bool) bool {
	if missingCredential || rateLimited {
		return true
	}
	return p.MatchesSentinel(target)
}

// MatchesSentinel reports whether the identifier or username contains
// a sentinel token. Matching is substring-based on the normalized
// forms, so "demo@x.com" and "my_test_account" both trigger.
func (p DegradedPolicy) MatchesSentinel(target model.Target) bool {
	for _, token := range p.tokens {
		if strings.Contains(target.Identifier, token) || strings.Contains(target.Username, token) {
			return true
		}
	}
	return false
}
