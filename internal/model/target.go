package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// IdentifierKind classifies the submitted identifier.
type IdentifierKind int

const (
	// KindEmail is an identifier containing an "@".
	KindEmail IdentifierKind = iota

	// KindHandle is any other identifier (username, UID).
	KindHandle
)

// String returns a human-readable form of the identifier kind.
func (k IdentifierKind) String() string {
	switch k {
	case KindEmail:
		return "email"
	case KindHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// Target is the normalized form of the identifier under investigation.
// It is computed once per scan and passed read-only to every adapter.
type Target struct {
	// Raw is the identifier exactly as submitted.
	Raw string

	// Identifier is the normalized identifier: NFKC-folded, trimmed,
	// and lowercased. All adapters and reports use this form.
	Identifier string

	// Kind is email or handle, decided by the presence of "@".
	Kind IdentifierKind

	// Username is the candidate username for sources keyed on handles.
	// It comes from the caller's hint when one was given, otherwise
	// from the local part before "@" (or the whole identifier for
	// handles).
	Username string
}

// NewTarget normalizes and classifies an identifier.
//
// Design decision: We NFKC-normalize before lowercasing so that
// visually identical handles (full-width letters, compatibility forms)
// classify and compare identically. Plain strings.ToLower would treat
// "ｄｅｍｏ" and "demo" as different targets.
func NewTarget(identifier, usernameHint string) Target {
	normalized := normalize(identifier)

	kind := KindHandle
	if strings.Contains(normalized, "@") {
		kind = KindEmail
	}

	// The local part is a username candidate even for emails, since
	// people commonly reuse it as a handle on other platforms.
	username := normalized
	if at := strings.Index(normalized, "@"); at >= 0 {
		username = normalized[:at]
	}
	if hint := normalize(usernameHint); hint != "" {
		username = hint
	}

	return Target{
		Raw:        identifier,
		Identifier: normalized,
		Kind:       kind,
		Username:   username,
	}
}

// normalize applies NFKC folding, trims whitespace, and lowercases.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}
