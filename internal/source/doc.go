// Package source defines the adapter contract for querying public
// data sources and the four concrete adapters (GitHub, Pastebin,
// Reddit, HIBP). Adapters are stateless with respect to scan data:
// they hold only read-only configuration such as credentials and base
// URLs, enforce their own timeouts, and absorb transport failures into
// outcomes instead of errors.
package source
