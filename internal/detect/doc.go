// Package detect implements the sensitive-data detector: a fixed table
// of case-insensitive patterns applied to the free-text description of
// each exposure. The pattern table is compiled once at construction
// and treated as immutable afterwards, so concurrent scans share a
// detector without locking.
package detect
