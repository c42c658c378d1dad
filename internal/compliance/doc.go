// Package compliance maps detected sensitive-data categories to
// regulatory violation records under India's DPDP Act and generates
// removal-request notices from them. The category-to-violation table
// is static, loaded once, and never mutated, so lookups during
// concurrent scans need no locking.
package compliance
