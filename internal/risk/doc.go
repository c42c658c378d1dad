// Package risk reduces the findings of a scan to a bounded numeric
// score in [0, 100].
package risk
