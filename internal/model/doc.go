// Package model defines the core data types shared across the scan
// pipeline: targets, exposures, findings, risk levels, and the final
// scan result. These types carry no behavior beyond construction,
// normalization, and ordered-set bookkeeping; all scanning logic lives
// in the source, detect, compliance, risk, and scan packages.
package model
