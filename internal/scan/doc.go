// Package scan orchestrates a full exposure scan: it classifies the
// submitted identifier, fans out to every applicable source adapter
// concurrently, enriches each reported exposure with detector and
// compliance output, and assembles the scored result.
package scan
