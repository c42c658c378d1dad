// Package main provides the entry point for the tracepoint CLI.
//
// Tracepoint is a digital privacy exposure scanner. Given an email
// address or handle, it queries public sources concurrently, detects
// sensitive data in what they return, scores the aggregate privacy
// risk, and maps each exposure to DPDP Act violations.
//
// Usage:
//
//	tracepoint scan <email-or-handle>
//	tracepoint serve
//
// See --help for all available options.
package main

// main is the entry point for tracepoint.
func main() {
	Execute()
}
