// Package log provides secure logging functionality with automatic
// sanitization of sensitive information, built on top of the standard
// slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of sensitive values (tokens, secrets, PII)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Security Features
//
// The SecureHandler automatically sanitizes sensitive information in
// log output:
//   - Source credentials (API tokens, Authorization headers)
//   - Detector matches (Aadhaar numbers, PAN card numbers, phone
//     numbers, private-key material)
//   - Session identifiers and authentication tokens
//
// Even in verbose mode, sensitive values are masked to prevent
// accidental exposure of personal data in logs that may be shared or
// stored. The scanner's whole purpose is finding leaked PII; its own
// logs must never become another leak.
//
// # Usage
//
//	// Create a secure logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("finding recorded",
//	    "match", "ABCDE1234F", // Will be sanitized to ***REDACTED***
//	    "category", "PAN_CARD",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
