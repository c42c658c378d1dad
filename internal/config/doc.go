// Package config provides configuration structures and utilities for
// tracepoint. It defines the main configuration options for exposure
// scanning, source credentials, the HTTP server, and report generation
// preferences.
package config
