package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoTarget is returned when no identifier is specified for a scan.
	ErrNoTarget = errors.New("no target specified: provide an email address or handle")

	// ErrInvalidTimeout is returned when the scan timeout is not positive.
	// A timeout of zero or negative would abort every scan immediately.
	ErrInvalidTimeout = errors.New("invalid scan timeout: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidServerAddr is returned when the serve address is empty.
	ErrInvalidServerAddr = errors.New("invalid server address: must not be empty")

	// ErrInvalidPattern is returned when a custom detection pattern from
	// the config file has an empty category or regex.
	ErrInvalidPattern = errors.New("invalid detection pattern: category and regex are required")
)
