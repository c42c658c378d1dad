package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultScanTimeout bounds one whole scan. Individual adapters
	// enforce shorter per-source timeouts (3-7 seconds); this is a
	// backstop in case every source runs to its own limit.
	DefaultScanTimeout = 30 * time.Second

	// DefaultServerAddr is the listen address of the HTTP API.
	// Port 8080 avoids privileged ports and common dev collisions.
	DefaultServerAddr = ":8080"

	// AppName is the application name used for XDG directory paths.
	AppName = "tracepoint"
)

// Environment variable names for source credentials. Credentials come
// from the environment rather than flags so they never show up in
// shell history or process listings.
const (
	EnvGitHubToken  = "GITHUB_TOKEN"
	EnvHIBPAPIKey   = "HIBP_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

// Config holds all configuration options for tracepoint.
// This struct is designed to be populated from CLI flags and passed
// through the application via dependency injection rather than global
// state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ScanConfig, ServerConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit. If the configuration grows significantly, consider
// refactoring into sub-structs.
type Config struct {
	// Targets is the list of identifiers (emails or handles) to scan.
	Targets []string

	// UsernameHint optionally overrides the username derived from the
	// identifier, for sources that key on handles.
	UsernameHint string

	// GitHubToken is the optional GitHub API token. Without it the
	// GitHub source runs unauthenticated against tight rate limits.
	GitHubToken string

	// HIBPAPIKey is the Have I Been Pwned API key. Its absence puts
	// the breach source into degraded mode.
	HIBPAPIKey string

	// OpenAIAPIKey enables the optional analyst summary. Empty means
	// the feature is off; scans are never affected either way.
	OpenAIAPIKey string

	// ScanTimeout bounds one whole scan across all sources.
	ScanTimeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// ServerAddr is the listen address for the serve subcommand.
	ServerAddr string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .tracepoint in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// FileConfig holds settings loaded from the config file.
	// This is populated by LoadConfigFile.
	FileConfig *File
}

// NewConfig creates a new Config with default values. Credentials are
// seeded from the environment; flags and the config file can override
// them afterwards.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, listen
// address). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		ScanTimeout:  DefaultScanTimeout,
		ServerAddr:   DefaultServerAddr,
		GitHubToken:  os.Getenv(EnvGitHubToken),
		HIBPAPIKey:   os.Getenv(EnvHIBPAPIKey),
		OpenAIAPIKey: os.Getenv(EnvOpenAIAPIKey),
	}
}

// XDGDataDir returns the XDG data directory for tracepoint.
// On Linux: ~/.local/share/tracepoint
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for tracepoint.
// On Linux: ~/.config/tracepoint
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for tracepoint.
// On Linux: ~/.cache/tracepoint
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid for a scan run.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any scanning begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if c.ScanTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// ValidateServer checks the configuration for the serve subcommand,
// which needs no targets but does need a listen address.
func (c *Config) ValidateServer() error {
	if c.ServerAddr == "" {
		return ErrInvalidServerAddr
	}

	if c.ScanTimeout <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}
