package config

// File represents the YAML configuration file (.tracepoint).
// All sections are optional; flags and environment variables still
// apply when the file is absent.
//
// Example:
//
//	credentials:
//	  github_token: ghp_xxxx
//	  hibp_api_key: xxxx
//	patterns:
//	  - category: EMPLOYEE_ID
//	    regex: 'EMP-[0-9]{6}'
type File struct {
	// Credentials holds per-source API credentials. File values
	// override environment variables, since an explicit config file is
	// the more deliberate choice.
	Credentials Credentials `yaml:"credentials"`

	// Patterns adds custom detection patterns on top of the built-in
	// table. Categories are free-form; unknown categories map to the
	// default compliance record.
	Patterns []FilePattern `yaml:"patterns"`
}

// Credentials holds per-source API credentials from the config file.
type Credentials struct {
	// GitHubToken is the GitHub API token.
	GitHubToken string `yaml:"github_token"`

	// HIBPAPIKey is the Have I Been Pwned API key.
	HIBPAPIKey string `yaml:"hibp_api_key"`

	// OpenAIAPIKey enables the optional analyst summary.
	OpenAIAPIKey string `yaml:"openai_api_key"`
}

// FilePattern is one custom detection pattern from the config file.
type FilePattern struct {
	// Category is the finding category every match produces.
	Category string `yaml:"category"`

	// Regex is the pattern source, compiled case-insensitively.
	Regex string `yaml:"regex"`
}

// Validate checks the file-supplied patterns. Compilation is deferred
// to the detector; this only rejects structurally empty entries.
func (f *File) Validate() error {
	for _, p := range f.Patterns {
		if p.Category == "" || p.Regex == "" {
			return ErrInvalidPattern
		}
	}
	return nil
}

// Apply merges file settings into the Config.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}
	c.FileConfig = f

	if f.Credentials.GitHubToken != "" {
		c.GitHubToken = f.Credentials.GitHubToken
	}
	if f.Credentials.HIBPAPIKey != "" {
		c.HIBPAPIKey = f.Credentials.HIBPAPIKey
	}
	if f.Credentials.OpenAIAPIKey != "" {
		c.OpenAIAPIKey = f.Credentials.OpenAIAPIKey
	}
}
