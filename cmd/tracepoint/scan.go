package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tracepoint/tracepoint/internal/ai"
	"github.com/tracepoint/tracepoint/internal/config"
	"github.com/tracepoint/tracepoint/internal/detect"
	"github.com/tracepoint/tracepoint/internal/log"
	"github.com/tracepoint/tracepoint/internal/model"
	"github.com/tracepoint/tracepoint/internal/report"
	"github.com/tracepoint/tracepoint/internal/scan"
	"github.com/tracepoint/tracepoint/internal/source"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [email-or-handle]",
		Short: "Scan public sources for privacy exposures of an identifier",
		Long: `Scan queries public sources concurrently for traces of an email
address or handle:

- GitHub commit and code search (email and handle)
- Pastebin dump search (email and handle)
- Reddit profile lookup (handle only)
- Have I Been Pwned breach history (email only)

Each exposure's description is scanned for sensitive data (Aadhaar,
PAN, phone numbers, private keys), the aggregate risk is scored out of
100, and detected data is mapped to DPDP Act, 2023 violations.

Examples:
  # Scan an email address
  tracepoint scan jane@example.com

  # Scan a handle, several at once
  tracepoint scan janedoe johnsmith

  # Override the username used for handle-keyed sources
  tracepoint scan jane@example.com --username janedoe

  # Output JSON or Markdown
  tracepoint scan --json jane@example.com
  tracepoint scan --markdown -o report.md jane@example.com

  # Guaranteed-content walkthrough, no credentials needed
  tracepoint scan demo@tracepoint.com

Configuration file (.tracepoint) example:
  credentials:
    github_token: ghp_xxxx
    hibp_api_key: xxxx
  patterns:
    - category: EMPLOYEE_ID
      regex: 'EMP-[0-9]{6}'`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Scan behavior flags
	cmd.Flags().StringP("username", "u", "",
		"Username hint for handle-keyed sources (default: derived from the identifier)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultScanTimeout,
		"Timeout for one whole scan across all sources")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .tracepoint in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with sensitive-value masking
	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.UsernameHint, err = cmd.Flags().GetString("username")
	if err != nil {
		return nil, err
	}

	cfg.ScanTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if err := loadFileConfig(cfg); err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	// Get positional arguments (identifiers)
	cfg.Targets = args

	return cfg, nil
}

// loadFileConfig discovers and applies the .tracepoint config file.
// If the user explicitly specified a path, a missing file is an error.
// Otherwise the file is optional and its absence is silent.
func loadFileConfig(cfg *config.Config) error {
	explicit := cfg.ConfigFilePath != ""
	path := config.FindConfigFile(cfg.ConfigFilePath)

	if path == "" {
		if explicit {
			return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
		return nil
	}

	f, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	cfg.Apply(f)
	return nil
}

// buildDetector creates a detector with the built-in patterns plus any
// custom patterns from the config file.
func buildDetector(cfg *config.Config, logger *slog.Logger) (*detect.Detector, error) {
	patterns := detect.DefaultPatterns()
	if cfg.FileConfig != nil {
		for _, p := range cfg.FileConfig.Patterns {
			patterns = append(patterns, detect.PatternDef{
				Category: model.Category(p.Category),
				Expr:     p.Regex,
			})
		}
	}

	return detect.NewDetector(
		detect.WithPatterns(patterns),
		detect.WithLogger(logger),
	)
}

// buildAdapters assembles the source adapters in report order.
func buildAdapters(cfg *config.Config, logger *slog.Logger) []source.Adapter {
	return []source.Adapter{
		source.NewGitHub(cfg.GitHubToken, source.WithLogger(logger)),
		source.NewPastebin(source.WithLogger(logger)),
		source.NewReddit(source.WithLogger(logger)),
		source.NewHIBP(cfg.HIBPAPIKey, source.WithLogger(logger)),
	}
}

// runScan executes the scan for every target sequentially.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	detector, err := buildDetector(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build detector: %w", err)
	}

	orchestrator, err := scan.New(detector, buildAdapters(cfg, logger), scan.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to build orchestrator: %w", err)
	}

	var analyst *ai.Analyst
	if cfg.OpenAIAPIKey != "" {
		analyst, err = ai.NewAnalyst(cfg.OpenAIAPIKey, ai.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to build analyst: %w", err)
		}
	}

	logger.Info("starting scan", "targets", len(cfg.Targets))

	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Printf("Scanning %s...\n", target)
		startTime := time.Now()

		result, err := scanTarget(ctx, orchestrator, cfg, target)
		if err != nil {
			logger.Error("scan failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", target, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Scan completed in %s\n\n", elapsed.Round(time.Millisecond))

		if err := outputReport(cfg, result); err != nil {
			logger.Error("report failed", "target", target, "error", err)
		}

		if analyst != nil {
			printSummary(ctx, analyst, result, logger)
		}
	}

	return nil
}

// scanTarget runs one scan with the configured timeout. Demo
// identifiers short-circuit to the canned walkthrough result without
// touching the network.
func scanTarget(ctx context.Context, orchestrator *scan.Orchestrator, cfg *config.Config, target string) (*model.ScanResult, error) {
	if result, ok := scan.DemoResult(target); ok {
		return result, nil
	}

	scanCtx, cancel := context.WithTimeout(ctx, cfg.ScanTimeout)
	defer cancel()

	return orchestrator.Scan(scanCtx, target, cfg.UsernameHint)
}

// printSummary appends the AI analyst narrative to the report output.
// Summary failures are logged, never fatal; the report already stands.
func printSummary(ctx context.Context, analyst *ai.Analyst, result *model.ScanResult, logger *slog.Logger) {
	summary, err := analyst.Summarize(ctx, result)
	if err != nil {
		logger.Warn("analyst summary failed", "target", result.Target, "error", err)
		return
	}
	fmt.Printf("\nANALYST SUMMARY\n%s\n", summary)
}

// outputReport outputs the scan report in the requested format.
func outputReport(cfg *config.Config, result *model.ScanResult) error {
	// Determine output destination
	var output io.Writer = os.Stdout
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports may contain personal data; owner-only permissions.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	if _, err := writer.Write(result); err != nil {
		return err
	}
	return nil
}
