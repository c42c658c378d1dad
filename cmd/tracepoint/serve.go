package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tracepoint/tracepoint/internal/ai"
	"github.com/tracepoint/tracepoint/internal/config"
	"github.com/tracepoint/tracepoint/internal/log"
	"github.com/tracepoint/tracepoint/internal/scan"
	"github.com/tracepoint/tracepoint/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve runs the scanner as an HTTP API.

Endpoints:
  POST /api/v1/scan                        Run a scan {"identifier": "...", "username_hint": "..."}
  GET  /api/v1/report/{target}             Fetch the cached result for a target
  GET  /api/v1/report/{target}/notice      Download DPDP removal notices (Markdown)
  GET  /api/v1/report/{target}/summary     AI analyst narrative (requires OPENAI_API_KEY)
  GET  /health                             Liveness check

Results live in memory for the lifetime of the process; report lookups
only work for targets scanned by this instance.

Examples:
  tracepoint serve
  tracepoint serve --addr :9090
  tracepoint serve -c myconfig.yaml`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", config.DefaultServerAddr,
		"Listen address for the HTTP server")
	cmd.Flags().DurationP("timeout", "t", config.DefaultScanTimeout,
		"Timeout for each HTTP-triggered scan")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .tracepoint in current or home directory)")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()

	var err error
	cfg.ServerAddr, err = cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	cfg.ScanTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if err := loadFileConfig(cfg); err != nil {
		return err
	}

	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureJSONLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, stopping server...")
		cancel()
	}()

	return runServe(ctx, cfg, logger)
}

// runServe builds the scan pipeline and serves it over HTTP until the
// context is cancelled.
func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	detector, err := buildDetector(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build detector: %w", err)
	}

	orchestrator, err := scan.New(detector, buildAdapters(cfg, logger), scan.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to build orchestrator: %w", err)
	}

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithScanTimeout(cfg.ScanTimeout),
	}
	if cfg.OpenAIAPIKey != "" {
		analyst, err := ai.NewAnalyst(cfg.OpenAIAPIKey, ai.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to build analyst: %w", err)
		}
		opts = append(opts, server.WithAnalyst(analyst))
	}

	srv, err := server.New(orchestrator, opts...)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	if err := srv.ListenAndServe(ctx, cfg.ServerAddr); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
