package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tracepoint/tracepoint/internal/config"
	"github.com/tracepoint/tracepoint/internal/model"
	"github.com/tracepoint/tracepoint/internal/scan"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestBuildConfig tests flag-to-config mapping.
func TestBuildConfig(t *testing.T) {
	cmd := NewScanCmd()
	if err := cmd.Flags().Parse([]string{
		"--username", "janedoe",
		"--timeout", "10s",
		"--json",
		"--output", "out.json",
	}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := buildConfig(cmd, []string{"jane@example.com"})
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}

	if cfg.UsernameHint != "janedoe" {
		t.Errorf("UsernameHint = %q, expected janedoe", cfg.UsernameHint)
	}
	if cfg.ScanTimeout != 10*time.Second {
		t.Errorf("ScanTimeout = %v, expected 10s", cfg.ScanTimeout)
	}
	if !cfg.JSONReport || cfg.MarkdownReport {
		t.Errorf("expected JSON report only, got json=%v markdown=%v",
			cfg.JSONReport, cfg.MarkdownReport)
	}
	if cfg.ReportFile != "out.json" {
		t.Errorf("ReportFile = %q, expected out.json", cfg.ReportFile)
	}
	if len(cfg.Targets) != 1 || cfg.Targets[0] != "jane@example.com" {
		t.Errorf("Targets = %v, expected the positional argument", cfg.Targets)
	}
}

// TestLoadFileConfig tests config file discovery behavior.
func TestLoadFileConfig(t *testing.T) {
	t.Run("explicit missing file is an error", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.ConfigFilePath = "/does/not/exist.yaml"

		if err := loadFileConfig(cfg); err == nil {
			t.Error("expected an error for a missing explicit config file")
		}
	})

	t.Run("absent implicit file is silent", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg := config.NewConfig()
		if err := loadFileConfig(cfg); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("explicit file credentials are applied", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		content := "credentials:\n  github_token: file-token\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cfg := config.NewConfig()
		cfg.ConfigFilePath = path
		if err := loadFileConfig(cfg); err != nil {
			t.Fatalf("loadFileConfig: %v", err)
		}
		if cfg.GitHubToken != "file-token" {
			t.Errorf("GitHubToken = %q, expected file-token", cfg.GitHubToken)
		}
	})
}

// TestBuildAdapters tests adapter assembly order.
func TestBuildAdapters(t *testing.T) {
	t.Parallel()

	adapters := buildAdapters(config.NewConfig(), discardLogger())

	expected := []string{"GitHub", "Pastebin", "Reddit", "HaveIBeenPwned"}
	if len(adapters) != len(expected) {
		t.Fatalf("got %d adapters, expected %d", len(adapters), len(expected))
	}
	for i, name := range expected {
		if adapters[i].Name() != name {
			t.Errorf("adapter[%d] = %q, expected %q", i, adapters[i].Name(), name)
		}
	}
}

// TestBuildDetector tests custom pattern merging from the config file.
func TestBuildDetector(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.FileConfig = &config.File{
		Patterns: []config.FilePattern{
			{Category: "EMPLOYEE_ID", Regex: `EMP-[0-9]{6}`},
		},
	}

	detector, err := buildDetector(cfg, discardLogger())
	if err != nil {
		t.Fatalf("buildDetector: %v", err)
	}

	findings := detector.Scan("badge EMP-123456 leaked")
	found := false
	for _, f := range findings {
		if f.Category == model.Category("EMPLOYEE_ID") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an EMPLOYEE_ID finding, got %v", findings)
	}
}

// TestScanTargetDemo tests the demo short-circuit.
func TestScanTargetDemo(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	detector, err := buildDetector(cfg, discardLogger())
	if err != nil {
		t.Fatalf("buildDetector: %v", err)
	}
	orchestrator, err := scan.New(detector, buildAdapters(cfg, discardLogger()))
	if err != nil {
		t.Fatalf("scan.New: %v", err)
	}

	result, err := scanTarget(context.Background(), orchestrator, cfg, scan.DemoEmail)
	if err != nil {
		t.Fatalf("scanTarget: %v", err)
	}
	if result.TotalLeaks != 3 || result.RiskScore != 60 {
		t.Errorf("demo result = %d leaks / score %d, expected 3 / 60",
			result.TotalLeaks, result.RiskScore)
	}
}

// TestOutputReport tests file output with the JSON writer.
func TestOutputReport(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reports", "out.json")
	cfg := config.NewConfig()
	cfg.JSONReport = true
	cfg.ReportFile = path

	result := model.NewScanResult(model.NewTarget("jane@example.com", ""))
	if err := outputReport(cfg, result); err != nil {
		t.Fatalf("outputReport: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), `"jane@example.com"`) {
		t.Errorf("report missing target: %s", data)
	}

	var decoded model.ScanResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Errorf("report is not valid JSON: %v", err)
	}
}
