package main

import (
	"testing"

	"github.com/tracepoint/tracepoint/internal/config"
)

// TestNewServeCmd tests the serve command definition.
func TestNewServeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewServeCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "serve" {
			t.Errorf("expected use 'serve', got %q", cmd.Use)
		}
	})

	t.Run("addr flag defaults to the standard listen address", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("addr")
		if flag == nil {
			t.Fatal("expected addr flag")
		}
		if flag.DefValue != config.DefaultServerAddr {
			t.Errorf("addr default = %q, expected %q", flag.DefValue, config.DefaultServerAddr)
		}
	})

	t.Run("has timeout and config flags", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("timeout") == nil {
			t.Error("expected timeout flag")
		}
		if cmd.Flags().Lookup("config") == nil {
			t.Error("expected config flag")
		}
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		t.Parallel()
		if err := cmd.Args(cmd, []string{"extra"}); err == nil {
			t.Error("expected an error for positional arguments")
		}
	})
}
