// Package main provides the entry point for the tracepoint CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for tracepoint.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracepoint",
		Short: "Digital privacy exposure scanner",
		Long: `Tracepoint scans public sources for exposures of an email address or
handle, detects sensitive data in what they return, scores the
aggregate privacy risk, and maps each exposure to violations of the
Digital Personal Data Protection Act, 2023.

Sources that require credentials (GitHub, Have I Been Pwned) read them
from the environment or the .tracepoint config file. Without
credentials those sources respond with clearly marked simulated data.

Try the built-in walkthrough with no credentials at all:
  tracepoint scan demo@tracepoint.com`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
