package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewVersionCmd tests the version command output.
func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "tracepoint version") {
		t.Errorf("output missing version line: %q", output)
	}
	if !strings.Contains(output, "commit:") {
		t.Errorf("output missing commit line: %q", output)
	}
	if !strings.Contains(output, "built:") {
		t.Errorf("output missing build date line: %q", output)
	}
}

// TestGetVersion tests the version fallback chain.
func TestGetVersion(t *testing.T) {
	if v := getVersion(); v == "" {
		t.Error("expected non-empty version")
	}
}
