package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestVersionCmd verifies the version command output.
func TestVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "topicscan version") {
		t.Errorf("expected output to contain version line, got %q", output)
	}
	if !strings.Contains(output, "commit:") {
		t.Errorf("expected output to contain commit line, got %q", output)
	}
	if !strings.Contains(output, "built:") {
		t.Errorf("expected output to contain build date line, got %q", output)
	}
}

// TestGetVersionFallback verifies getVersion returns a non-empty value even
// without ldflags.
func TestGetVersionFallback(t *testing.T) {
	t.Parallel()

	if got := getVersion(); got == "" {
		t.Error("expected non-empty version string")
	}
}
