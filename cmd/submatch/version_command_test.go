package main

import (
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "submatch ") {
		t.Fatalf("unexpected version output: %q", out)
	}
}
