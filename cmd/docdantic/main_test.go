package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunReportsErrors(t *testing.T) {
	var stderr bytes.Buffer
	if code := run([]string{"table", "pkg.Missing"}, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunHelp(t *testing.T) {
	var stderr bytes.Buffer
	if code := run([]string{"--help"}, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d (%s)", code, strings.TrimSpace(stderr.String()))
	}
}
