package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/ryu/corpus"
)

func TestRunUsageNoArgs(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run(nil, &out, &errOut)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "usage: ryu-vectors") {
		t.Fatalf("expected usage text, got %q", out.String())
	}
}

func TestRunUnknownSubcommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"frobnicate"}, &out, &errOut)
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(errOut.String(), "unknown subcommand") {
		t.Fatalf("expected unknown subcommand message, got %q", errOut.String())
	}
}

func TestGenAndCheckRoundTrip(t *testing.T) {
	dir := t.TempDir()

	var out, errOut bytes.Buffer
	code := run([]string{"gen", "--dir", dir, "--count", "64"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("gen: expected exit 0, got %d stderr=%q", code, errOut.String())
	}
	if !strings.Contains(out.String(), "cases: 64") {
		t.Fatalf("gen: expected case count in output, got %q", out.String())
	}

	out.Reset()
	errOut.Reset()
	code = run([]string{"check", "--manifest", filepath.Join(dir, "manifest.json")}, &out, &errOut)
	if code != 0 {
		t.Fatalf("check: expected exit 0, got %d stderr=%q", code, errOut.String())
	}
	if !strings.Contains(out.String(), "ok") {
		t.Fatalf("check: expected ok, got %q", out.String())
	}
}

func TestGenRequiresDir(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"gen"}, &out, &errOut)
	if code != 2 {
		t.Fatalf("expected exit 2, got %d stderr=%q", code, errOut.String())
	}
}

func TestGenRejectsBadCount(t *testing.T) {
	for _, count := range []string{"0", "-5", "lots"} {
		var out, errOut bytes.Buffer
		code := run([]string{"gen", "--dir", t.TempDir(), "--count", count}, &out, &errOut)
		if code != 2 {
			t.Fatalf("count %q: expected exit 2, got %d", count, code)
		}
	}
}

func TestCheckMissingManifest(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"check", "--manifest", filepath.Join(t.TempDir(), "none.json")}, &out, &errOut)
	if code != 10 {
		t.Fatalf("expected exit 10, got %d stderr=%q", code, errOut.String())
	}
}

func TestCheckDetectsTampering(t *testing.T) {
	dir := t.TempDir()

	var out, errOut bytes.Buffer
	if code := run([]string{"gen", "--dir", dir, "--count", "32"}, &out, &errOut); code != 0 {
		t.Fatalf("gen: expected exit 0, got %d stderr=%q", code, errOut.String())
	}

	vecPath := filepath.Join(dir, "vectors.csv")
	data, err := os.ReadFile(vecPath)
	if err != nil {
		t.Fatalf("read vectors: %v", err)
	}
	tampered := bytes.Replace(data, []byte(",1E0,"), []byte(",2E0,"), 1)
	if bytes.Equal(tampered, data) {
		t.Fatalf("expected corpus to contain the 1.0 vector")
	}
	if err := os.WriteFile(vecPath, tampered, 0o644); err != nil {
		t.Fatalf("write vectors: %v", err)
	}

	out.Reset()
	errOut.Reset()
	code := run([]string{"check", "--manifest", filepath.Join(dir, "manifest.json")}, &out, &errOut)
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(errOut.String(), "checksum") {
		t.Fatalf("expected checksum drift message, got %q", errOut.String())
	}
}

func TestWriteClassifiedErrorWrapped(t *testing.T) {
	inner := corpus.New(corpus.ChecksumMismatch, -1, "vectors checksum drift")
	err := fmt.Errorf("outer: %w", inner)
	var stderr bytes.Buffer
	code := writeClassifiedError(&stderr, err)
	if code != corpus.ChecksumMismatch.ExitCode() {
		t.Fatalf("expected exit %d, got %d", corpus.ChecksumMismatch.ExitCode(), code)
	}
}

func TestWriteClassifiedErrorFallback(t *testing.T) {
	err := fmt.Errorf("unclassified failure")
	var stderr bytes.Buffer
	code := writeClassifiedError(&stderr, err)
	if code != corpus.InternalError.ExitCode() {
		t.Fatalf("expected exit %d, got %d", corpus.InternalError.ExitCode(), code)
	}
}
