package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCLICommandPrintsStack(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return runCLI([]string{"-c", "1 2 +"})
	})
	if err != nil {
		t.Fatalf("runCLI failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "3" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestRunCLIScriptFile(t *testing.T) {
	scriptPath := writeScript(t, `"hello" 'x' + len`)

	out, err := captureStdout(t, func() error {
		return runCLI([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("runCLI failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "6" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestRunCLIMissingScript(t *testing.T) {
	err := runCLI([]string{filepath.Join(t.TempDir(), "absent.str")})
	if err == nil {
		t.Fatalf("expected read error")
	}
	if !strings.Contains(err.Error(), "read script") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunBatchRuntimeErrorPrintsPrefixStack(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return runBatch("1 2 bogus")
	})
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	if !strings.Contains(err.Error(), `unknown id "bogus"`) {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "--> line 1, column 5") {
		t.Fatalf("expected code frame in error: %v", err)
	}
	if got := strings.TrimSpace(out); got != "1 2" {
		t.Fatalf("prefix stack not printed: %q", got)
	}
}

func TestRunBatchParseErrorPrintsNothing(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return runBatch("true if 1")
	})
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "unclosed if block") {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no stdout, got %q", out)
	}
}

func TestRunBatchEmptySource(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return runBatch("")
	})
	if err != nil {
		t.Fatalf("runBatch failed: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no stdout, got %q", out)
	}
}

func TestRunBatchDebugFormsOnStack(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return runBatch(`"hi" 'x' 1.0`)
	})
	if err != nil {
		t.Fatalf("runBatch failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != `"hi" 'x' 1.0` {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.str")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}
