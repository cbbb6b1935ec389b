package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lux")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

func TestRunFileSuccess(t *testing.T) {
	path := writeScript(t, "print 1 + 2;\n")
	var stdout, stderr bytes.Buffer
	code := run([]string{path}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}
	if stdout.String() != "3\n" {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("stderr should be empty, got %q", stderr.String())
	}
}

func TestRunFileStaticError(t *testing.T) {
	path := writeScript(t, "print 1\n")
	var stdout, stderr bytes.Buffer
	code := run([]string{path}, strings.NewReader(""), &stdout, &stderr)
	if code != 65 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr.String(), "Expect ';' after value.") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestRunFileRuntimeError(t *testing.T) {
	path := writeScript(t, "print 1;\nprint missing;\n")
	var stdout, stderr bytes.Buffer
	code := run([]string{path}, strings.NewReader(""), &stdout, &stderr)
	if code != 70 {
		t.Fatalf("exit code = %d", code)
	}
	if stdout.String() != "1\n" {
		t.Fatalf("output before the failure must be kept, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Undefined variable 'missing'.") {
		t.Fatalf("stderr = %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "[line 2]") {
		t.Fatalf("stderr must carry the line, got %q", stderr.String())
	}
}

func TestRunFileMissing(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{filepath.Join(t.TempDir(), "absent.lux")}, strings.NewReader(""), &stdout, &stderr)
	if code != 66 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr.String(), "failed to read") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestTooManyArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"a.lux", "b.lux"}, strings.NewReader(""), &stdout, &stderr)
	if code != 64 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr.String(), "Usage: lux [script]") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestPromptKeepsStateAcrossLines(t *testing.T) {
	input := strings.NewReader("var x = 20;\nprint x * 2 + 2;\n")
	var stdout, stderr bytes.Buffer
	code := run(nil, input, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "42") {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestPromptContinuesAfterError(t *testing.T) {
	input := strings.NewReader("print nope;\nprint \"still here\";\n")
	var stdout, stderr bytes.Buffer
	code := run(nil, input, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("prompt must exit cleanly on EOF, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Undefined variable 'nope'.") {
		t.Fatalf("stderr = %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), "still here") {
		t.Fatalf("stdout = %q", stdout.String())
	}
}
