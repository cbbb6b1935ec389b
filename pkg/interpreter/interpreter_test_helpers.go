package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"lux/interpreter-go/pkg/ast"
	"lux/interpreter-go/pkg/lexer"
	"lux/interpreter-go/pkg/parser"
)

func parseSource(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	tokens, lexErrs := lexer.NewScanner(source).Scan()
	if len(lexErrs) > 0 {
		t.Fatalf("unexpected lexical errors: %v", lexErrs)
	}
	statements, parseErrs := parser.NewParser(tokens).Parse()
	if len(parseErrs) > 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	return statements
}

func resolveSource(t *testing.T, source string) ([]ast.Stmt, map[ast.Expr]int, []*ResolutionError) {
	t.Helper()
	statements := parseSource(t, source)
	locals, errs := NewResolver().Resolve(statements)
	return statements, locals, errs
}

// runSource executes source from scratch and returns the print output
// and any runtime error. Static errors fail the test.
func runSource(t *testing.T, source string) (string, error) {
	t.Helper()
	statements, locals, resolveErrs := resolveSource(t, source)
	if len(resolveErrs) > 0 {
		t.Fatalf("unexpected resolution errors: %v", resolveErrs)
	}
	var out bytes.Buffer
	interp := New(&out)
	err := interp.Interpret(statements, locals)
	return out.String(), err
}

func mustRun(t *testing.T, source string) string {
	t.Helper()
	out, err := runSource(t, source)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out
}

func expectOutput(t *testing.T, source string, want ...string) {
	t.Helper()
	out := mustRun(t, source)
	got := outputLines(out)
	if len(got) != len(want) {
		t.Fatalf("expected %d output lines, got %d: %q", len(want), len(got), out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i+1, want[i], got[i])
		}
	}
}

func expectRuntimeError(t *testing.T, source, fragment string) *RuntimeError {
	t.Helper()
	_, err := runSource(t, source)
	if err == nil {
		t.Fatalf("expected runtime error containing %q", fragment)
	}
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if !strings.Contains(rerr.Message, fragment) {
		t.Fatalf("expected message containing %q, got %q", fragment, rerr.Message)
	}
	return rerr
}

func expectResolutionError(t *testing.T, source, fragment string) {
	t.Helper()
	_, _, errs := resolveSource(t, source)
	if len(errs) == 0 {
		t.Fatalf("expected resolution error containing %q", fragment)
	}
	for _, e := range errs {
		if strings.Contains(e.Message, fragment) {
			return
		}
	}
	t.Fatalf("no resolution error contains %q: %v", fragment, errs)
}

func outputLines(out string) []string {
	trimmed := strings.TrimSuffix(out, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
