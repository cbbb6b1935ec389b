// Package driver is the embedding surface of the interpreter: it wires
// scanner, parser, resolver, and interpreter into a classified
// load-and-run call plus a persistent session for interactive use.
package driver

import (
	"io"

	"lux/interpreter-go/pkg/interpreter"
	"lux/interpreter-go/pkg/lexer"
	"lux/interpreter-go/pkg/parser"
	"lux/interpreter-go/pkg/runtime"
)

// Outcome classifies the result of running one source unit.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeLexicalError
	OutcomeSyntaxError
	OutcomeResolutionError
	OutcomeRuntimeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeLexicalError:
		return "lexical"
	case OutcomeSyntaxError:
		return "syntax"
	case OutcomeResolutionError:
		return "resolution"
	case OutcomeRuntimeError:
		return "runtime"
	default:
		return "unknown"
	}
}

// ExitCode maps an outcome to the conventional process exit code:
// 65 (EX_DATAERR) for static errors, 70 (EX_SOFTWARE) for runtime
// errors, 0 for success.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeOK:
		return 0
	case OutcomeRuntimeError:
		return 70
	default:
		return 65
	}
}

// Diagnostic is one reported error. Message carries the full rendered
// form, including the source line.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string { return d.Message }

// Session evaluates successive top-level inputs against one persistent
// interpreter, so declarations made in one call are visible to the
// next. An error in one input never discards the session.
type Session struct {
	interp *interpreter.Interpreter
}

// NewSession creates a session whose `print` output goes to stdout.
func NewSession(stdout io.Writer) *Session {
	return &Session{interp: interpreter.New(stdout)}
}

// Globals exposes the session's global environment.
func (s *Session) Globals() *runtime.Environment {
	return s.interp.Globals()
}

// Eval runs one source unit. All static errors are collected before
// execution; no statement runs when any were found. The outcome names
// the earliest failing phase.
func (s *Session) Eval(source string) (Outcome, []Diagnostic) {
	tokens, lexErrs := lexer.NewScanner(source).Scan()
	statements, parseErrs := parser.NewParser(tokens).Parse()

	var diags []Diagnostic
	for _, e := range lexErrs {
		diags = append(diags, Diagnostic{Line: e.Line, Message: e.Error()})
	}
	for _, e := range parseErrs {
		diags = append(diags, Diagnostic{Line: e.Token.Line, Message: e.Error()})
	}
	if len(lexErrs) > 0 {
		return OutcomeLexicalError, diags
	}
	if len(parseErrs) > 0 {
		return OutcomeSyntaxError, diags
	}

	locals, resolveErrs := interpreter.NewResolver().Resolve(statements)
	if len(resolveErrs) > 0 {
		for _, e := range resolveErrs {
			diags = append(diags, Diagnostic{Line: e.Token.Line, Message: e.Error()})
		}
		return OutcomeResolutionError, diags
	}

	if err := s.interp.Interpret(statements, locals); err != nil {
		diag := Diagnostic{Message: err.Error()}
		if rerr, ok := err.(*interpreter.RuntimeError); ok {
			diag.Line = rerr.Token.Line
		}
		return OutcomeRuntimeError, []Diagnostic{diag}
	}
	return OutcomeOK, nil
}

// Run executes a complete source text against a fresh interpreter.
func Run(source string, stdout io.Writer) (Outcome, []Diagnostic) {
	return NewSession(stdout).Eval(source)
}
