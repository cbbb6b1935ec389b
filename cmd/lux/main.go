package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"lux/interpreter-go/pkg/driver"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	switch len(args) {
	case 0:
		return runPrompt(stdin, stdout, stderr)
	case 1:
		return runFile(args[0], stdout, stderr)
	default:
		fmt.Fprintln(stderr, "Usage: lux [script]")
		return 64
	}
}

func runFile(path string, stdout, stderr io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read %s: %v\n", path, err)
		return 66
	}
	outcome, diags := driver.Run(string(source), stdout)
	report(stderr, diags)
	return outcome.ExitCode()
}

// runPrompt evaluates one input per line against a persistent session.
// Errors are reported and the prompt continues; EOF exits cleanly.
func runPrompt(stdin io.Reader, stdout, stderr io.Writer) int {
	session := driver.NewSession(stdout)
	lines := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, "> ")
		if !lines.Scan() {
			break
		}
		_, diags := session.Eval(lines.Text())
		report(stderr, diags)
	}
	return 0
}

func report(stderr io.Writer, diags []driver.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(stderr, d.Message)
	}
}
