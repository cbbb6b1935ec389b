package driver

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScriptSuite is a YAML-described set of end-to-end language scripts:
// each entry pairs a source text with the stdout lines or the failure
// class it must produce. Suites double as executable documentation of
// the language semantics.
type ScriptSuite struct {
	Name    string   `yaml:"name"`
	Scripts []Script `yaml:"scripts"`
}

// Script is one runnable scenario within a suite.
type Script struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	// Output lists the expected stdout lines, in order.
	Output []string `yaml:"output,omitempty"`
	// Failure names the expected outcome class for scripts that must
	// not succeed: lexical, syntax, resolution, or runtime.
	Failure string `yaml:"failure,omitempty"`
}

// ValidationError aggregates suite validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "suite %s: invalid configuration", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue)
	}
	return b.String()
}

var failureOutcomes = map[string]Outcome{
	"lexical":    OutcomeLexicalError,
	"syntax":     OutcomeSyntaxError,
	"resolution": OutcomeResolutionError,
	"runtime":    OutcomeRuntimeError,
}

// ExpectedOutcome returns the outcome class this script must produce.
func (s Script) ExpectedOutcome() Outcome {
	if outcome, ok := failureOutcomes[s.Failure]; ok {
		return outcome
	}
	return OutcomeOK
}

// LoadSuite reads and validates one suite file. Unknown YAML fields
// are decode errors so fixture typos fail loudly.
func LoadSuite(path string) (*ScriptSuite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("suite %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var suite ScriptSuite
	if err := dec.Decode(&suite); err != nil {
		return nil, fmt.Errorf("suite %s: %w", path, err)
	}
	if err := suite.validate(path); err != nil {
		return nil, err
	}
	return &suite, nil
}

func (s *ScriptSuite) validate(path string) error {
	var issues []string
	if s.Name == "" {
		issues = append(issues, "suite name is required")
	}
	if len(s.Scripts) == 0 {
		issues = append(issues, "suite declares no scripts")
	}
	for idx, script := range s.Scripts {
		label := script.Name
		if label == "" {
			label = fmt.Sprintf("script #%d", idx+1)
			issues = append(issues, fmt.Sprintf("%s: name is required", label))
		}
		if script.Source == "" {
			issues = append(issues, fmt.Sprintf("%s: source is required", label))
		}
		if script.Failure != "" {
			if _, ok := failureOutcomes[script.Failure]; !ok {
				issues = append(issues, fmt.Sprintf("%s: unknown failure class %q", label, script.Failure))
			}
			if len(script.Output) > 0 {
				issues = append(issues, fmt.Sprintf("%s: output and failure are mutually exclusive", label))
			}
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Path: path, Issues: issues}
	}
	return nil
}
