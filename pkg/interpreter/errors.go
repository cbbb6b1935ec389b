package interpreter

import (
	"fmt"

	"lux/interpreter-go/pkg/lexer"
)

// ResolutionError is a static fault found before execution: illegal
// `this`/`super`/`return` placement, a duplicate local, a variable
// read in its own initializer, or a self-inheriting class.
type ResolutionError struct {
	Token   lexer.Token
	Message string
}

func (e *ResolutionError) Error() string {
	if e.Token.Type == lexer.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// RuntimeError aborts the current execution at the token that caused
// it. The language has no construct that can catch one.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}
