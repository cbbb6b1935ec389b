package parser

import (
	"fmt"

	"lux/interpreter-go/pkg/ast"
	"lux/interpreter-go/pkg/lexer"
)

// Statement grammar:
// program        → declaration* EOF ;
// declaration    → classDecl | funDecl | varDecl | statement ;
// statement      → exprStmt | forStmt | ifStmt | printStmt
//                | returnStmt | whileStmt | block ;
//
// Expression grammar, lowest to highest precedence:
// expression     → assignment ;
// assignment     → ( call "." )? IDENTIFIER "=" assignment | logic_or ;
// logic_or       → logic_and ( "or" logic_and )* ;
// logic_and      → equality ( "and" equality )* ;
// equality       → comparison ( ( "!=" | "==" ) comparison )* ;
// comparison     → term ( ( ">" | ">=" | "<" | "<=" ) term )* ;
// term           → factor ( ( "-" | "+" ) factor )* ;
// factor         → unary ( ( "/" | "*" ) unary )* ;
// unary          → ( "!" | "-" ) unary | call ;
// call           → primary ( "(" arguments? ")" | "." IDENTIFIER )* ;
// primary        → NUMBER | STRING | "true" | "false" | "nil" | "this"
//                | IDENTIFIER | "(" expression ")" | "super" "." IDENTIFIER ;

// maxArity bounds both parameter and argument lists.
const maxArity = 255

// Error describes a grammar violation at a specific token.
type Error struct {
	Token   lexer.Token
	Message string
}

func (e *Error) Error() string {
	if e.Token.Type == lexer.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// Parser consumes a token sequence by recursive descent. On a grammar
// violation it records the error, discards tokens up to the next
// statement boundary, and keeps going, so one pass surfaces every
// syntax error in the input.
type Parser struct {
	tokens  []lexer.Token
	current int
	errs    []*Error
}

func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the whole token stream. Statements that failed to
// parse are omitted from the result; callers must treat a non-empty
// error list as fatal for execution.
func (p *Parser) Parse() ([]ast.Stmt, []*Error) {
	var statements []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements, p.errs
}

// declaration is the error-recovery boundary: any parse error below it
// is recorded here, followed by resynchronization.
func (p *Parser) declaration() ast.Stmt {
	var stmt ast.Stmt
	var err error
	switch {
	case p.match(lexer.Class):
		stmt, err = p.classDeclaration()
	case p.match(lexer.Fun):
		stmt, err = p.function("function")
	case p.match(lexer.Var):
		stmt, err = p.varDeclaration()
	default:
		stmt, err = p.statement()
	}
	if err != nil {
		p.record(err)
		p.synchronize()
		return nil
	}
	return stmt
}

// synchronize skips ahead to the next statement boundary: just past a
// semicolon, or right before a keyword that can start a statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.Semicolon {
			return
		}
		switch p.peek().Type {
		case lexer.Class, lexer.Fun, lexer.Var, lexer.For,
			lexer.If, lexer.While, lexer.Print, lexer.Return:
			return
		}
		p.advance()
	}
}

func (p *Parser) record(err error) {
	if perr, ok := err.(*Error); ok {
		p.errs = append(p.errs, perr)
		return
	}
	p.errs = append(p.errs, &Error{Token: p.peek(), Message: err.Error()})
}

// report records an error that does not abort the current production.
func (p *Parser) report(token lexer.Token, message string) {
	p.errs = append(p.errs, &Error{Token: token, Message: message})
}

func (p *Parser) errorAt(token lexer.Token, message string) error {
	return &Error{Token: token, Message: message}
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tokenType lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == tokenType
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}
