package ast

import "lux/interpreter-go/pkg/lexer"

// Compact builders for assembling nodes by hand in tests.

var operatorTypes = map[string]lexer.TokenType{
	"-":   lexer.Minus,
	"+":   lexer.Plus,
	"*":   lexer.Star,
	"/":   lexer.Slash,
	"!":   lexer.Bang,
	"=":   lexer.Equal,
	"==":  lexer.EqualEqual,
	"!=":  lexer.BangEqual,
	"<":   lexer.Less,
	"<=":  lexer.LessEqual,
	">":   lexer.Greater,
	">=":  lexer.GreaterEqual,
	"and": lexer.And,
	"or":  lexer.Or,
}

// Tok builds a token with the given type and lexeme on line 1.
func Tok(tokenType lexer.TokenType, lexeme string) lexer.Token {
	return lexer.Token{Type: tokenType, Lexeme: lexeme, Line: 1}
}

// Op builds an operator token from its lexeme.
func Op(lexeme string) lexer.Token {
	return Tok(operatorTypes[lexeme], lexeme)
}

func ID(name string) *Variable {
	return NewVariable(Tok(lexer.Identifier, name))
}

func Num(value float64) *Literal {
	return NewLiteral(value)
}

func Str(value string) *Literal {
	return NewLiteral(value)
}

func Bool(value bool) *Literal {
	return NewLiteral(value)
}

func Nil() *Literal {
	return NewLiteral(nil)
}

func Grp(inner Expr) *Grouping {
	return NewGrouping(inner)
}

func Un(op string, right Expr) *Unary {
	return NewUnary(Op(op), right)
}

func Bin(op string, left, right Expr) *Binary {
	return NewBinary(left, Op(op), right)
}

func Logic(op string, left, right Expr) *Logical {
	return NewLogical(left, Op(op), right)
}
