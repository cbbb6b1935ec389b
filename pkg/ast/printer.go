package ast

import (
	"strconv"
	"strings"
)

// PrintExpr renders an expression in parenthesized prefix form, e.g.
// `(* (- 123) (group abc))`. Useful for parser debugging and tests.
func PrintExpr(expr Expr) string {
	switch e := expr.(type) {
	case *Literal:
		return formatLiteral(e.Value)
	case *Grouping:
		return parenthesize("group", e.Expression)
	case *Unary:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *Binary:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Logical:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Call:
		return parenthesize("call", append([]Expr{e.Callee}, e.Arguments...)...)
	case *Get:
		return parenthesize("get "+e.Name.Lexeme, e.Object)
	case *Set:
		return parenthesize("set "+e.Name.Lexeme, e.Object, e.Value)
	case *This:
		return "this"
	case *Super:
		return "(super " + e.Method.Lexeme + ")"
	default:
		return string(expr.NodeType())
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, expr := range exprs {
		b.WriteByte(' ')
		b.WriteString(PrintExpr(expr))
	}
	b.WriteByte(')')
	return b.String()
}

func formatLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	default:
		return "?"
	}
}
