package interpreter

import (
	"lux/interpreter-go/pkg/ast"
	"lux/interpreter-go/pkg/lexer"
)

type functionKind int

const (
	functionNone functionKind = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// Resolver statically computes, for every variable reference, how many
// lexical scopes separate it from its declaration. References absent
// from the resulting side-table are globals, looked up directly in the
// global frame at runtime.
//
// The resolver pushes a scope at exactly the points the interpreter
// pushes a frame: block bodies, function bodies (parameters included),
// and the implicit `super` and `this` scopes around class methods. Any
// divergence between the two would corrupt every distance below it.
type Resolver struct {
	scopes          []map[string]bool
	currentFunction functionKind
	currentClass    classKind
	locals          map[ast.Expr]int
	errs            []*ResolutionError
}

func NewResolver() *Resolver {
	return &Resolver{locals: make(map[ast.Expr]int)}
}

// Resolve walks the statements once and returns the side-table mapping
// each resolved reference node to its scope distance (0 = innermost),
// plus every resolution error found. Resolving the same tree again
// yields an identical table.
func (r *Resolver) Resolve(statements []ast.Stmt) (map[ast.Expr]int, []*ResolutionError) {
	r.resolveStatements(statements)
	return r.locals, r.errs
}

func (r *Resolver) resolveStatements(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStatements(n.Statements)
		r.endScope()
	case *ast.Var:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpression(n.Initializer)
		}
		r.define(n.Name)
	case *ast.Function:
		// The name is usable inside the body so functions can recurse.
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, functionFunction)
	case *ast.Class:
		r.resolveClass(n)
	case *ast.Expression:
		r.resolveExpression(n.Expression)
	case *ast.Print:
		r.resolveExpression(n.Expression)
	case *ast.If:
		r.resolveExpression(n.Condition)
		r.resolveStatement(n.ThenBranch)
		if n.ElseBranch != nil {
			r.resolveStatement(n.ElseBranch)
		}
	case *ast.While:
		r.resolveExpression(n.Condition)
		r.resolveStatement(n.Body)
	case *ast.Return:
		if r.currentFunction == functionNone {
			r.report(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFunction == functionInitializer {
				r.report(n.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpression(n.Value)
		}
	}
}

func (r *Resolver) resolveClass(class *ast.Class) {
	enclosing := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosing }()

	r.declare(class.Name)
	r.define(class.Name)

	if class.Superclass != nil {
		if class.Superclass.Name.Lexeme == class.Name.Lexeme {
			r.report(class.Superclass.Name, "A class can't inherit from itself.")
		} else {
			r.currentClass = classSubclass
			r.resolveExpression(class.Superclass)
		}
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	for _, method := range class.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()

	if class.Superclass != nil {
		r.endScope()
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind
	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()
	r.currentFunction = enclosing
}

func (r *Resolver) resolveExpression(expr ast.Expr) {
	switch n := expr.(type) {
	case *ast.Literal:
	case *ast.Grouping:
		r.resolveExpression(n.Expression)
	case *ast.Unary:
		r.resolveExpression(n.Right)
	case *ast.Binary:
		r.resolveExpression(n.Left)
		r.resolveExpression(n.Right)
	case *ast.Logical:
		r.resolveExpression(n.Left)
		r.resolveExpression(n.Right)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; declared && !defined {
				r.report(n.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n, n.Name)
	case *ast.Assign:
		r.resolveExpression(n.Value)
		r.resolveLocal(n, n.Name)
	case *ast.Call:
		r.resolveExpression(n.Callee)
		for _, arg := range n.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.Get:
		r.resolveExpression(n.Object)
	case *ast.Set:
		r.resolveExpression(n.Object)
		r.resolveExpression(n.Value)
	case *ast.This:
		if r.currentClass == classNone {
			r.report(n.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(n, n.Keyword)
	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.report(n.Keyword, "Can't use 'super' outside of a class.")
			return
		case classClass:
			r.report(n.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(n, n.Keyword)
	}
}

// declare marks a name as existing-but-unusable so its own initializer
// cannot read it. Top-level declarations go to the global frame and
// are not tracked here.
func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.report(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr ast.Expr, name lexer.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found locally: a global, resolved at runtime.
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) report(token lexer.Token, message string) {
	r.errs = append(r.errs, &ResolutionError{Token: token, Message: message})
}
