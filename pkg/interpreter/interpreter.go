package interpreter

import (
	"fmt"
	"io"
	"os"

	"lux/interpreter-go/pkg/ast"
	"lux/interpreter-go/pkg/lexer"
	"lux/interpreter-go/pkg/runtime"
)

// Interpreter walks resolved statements against a persistent global
// frame. It is single-threaded; evaluation order is strictly
// left-to-right everywhere.
type Interpreter struct {
	globals *runtime.Environment
	locals  map[ast.Expr]int
	stdout  io.Writer
}

// New returns an interpreter whose global frame is pre-populated with
// the native functions. Output of `print` goes to stdout (os.Stdout
// when nil).
func New(stdout io.Writer) *Interpreter {
	if stdout == nil {
		stdout = os.Stdout
	}
	globals := runtime.NewEnvironment(nil)
	registerNatives(globals)
	return &Interpreter{
		globals: globals,
		locals:  make(map[ast.Expr]int),
		stdout:  stdout,
	}
}

// Globals returns the interpreter's global environment. It survives
// across Interpret calls, which is what lets a REPL accumulate state.
func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// Interpret executes statements in order. locals is the resolver's
// side-table for this batch; it is merged into the table from earlier
// batches so incremental inputs keep their resolutions. The returned
// error, if any, is a *RuntimeError.
func (i *Interpreter) Interpret(statements []ast.Stmt, locals map[ast.Expr]int) error {
	for expr, depth := range locals {
		i.locals[expr] = depth
	}
	for _, stmt := range statements {
		if err := i.execute(stmt, i.globals); err != nil {
			if _, ok := err.(returnSignal); ok {
				return fmt.Errorf("return outside function")
			}
			return err
		}
	}
	return nil
}

// returnSignal unwinds statement execution up to the function-call
// boundary that consumes it. value is nil for a bare `return;`.
type returnSignal struct {
	value runtime.Value
}

func (returnSignal) Error() string { return "return" }

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

func (i *Interpreter) execute(stmt ast.Stmt, env *runtime.Environment) error {
	switch n := stmt.(type) {
	case *ast.Expression:
		_, err := i.evaluate(n.Expression, env)
		return err
	case *ast.Print:
		val, err := i.evaluate(n.Expression, env)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(i.stdout, runtime.ToString(val))
		return err
	case *ast.Var:
		var value runtime.Value = runtime.NilValue{}
		if n.Initializer != nil {
			val, err := i.evaluate(n.Initializer, env)
			if err != nil {
				return err
			}
			value = val
		}
		env.Define(n.Name.Lexeme, value)
		return nil
	case *ast.Block:
		return i.executeBlock(n.Statements, runtime.NewEnvironment(env))
	case *ast.If:
		cond, err := i.evaluate(n.Condition, env)
		if err != nil {
			return err
		}
		if runtime.Truthy(cond) {
			return i.execute(n.ThenBranch, env)
		}
		if n.ElseBranch != nil {
			return i.execute(n.ElseBranch, env)
		}
		return nil
	case *ast.While:
		for {
			cond, err := i.evaluate(n.Condition, env)
			if err != nil {
				return err
			}
			if !runtime.Truthy(cond) {
				return nil
			}
			if err := i.execute(n.Body, env); err != nil {
				return err
			}
		}
	case *ast.Function:
		env.Define(n.Name.Lexeme, &runtime.FunctionValue{Declaration: n, Closure: env})
		return nil
	case *ast.Return:
		var value runtime.Value
		if n.Value != nil {
			val, err := i.evaluate(n.Value, env)
			if err != nil {
				return err
			}
			value = val
		}
		return returnSignal{value: value}
	case *ast.Class:
		return i.executeClass(n, env)
	default:
		return fmt.Errorf("unsupported statement type: %s", stmt.NodeType())
	}
}

// executeBlock runs statements in the given frame. The caller's frame
// is untouched, so it is restored simply by returning — including when
// a return signal propagates through.
func (i *Interpreter) executeBlock(statements []ast.Stmt, env *runtime.Environment) error {
	for _, stmt := range statements {
		if err := i.execute(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeClass(class *ast.Class, env *runtime.Environment) error {
	var superclass *runtime.ClassValue
	if class.Superclass != nil {
		val, err := i.evaluate(class.Superclass, env)
		if err != nil {
			return err
		}
		cls, ok := val.(*runtime.ClassValue)
		if !ok {
			return &RuntimeError{Token: class.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = cls
	}

	env.Define(class.Name.Lexeme, runtime.NilValue{})

	// Methods close over a frame holding `super`, mirroring the extra
	// scope the resolver opens for subclasses.
	methodEnv := env
	if superclass != nil {
		methodEnv = runtime.NewEnvironment(env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*runtime.FunctionValue, len(class.Methods))
	for _, method := range class.Methods {
		methods[method.Name.Lexeme] = &runtime.FunctionValue{
			Declaration:   method,
			Closure:       methodEnv,
			IsInitializer: method.Name.Lexeme == "init",
		}
	}

	env.Assign(class.Name.Lexeme, &runtime.ClassValue{
		Name:       class.Name.Lexeme,
		Superclass: superclass,
		Methods:    methods,
	})
	return nil
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

func (i *Interpreter) evaluate(expr ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return literalValue(n)
	case *ast.Grouping:
		return i.evaluate(n.Expression, env)
	case *ast.Unary:
		return i.evaluateUnary(n, env)
	case *ast.Binary:
		return i.evaluateBinary(n, env)
	case *ast.Logical:
		return i.evaluateLogical(n, env)
	case *ast.Variable:
		return i.lookUpVariable(n.Name, n, env)
	case *ast.Assign:
		return i.evaluateAssign(n, env)
	case *ast.Call:
		return i.evaluateCall(n, env)
	case *ast.Get:
		return i.evaluateGet(n, env)
	case *ast.Set:
		return i.evaluateSet(n, env)
	case *ast.This:
		return i.lookUpVariable(n.Keyword, n, env)
	case *ast.Super:
		return i.evaluateSuper(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", expr.NodeType())
	}
}

func literalValue(lit *ast.Literal) (runtime.Value, error) {
	switch v := lit.Value.(type) {
	case nil:
		return runtime.NilValue{}, nil
	case bool:
		return runtime.BoolValue{Val: v}, nil
	case float64:
		return runtime.NumberValue{Val: v}, nil
	case string:
		return runtime.StringValue{Val: v}, nil
	default:
		return nil, fmt.Errorf("unsupported literal type %T", lit.Value)
	}
}

func (i *Interpreter) evaluateUnary(expr *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluate(expr.Right, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Type {
	case lexer.Minus:
		num, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, &RuntimeError{Token: expr.Operator, Message: "Operand must be a number."}
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	case lexer.Bang:
		return runtime.BoolValue{Val: !runtime.Truthy(right)}, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %q", expr.Operator.Lexeme)
	}
}

func (i *Interpreter) evaluateBinary(expr *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case lexer.EqualEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case lexer.BangEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case lexer.Plus:
		if ln, ok := left.(runtime.NumberValue); ok {
			if rn, ok := right.(runtime.NumberValue); ok {
				return runtime.NumberValue{Val: ln.Val + rn.Val}, nil
			}
		}
		if ls, ok := left.(runtime.StringValue); ok {
			if rs, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: ls.Val + rs.Val}, nil
			}
		}
		return nil, &RuntimeError{Token: expr.Operator, Message: "Operands must be two numbers or two strings."}
	}

	ln, lok := left.(runtime.NumberValue)
	rn, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return nil, &RuntimeError{Token: expr.Operator, Message: "Operands must be numbers."}
	}
	switch expr.Operator.Type {
	case lexer.Minus:
		return runtime.NumberValue{Val: ln.Val - rn.Val}, nil
	case lexer.Star:
		return runtime.NumberValue{Val: ln.Val * rn.Val}, nil
	case lexer.Slash:
		// IEEE semantics: division by zero yields infinity or NaN.
		return runtime.NumberValue{Val: ln.Val / rn.Val}, nil
	case lexer.Greater:
		return runtime.BoolValue{Val: ln.Val > rn.Val}, nil
	case lexer.GreaterEqual:
		return runtime.BoolValue{Val: ln.Val >= rn.Val}, nil
	case lexer.Less:
		return runtime.BoolValue{Val: ln.Val < rn.Val}, nil
	case lexer.LessEqual:
		return runtime.BoolValue{Val: ln.Val <= rn.Val}, nil
	default:
		return nil, fmt.Errorf("unsupported binary operator %q", expr.Operator.Lexeme)
	}
}

// evaluateLogical short-circuits: when the left operand decides the
// result, it is returned as-is without evaluating the right side.
func (i *Interpreter) evaluateLogical(expr *ast.Logical, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left, env)
	if err != nil {
		return nil, err
	}
	if expr.Operator.Type == lexer.Or {
		if runtime.Truthy(left) {
			return left, nil
		}
	} else if !runtime.Truthy(left) {
		return left, nil
	}
	return i.evaluate(expr.Right, env)
}

func (i *Interpreter) evaluateAssign(expr *ast.Assign, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluate(expr.Value, env)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[expr]; ok {
		if !env.AssignAt(distance, expr.Name.Lexeme, value) {
			return nil, i.undefinedVariable(expr.Name)
		}
	} else if !i.globals.Assign(expr.Name.Lexeme, value) {
		return nil, i.undefinedVariable(expr.Name)
	}
	return value, nil
}

func (i *Interpreter) evaluateCall(expr *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluate(expr.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(expr.Arguments))
	for _, argExpr := range expr.Arguments {
		arg, err := i.evaluate(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	callable, ok := callee.(runtime.Callable)
	if !ok {
		return nil, &RuntimeError{Token: expr.Paren, Message: "Can only call functions and classes."}
	}
	if len(args) != callable.Arity() {
		return nil, &RuntimeError{
			Token:   expr.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)),
		}
	}

	switch fn := callable.(type) {
	case *runtime.FunctionValue:
		return i.callFunction(fn, args)
	case *runtime.NativeFunctionValue:
		result, err := fn.Impl(args)
		if err != nil {
			return nil, &RuntimeError{Token: expr.Paren, Message: err.Error()}
		}
		return result, nil
	case *runtime.ClassValue:
		return i.construct(fn, args)
	default:
		return nil, &RuntimeError{Token: expr.Paren, Message: "Can only call functions and classes."}
	}
}

// callFunction binds parameters in a fresh frame under the function's
// captured closure and consumes any return signal from the body.
func (i *Interpreter) callFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	env := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	if err := i.executeBlock(fn.Declaration.Body, env); err != nil {
		ret, ok := err.(returnSignal)
		if !ok {
			return nil, err
		}
		if fn.IsInitializer {
			return i.boundThis(fn)
		}
		if ret.value == nil {
			return runtime.NilValue{}, nil
		}
		return ret.value, nil
	}

	if fn.IsInitializer {
		return i.boundThis(fn)
	}
	return runtime.NilValue{}, nil
}

// boundThis reads the instance an initializer is bound to; an
// initializer call always yields the instance, whatever its body did.
func (i *Interpreter) boundThis(fn *runtime.FunctionValue) (runtime.Value, error) {
	this, ok := fn.Closure.GetAt(0, "this")
	if !ok {
		return nil, fmt.Errorf("initializer missing bound instance")
	}
	return this, nil
}

func (i *Interpreter) construct(class *runtime.ClassValue, args []runtime.Value) (runtime.Value, error) {
	instance := runtime.NewInstance(class)
	if init := class.FindMethod("init"); init != nil {
		if _, err := i.callFunction(init.Bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (i *Interpreter) evaluateGet(expr *ast.Get, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluate(expr.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, &RuntimeError{Token: expr.Name, Message: "Only instances have properties."}
	}
	value, ok := instance.Get(expr.Name.Lexeme)
	if !ok {
		return nil, &RuntimeError{
			Token:   expr.Name,
			Message: fmt.Sprintf("Undefined property '%s'.", expr.Name.Lexeme),
		}
	}
	return value, nil
}

func (i *Interpreter) evaluateSet(expr *ast.Set, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluate(expr.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, &RuntimeError{Token: expr.Name, Message: "Only instances have fields."}
	}
	value, err := i.evaluate(expr.Value, env)
	if err != nil {
		return nil, err
	}
	instance.Set(expr.Name.Lexeme, value)
	return value, nil
}

// evaluateSuper starts the method search at the statically resolved
// superclass of the lexically enclosing class, not at the runtime
// class of the receiver, then binds the result to the current `this`.
func (i *Interpreter) evaluateSuper(expr *ast.Super, env *runtime.Environment) (runtime.Value, error) {
	distance, ok := i.locals[expr]
	if !ok {
		return nil, &RuntimeError{Token: expr.Keyword, Message: "Can't use 'super' outside of a class."}
	}
	superVal, _ := env.GetAt(distance, "super")
	superclass, ok := superVal.(*runtime.ClassValue)
	if !ok {
		return nil, fmt.Errorf("'super' bound to non-class value")
	}
	// `this` lives in the frame just inside the one holding `super`.
	thisVal, _ := env.GetAt(distance-1, "this")
	instance, ok := thisVal.(*runtime.InstanceValue)
	if !ok {
		return nil, fmt.Errorf("'this' bound to non-instance value")
	}
	method := superclass.FindMethod(expr.Method.Lexeme)
	if method == nil {
		return nil, &RuntimeError{
			Token:   expr.Method,
			Message: fmt.Sprintf("Undefined property '%s'.", expr.Method.Lexeme),
		}
	}
	return method.Bind(instance), nil
}

// lookUpVariable addresses the exact frame recorded by the resolver,
// or falls back to the global frame for unresolved names.
func (i *Interpreter) lookUpVariable(name lexer.Token, expr ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	if distance, ok := i.locals[expr]; ok {
		if value, ok := env.GetAt(distance, name.Lexeme); ok {
			return value, nil
		}
		return nil, i.undefinedVariable(name)
	}
	if value, ok := i.globals.Get(name.Lexeme); ok {
		return value, nil
	}
	return nil, i.undefinedVariable(name)
}

func (i *Interpreter) undefinedVariable(name lexer.Token) error {
	return &RuntimeError{
		Token:   name,
		Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme),
	}
}
