package ast

import "lux/interpreter-go/pkg/lexer"

type NodeType string

const (
	NodeLiteral  NodeType = "Literal"
	NodeGrouping NodeType = "Grouping"
	NodeUnary    NodeType = "Unary"
	NodeBinary   NodeType = "Binary"
	NodeLogical  NodeType = "Logical"
	NodeVariable NodeType = "Variable"
	NodeAssign   NodeType = "Assign"
	NodeCall     NodeType = "Call"
	NodeGet      NodeType = "Get"
	NodeSet      NodeType = "Set"
	NodeThis     NodeType = "This"
	NodeSuper    NodeType = "Super"

	NodeExpression NodeType = "ExpressionStmt"
	NodePrint      NodeType = "PrintStmt"
	NodeVar        NodeType = "VarStmt"
	NodeBlock      NodeType = "BlockStmt"
	NodeIf         NodeType = "IfStmt"
	NodeWhile      NodeType = "WhileStmt"
	NodeFunction   NodeType = "FunctionStmt"
	NodeReturn     NodeType = "ReturnStmt"
	NodeClass      NodeType = "ClassStmt"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct{ kind NodeType }

func (n nodeImpl) NodeType() NodeType { return n.kind }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expr interface {
	Node
	exprNode()
}

type exprMarker struct{}

func (exprMarker) exprNode() {}

type Stmt interface {
	Node
	stmtNode()
}

type stmtMarker struct{}

func (stmtMarker) stmtNode() {}

// Expressions

// Literal wraps a constant produced by the scanner or parser: float64,
// string, bool, or nil.
type Literal struct {
	nodeImpl
	exprMarker

	Value any
}

type Grouping struct {
	nodeImpl
	exprMarker

	Expression Expr
}

type Unary struct {
	nodeImpl
	exprMarker

	Operator lexer.Token
	Right    Expr
}

type Binary struct {
	nodeImpl
	exprMarker

	Left     Expr
	Operator lexer.Token
	Right    Expr
}

// Logical is kept apart from Binary because `and`/`or` short-circuit.
type Logical struct {
	nodeImpl
	exprMarker

	Left     Expr
	Operator lexer.Token
	Right    Expr
}

type Variable struct {
	nodeImpl
	exprMarker

	Name lexer.Token
}

type Assign struct {
	nodeImpl
	exprMarker

	Name  lexer.Token
	Value Expr
}

type Call struct {
	nodeImpl
	exprMarker

	Callee Expr
	// Paren is the closing parenthesis, used for call-site diagnostics.
	Paren     lexer.Token
	Arguments []Expr
}

type Get struct {
	nodeImpl
	exprMarker

	Object Expr
	Name   lexer.Token
}

type Set struct {
	nodeImpl
	exprMarker

	Object Expr
	Name   lexer.Token
	Value  Expr
}

type This struct {
	nodeImpl
	exprMarker

	Keyword lexer.Token
}

type Super struct {
	nodeImpl
	exprMarker

	Keyword lexer.Token
	Method  lexer.Token
}

// Statements

type Expression struct {
	nodeImpl
	stmtMarker

	Expression Expr
}

type Print struct {
	nodeImpl
	stmtMarker

	Expression Expr
}

// Var declares a variable; Initializer is nil for `var x;`.
type Var struct {
	nodeImpl
	stmtMarker

	Name        lexer.Token
	Initializer Expr
}

type Block struct {
	nodeImpl
	stmtMarker

	Statements []Stmt
}

type If struct {
	nodeImpl
	stmtMarker

	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

type While struct {
	nodeImpl
	stmtMarker

	Condition Expr
	Body      Stmt
}

type Function struct {
	nodeImpl
	stmtMarker

	Name   lexer.Token
	Params []lexer.Token
	Body   []Stmt
}

type Return struct {
	nodeImpl
	stmtMarker

	Keyword lexer.Token
	Value   Expr
}

type Class struct {
	nodeImpl
	stmtMarker

	Name lexer.Token
	// Superclass is nil when the class has no ancestor.
	Superclass *Variable
	Methods    []*Function
}

// Constructors

func NewLiteral(value any) *Literal {
	return &Literal{nodeImpl: nodeImpl{NodeLiteral}, Value: value}
}

func NewGrouping(expression Expr) *Grouping {
	return &Grouping{nodeImpl: nodeImpl{NodeGrouping}, Expression: expression}
}

func NewUnary(operator lexer.Token, right Expr) *Unary {
	return &Unary{nodeImpl: nodeImpl{NodeUnary}, Operator: operator, Right: right}
}

func NewBinary(left Expr, operator lexer.Token, right Expr) *Binary {
	return &Binary{nodeImpl: nodeImpl{NodeBinary}, Left: left, Operator: operator, Right: right}
}

func NewLogical(left Expr, operator lexer.Token, right Expr) *Logical {
	return &Logical{nodeImpl: nodeImpl{NodeLogical}, Left: left, Operator: operator, Right: right}
}

func NewVariable(name lexer.Token) *Variable {
	return &Variable{nodeImpl: nodeImpl{NodeVariable}, Name: name}
}

func NewAssign(name lexer.Token, value Expr) *Assign {
	return &Assign{nodeImpl: nodeImpl{NodeAssign}, Name: name, Value: value}
}

func NewCall(callee Expr, paren lexer.Token, arguments []Expr) *Call {
	return &Call{nodeImpl: nodeImpl{NodeCall}, Callee: callee, Paren: paren, Arguments: arguments}
}

func NewGet(object Expr, name lexer.Token) *Get {
	return &Get{nodeImpl: nodeImpl{NodeGet}, Object: object, Name: name}
}

func NewSet(object Expr, name lexer.Token, value Expr) *Set {
	return &Set{nodeImpl: nodeImpl{NodeSet}, Object: object, Name: name, Value: value}
}

func NewThis(keyword lexer.Token) *This {
	return &This{nodeImpl: nodeImpl{NodeThis}, Keyword: keyword}
}

func NewSuper(keyword, method lexer.Token) *Super {
	return &Super{nodeImpl: nodeImpl{NodeSuper}, Keyword: keyword, Method: method}
}

func NewExpression(expression Expr) *Expression {
	return &Expression{nodeImpl: nodeImpl{NodeExpression}, Expression: expression}
}

func NewPrint(expression Expr) *Print {
	return &Print{nodeImpl: nodeImpl{NodePrint}, Expression: expression}
}

func NewVar(name lexer.Token, initializer Expr) *Var {
	return &Var{nodeImpl: nodeImpl{NodeVar}, Name: name, Initializer: initializer}
}

func NewBlock(statements []Stmt) *Block {
	return &Block{nodeImpl: nodeImpl{NodeBlock}, Statements: statements}
}

func NewIf(condition Expr, thenBranch, elseBranch Stmt) *If {
	return &If{nodeImpl: nodeImpl{NodeIf}, Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func NewWhile(condition Expr, body Stmt) *While {
	return &While{nodeImpl: nodeImpl{NodeWhile}, Condition: condition, Body: body}
}

func NewFunction(name lexer.Token, params []lexer.Token, body []Stmt) *Function {
	return &Function{nodeImpl: nodeImpl{NodeFunction}, Name: name, Params: params, Body: body}
}

func NewReturn(keyword lexer.Token, value Expr) *Return {
	return &Return{nodeImpl: nodeImpl{NodeReturn}, Keyword: keyword, Value: value}
}

func NewClass(name lexer.Token, superclass *Variable, methods []*Function) *Class {
	return &Class{nodeImpl: nodeImpl{NodeClass}, Name: name, Superclass: superclass, Methods: methods}
}
