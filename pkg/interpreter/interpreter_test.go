package interpreter

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"lux/interpreter-go/pkg/runtime"
)

func TestPrecedenceAndAssociativity(t *testing.T) {
	expectOutput(t, "print -1+2*3;", "5")
	expectOutput(t, "print 2-3-4;", "-5")
	expectOutput(t, "print (2-3)-4;", "-5")
	expectOutput(t, "print 2-(3-4);", "3")
	expectOutput(t, "print 8/4/2;", "1")
}

func TestTruthiness(t *testing.T) {
	expectOutput(t, "print !nil;", "true")
	expectOutput(t, "print !0;", "false")
	expectOutput(t, `print !"";`, "false")
	expectOutput(t, "print !false;", "true")
	expectOutput(t, "print !true;", "false")
}

func TestEqualityNeverTypeErrors(t *testing.T) {
	expectOutput(t, `print 1 == "1";`, "false")
	expectOutput(t, "print nil == nil;", "true")
	expectOutput(t, "print nil == false;", "false")
	expectOutput(t, `print "a" != "b";`, "true")
	expectOutput(t, "print 2 == 2;", "true")
}

func TestReferenceEqualityForObjects(t *testing.T) {
	source := `
fun f() {}
var g = f;
print f == g;
class A {}
var x = A();
var y = A();
print x == x;
print x == y;
print clock == clock;
print clock == f;`
	expectOutput(t, source, "true", "true", "false", "true", "false")
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	// The right side would be a runtime type error if evaluated.
	expectOutput(t, `print false and (1 + "no");`, "false")
	expectOutput(t, `print true or (1 + "no");`, "true")
}

func TestLogicalOperatorsReturnOperandValues(t *testing.T) {
	expectOutput(t, `print "hi" or 2;`, "hi")
	expectOutput(t, "print nil or 2;", "2")
	expectOutput(t, "print nil and 2;", "nil")
	expectOutput(t, `print 1 and "two";`, "two")
}

func TestStringConcatenation(t *testing.T) {
	expectOutput(t, `print "foo" + "bar";`, "foobar")
}

func TestDivisionFollowsIEEE(t *testing.T) {
	out := mustRun(t, "print 1/0; print -1/0; print 0/0;")
	lines := outputLines(out)
	if lines[0] != "+Inf" || lines[1] != "-Inf" || lines[2] != "NaN" {
		t.Fatalf("unexpected IEEE output %v", lines)
	}
}

func TestNumberFormatting(t *testing.T) {
	expectOutput(t, "print 2.0;", "2")
	expectOutput(t, "print 2.5;", "2.5")
	expectOutput(t, "print 0.25;", "0.25")
}

func TestClosuresShareCapturedFrame(t *testing.T) {
	source := `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    return count;
  }
  return increment;
}
var counter = makeCounter();
print counter();
print counter();
print counter();`
	expectOutput(t, source, "1", "2", "3")
}

func TestClosureCapturesAtDeclarationTime(t *testing.T) {
	source := `
var a = "global";
{
  fun show() { print a; }
  show();
  var a = "block";
  show();
}`
	expectOutput(t, source, "global", "global")
}

func TestIndependentClosures(t *testing.T) {
	source := `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    return count;
  }
  return increment;
}
var first = makeCounter();
var second = makeCounter();
print first();
print first();
print second();`
	expectOutput(t, source, "1", "2", "1")
}

func TestBlockScopeShadowing(t *testing.T) {
	source := `
var x = "outer";
{
  var x = "inner";
  print x;
}
print x;`
	expectOutput(t, source, "inner", "outer")
}

func TestWhileLoop(t *testing.T) {
	source := `
var i = 0;
var sum = 0;
while (i < 5) {
  sum = sum + i;
  i = i + 1;
}
print sum;`
	expectOutput(t, source, "10")
}

func TestForLoop(t *testing.T) {
	source := `
var total = 0;
for (var i = 1; i <= 4; i = i + 1) total = total + i;
print total;`
	expectOutput(t, source, "10")
}

func TestFibonacciRecursion(t *testing.T) {
	source := `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(10);`
	expectOutput(t, source, "55")
}

func TestFunctionWithoutReturnYieldsNil(t *testing.T) {
	expectOutput(t, "fun noop() {} print noop();", "nil")
	expectOutput(t, "fun bare() { return; } print bare();", "nil")
}

func TestReturnUnwindsNestedBlocks(t *testing.T) {
	source := `
fun find() {
  var i = 0;
  while (true) {
    if (i == 3) { return i; }
    i = i + 1;
  }
}
print find();`
	expectOutput(t, source, "3")
}

func TestClassInstanceFields(t *testing.T) {
	source := `
class Bag {}
var bag = Bag();
bag.item = "apple";
print bag.item;`
	expectOutput(t, source, "apple")
}

func TestMethodsBindThis(t *testing.T) {
	source := `
class Person {
  init(name) { this.name = name; }
  greet() { return "hello, " + this.name; }
}
print Person("Ada").greet();`
	expectOutput(t, source, "hello, Ada")
}

func TestDetachedMethodKeepsReceiver(t *testing.T) {
	source := `
class Cell {
  init(v) { this.v = v; }
  read() { return this.v; }
}
var method = Cell(7).read;
print method();`
	expectOutput(t, source, "7")
}

func TestFieldsShadowMethods(t *testing.T) {
	source := `
class Thing {
  label() { return "method"; }
}
var thing = Thing();
print thing.label();
thing.label = "field";
print thing.label;`
	expectOutput(t, source, "method", "field")
}

func TestInitializerAlwaysReturnsInstance(t *testing.T) {
	source := `
class Early {
  init() {
    this.v = 1;
    return;
    this.v = 2;
  }
}
var e = Early();
print e.v;
print e.init() == e;`
	expectOutput(t, source, "1", "true")
}

func TestInheritanceDispatchWithSuper(t *testing.T) {
	source := `
class Doughnut {
  cook() { return "fry until golden"; }
}
class BostonCream < Doughnut {
  cook() { return super.cook() + ", then fill"; }
}
print BostonCream().cook();`
	expectOutput(t, source, "fry until golden, then fill")
}

func TestSuperKeepsSubclassThis(t *testing.T) {
	source := `
class A {
  describe() { return "A sees " + this.tag; }
}
class B < A {
  init() { this.tag = "B"; }
  describe() { return super.describe(); }
}
print B().describe();`
	expectOutput(t, source, "A sees B")
}

// super binds to the statically enclosing class's superclass, not the
// receiver's runtime class, so a grandchild instance calling an
// inherited method still starts the search above the middle class.
func TestSuperUsesLexicalClass(t *testing.T) {
	source := `
class A { name() { return "A"; } }
class B < A {
  name() { return "B"; }
  viaSuper() { return super.name(); }
}
class C < B {
  name() { return "C"; }
}
print C().viaSuper();`
	expectOutput(t, source, "A")
}

func TestInheritedMethodLookupWalksAncestors(t *testing.T) {
	source := `
class A { hello() { return "from A"; } }
class B < A {}
class C < B {}
print C().hello();`
	expectOutput(t, source, "from A")
}

func TestArityMismatch(t *testing.T) {
	rerr := expectRuntimeError(t, "fun two(a, b) { return a; } two(1);", "Expected 2 arguments but got 1.")
	if rerr.Token.Lexeme != ")" {
		t.Fatalf("arity error should point at the call site, got %q", rerr.Token.Lexeme)
	}
	expectRuntimeError(t, "fun none() {} none(1);", "Expected 0 arguments but got 1.")
	expectRuntimeError(t, "class P { init(a) {} } P();", "Expected 1 arguments but got 0.")
}

func TestNotCallable(t *testing.T) {
	expectRuntimeError(t, `"text"();`, "Can only call functions and classes.")
	expectRuntimeError(t, "nil();", "Can only call functions and classes.")
}

func TestUnaryTypeError(t *testing.T) {
	expectRuntimeError(t, `print -"x";`, "Operand must be a number.")
}

func TestBinaryTypeErrors(t *testing.T) {
	expectRuntimeError(t, `print 1 + "x";`, "Operands must be two numbers or two strings.")
	expectRuntimeError(t, `print "a" < "b";`, "Operands must be numbers.")
	expectRuntimeError(t, "print nil * 2;", "Operands must be numbers.")
}

func TestUndefinedVariable(t *testing.T) {
	rerr := expectRuntimeError(t, "print missing;", "Undefined variable 'missing'.")
	if rerr.Token.Line != 1 {
		t.Fatalf("expected line 1, got %d", rerr.Token.Line)
	}
	expectRuntimeError(t, "missing = 1;", "Undefined variable 'missing'.")
}

func TestPropertyErrors(t *testing.T) {
	expectRuntimeError(t, "var x = 1; print x.field;", "Only instances have properties.")
	expectRuntimeError(t, "var x = 1; x.field = 2;", "Only instances have fields.")
	expectRuntimeError(t, "class A {} print A().nope;", "Undefined property 'nope'.")
	expectRuntimeError(t, `
class A { f() {} }
class B < A {
  g() { return super.nope(); }
}
B().g();`, "Undefined property 'nope'.")
}

func TestSuperclassMustBeClass(t *testing.T) {
	expectRuntimeError(t, "var NotAClass = 1; class Sub < NotAClass {}", "Superclass must be a class.")
}

func TestRuntimeErrorCarriesLine(t *testing.T) {
	rerr := expectRuntimeError(t, "var a = 1;\nvar b = 2;\nprint a + nil;", "Operands must be")
	if rerr.Token.Line != 3 {
		t.Fatalf("expected line 3, got %d", rerr.Token.Line)
	}
	if !strings.Contains(rerr.Error(), "[line 3]") {
		t.Fatalf("rendered error must include the line: %q", rerr.Error())
	}
}

func TestRuntimeErrorStopsExecution(t *testing.T) {
	out, err := runSource(t, "print 1; print nil * 2; print 3;")
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	if got := outputLines(out); len(got) != 1 || got[0] != "1" {
		t.Fatalf("execution must stop at the failure, got %v", got)
	}
}

func TestClockNative(t *testing.T) {
	var out bytes.Buffer
	interp := New(&out)
	clock, ok := interp.Globals().Get("clock")
	if !ok {
		t.Fatalf("clock must be pre-populated in the global frame")
	}
	native, ok := clock.(*runtime.NativeFunctionValue)
	if !ok || native.Arity() != 0 {
		t.Fatalf("unexpected clock value %#v", clock)
	}
	val, err := native.Impl(nil)
	if err != nil {
		t.Fatalf("clock failed: %v", err)
	}
	num, ok := val.(runtime.NumberValue)
	if !ok || num.Val <= 0 || math.IsNaN(num.Val) {
		t.Fatalf("unexpected clock result %#v", val)
	}
}

func TestPrintValueRendering(t *testing.T) {
	source := `
fun f() {}
class Klass {}
print f;
print clock;
print Klass;
print Klass();`
	expectOutput(t, source, "<fn f>", "<native fn>", "Klass", "Klass instance")
}

func TestGlobalsPersistAcrossInterpretCalls(t *testing.T) {
	var out bytes.Buffer
	interp := New(&out)

	first := parseSource(t, "var x = 40;")
	locals, errs := NewResolver().Resolve(first)
	if len(errs) != 0 {
		t.Fatalf("unexpected resolution errors: %v", errs)
	}
	if err := interp.Interpret(first, locals); err != nil {
		t.Fatalf("first batch failed: %v", err)
	}

	second := parseSource(t, "print x + 2;")
	locals, errs = NewResolver().Resolve(second)
	if len(errs) != 0 {
		t.Fatalf("unexpected resolution errors: %v", errs)
	}
	if err := interp.Interpret(second, locals); err != nil {
		t.Fatalf("second batch failed: %v", err)
	}
	if out.String() != "42\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
