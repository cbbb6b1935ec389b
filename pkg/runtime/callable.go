package runtime

import "lux/interpreter-go/pkg/ast"

// Callable is anything a call expression may invoke. The interpreter
// owns invocation; values here only carry the data a call needs.
type Callable interface {
	Value
	Arity() int
}

// FunctionValue is a user function: its declaration plus the frame
// captured where the declaration was evaluated. The capture happens
// once, at declaration time, never at call time.
type FunctionValue struct {
	Declaration   *ast.Function
	Closure       *Environment
	IsInitializer bool
}

func (f *FunctionValue) Kind() Kind { return KindFunction }

func (f *FunctionValue) Arity() int { return len(f.Declaration.Params) }

// Bind produces a fresh callable whose closure is extended with `this`
// bound to the instance. The body and initializer flag are shared.
func (f *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	return &FunctionValue{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}

// NativeFunc is the host-side implementation of a built-in.
type NativeFunc func(args []Value) (Value, error)

// NativeFunctionValue is always handled by pointer, like the other
// object values, so equality is identity and never compares the
// uncomparable Impl field.
type NativeFunctionValue struct {
	Name      string
	NumParams int
	Impl      NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v *NativeFunctionValue) Arity() int { return v.NumParams }

// ClassValue holds a class's method table and an optional shared
// superclass reference. The table is fixed when the declaration
// executes; classes are not mutated afterwards.
type ClassValue struct {
	Name       string
	Superclass *ClassValue
	Methods    map[string]*FunctionValue
}

func (c *ClassValue) Kind() Kind { return KindClass }

// Arity of a class call is the arity of its initializer, if it has one.
func (c *ClassValue) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// FindMethod searches the class and then each ancestor in order.
func (c *ClassValue) FindMethod(name string) *FunctionValue {
	if method, ok := c.Methods[name]; ok {
		return method
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// InstanceValue owns its field map and shares its class.
type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

func (i *InstanceValue) Kind() Kind { return KindInstance }

// Get reads a property: own fields first, then the class's method
// chain, binding any found method to this instance. Fields shadow
// methods of the same name.
func (i *InstanceValue) Get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if method := i.Class.FindMethod(name); method != nil {
		return method.Bind(i), true
	}
	return nil, false
}

// Set writes a field unconditionally, even when a method of that name
// exists.
func (i *InstanceValue) Set(name string, value Value) {
	i.Fields[name] = value
}
