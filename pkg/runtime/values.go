package runtime

import (
	"fmt"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Shared semantics
//-----------------------------------------------------------------------------

// Truthy reports the language's truthiness rule: nil and false are
// falsy, everything else (including 0 and "") is truthy.
func Truthy(val Value) bool {
	switch v := val.(type) {
	case BoolValue:
		return v.Val
	case NilValue:
		return false
	default:
		return true
	}
}

// Equal compares two values: nil equals nil only, scalars compare by
// value, and functions/classes/instances compare by identity.
func Equal(left, right Value) bool {
	switch lv := left.(type) {
	case NilValue:
		_, ok := right.(NilValue)
		return ok
	case BoolValue:
		if rv, ok := right.(BoolValue); ok {
			return lv.Val == rv.Val
		}
	case NumberValue:
		if rv, ok := right.(NumberValue); ok {
			return lv.Val == rv.Val
		}
	case StringValue:
		if rv, ok := right.(StringValue); ok {
			return lv.Val == rv.Val
		}
	default:
		return left == right
	}
	return false
}

// ToString renders a value the way `print` shows it.
func ToString(val Value) string {
	switch v := val.(type) {
	case NilValue:
		return "nil"
	case BoolValue:
		return strconv.FormatBool(v.Val)
	case NumberValue:
		return formatNumber(v.Val)
	case StringValue:
		return v.Val
	case *FunctionValue:
		return "<fn " + v.Declaration.Name.Lexeme + ">"
	case *NativeFunctionValue:
		return "<native fn>"
	case *ClassValue:
		return v.Name
	case *InstanceValue:
		return v.Class.Name + " instance"
	default:
		return fmt.Sprintf("[%s]", val.Kind())
	}
}

// formatNumber renders doubles in the shortest form: integral values
// carry no fractional part (2.0 prints as "2") and non-finite values
// keep Go's spelling (+Inf, NaN).
func formatNumber(val float64) string {
	return strconv.FormatFloat(val, 'g', -1, 64)
}
