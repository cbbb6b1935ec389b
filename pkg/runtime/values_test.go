package runtime

import "testing"

func nativeNoop(name string) *NativeFunctionValue {
	return &NativeFunctionValue{
		Name:      name,
		NumParams: 0,
		Impl: func(args []Value) (Value, error) {
			return NilValue{}, nil
		},
	}
}

func TestEqualScalars(t *testing.T) {
	if !Equal(NilValue{}, NilValue{}) {
		t.Fatalf("nil must equal nil")
	}
	if Equal(NilValue{}, BoolValue{Val: false}) {
		t.Fatalf("nil must not equal false")
	}
	if !Equal(NumberValue{Val: 2}, NumberValue{Val: 2}) {
		t.Fatalf("equal numbers must compare equal")
	}
	if Equal(NumberValue{Val: 1}, StringValue{Val: "1"}) {
		t.Fatalf("values of different kinds must not be equal")
	}
	if !Equal(StringValue{Val: "a"}, StringValue{Val: "a"}) {
		t.Fatalf("equal strings must compare equal")
	}
}

// Callables compare by identity, and comparing two natives must not
// panic even though their Impl funcs are uncomparable.
func TestEqualCallablesByIdentity(t *testing.T) {
	clock := nativeNoop("clock")
	other := nativeNoop("other")
	if !Equal(clock, clock) {
		t.Fatalf("a native must equal itself")
	}
	if Equal(clock, other) {
		t.Fatalf("distinct natives must not be equal")
	}

	class := &ClassValue{Name: "A", Methods: map[string]*FunctionValue{}}
	first := NewInstance(class)
	second := NewInstance(class)
	if !Equal(first, first) {
		t.Fatalf("an instance must equal itself")
	}
	if Equal(first, second) {
		t.Fatalf("distinct instances must not be equal")
	}
	if Equal(clock, class) {
		t.Fatalf("a native must not equal a class")
	}
}

func TestToString(t *testing.T) {
	cases := map[string]Value{
		"nil":         NilValue{},
		"true":        BoolValue{Val: true},
		"2":           NumberValue{Val: 2},
		"2.5":         NumberValue{Val: 2.5},
		"hi":          StringValue{Val: "hi"},
		"<native fn>": nativeNoop("clock"),
		"A":           &ClassValue{Name: "A"},
	}
	for want, val := range cases {
		if got := ToString(val); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}
