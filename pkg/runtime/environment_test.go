package runtime

import (
	"reflect"
	"testing"
)

func TestEnvironmentDefineAndGet(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", NumberValue{Val: 1})
	inner := NewEnvironment(global)
	inner.Define("b", NumberValue{Val: 2})

	if v, ok := inner.Get("a"); !ok || v.(NumberValue).Val != 1 {
		t.Fatalf("inner frame must see outer binding, got %#v", v)
	}
	if _, ok := global.Get("b"); ok {
		t.Fatalf("outer frame must not see inner binding")
	}
	if inner.Parent() != global || global.Parent() != nil {
		t.Fatalf("parent links are wrong")
	}
}

func TestEnvironmentAssignWalksChain(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", NumberValue{Val: 1})
	inner := NewEnvironment(global)

	if !inner.Assign("a", NumberValue{Val: 9}) {
		t.Fatalf("assignment to an outer binding must succeed")
	}
	if v, _ := global.Get("a"); v.(NumberValue).Val != 9 {
		t.Fatalf("assignment must update the defining frame")
	}
	if inner.Assign("missing", NilValue{}) {
		t.Fatalf("assignment to an unbound name must fail")
	}
}

func TestEnvironmentDistanceAddressing(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", StringValue{Val: "global"})
	middle := NewEnvironment(global)
	middle.Define("x", StringValue{Val: "middle"})
	inner := NewEnvironment(middle)

	if v, ok := inner.GetAt(1, "x"); !ok || v.(StringValue).Val != "middle" {
		t.Fatalf("GetAt(1) must read the middle frame, got %#v", v)
	}
	if v, ok := inner.GetAt(2, "x"); !ok || v.(StringValue).Val != "global" {
		t.Fatalf("GetAt(2) must read the global frame, got %#v", v)
	}
	if _, ok := inner.GetAt(0, "x"); ok {
		t.Fatalf("GetAt(0) must not find a binding the inner frame lacks")
	}

	if !inner.AssignAt(1, "x", StringValue{Val: "patched"}) {
		t.Fatalf("AssignAt(1) must succeed")
	}
	if v, _ := middle.Get("x"); v.(StringValue).Val != "patched" {
		t.Fatalf("AssignAt must write the addressed frame")
	}
	if inner.AssignAt(1, "missing", NilValue{}) {
		t.Fatalf("AssignAt must not define new bindings")
	}
	if inner.AssignAt(9, "x", NilValue{}) {
		t.Fatalf("AssignAt past the chain end must fail")
	}
}

func TestEnvironmentKeysSorted(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("zeta", NilValue{})
	env.Define("alpha", NilValue{})
	env.Define("mid", NilValue{})

	if got := env.Keys(); !reflect.DeepEqual(got, []string{"alpha", "mid", "zeta"}) {
		t.Fatalf("unexpected key order %v", got)
	}
}
