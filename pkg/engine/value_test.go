package engine_test

import (
	"testing"

	"github.com/fern-lang/fern/pkg/engine"
)

func TestLiteral(t *testing.T) {
	cases := []struct {
		v    engine.Value
		want string
	}{
		{engine.Str("hi"), "hi"},
		{engine.Int(-3), "-3"},
		{engine.Bool(true), "true"},
		{engine.Char('x'), "x"},
		{nil, "none"},
	}
	for _, c := range cases {
		if got := engine.Literal(c.v); got != c.want {
			t.Fatalf("Literal(%v): expected %q, got %q", c.v, c.want, got)
		}
	}
}

func TestTruth(t *testing.T) {
	truthy := []engine.Value{
		engine.Str("x"),
		engine.Int(1),
		engine.Float(0.5),
		engine.Bool(true),
		engine.NewList(engine.Int(1)),
		engine.NewDict().Set("a", engine.Int(1)),
	}
	falsy := []engine.Value{
		nil,
		engine.Str(""),
		engine.Int(0),
		engine.Float(0),
		engine.Bool(false),
		engine.NewList(),
		engine.NewDict(),
	}
	for _, v := range truthy {
		if !engine.Truth(v) {
			t.Fatalf("expected %v to be truthy", v)
		}
	}
	for _, v := range falsy {
		if engine.Truth(v) {
			t.Fatalf("expected %v to be falsy", v)
		}
	}
}

func TestIterateString(t *testing.T) {
	elems, ok := engine.Iterate(engine.Str("ab"))
	if !ok {
		t.Fatal("strings iterate")
	}
	if len(elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elems))
	}
	if _, isChar := elems[0].(engine.Char); !isChar {
		t.Fatalf("string elements are chars, got %T", elems[0])
	}
}

func TestIterateDictYieldsKeys(t *testing.T) {
	d := engine.NewDict().Set("b", engine.Int(2)).Set("a", engine.Int(1))
	elems, ok := engine.Iterate(d)
	if !ok {
		t.Fatal("dicts iterate")
	}
	if len(elems) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(elems))
	}
	if elems[0] != engine.Str("b") || elems[1] != engine.Str("a") {
		t.Fatalf("expected insertion-ordered keys, got %v", elems)
	}
}

func TestIterateNonSequence(t *testing.T) {
	if _, ok := engine.Iterate(engine.Int(5)); ok {
		t.Fatal("integers must not iterate")
	}
}

func TestTypeName(t *testing.T) {
	cases := []struct {
		v    engine.Value
		want string
	}{
		{engine.Str(""), "str"},
		{engine.Char('a'), "char"},
		{engine.Int(0), "int"},
		{engine.Float(0), "float"},
		{engine.Bool(false), "bool"},
		{engine.NewList(), "list"},
		{engine.NewDict(), "dict"},
	}
	for _, c := range cases {
		name, ok := engine.TypeName(c.v)
		if !ok || name != c.want {
			t.Fatalf("TypeName(%T): expected %q, got %q ok=%v", c.v, c.want, name, ok)
		}
	}
	if _, ok := engine.TypeName(nil); ok {
		t.Fatal("nil has no type name")
	}
}

func TestTypeNameOfNonBuiltin(t *testing.T) {
	if _, ok := engine.TypeNameOf(engine.Type[engine.Cycler]()); ok {
		t.Fatal("cycler is not a built-in value type")
	}
}

func TestStrMethods(t *testing.T) {
	if got := engine.Str("hello WORLD").Title(); got != "Hello World" {
		t.Fatalf("Title: got %q", got)
	}
	if got := engine.Str("hELLO").Capitalize(); got != "Hello" {
		t.Fatalf("Capitalize: got %q", got)
	}
	parts := engine.Str("a,b,c").Split(",")
	if got := parts.Join(","); got != "a,b,c" {
		t.Fatalf("Split/Join roundtrip: got %q", got)
	}
	if !engine.Str("hello").StartsWith("he") || !engine.Str("hello").EndsWith("lo") {
		t.Fatal("StartsWith/EndsWith")
	}
}

func TestLoopCycle(t *testing.T) {
	samples := engine.DefaultSamples()
	var loop engine.Value
	for _, s := range samples {
		if name, _ := engine.TypeName(s); name == "loop" {
			loop = s
		}
	}
	if loop == nil {
		t.Fatal("expected a loop sample")
	}
	l := loop.(engine.Loop)
	if got := l.Cycle(engine.Str("odd"), engine.Str("even")); got != engine.Str("odd") {
		t.Fatalf("Cycle at index 0: got %v", got)
	}
	if l.Index != 1 || l.Index0 != 0 || !bool(l.First) {
		t.Fatalf("unexpected loop state: %+v", l)
	}
}
