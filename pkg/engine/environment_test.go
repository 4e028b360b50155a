package engine_test

import (
	"testing"

	"github.com/fern-lang/fern/pkg/engine"
)

func TestRegistryPreservesInsertionOrder(t *testing.T) {
	r := engine.NewRegistry()
	r.Add("beta", func(v engine.Value) engine.Value { return v })
	r.Add("alpha", func(v engine.Value) engine.Value { return v })
	r.Add("gamma", func(v engine.Value) engine.Value { return v })

	got := r.Names()
	want := []string{"beta", "alpha", "gamma"}
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("name %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRegistryReAddKeepsPosition(t *testing.T) {
	r := engine.NewRegistry()
	r.Add("a", func(v engine.Value) engine.Value { return v })
	r.Add("b", func(v engine.Value) engine.Value { return v })
	r.Add("a", func(v engine.Value) engine.Value { return v })

	if r.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", r.Len())
	}
	if names := r.Names(); names[0] != "a" || names[1] != "b" {
		t.Fatalf("unexpected order after re-add: %v", names)
	}
}

func TestWithDefault(t *testing.T) {
	r := engine.NewRegistry()
	r.Add("pad", func(s engine.Str, width engine.Int) engine.Str { return s },
		engine.WithDefault("width", engine.Int(80)))

	b, ok := r.Lookup("pad")
	if !ok {
		t.Fatal("expected pad to be registered")
	}
	dv, ok := b.DefaultFor("width")
	if !ok {
		t.Fatal("expected a default for width")
	}
	if dv != engine.Int(80) {
		t.Fatalf("unexpected default: %v", dv)
	}
	if _, ok := b.DefaultFor("s"); ok {
		t.Fatal("s must not have a default")
	}
}

func TestDefaultEnvironmentNamespaces(t *testing.T) {
	env := engine.DefaultEnvironment()

	for _, name := range []string{"upper", "truncate", "wordwrap", "tojson"} {
		if _, ok := env.Filters.Lookup(name); !ok {
			t.Fatalf("expected filter %q", name)
		}
	}
	for _, name := range []string{"defined", "even", "divisibleby"} {
		if _, ok := env.Tests.Lookup(name); !ok {
			t.Fatalf("expected test %q", name)
		}
	}
	for _, name := range []string{"range", "cycler", "joiner", "namespace"} {
		if _, ok := env.Globals.Lookup(name); !ok {
			t.Fatalf("expected global %q", name)
		}
	}
}
