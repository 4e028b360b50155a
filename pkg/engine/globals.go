package engine

import (
	"fmt"
	"strings"
)

// registerDefaultGlobals fills r with the engine's default global namespace.
// Function globals receive the render context as their implicit first
// argument; constructible globals are registered as types and built through
// their constructors.
func registerDefaultGlobals(r *Registry) {
	r.Add("range", globalRange, WithDefault("step", Int(1)))
	r.Add("lipsum", globalLipsum,
		WithDefault("n", Int(5)),
		WithDefault("html", Bool(false)))
	r.Add("dict", globalDict)
	r.Add("cycler", Type[Cycler]())
	r.Add("joiner", Type[Joiner](), WithDefault("sep", Str(", ")))
	r.Add("namespace", Type[Namespace]())
}

// Return a list of integers from start up to but not including stop.
func globalRange(ctx *Context, start, stop, step Int) (Value, error) {
	if step == 0 {
		return nil, fmt.Errorf("range: step must not be zero")
	}
	var items []Value
	if step > 0 {
		for i := start; i < stop; i += step {
			items = append(items, i)
		}
	} else {
		for i := start; i > stop; i += step {
			items = append(items, i)
		}
	}
	return NewList(items...), nil
}

const lipsumParagraph = "Lorem ipsum dolor sit amet, consectetur adipiscing " +
	"elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."

// Generate lorem ipsum placeholder text.
//
// Produces n paragraphs, wrapped in p tags when html is true.
func globalLipsum(ctx *Context, n Int, html Bool) (Str, error) {
	if n < 0 {
		return "", fmt.Errorf("lipsum: paragraph count must not be negative, got %d", n)
	}
	paras := make([]string, 0, n)
	for i := Int(0); i < n; i++ {
		if html {
			paras = append(paras, "<p>"+lipsumParagraph+"</p>")
		} else {
			paras = append(paras, lipsumParagraph)
		}
	}
	return Str(strings.Join(paras, "\n\n")), nil
}

// Build a dict from alternating key and value arguments.
func globalDict(ctx *Context, pairs ...Value) (Value, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: expected an even number of arguments, got %d", len(pairs))
	}
	d := NewDict()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(Str)
		if !ok {
			return nil, fmt.Errorf("dict: key %d is not a string", i/2)
		}
		d = d.Set(key, pairs[i+1])
	}
	return d, nil
}

// Cycler cycles through a fixed set of values, one per call.
//
// Useful for alternating CSS classes inside a loop.
type Cycler struct {
	values []Value
	pos    int
}

// NewCycler builds a cycler over the given values.
func NewCycler(ctx *Context, values ...Value) (*Cycler, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("cycler: at least one value is required")
	}
	return &Cycler{values: values}, nil
}

func (c *Cycler) construct(ctx *Context, args []Value) error {
	built, err := NewCycler(ctx, args...)
	if err != nil {
		return err
	}
	*c = *built
	return nil
}

func (c *Cycler) literal() string { return Literal(c.Current()) }
func (c *Cycler) truth() bool     { return true }

// Current returns the value the cycler is positioned on.
func (c *Cycler) Current() Value {
	return c.values[c.pos]
}

// Next returns the current value and advances the cycler.
func (c *Cycler) Next() Value {
	v := c.values[c.pos]
	c.pos = (c.pos + 1) % len(c.values)
	return v
}

// Reset moves the cycler back to its first value.
func (c *Cycler) Reset() {
	c.pos = 0
}

// Joiner emits its separator on every call except the first.
//
// A typical use is interleaving commas between items of unknown count.
type Joiner struct {
	sep    Str
	called bool
}

// NewJoiner builds a joiner with the given separator.
func NewJoiner(ctx *Context, sep Str) *Joiner {
	return &Joiner{sep: sep}
}

func (j *Joiner) construct(ctx *Context, args []Value) error {
	if len(args) != 1 {
		return fmt.Errorf("joiner: expected one separator argument, got %d", len(args))
	}
	sep, ok := args[0].(Str)
	if !ok {
		return fmt.Errorf("joiner: separator must be a string")
	}
	*j = *NewJoiner(ctx, sep)
	return nil
}

func (j *Joiner) literal() string { return string(j.sep) }
func (j *Joiner) truth() bool     { return true }

// Emit returns the separator, except on the first call, which returns the
// empty string.
func (j *Joiner) Emit() Str {
	if !j.called {
		j.called = true
		return ""
	}
	return j.sep
}

// Namespace is a writable attribute bag for carrying state across blocks.
type Namespace struct {
	attrs Dict
}

// NewNamespace builds a namespace from alternating name and value arguments.
func NewNamespace(ctx *Context, pairs ...Value) (*Namespace, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("namespace: expected an even number of arguments, got %d", len(pairs))
	}
	ns := &Namespace{attrs: NewDict()}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(Str)
		if !ok {
			return nil, fmt.Errorf("namespace: attribute name %d is not a string", i/2)
		}
		ns.attrs = ns.attrs.Set(name, pairs[i+1])
	}
	return ns, nil
}

func (n *Namespace) construct(ctx *Context, args []Value) error {
	built, err := NewNamespace(ctx, args...)
	if err != nil {
		return err
	}
	*n = *built
	return nil
}

func (n *Namespace) literal() string { return n.attrs.literal() }
func (n *Namespace) truth() bool     { return true }

// Get returns the named attribute, or nil when it was never set.
func (n *Namespace) Get(name Str) Value {
	return n.attrs.Get(name)
}

// Set stores an attribute under name.
func (n *Namespace) Set(name Str, v Value) {
	n.attrs = n.attrs.Set(name, v)
}
