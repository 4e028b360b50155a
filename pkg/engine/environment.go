package engine

import "sync"

// Builtin is a single named entry of a namespace: the callable (or
// constructible type) plus the registration metadata its author supplied.
// Go cannot recover parameter defaults by reflection, so defaults are
// declared explicitly at registration time and consumed both by the
// invocation layer and by catalog introspection.
type Builtin struct {
	Name     string
	Fn       any
	Defaults []Default
}

// Default records the declared default of one parameter. Defaults must be
// registered in parameter order and cover a suffix of the parameter list.
type Default struct {
	Param string
	Value Value
}

// DefaultFor returns the declared default for the named parameter.
func (b *Builtin) DefaultFor(param string) (Value, bool) {
	for _, d := range b.Defaults {
		if d.Param == param {
			return d.Value, true
		}
	}
	return nil, false
}

// Option configures a Builtin at registration time.
type Option func(*Builtin)

// WithDefault declares the default value of a parameter. The recorded
// literal form is Literal(v).
func WithDefault(param string, v Value) Option {
	return func(b *Builtin) {
		b.Defaults = append(b.Defaults, Default{Param: param, Value: v})
	}
}

// Registry stores the named entries of one namespace. It preserves
// registration order, which is the order catalogs are emitted in.
//
// The registry is safe for concurrent use by multiple goroutines.
type Registry struct {
	mu      sync.RWMutex
	names   []string
	entries map[string]*Builtin
}

// NewRegistry creates a new, empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[string]*Builtin{}}
}

// Add registers fn under name. Registering a name twice replaces the entry
// but keeps its original position.
func (r *Registry) Add(name string, fn any, opts ...Option) {
	b := &Builtin{Name: name, Fn: fn}
	for _, opt := range opts {
		opt(b)
	}
	r.mu.Lock()
	if _, ok := r.entries[name]; !ok {
		r.names = append(r.names, name)
	}
	r.entries[name] = b
	r.mu.Unlock()
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (*Builtin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.entries[name]
	return b, ok
}

// Names returns a copy of all registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make([]string, len(r.names))
	copy(cp, r.names)
	return cp
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Environment carries the three namespaces a template renders against.
type Environment struct {
	Filters *Registry
	Tests   *Registry
	Globals *Registry
}

// NewEnvironment returns an environment with empty namespaces.
func NewEnvironment() *Environment {
	return &Environment{
		Filters: NewRegistry(),
		Tests:   NewRegistry(),
		Globals: NewRegistry(),
	}
}

// DefaultEnvironment returns an environment populated with the engine's
// default filters, tests and globals.
func DefaultEnvironment() *Environment {
	env := NewEnvironment()
	registerDefaultFilters(env.Filters)
	registerDefaultTests(env.Tests)
	registerDefaultGlobals(env.Globals)
	return env
}
