package engine

import (
	"fmt"
	"reflect"
	"strings"
)

// Context is the per-render state handed to every global as its implicit
// first argument. Filters and tests receive the subject value instead; both
// may additionally ask for the *Environment by declaring a parameter of that
// type.
type Context struct {
	env *Environment
}

// NewContext returns a context bound to env.
func NewContext(env *Environment) *Context {
	return &Context{env: env}
}

// Env returns the environment the context renders against.
func (c *Context) Env() *Environment {
	return c.env
}

// constructible is implemented by the value types that can be registered as
// globals and built with arguments, e.g. cycler or joiner.
type constructible interface {
	construct(c *Context, args []Value) error
}

var (
	contextType     = reflect.TypeOf((*Context)(nil))
	environmentType = reflect.TypeOf((*Environment)(nil))
	valueType       = reflect.TypeOf((*Value)(nil)).Elem()
	errorType       = reflect.TypeOf((*error)(nil)).Elem()
)

// ApplyFilter runs the named filter on subject with the given arguments.
func (c *Context) ApplyFilter(name string, subject Value, args ...Value) (Value, error) {
	b, ok := c.env.Filters.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown filter %q", name)
	}
	out, err := c.call(b, subject, true, args)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", name, err)
	}
	return out, nil
}

// EvalTest runs the named test on subject and reports its truthiness.
func (c *Context) EvalTest(name string, subject Value, args ...Value) (bool, error) {
	b, ok := c.env.Tests.Lookup(name)
	if !ok {
		return false, fmt.Errorf("unknown test %q", name)
	}
	out, err := c.call(b, subject, true, args)
	if err != nil {
		return false, fmt.Errorf("test %q: %w", name, err)
	}
	return Truth(out), nil
}

// CallGlobal invokes the named global. Constructible globals are built with
// the given arguments.
func (c *Context) CallGlobal(name string, args ...Value) (Value, error) {
	b, ok := c.env.Globals.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown global %q", name)
	}
	out, err := c.call(b, nil, false, args)
	if err != nil {
		return nil, fmt.Errorf("global %q: %w", name, err)
	}
	return out, nil
}

// call invokes a builtin through reflection. Context and Environment
// parameters are injected by type; the subject (when present) fills the
// first remaining slot, explicit arguments the next ones, and declared
// defaults the trailing ones.
func (c *Context) call(b *Builtin, subject Value, hasSubject bool, args []Value) (Value, error) {
	if t, ok := b.Fn.(reflect.Type); ok {
		// A constructible called without arguments receives its declared
		// defaults in registration order.
		if len(args) == 0 && len(b.Defaults) > 0 {
			args = make([]Value, len(b.Defaults))
			for i, d := range b.Defaults {
				args[i] = d.Value
			}
		}
		return c.constructValue(t, args)
	}

	fv := reflect.ValueOf(b.Fn)
	if fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("entry is not callable")
	}
	ft := fv.Type()
	n := ft.NumIn()

	// Count the positional slots so defaults can be aligned to the tail.
	declared := 0
	for i := 0; i < n; i++ {
		if pt := ft.In(i); pt != contextType && pt != environmentType {
			declared++
		}
	}
	if ft.IsVariadic() {
		declared--
	}

	subjectPending := hasSubject
	argIdx := 0
	next := func() (Value, bool) {
		if subjectPending {
			subjectPending = false
			return subject, true
		}
		if argIdx < len(args) {
			v := args[argIdx]
			argIdx++
			return v, true
		}
		return nil, false
	}

	in := make([]reflect.Value, 0, n)
	slot := 0
	for i := 0; i < n; i++ {
		pt := ft.In(i)
		switch pt {
		case contextType:
			in = append(in, reflect.ValueOf(c))
			continue
		case environmentType:
			in = append(in, reflect.ValueOf(c.env))
			continue
		}

		if ft.IsVariadic() && i == n-1 {
			et := pt.Elem()
			for {
				v, ok := next()
				if !ok {
					break
				}
				cv, err := coerceArg(v, et)
				if err != nil {
					return nil, err
				}
				in = append(in, cv)
			}
			break
		}

		v, ok := next()
		if !ok {
			di := slot - (declared - len(b.Defaults))
			if di < 0 || di >= len(b.Defaults) {
				return nil, fmt.Errorf("missing argument %d", slot+1)
			}
			v = b.Defaults[di].Value
		}
		cv, err := coerceArg(v, pt)
		if err != nil {
			return nil, err
		}
		in = append(in, cv)
		slot++
	}

	if !ft.IsVariadic() && argIdx < len(args) {
		return nil, fmt.Errorf("too many arguments: got %d extra", len(args)-argIdx)
	}

	return unpackResults(fv.Call(in))
}

// constructValue builds a registered constructible type.
func (c *Context) constructValue(t reflect.Type, args []Value) (Value, error) {
	pv := reflect.New(t)
	cons, ok := pv.Interface().(constructible)
	if !ok {
		return nil, fmt.Errorf("type %s is not constructible", t.Name())
	}
	if err := cons.construct(c, args); err != nil {
		return nil, err
	}
	v, ok := pv.Interface().(Value)
	if !ok {
		return nil, fmt.Errorf("type %s is not a value", t.Name())
	}
	return v, nil
}

func coerceArg(v Value, pt reflect.Type) (reflect.Value, error) {
	if pt == valueType {
		if v == nil {
			return reflect.Zero(valueType), nil
		}
		return reflect.ValueOf(v), nil
	}
	if v == nil {
		return reflect.Value{}, fmt.Errorf("argument is none, %s expected", typeLabel(pt))
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(pt) {
		return reflect.Value{}, fmt.Errorf("argument of type %s where %s expected",
			typeLabel(rv.Type()), typeLabel(pt))
	}
	return rv, nil
}

func unpackResults(out []reflect.Value) (Value, error) {
	switch len(out) {
	case 1:
		return resultValue(out[0])
	case 2:
		if !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return resultValue(out[0])
	default:
		return nil, fmt.Errorf("builtin returned %d values", len(out))
	}
}

func resultValue(rv reflect.Value) (Value, error) {
	if rv.Type() == errorType {
		return nil, fmt.Errorf("builtin returned a bare error")
	}
	if !rv.IsValid() || (rv.Kind() == reflect.Interface && rv.IsNil()) {
		return nil, nil
	}
	v, ok := rv.Interface().(Value)
	if !ok {
		return nil, fmt.Errorf("builtin returned non-value type %s", rv.Type())
	}
	return v, nil
}

// attrByReflection resolves a template-facing attribute name (upper, keys,
// index, ...) against the exported fields and zero-argument methods of v.
func attrByReflection(v Value, name string) (Value, error) {
	if v == nil || name == "" {
		return nil, fmt.Errorf("none has no attribute %q", name)
	}
	goName := strings.ToUpper(name[:1]) + name[1:]
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Struct {
		if f, ok := rv.Type().FieldByName(goName); ok && f.IsExported() {
			if out, ok := rv.FieldByIndex(f.Index).Interface().(Value); ok {
				return out, nil
			}
		}
	}
	if m := rv.MethodByName(goName); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() == 1 {
		if out, ok := m.Call(nil)[0].Interface().(Value); ok {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%s has no attribute %q", nameOrKind(v), name)
}

func typeLabel(t reflect.Type) string {
	if name, ok := builtinTypeNames[t]; ok {
		return name
	}
	return t.String()
}
