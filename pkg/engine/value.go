// Package engine implements the Fern template engine's public surface: the
// built-in value types, the default filter/test/global namespaces, and a
// reflection-driven invocation layer. The catalog generator under
// internal/generator consumes this package read-only.
package engine

import "reflect"

// Value is implemented by every type the engine can place in a template
// expression. The protocol methods are unexported on purpose: only the
// template-facing methods of a value (Upper, Keys, Cycle, ...) are part of
// its public member set.
type Value interface {
	// literal renders the value the way it appears in documentation and in
	// recorded default values: no quoting, no type decoration.
	literal() string

	// truth reports whether the value is truthy in a boolean context.
	truth() bool
}

// sequence is implemented by values that can be iterated in a for loop.
type sequence interface {
	elems() []Value
}

// Literal returns the textual rendering of v used for default-value
// recording and string coercion.
func Literal(v Value) string {
	if v == nil {
		return "none"
	}
	return v.literal()
}

// Truth reports the truthiness of v. A nil value is falsy.
func Truth(v Value) bool {
	if v == nil {
		return false
	}
	return v.truth()
}

// Iterate enumerates the elements of v. The second result reports whether v
// is iterable at all; non-iterable values are not an error.
func Iterate(v Value) ([]Value, bool) {
	seq, ok := v.(sequence)
	if !ok {
		return nil, false
	}
	return seq.elems(), true
}

// builtinTypeNames is the closed enumeration of built-in value types, each
// tagged with the canonical name the language server sees. Classification of
// properties and elements is a lookup against this table, never an ad-hoc
// type comparison.
var builtinTypeNames = map[reflect.Type]string{
	reflect.TypeOf(Str("")):     "str",
	reflect.TypeOf(Char(0)):     "char",
	reflect.TypeOf(Int(0)):      "int",
	reflect.TypeOf(Float(0)):    "float",
	reflect.TypeOf(Bool(false)): "bool",
	reflect.TypeOf(List{}):      "list",
	reflect.TypeOf(Dict{}):      "dict",
	reflect.TypeOf(Loop{}):      "loop",
}

// TypeName returns the canonical type name for v. The second result is false
// when v is not one of the built-in value types.
func TypeName(v Value) (string, bool) {
	if v == nil {
		return "", false
	}
	name, ok := builtinTypeNames[reflect.TypeOf(v)]
	return name, ok
}

// TypeNameOf is the reflect.Type form of TypeName, used when classifying
// member values that may not implement Value.
func TypeNameOf(t reflect.Type) (string, bool) {
	name, ok := builtinTypeNames[t]
	return name, ok
}

// Type returns the reflect.Type of T. Constructible globals are registered
// with it so that introspection and invocation can tell a type apart from a
// plain function.
func Type[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
