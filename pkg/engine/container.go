package engine

import "strings"

// List is an ordered sequence of values.
type List struct {
	items []Value
}

// NewList builds a list from the given items.
func NewList(items ...Value) List {
	return List{items: items}
}

func (l List) literal() string {
	parts := make([]string, len(l.items))
	for i, v := range l.items {
		parts[i] = Literal(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l List) truth() bool    { return len(l.items) > 0 }
func (l List) elems() []Value { return append([]Value(nil), l.items...) }
func (l List) length() int    { return len(l.items) }

// First returns the first element, or nil for an empty list.
func (l List) First() Value {
	if len(l.items) == 0 {
		return nil
	}
	return l.items[0]
}

// Last returns the last element, or nil for an empty list.
func (l List) Last() Value {
	if len(l.items) == 0 {
		return nil
	}
	return l.items[len(l.items)-1]
}

// Reverse returns a copy of the list with its elements in reverse order.
func (l List) Reverse() List {
	out := make([]Value, len(l.items))
	for i, v := range l.items {
		out[len(l.items)-1-i] = v
	}
	return NewList(out...)
}

// Includes reports whether the list contains an element whose literal
// rendering equals that of v.
func (l List) Includes(v Value) Bool {
	want := Literal(v)
	for _, item := range l.items {
		if Literal(item) == want {
			return true
		}
	}
	return false
}

// Join concatenates the literal renderings of all elements, separated by sep.
func (l List) Join(sep Str) Str {
	parts := make([]string, len(l.items))
	for i, v := range l.items {
		parts[i] = Literal(v)
	}
	return Str(strings.Join(parts, string(sep)))
}

// Dict is a string-keyed mapping that remembers insertion order.
type Dict struct {
	keys  []string
	items map[string]Value
}

// NewDict returns an empty dict.
func NewDict() Dict {
	return Dict{items: map[string]Value{}}
}

func (d Dict) literal() string {
	parts := make([]string, len(d.keys))
	for i, k := range d.keys {
		parts[i] = k + ": " + Literal(d.items[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (d Dict) truth() bool { return len(d.keys) > 0 }

// Iterating a dict yields its keys, in insertion order.
func (d Dict) elems() []Value {
	out := make([]Value, len(d.keys))
	for i, k := range d.keys {
		out[i] = Str(k)
	}
	return out
}

// Set stores a value under key and returns the updated dict. Existing keys
// keep their original position.
func (d Dict) Set(key Str, v Value) Dict {
	if d.items == nil {
		d.items = map[string]Value{}
	}
	if _, ok := d.items[string(key)]; !ok {
		d.keys = append(d.keys, string(key))
	}
	d.items[string(key)] = v
	return d
}

// Get returns the value stored under key, or nil when the key is absent.
func (d Dict) Get(key Str) Value {
	return d.items[string(key)]
}

// Has reports whether key is present.
func (d Dict) Has(key Str) Bool {
	_, ok := d.items[string(key)]
	return Bool(ok)
}

// Keys returns the dict's keys as a list, in insertion order.
func (d Dict) Keys() List {
	return NewList(d.elems()...)
}

// Values returns the dict's values as a list, in key insertion order.
func (d Dict) Values() List {
	out := make([]Value, len(d.keys))
	for i, k := range d.keys {
		out[i] = d.items[k]
	}
	return NewList(out...)
}

func (d Dict) Len() Int {
	return Int(len(d.keys))
}
