// Package generator builds the static catalogs the editor front end ships
// with: one for the engine's filter/test/global namespaces and one for its
// built-in value types. Catalogs are plain data, built once per run and
// serialized immediately; there is no update path.
package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderedMap is a string-keyed mapping that marshals its entries in
// insertion order. encoding/json sorts plain map keys, which would break the
// guarantee that catalog order follows registration order.
type OrderedMap[V any] struct {
	keys    []string
	entries map[string]V
}

// NewOrderedMap allocates an empty ordered map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{entries: map[string]V{}}
}

// Set stores v under key. Re-setting a key keeps its original position.
func (m *OrderedMap[V]) Set(key string, v V) {
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = v
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// MarshalJSON writes the entries as a JSON object in insertion order.
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.entries[k])
		if err != nil {
			return nil, fmt.Errorf("marshal entry %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParameterDescriptor describes one user-facing parameter of a callable.
// Default marshals as null exactly when the parameter is required.
type ParameterDescriptor struct {
	Name    string  `json:"name" validate:"required"`
	Default *string `json:"default"`
}

// CallableDescriptor is one entry of a callable catalog.
type CallableDescriptor struct {
	Brief      string                `json:"brief" validate:"required"`
	Parameters []ParameterDescriptor `json:"parameters" validate:"dive"`
}

// CallableCatalog maps callable names to their descriptors, in registration
// order. Three are produced per run: filters, tests and globals.
type CallableCatalog = OrderedMap[CallableDescriptor]

// MemberSignature carries the hover documentation of a callable member.
// Member parameter lists are deliberately not recorded: type members feed
// hover text only.
type MemberSignature struct {
	Documentation string `json:"documentation"`
}

// MemberDescriptor is the nested form of a property: a callable member with
// its documentation.
type MemberDescriptor struct {
	Name      string          `json:"name" validate:"required"`
	Signature MemberSignature `json:"signature"`
}

// PropertyDescriptor is a union: a plain type name when the member's value
// is itself a built-in type, or a nested member record when it is callable.
type PropertyDescriptor struct {
	TypeName string
	Member   *MemberDescriptor
}

// MarshalJSON emits whichever arm of the union is set.
func (p PropertyDescriptor) MarshalJSON() ([]byte, error) {
	if p.Member != nil {
		return json.Marshal(p.Member)
	}
	return json.Marshal(p.TypeName)
}

// PropertyMap maps template-facing member names to property descriptors.
type PropertyMap = OrderedMap[PropertyDescriptor]

// TypeDescriptor is one entry of the type catalog.
type TypeDescriptor struct {
	Name        string       `json:"name" validate:"required"`
	Properties  *PropertyMap `json:"properties"`
	ElementType *string      `json:"elementType,omitempty"`
}

// TypeCatalog maps canonical type names to their descriptors, in sample
// order.
type TypeCatalog = OrderedMap[TypeDescriptor]
