package engine

// DefaultSamples returns one hand-picked representative value per built-in
// type the language server must recognize. The type catalog is derived from
// these by introspection; extending the engine with a new value type means
// adding a sample here.
func DefaultSamples() []Value {
	return []Value{
		Str("hello"),
		Int(1),
		Float(1.1),
		Bool(false),
		NewList(Int(1), Int(2), Int(3)),
		NewDict().Set("a", Int(1)).Set("b", Int(2)),
		newLoop(0, 3, nil),
	}
}
