package engine

import "fmt"

// registerDefaultTests fills r with the engine's default test namespace.
// Tests receive the tested value as their first parameter and report a
// boolean.
func registerDefaultTests(r *Registry) {
	r.Add("defined", testDefined)
	r.Add("undefined", testUndefined)
	r.Add("none", testNone)
	r.Add("boolean", testBoolean)
	r.Add("string", testString)
	r.Add("number", testNumber)
	r.Add("sequence", testSequence)
	r.Add("mapping", testMapping)
	r.Add("even", testEven)
	r.Add("odd", testOdd)
	r.Add("divisibleby", testDivisibleBy)
	r.Add("eq", testEq)
}

// Return true if the value is defined.
func testDefined(v Value) Bool { return v != nil }

// Return true if the value is undefined.
func testUndefined(v Value) Bool { return v == nil }

// Return true if the value is none.
func testNone(v Value) Bool { return v == nil }

// Return true if the value is a boolean.
func testBoolean(v Value) Bool {
	_, ok := v.(Bool)
	return Bool(ok)
}

// Return true if the value is a string.
func testString(v Value) Bool {
	_, ok := v.(Str)
	return Bool(ok)
}

// Return true if the value is an integer or a float.
func testNumber(v Value) Bool {
	switch v.(type) {
	case Int, Float:
		return true
	}
	return false
}

// Return true if the value is iterable.
func testSequence(v Value) Bool {
	_, ok := v.(sequence)
	return Bool(ok)
}

// Return true if the value is a mapping.
func testMapping(v Value) Bool {
	_, ok := v.(Dict)
	return Bool(ok)
}

// Return true if the number is even.
func testEven(i Int) Bool { return i%2 == 0 }

// Return true if the number is odd.
func testOdd(i Int) Bool { return i%2 != 0 }

// Check if a number is divisible by another number.
func testDivisibleBy(i Int, num Int) (Value, error) {
	if num == 0 {
		return nil, fmt.Errorf("divisibleby: divisor must not be zero")
	}
	return Bool(i%num == 0), nil
}

// Compare two values for equality by their literal rendering.
func testEq(v Value, other Value) Bool {
	return Bool(Literal(v) == Literal(other))
}
