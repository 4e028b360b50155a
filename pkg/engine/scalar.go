package engine

import (
	"strconv"
	"strings"
)

// Str is the engine's string type.
type Str string

func (s Str) literal() string { return string(s) }
func (s Str) truth() bool     { return len(s) > 0 }

// Iterating a string yields its characters, not substrings.
func (s Str) elems() []Value {
	out := make([]Value, 0, len(s))
	for _, r := range string(s) {
		out = append(out, Char(r))
	}
	return out
}

// Upper returns a copy of the string with all characters uppercased.
func (s Str) Upper() Str { return Str(strings.ToUpper(string(s))) }

// Lower returns a copy of the string with all characters lowercased.
func (s Str) Lower() Str { return Str(strings.ToLower(string(s))) }

// Title returns a copy of the string with the first character of every word
// uppercased and the rest lowercased.
func (s Str) Title() Str {
	words := strings.Fields(string(s))
	for i, w := range words {
		words[i] = capitalizeWord(strings.ToLower(w))
	}
	return Str(strings.Join(words, " "))
}

// Capitalize returns a copy of the string with its first character uppercased
// and the remainder lowercased.
//
// Unlike Title, word boundaries after the first character are ignored.
func (s Str) Capitalize() Str { return Str(capitalizeWord(strings.ToLower(string(s)))) }

// Trim returns a copy of the string with leading and trailing whitespace
// removed.
func (s Str) Trim() Str { return Str(strings.TrimSpace(string(s))) }

// Replace returns a copy of the string with every occurrence of old replaced
// by new.
func (s Str) Replace(old, new Str) Str {
	return Str(strings.ReplaceAll(string(s), string(old), string(new)))
}

// Split breaks the string around each occurrence of sep and returns the
// pieces as a list.
func (s Str) Split(sep Str) List {
	parts := strings.Split(string(s), string(sep))
	items := make([]Value, len(parts))
	for i, p := range parts {
		items[i] = Str(p)
	}
	return NewList(items...)
}

// StartsWith reports whether the string begins with prefix.
func (s Str) StartsWith(prefix Str) Bool {
	return Bool(strings.HasPrefix(string(s), string(prefix)))
}

// EndsWith reports whether the string ends with suffix.
func (s Str) EndsWith(suffix Str) Bool {
	return Bool(strings.HasSuffix(string(s), string(suffix)))
}

func capitalizeWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

// Char is a single character of a string. It is deliberately not part of the
// sample set the language server learns about, so iterating a string never
// produces a unified element type.
type Char rune

func (c Char) literal() string { return string(rune(c)) }
func (c Char) truth() bool     { return c != 0 }

// Int is the engine's integer type.
type Int int64

func (i Int) literal() string { return strconv.FormatInt(int64(i), 10) }
func (i Int) truth() bool     { return i != 0 }

// Abs returns the absolute value of the integer.
func (i Int) Abs() Int {
	if i < 0 {
		return -i
	}
	return i
}

// Float is the engine's floating point type.
type Float float64

func (f Float) literal() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (f Float) truth() bool     { return f != 0 }

// Abs returns the absolute value of the float.
func (f Float) Abs() Float {
	if f < 0 {
		return -f
	}
	return f
}

// Round rounds the float to the given number of decimal digits.
func (f Float) Round(digits Int) Float {
	return Float(roundTo(float64(f), int(digits)))
}

// Bool is the engine's boolean type.
type Bool bool

func (b Bool) literal() string { return strconv.FormatBool(bool(b)) }
func (b Bool) truth() bool     { return bool(b) }
