package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// registerDefaultFilters fills r with the engine's default filter namespace.
// Every filter takes the piped value as its first parameter; a parameter
// named environment is injected by the renderer and never user-facing.
func registerDefaultFilters(r *Registry) {
	r.Add("upper", filterUpper)
	r.Add("lower", filterLower)
	r.Add("capitalize", filterCapitalize)
	r.Add("title", filterTitle)
	r.Add("trim", filterTrim)
	r.Add("replace", filterReplace, WithDefault("count", Int(-1)))
	r.Add("truncate", filterTruncate,
		WithDefault("length", Int(255)),
		WithDefault("killwords", Bool(false)),
		WithDefault("end", Str("...")))
	r.Add("wordwrap", filterWordwrap, WithDefault("width", Int(80)))
	r.Add("center", filterCenter, WithDefault("width", Int(80)))
	r.Add("indent", filterIndent,
		WithDefault("width", Int(4)),
		WithDefault("first", Bool(false)))
	r.Add("join", filterJoin, WithDefault("sep", Str("")))
	r.Add("first", filterFirst)
	r.Add("last", filterLast)
	r.Add("length", filterLength)
	r.Add("reverse", filterReverse)
	r.Add("sort", filterSort, WithDefault("reverse", Bool(false)))
	r.Add("batch", filterBatch)
	r.Add("round", filterRound,
		WithDefault("precision", Int(0)),
		WithDefault("method", Str("common")))
	r.Add("abs", filterAbs)
	r.Add("default", filterDefault, WithDefault("boolean", Bool(false)))
	r.Add("attr", filterAttr)
	r.Add("tojson", filterToJSON)
}

// Convert a string to uppercase.
func filterUpper(s Str) Str { return s.Upper() }

// Convert a string to lowercase.
func filterLower(s Str) Str { return s.Lower() }

// Capitalize a string: uppercase the first character, lowercase the rest.
func filterCapitalize(s Str) Str { return s.Capitalize() }

// Return a titlecased version of the string: every word starts with an
// uppercase character.
func filterTitle(s Str) Str { return s.Title() }

// Strip leading and trailing whitespace.
func filterTrim(s Str) Str { return s.Trim() }

// Replace occurrences of a substring with a new one.
//
// A non-negative count limits how many occurrences are replaced, counting
// from the left.
func filterReplace(s Str, old, new Str, count Int) Str {
	if count < 0 {
		return s.Replace(old, new)
	}
	return Str(strings.Replace(string(s), string(old), string(new), int(count)))
}

// Truncate a string to at most the given length.
//
// The cut happens at a word boundary unless killwords is true. The end
// marker is appended whenever anything was cut off.
func filterTruncate(environment *Environment, s Str, length Int, killwords Bool, end Str) (Str, error) {
	if length < 0 {
		return "", fmt.Errorf("length must not be negative, got %d", length)
	}
	text := string(s)
	if len(text) <= int(length) {
		return s, nil
	}
	cut := text[:int(length)]
	if !killwords {
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
	}
	return Str(strings.TrimRight(cut, " ") + string(end)), nil
}

// Wrap text at a given line width.
//
// Existing newlines are discarded and lines are broken at word boundaries;
// words longer than the width are left intact.
func filterWordwrap(s Str, width Int) Str {
	words := strings.Fields(string(s))
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > int(width) {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return Str(b.String())
}

// Center a string within a field of the given width.
func filterCenter(s Str, width Int) Str {
	pad := int(width) - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return Str(strings.Repeat(" ", left) + string(s) + strings.Repeat(" ", pad-left))
}

// Indent every line of the string by the given number of spaces.
//
// The first line is left alone unless first is true.
func filterIndent(s Str, width Int, first Bool) (Str, error) {
	if width < 0 {
		return "", fmt.Errorf("width must not be negative, got %d", width)
	}
	prefix := strings.Repeat(" ", int(width))
	lines := strings.Split(string(s), "\n")
	for i := range lines {
		if i == 0 && !first {
			continue
		}
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return Str(strings.Join(lines, "\n")), nil
}

// Join the elements of a sequence into a single string.
func filterJoin(seq Value, sep Str) (Value, error) {
	elems, ok := Iterate(seq)
	if !ok {
		return nil, fmt.Errorf("value of type %s is not iterable", nameOrKind(seq))
	}
	parts := make([]string, len(elems))
	for i, v := range elems {
		parts[i] = Literal(v)
	}
	return Str(strings.Join(parts, string(sep))), nil
}

// Return the first element of a sequence.
func filterFirst(seq Value) (Value, error) {
	elems, ok := Iterate(seq)
	if !ok {
		return nil, fmt.Errorf("value of type %s is not iterable", nameOrKind(seq))
	}
	if len(elems) == 0 {
		return nil, nil
	}
	return elems[0], nil
}

// Return the last element of a sequence.
func filterLast(seq Value) (Value, error) {
	elems, ok := Iterate(seq)
	if !ok {
		return nil, fmt.Errorf("value of type %s is not iterable", nameOrKind(seq))
	}
	if len(elems) == 0 {
		return nil, nil
	}
	return elems[len(elems)-1], nil
}

// Return the number of elements of a sequence or mapping.
func filterLength(v Value) (Value, error) {
	if elems, ok := Iterate(v); ok {
		return Int(len(elems)), nil
	}
	return nil, fmt.Errorf("value of type %s has no length", nameOrKind(v))
}

// Reverse a string or a sequence.
func filterReverse(v Value) (Value, error) {
	if s, ok := v.(Str); ok {
		runes := []rune(string(s))
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return Str(runes), nil
	}
	elems, ok := Iterate(v)
	if !ok {
		return nil, fmt.Errorf("value of type %s is not iterable", nameOrKind(v))
	}
	out := make([]Value, len(elems))
	for i, e := range elems {
		out[len(elems)-1-i] = e
	}
	return NewList(out...), nil
}

// Sort the elements of a sequence by their literal rendering.
func filterSort(seq Value, reverse Bool) (Value, error) {
	elems, ok := Iterate(seq)
	if !ok {
		return nil, fmt.Errorf("value of type %s is not iterable", nameOrKind(seq))
	}
	out := append([]Value(nil), elems...)
	sort.SliceStable(out, func(i, j int) bool {
		less := Literal(out[i]) < Literal(out[j])
		if reverse {
			return !less
		}
		return less
	})
	return NewList(out...), nil
}

// Group the elements of a sequence into lists of the given size, the last
// group possibly shorter.
func filterBatch(seq Value, count Int) (Value, error) {
	if count <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", count)
	}
	elems, ok := Iterate(seq)
	if !ok {
		return nil, fmt.Errorf("value of type %s is not iterable", nameOrKind(seq))
	}
	var groups []Value
	for start := 0; start < len(elems); start += int(count) {
		end := start + int(count)
		if end > len(elems) {
			end = len(elems)
		}
		groups = append(groups, NewList(elems[start:end]...))
	}
	return NewList(groups...), nil
}

// Round a number to the given precision.
//
// The method is one of common, ceil or floor; common rounds half away from
// zero.
func filterRound(v Value, precision Int, method Str) (Value, error) {
	var f float64
	switch n := v.(type) {
	case Int:
		f = float64(n)
	case Float:
		f = float64(n)
	default:
		return nil, fmt.Errorf("value of type %s is not a number", nameOrKind(v))
	}
	shift := math.Pow(10, float64(precision))
	switch method {
	case "common":
		return Float(math.Round(f*shift) / shift), nil
	case "ceil":
		return Float(math.Ceil(f*shift) / shift), nil
	case "floor":
		return Float(math.Floor(f*shift) / shift), nil
	default:
		return nil, fmt.Errorf("unknown rounding method %q", method)
	}
}

// Return the absolute value of a number.
func filterAbs(v Value) (Value, error) {
	switch n := v.(type) {
	case Int:
		return n.Abs(), nil
	case Float:
		return n.Abs(), nil
	default:
		return nil, fmt.Errorf("value of type %s is not a number", nameOrKind(v))
	}
}

// Return the value, or a fallback if the value is undefined.
//
// With boolean set, any falsy value selects the fallback as well.
func filterDefault(v Value, fallback Value, boolean Bool) Value {
	if v == nil {
		return fallback
	}
	if bool(boolean) && !Truth(v) {
		return fallback
	}
	return v
}

// Look up an attribute of a value by name.
func filterAttr(environment *Environment, v Value, name Str) (Value, error) {
	if d, ok := v.(Dict); ok {
		if got := d.Get(name); got != nil {
			return got, nil
		}
		return nil, fmt.Errorf("dict has no key %q", name)
	}
	got, err := attrByReflection(v, string(name))
	if err != nil {
		return nil, err
	}
	return got, nil
}

// Serialize a value to a JSON string.
func filterToJSON(v Value) (Value, error) {
	data, err := json.Marshal(nativeValue(v))
	if err != nil {
		return nil, fmt.Errorf("tojson: %w", err)
	}
	return Str(data), nil
}

func roundTo(f float64, digits int) float64 {
	shift := math.Pow(10, float64(digits))
	return math.Round(f*shift) / shift
}

// nativeValue lowers a Value to the plain Go shape encoding/json expects.
func nativeValue(v Value) any {
	switch t := v.(type) {
	case nil:
		return nil
	case Str:
		return string(t)
	case Char:
		return string(rune(t))
	case Int:
		return int64(t)
	case Float:
		return float64(t)
	case Bool:
		return bool(t)
	case List:
		out := make([]any, 0, t.length())
		for _, e := range t.elems() {
			out = append(out, nativeValue(e))
		}
		return out
	case Dict:
		out := make(map[string]any, len(t.keys))
		for _, k := range t.keys {
			out[k] = nativeValue(t.items[k])
		}
		return out
	default:
		return Literal(v)
	}
}

func nameOrKind(v Value) string {
	if v == nil {
		return "none"
	}
	if name, ok := TypeName(v); ok {
		return name
	}
	return fmt.Sprintf("%T", v)
}
