package engine

// Loop is the implicit helper value available inside a for block. The
// renderer fills one in per iteration; the language server learns its shape
// from the sample in DefaultSamples.
type Loop struct {
	// Index is the current iteration, starting at 1.
	Index Int

	// Index0 is the current iteration, starting at 0.
	Index0 Int

	// Revindex counts iterations from the end of the sequence, ending at 1.
	Revindex Int

	// First is true on the first iteration.
	First Bool

	// Last is true on the last iteration.
	Last Bool

	// Length is the total number of iterations.
	Length Int

	// Parent is the loop value of the enclosing for block, if any.
	Parent *Loop
}

func (l Loop) literal() string { return "loop" }
func (l Loop) truth() bool     { return true }

// Cycle picks the value at the current iteration index, wrapping around when
// the iteration count exceeds the number of values given.
func (l Loop) Cycle(values ...Value) Value {
	if len(values) == 0 {
		return nil
	}
	return values[int(l.Index0)%len(values)]
}

// newLoop builds the loop value for iteration i of n total iterations.
func newLoop(i, n int, parent *Loop) Loop {
	return Loop{
		Index:    Int(i + 1),
		Index0:   Int(i),
		Revindex: Int(n - i),
		First:    Bool(i == 0),
		Last:     Bool(i == n-1),
		Length:   Int(n),
		Parent:   parent,
	}
}
