package coord

import "fmt"

// Range is a signed half-open interval [From, To).
type Range struct {
	From int `json:"from" toml:"from"`
	To   int `json:"to" toml:"to"`
}

// R is shorthand for Range{From: from, To: to}.
func R(from, to int) Range { return Range{From: from, To: to} }

// Len returns the number of positions in r, or 0 when r is empty.
func (r Range) Len() int {
	if r.To <= r.From {
		return 0
	}
	return r.To - r.From
}

// Empty reports whether r covers no positions.
func (r Range) Empty() bool { return r.To <= r.From }

// Contains reports whether pos lies in r.
func (r Range) Contains(pos int) bool { return pos >= r.From && pos < r.To }

// Overlaps reports whether r and o share at least one position.
func (r Range) Overlaps(o Range) bool {
	return !r.Empty() && !o.Empty() && r.From < o.To && o.From < r.To
}

// Intersect returns the overlap of r and o. The result is empty (with
// From == To) when they do not overlap.
func (r Range) Intersect(o Range) Range {
	out := Range{From: max(r.From, o.From), To: min(r.To, o.To)}
	if out.To < out.From {
		out.To = out.From
	}
	return out
}

// Union returns the smallest range covering both r and o.
// An empty operand is ignored.
func (r Range) Union(o Range) Range {
	switch {
	case r.Empty():
		return o
	case o.Empty():
		return r
	}
	return Range{From: min(r.From, o.From), To: max(r.To, o.To)}
}

// Shift moves r by delta positions.
func (r Range) Shift(delta int) Range { return Range{From: r.From + delta, To: r.To + delta} }

func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.From, r.To) }

// SplitCircular splits r at the origin of a circular sequence of length n.
// Positions are wrapped into [0, n). A range that does not cross the origin
// is returned as a single element. n <= 0 disables wrapping.
func SplitCircular(r Range, n int) []Range {
	if n <= 0 || r.Empty() {
		return []Range{r}
	}
	if r.Len() >= n {
		return []Range{{From: 0, To: n}}
	}
	from := Wrap(r.From, n)
	to := from + r.Len()
	if to <= n {
		return []Range{{From: from, To: to}}
	}
	return []Range{{From: from, To: n}, {From: 0, To: to - n}}
}

// Wrap maps pos into [0, n) for a circular sequence of length n.
// n <= 0 returns pos unchanged.
func Wrap(pos, n int) int {
	if n <= 0 {
		return pos
	}
	pos %= n
	if pos < 0 {
		pos += n
	}
	return pos
}
