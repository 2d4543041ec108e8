package coord

// Strand is the orientation of a row relative to the alignment axis.
type Strand int8

const (
	Forward Strand = iota
	Reverse
)

func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// ParseStrand accepts "+", "-", "forward", "reverse", "plus" and "minus".
// Anything else is treated as forward.
func ParseStrand(s string) Strand {
	switch s {
	case "-", "reverse", "minus", "rev":
		return Reverse
	}
	return Forward
}

// Row describes one aligned sequence for the duration of a layout pass.
type Row struct {
	Index     int
	BaseWidth int    // native units per alignment unit step; 1 or 3
	Strand    Strand // orientation relative to the alignment axis
	Native    Range  // aligned part of the sequence, native units
	AlnFrom   int    // alignment position of the first aligned base
	Circular  int    // sequence length when circular, else 0
}

// Width returns the base width, treating non-positive values as 1.
func (r Row) Width() int {
	if r.BaseWidth <= 0 {
		return 1
	}
	return r.BaseWidth
}

// Reverse reports whether the row runs against the alignment axis.
func (r Row) Reverse() bool { return r.Strand == Reverse }

// AlnSpan returns the alignment range covered by the row's native range.
func (r Row) AlnSpan() Range {
	return Range{From: r.AlnFrom, To: r.AlnFrom + r.Native.Len()*r.Width()}
}

// ToRowPosition converts an alignment position into a native position on row.
// The offset from the row's alignment start is divided by the base width,
// rounding toward the containing codon; reverse rows are mirrored around
// their native range.
func ToRowPosition(alnPos int, row Row) int {
	off := floorDiv(alnPos-row.AlnFrom, row.Width())
	var pos int
	if row.Reverse() {
		pos = row.Native.To - 1 - off
	} else {
		pos = row.Native.From + off
	}
	return Wrap(pos, row.Circular)
}

// ToAnchorPosition converts a native position on row back into alignment
// space. It is the inverse of [ToRowPosition] at codon granularity.
func ToAnchorPosition(rowPos int, row Row) int {
	var off int
	if row.Reverse() {
		off = row.Native.To - 1 - rowPos
	} else {
		off = rowPos - row.Native.From
	}
	if row.Circular > 0 {
		off = Wrap(off, row.Circular)
	}
	return row.AlnFrom + off*row.Width()
}

// FrameShift returns the codon phase of an alignment offset, in [0, width).
func FrameShift(offset, width int) int {
	if width <= 1 {
		return 0
	}
	return offset - floorDiv(offset, width)*width
}

// AlnRangeToRow maps an alignment range onto the row's native axis. The result
// is always ordered; reverse rows swap the mapped ends. An empty alignment
// range yields an empty native range anchored at the mapped start.
func AlnRangeToRow(r Range, row Row) Range {
	first := ToRowPosition(r.From, row)
	if r.Empty() {
		if row.Reverse() {
			first++
		}
		return Range{From: first, To: first}
	}
	last := ToRowPosition(r.To-1, row)
	if first > last {
		first, last = last, first
	}
	return Range{From: first, To: last + 1}
}

// RowRangeToAln maps a native range on row into alignment space.
func RowRangeToAln(r Range, row Row) Range {
	if r.Empty() {
		return Range{From: ToAnchorPosition(r.From, row), To: ToAnchorPosition(r.From, row)}
	}
	a := ToAnchorPosition(r.From, row)
	b := ToAnchorPosition(r.To-1, row)
	if a > b {
		a, b = b, a
	}
	return Range{From: a, To: b + row.Width()}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
