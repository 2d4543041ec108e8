// Package classify tags the segments of one alignment row as aligned blocks,
// indels, intron gaps or unaligned tails, and maps each onto the row's native
// coordinates.
//
// The walk is forgiving: a malformed or failing segment stream stops the walk
// and the segments classified so far are returned with Degraded set.
package classify

import (
	"github.com/matzehuels/alnglyph/pkg/aln"
	"github.com/matzehuels/alnglyph/pkg/coord"
	"github.com/matzehuels/alnglyph/pkg/errors"
)

// Kind is the classification of a segment.
type Kind uint8

const (
	Aligned Kind = iota
	Indel
	Gap
	UnalignedTail
)

func (k Kind) String() string {
	switch k {
	case Aligned:
		return "aligned"
	case Indel:
		return "indel"
	case Gap:
		return "gap"
	case UnalignedTail:
		return "unaligned"
	}
	return "unknown"
}

// Segment is a classified segment. Aln is clipped to the requested range and
// Native is the matching range on the row.
type Segment struct {
	Kind   Kind
	Aln    coord.Range
	Native coord.Range
	Raw    aln.Segment
}

// Result is the outcome of classifying one row.
type Result struct {
	Row      int
	Segments []Segment
	Degraded bool
	Err      error // set when Degraded
}

// Aligned returns only the aligned segments of r.
func (r Result) Aligned() []Segment {
	var out []Segment
	for _, s := range r.Segments {
		if s.Kind == Aligned {
			out = append(out, s)
		}
	}
	return out
}

// Classify walks the segments of row over the alignment range rng.
func Classify(src aln.Source, row int, rng coord.Range) Result {
	res := Result{Row: row}
	if row < 0 || row >= src.NumRows() {
		res.Degraded = true
		res.Err = errors.New(errors.ErrCodeInvalidInput, "row %d out of range", row)
		return res
	}

	meta := src.Row(row)
	it := src.Segments(row, rng)
	prevEnd, started := 0, false
	for it.Next() {
		raw := it.Segment()
		if err := checkOrder(raw, prevEnd, started); err != nil {
			res.Degraded = true
			res.Err = errors.Wrap(errors.ErrCodeMalformedAlignment, err, "row %d", row)
			return res
		}
		prevEnd, started = max(prevEnd, raw.Aln.To), true

		seg, ok := classifyOne(raw, meta, rng)
		if !ok {
			continue
		}
		if seg.Kind == Aligned && !lengthsMatch(raw, meta.Width()) {
			res.Degraded = true
			res.Err = errors.New(errors.ErrCodeMalformedAlignment,
				"row %d: aligned segment %v has native length %d", row, raw.Aln, raw.Row.Len())
			return res
		}
		res.Segments = append(res.Segments, seg)
	}
	if err := it.Err(); err != nil {
		res.Degraded = true
		res.Err = errors.Wrap(errors.ErrCodeDataUnavailable, err, "row %d segments", row)
	}
	return res
}

func checkOrder(s aln.Segment, prevEnd int, started bool) error {
	if s.Aln.To < s.Aln.From {
		return errors.New(errors.ErrCodeMalformedAlignment, "decreasing alignment range %v", s.Aln)
	}
	if s.Row.To < s.Row.From {
		return errors.New(errors.ErrCodeMalformedAlignment, "decreasing row range %v", s.Row)
	}
	if started && s.Aln.From < prevEnd {
		return errors.New(errors.ErrCodeMalformedAlignment, "segment %v overlaps previous end %d", s.Aln, prevEnd)
	}
	return nil
}

func classifyOne(raw aln.Segment, meta coord.Row, rng coord.Range) (Segment, bool) {
	clipped := raw.Aln
	if !raw.Aln.Empty() {
		clipped = raw.Aln.Intersect(rng)
		if clipped.Empty() {
			return Segment{}, false
		}
	}

	seg := Segment{Aln: clipped, Raw: raw}
	switch {
	case raw.Unaligned:
		seg.Kind = UnalignedTail
	case !raw.Aln.Empty() && !raw.Row.Empty():
		seg.Kind = Aligned
	case raw.Intron && raw.Row.Empty():
		seg.Kind = Gap
	case raw.Aln.Empty() != raw.Row.Empty():
		seg.Kind = Indel
	default:
		return Segment{}, false
	}
	seg.Native = nativeRange(raw, clipped, meta)
	return seg, true
}

// nativeRange maps the clipped alignment range through a view of the row
// anchored at this segment, so gaps elsewhere in the row do not shift it.
func nativeRange(raw aln.Segment, clipped coord.Range, meta coord.Row) coord.Range {
	if raw.Aln.Empty() || raw.Row.Empty() {
		return raw.Row
	}
	view := meta
	view.Native = raw.Row
	view.AlnFrom = raw.Aln.From
	if raw.Reverse {
		view.Strand = coord.Reverse
	}
	return coord.AlnRangeToRow(clipped, view)
}

// lengthsMatch allows a partial codon of slack on rows counted in codons.
func lengthsMatch(s aln.Segment, width int) bool {
	d := s.Row.Len()*width - s.Aln.Len()
	return d > -width && d < width
}
