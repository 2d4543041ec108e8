package aln

import "github.com/matzehuels/alnglyph/pkg/coord"

// Alignment is either [Pairwise] or [Multiple].
type Alignment interface {
	Source() Source
	isAlignment()
}

// Pairwise is an alignment of one row against the anchor.
type Pairwise struct{ src Source }

// Multiple is an alignment of several rows against the anchor.
type Multiple struct{ src Source }

func (p Pairwise) Source() Source { return p.src }
func (m Multiple) Source() Source { return m.src }

func (Pairwise) isAlignment() {}
func (Multiple) isAlignment() {}

// New wraps src, choosing the variant from its row count.
// A nil source yields nil.
func New(src Source) Alignment {
	if src == nil {
		return nil
	}
	if src.NumRows() == 2 {
		return Pairwise{src: src}
	}
	return Multiple{src: src}
}

// AnchorRange returns the anchor's aligned native range. The layout's model
// axis is the anchor's native axis.
func AnchorRange(s Source) coord.Range {
	return s.Row(s.Anchor()).Native
}

// AnchorToAln converts an anchor model range into the alignment range it covers.
func AnchorToAln(s Source, r coord.Range) coord.Range {
	return coord.RowRangeToAln(r, s.Row(s.Anchor()))
}

// AlnToAnchor converts an alignment range into anchor model units.
func AlnToAnchor(s Source, r coord.Range) coord.Range {
	return coord.AlnRangeToRow(r, s.Row(s.Anchor()))
}
