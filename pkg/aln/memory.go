package aln

import "github.com/matzehuels/alnglyph/pkg/coord"

// MemoryRow is one row of a [Memory] alignment.
type MemoryRow struct {
	Meta     coord.Row
	Segments []Segment
	Tails    Tails
}

// Memory is an in-memory [Source]. Segments of each row are reported in the
// order given; Memory does not repair malformed input.
type Memory struct {
	Name      string
	AnchorRow int
	Rows      []MemoryRow
	ExonList  []Exon
	Negative  bool
	Status    ReadStatus
}

func (m *Memory) ID() string   { return m.Name }
func (m *Memory) NumRows() int { return len(m.Rows) }
func (m *Memory) Anchor() int  { return m.AnchorRow }

// Tails returns the unaligned flanks of row i.
func (m *Memory) Tails(i int) Tails {
	if i < 0 || i >= len(m.Rows) {
		return Tails{}
	}
	return m.Rows[i].Tails
}

// Row returns the metadata of row i with Index filled in.
func (m *Memory) Row(i int) coord.Row {
	if i < 0 || i >= len(m.Rows) {
		return coord.Row{Index: i, BaseWidth: 1}
	}
	r := m.Rows[i].Meta
	r.Index = i
	return r
}

// Exons implements [Spliced].
func (m *Memory) Exons() ([]Exon, bool) { return m.ExonList, m.Negative }

// ReadStatus implements [StatusReporter].
func (m *Memory) ReadStatus() ReadStatus { return m.Status }

// Segments returns the segments of row whose alignment range overlaps r.
// Insertions (empty alignment range) are included when their position lies
// inside r.
func (m *Memory) Segments(row int, r coord.Range) SegmentIterator {
	if row < 0 || row >= len(m.Rows) {
		return &sliceIterator{}
	}
	var out []Segment
	for _, s := range m.Rows[row].Segments {
		if s.Aln.Empty() {
			if s.Aln.From >= r.From && s.Aln.From <= r.To {
				out = append(out, s)
			}
			continue
		}
		if s.Aln.Overlaps(r) {
			out = append(out, s)
		}
	}
	return &sliceIterator{segs: out, pos: -1}
}

// Iterate returns an iterator over a fixed slice of segments.
func Iterate(segs []Segment) SegmentIterator { return &sliceIterator{segs: segs, pos: -1} }

type sliceIterator struct {
	segs []Segment
	pos  int
}

func (it *sliceIterator) Next() bool {
	if it.pos+1 >= len(it.segs) {
		it.pos = len(it.segs)
		return false
	}
	it.pos++
	return true
}

func (it *sliceIterator) Segment() Segment {
	if it.pos < 0 || it.pos >= len(it.segs) {
		return Segment{}
	}
	return it.segs[it.pos]
}

func (it *sliceIterator) Err() error { return nil }

var (
	_ Source         = (*Memory)(nil)
	_ Spliced        = (*Memory)(nil)
	_ StatusReporter = (*Memory)(nil)
)
