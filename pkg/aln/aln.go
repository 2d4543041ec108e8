// Package aln defines the alignment data model consumed by the layout engine.
//
// The engine never owns alignment data. It reads rows, segments and tails
// from a [Source] once per layout pass. A source is wrapped in an
// [Alignment], a closed sum type whose variant ([Pairwise] or [Multiple]) is
// decided once by [New] instead of being rediscovered on every call.
package aln

import "github.com/matzehuels/alnglyph/pkg/coord"

// Segment is one raw block reported by a source for a row.
//
// Aln is the alignment-space range, empty for an insertion on the row.
// Row is the native range on the row, empty for a deletion. Intron marks a
// deletion that separates two exons of a spliced alignment.
type Segment struct {
	Aln       coord.Range `json:"aln" toml:"aln"`
	Row       coord.Range `json:"row" toml:"row"`
	Reverse   bool        `json:"reverse,omitempty" toml:"reverse"`
	Unaligned bool        `json:"unaligned,omitempty" toml:"unaligned"`
	Intron    bool        `json:"intron,omitempty" toml:"intron"`
}

// SegmentIterator is a forward-only cursor over segments.
//
//	for it.Next() {
//	    seg := it.Segment()
//	}
//	if err := it.Err(); err != nil { ... }
type SegmentIterator interface {
	Next() bool
	Segment() Segment
	Err() error
}

// Tails holds the unaligned flank lengths of a row, in row bases.
// The visible lengths are the parts the source can actually supply.
type Tails struct {
	Five, Three               int
	VisibleFive, VisibleThree int
	PolyAFive, PolyAThree     bool
}

// Exon is one exon of a spliced alignment with the dinucleotides flanking it
// on the genomic sequence. Donor follows the exon, Acceptor precedes it.
type Exon struct {
	Genomic  coord.Range `json:"genomic" toml:"genomic"`
	Acceptor string      `json:"acceptor,omitempty" toml:"acceptor"`
	Donor    string      `json:"donor,omitempty" toml:"donor"`
}

// Source is the external alignment data source.
type Source interface {
	// ID identifies the underlying alignment; a new ID means new content.
	ID() string
	NumRows() int
	Anchor() int
	Row(i int) coord.Row
	// Segments iterates the row's segments overlapping r in alignment order.
	Segments(row int, r coord.Range) SegmentIterator
	Tails(row int) Tails
}

// Spliced is implemented by sources that know their exon structure.
type Spliced interface {
	Exons() (exons []Exon, negative bool)
}

// ReadStatus flags a sequencing read whose scores should not be shown.
type ReadStatus uint8

const (
	ReadOK ReadStatus = iota
	ReadPCRDuplicate
	ReadPoorQuality
)

// StatusReporter is implemented by sources that carry read status.
type StatusReporter interface {
	ReadStatus() ReadStatus
}

// AlignedRow returns the first row that is not the anchor, or -1.
func AlignedRow(s Source) int {
	for i := 0; i < s.NumRows(); i++ {
		if i != s.Anchor() {
			return i
		}
	}
	return -1
}

// ReverseStrand reports whether row runs against the anchor.
func ReverseStrand(s Source, row int) bool {
	return s.Row(row).Strand != s.Row(s.Anchor()).Strand
}
