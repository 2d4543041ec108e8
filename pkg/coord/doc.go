// Package coord converts positions between alignment space and a row's
// native sequence space.
//
// # Coordinate Systems
//
// Every row of an alignment is expressed in two systems:
//
//   - alignment space: the shared "virtual" axis all rows are aligned on
//   - native space: positions on the row's own sequence, in the row's units
//
// The two differ by a base width (1 for nucleotide rows, 3 for rows whose
// alignment positions count nucleotides of a protein-coding sequence) and by
// strand: a reverse-strand row runs backwards through its native range.
//
// # Mapping
//
// [ToRowPosition] and [ToAnchorPosition] are the two directions of the
// mapping. Both are total over well-formed input. Division by the base width
// rounds toward the containing codon; callers that cross a 1:3 boundary in
// the middle of a codon add the phase returned by [FrameShift] themselves:
//
//	pos := coord.ToRowPosition(alnPos, row)
//	phase := coord.FrameShift(alnPos-row.AlnFrom, row.BaseWidth)
//
// # Ranges
//
// [Range] is signed and half-open. Ranges that cross the origin of a
// circular sequence are split with [SplitCircular].
package coord
