// Package io reads and writes alignment descriptions as TOML.
//
// # Overview
//
// An alignment description is a self-contained file holding everything a
// layout pass needs: row metadata, the aligned segments of every row, the
// unaligned tails, optional per-row scores, optional exon structure and the
// display defaults used when rendering. It is the input format of the
// alnglyph command and a convenient fixture format for tests.
//
// # Format
//
//	id = "NM_000546:chr17"
//	anchor = 0              # index of the anchor row
//	negative = false        # genomic strand of the exons
//	status = "ok"           # ok, pcr_duplicate or poor_quality
//	averageable = true      # scores may be averaged across a pixel
//
//	[display]
//	tail_mode = "glyph"     # hide, glyph or sequence
//	width = 800
//	low = "#2b83ba"
//	high = "#d7191c"
//
//	[[rows]]
//	native = { from = 1000, to = 1300 }
//
//	[[rows]]
//	base_width = 1
//	strand = "+"
//	native = { from = 0, to = 280 }
//	[rows.tails]
//	five = 460
//	visible_five = 40
//	[[rows.segments]]
//	aln = { from = 0, to = 120 }
//	row = { from = 0, to = 120 }
//	[[rows.scores]]
//	range = { from = 0, to = 120 }
//	value = 0.93
//
//	[[exons]]
//	genomic = { from = 1000, to = 1120 }
//	donor = "GT"
//
// Ranges are half-open. Segment alignment ranges are in alignment units; row
// ranges are native units of that row. An empty alignment range marks an
// insertion on the row, an empty row range a deletion; intron = true marks a
// deletion that separates two exons.
//
// # Import
//
// Use [ImportAlignment] to read a file, or [ReadAlignment] to read from any
// io.Reader:
//
//	doc, err := io.ImportAlignment("tp53.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	a := doc.Alignment()
//
// Row metadata, status, tail mode, colors and splice sites are validated on
// load. Segment streams are not: a malformed row degrades only that row when
// it is laid out.
//
// # Export
//
// [WriteAlignment] and [ExportAlignment] write a [Document] back as TOML.
// Import followed by export reproduces the document.
package io
