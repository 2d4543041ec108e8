// Package pkg provides the core libraries for alnglyph alignment glyphs.
//
// # Overview
//
// alnglyph draws a pairwise or multiple sequence alignment as a compact
// glyph: the aligned blocks of each row merged onto the anchor's axis,
// introns and non-canonical splice sites, the unaligned 5' and 3' tails, and
// a score raster per row. The pkg directory is organized into three areas:
//
//  1. Model - coordinates and alignment access ([coord], [aln], [classify])
//  2. Engine - interval merging, tails, rasters and splice sites ([interval],
//     [tail], [raster], [score], [splice], [glyph])
//  3. Infrastructure - file format, rendering, caching and orchestration
//     ([io], [render], [cache], [pipeline], [errors], [observability])
//
// # Architecture
//
// The typical data flow through alnglyph:
//
//	TOML alignment description
//	         ↓
//	    [io] package (decode and validate)
//	         ↓
//	    [glyph] package (intervals, tails, rasters, splice sites)
//	         ↓
//	    [render] package (SVG, JSON, terminal)
//
// # Quick Start
//
//	doc, _ := io.ImportAlignment("tp53.toml")
//
//	e := glyph.NewEngine(logger)
//	l := e.Layout(doc.Alignment(), doc.Provider(), glyph.LayoutOptions{
//	    Width: 800,
//	    Mode:  tail.ShowGlyph,
//	})
//
//	svg := render.RenderSVG(l)
//
// The [pipeline] package wraps these steps with caching and is what the
// alnglyph command uses.
//
// # Main Packages
//
// [coord] - Half-open ranges and the row metadata (strand, base width,
// native offset) that maps alignment columns to sequence positions.
//
// [aln] - The alignment source interface, its pairwise and multiple
// variants, and an in-memory implementation.
//
// [classify] - Splits a row's segments into aligned blocks, insertions and
// introns, validating their order as it goes.
//
// [interval] - Merges projected blocks whose gaps are too small to see at the
// current scale.
//
// [raster] - A generic fractional-coverage rasterizer with pluggable merge
// policies.
//
// [score] - Projects per-row scores onto raster buckets and colors them.
//
// [glyph] - The engine that combines all of the above, with a per-glyph memo
// of merged intervals.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/glyph/...     # Specific package
//	go test -run Example ./...  # Examples only
//
// [coord]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/coord
// [aln]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/aln
// [classify]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/classify
// [interval]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/interval
// [tail]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/tail
// [raster]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/raster
// [score]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/score
// [splice]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/splice
// [glyph]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/glyph
// [io]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/alnglyph/pkg/observability
package pkg
