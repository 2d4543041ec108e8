package glyph

import (
	"github.com/matzehuels/alnglyph/pkg/aln"
	"github.com/matzehuels/alnglyph/pkg/cache"
	"github.com/matzehuels/alnglyph/pkg/coord"
	"github.com/matzehuels/alnglyph/pkg/tail"
)

// Glyph is one alignment on screen. It memoizes the merged interval list for
// the last (alignment, visible range, scale, merge threshold, tail mode) it
// was asked about.
//
// A Glyph has a single owner and is not safe for concurrent use.
type Glyph struct {
	engine   *Engine
	aln      aln.Alignment
	keyer    cache.Keyer
	revision uint64

	key  string
	memo *Intervals
}

// New returns a glyph for a drawn by e.
func New(e *Engine, a aln.Alignment) *Glyph {
	return &Glyph{engine: e, aln: a, keyer: cache.NewDefaultKeyer()}
}

// Alignment returns the glyph's alignment.
func (g *Glyph) Alignment() aln.Alignment { return g.aln }

// SetAlignment replaces the alignment and drops the memo, even when the new
// alignment reports the same ID.
func (g *Glyph) SetAlignment(a aln.Alignment) {
	g.aln = a
	g.revision++
	g.Invalidate()
}

// Invalidate drops the memoized intervals.
func (g *Glyph) Invalidate() {
	g.key = ""
	g.memo = nil
}

// Intervals returns the merged intervals for the given viewport, computing
// them only when a key field changed since the last call.
func (g *Glyph) Intervals(visible coord.Range, scale float64, mode tail.Mode) Intervals {
	if g.aln == nil {
		return Intervals{}
	}
	key := g.keyer.IntervalKey(g.aln.Source().ID(), cache.IntervalKeyOpts{
		Revision:    g.revision,
		VisibleFrom: visible.From,
		VisibleTo:   visible.To,
		Scale:       scale,
		Threshold:   g.engine.Threshold,
		TailMode:    mode.String(),
	})
	if g.memo != nil && key == g.key {
		return *g.memo
	}
	res := g.engine.ComputeMergedIntervals(g.aln, visible, scale)
	g.key, g.memo = key, &res
	return res
}

// Cached reports whether an interval list is memoized.
func (g *Glyph) Cached() bool { return g.memo != nil }
