// Package glyph is the layout engine behind an alignment glyph.
//
// An [Engine] answers the four questions a renderer asks about an alignment
// for a given viewport: which anchor intervals to draw as bars, how much room
// the unaligned tails need, what color each score pixel has, and whether a
// splice site is canonical. A [Glyph] wraps one alignment and memoizes its
// merged intervals across frames.
//
// Every failure is local: a malformed row or an unavailable score stream
// degrades that row only, is logged, and is reported through the result's
// Degraded flag and Issues.
package glyph

import (
	"github.com/charmbracelet/log"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/alnglyph/pkg/aln"
	"github.com/matzehuels/alnglyph/pkg/classify"
	"github.com/matzehuels/alnglyph/pkg/coord"
	"github.com/matzehuels/alnglyph/pkg/errors"
	"github.com/matzehuels/alnglyph/pkg/interval"
	"github.com/matzehuels/alnglyph/pkg/observability"
	"github.com/matzehuels/alnglyph/pkg/score"
	"github.com/matzehuels/alnglyph/pkg/splice"
	"github.com/matzehuels/alnglyph/pkg/tail"
)

// DefaultBarHeight is the glyph bar height in pixels.
const DefaultBarHeight = 14

// Engine computes glyph geometry. The zero value is usable.
type Engine struct {
	Policy    score.ColorPolicy
	Metrics   tail.TextMetrics
	BarHeight float64
	Threshold float64 // merge threshold in screen units; zero means the default
	Logger    *log.Logger
}

// NewEngine returns an engine with the default color policy and metrics.
func NewEngine(logger *log.Logger) *Engine {
	return &Engine{
		Policy:    score.DefaultPolicy(),
		Metrics:   tail.DefaultMetrics(),
		BarHeight: DefaultBarHeight,
		Logger:    logger,
	}
}

func (e *Engine) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

// Intervals is the merged bar layout of an alignment.
type Intervals struct {
	List     []interval.ModelInterval
	Introns  []interval.ModelInterval
	Degraded bool
	Issues   []errors.Issue
}

// ComputeMergedIntervals merges the aligned blocks of the first non-anchor
// row inside visible (anchor model units). scale is screen units per model
// unit. An empty visible range yields no intervals.
func (e *Engine) ComputeMergedIntervals(a aln.Alignment, visible coord.Range, scale float64) Intervals {
	var out Intervals
	if a == nil || visible.Empty() {
		return out
	}
	src := a.Source()
	row := aln.AlignedRow(src)
	if row < 0 {
		return out
	}

	res := classify.Classify(src, row, aln.AnchorToAln(src, visible))
	if res.Degraded {
		out.Degraded = true
		out.Issues = append(out.Issues, e.degraded(src, row, res.Err))
	}

	merged := interval.Merger{Scale: scale, Threshold: e.Threshold}.Merge(interval.FromSegments(src, res.Aligned()))
	out.List = interval.Clip(merged, visible)
	out.Introns = interval.Gaps(out.List, visible)

	e.logger().Debug("merged intervals", "alignment", src.ID(), "row", row,
		"segments", len(res.Segments), "intervals", len(out.List), "degraded", out.Degraded)
	observability.Layout().OnIntervals(src.ID(), len(out.List), out.Degraded)
	return out
}

// ComputeTailSpecs sizes the unaligned tails of a pairwise alignment.
// Multiple alignments have no tails; their specs have zero length.
func (e *Engine) ComputeTailSpecs(a aln.Alignment, mode tail.Mode, scale float64) (five, three tail.Spec) {
	five, three, _ = e.tailSpecs(a, mode, scale)
	return five, three
}

// tailSpecs sizes both tails and, in sequence mode, locates the shown
// sequence. A range clamped at the start of either axis becomes an issue.
func (e *Engine) tailSpecs(a aln.Alignment, mode tail.Mode, scale float64) (five, three tail.Spec, issues []errors.Issue) {
	five, three = tail.Spec{Direction: tail.FivePrime}, tail.Spec{Direction: tail.ThreePrime}
	pw, ok := a.(aln.Pairwise)
	if !ok {
		return five, three, nil
	}
	src := pw.Source()
	row := aln.AlignedRow(src)
	meta := src.Row(row)
	t := src.Tails(row)

	p := tail.Planner{Mode: mode, Scale: scale, Metrics: e.Metrics, BarHeight: e.barHeight()}
	five, three = p.ComputeTailSpecs(tail.Input{
		True5:     t.Five,
		True3:     t.Three,
		Visible5:  t.VisibleFive,
		Visible3:  t.VisibleThree,
		BaseWidth: meta.Width(),
		PolyA5:    t.PolyAFive,
		PolyA3:    t.PolyAThree,
	})
	if mode != tail.ShowSequence {
		return five, three, nil
	}

	f := tail.Frame{
		Aln:         meta.AlnSpan(),
		Native:      meta.Native,
		RowWidth:    meta.Width(),
		AnchorWidth: src.Row(src.Anchor()).Width(),
		Reverse:     aln.ReverseStrand(src, row),
	}
	for _, s := range []*tail.Spec{&five, &three} {
		if s.VisibleLength == 0 {
			continue
		}
		if err := f.Locate(s, s.VisibleLength); err != nil {
			e.logger().Debug("tail range clamped", "alignment", src.ID(), "row", row,
				"tail", s.Direction.String(), "err", err)
			issues = append(issues, errors.Issue{Row: row, Err: err})
		}
	}
	return five, three, issues
}

// Rasters holds the projected score rows of an alignment.
type Rasters struct {
	Rows     []score.Raster
	Degraded bool
	Issues   []errors.Issue
}

// RasterizeScores projects the provider's scores of every non-anchor row
// onto buckets pixels spanning visible. A failing row is degraded and the
// remaining rows are still projected. An empty visible range or a
// non-positive bucket count yields rows without buckets.
func (e *Engine) RasterizeScores(a aln.Alignment, p score.Provider, visible coord.Range, buckets int) Rasters {
	var out Rasters
	if a == nil || p == nil {
		return out
	}
	src := a.Source()
	rng := aln.AnchorToAln(src, visible)
	proj := score.Projection{Policy: e.Policy, Visible: visible, Buckets: buckets}
	if proj.Policy.ValueToColor == nil {
		proj.Policy = score.DefaultPolicy()
	}
	if sr, ok := src.(aln.StatusReporter); ok {
		proj.Override = statusColor(sr.ReadStatus())
	}

	for row := 0; row < src.NumRows(); row++ {
		if row == src.Anchor() {
			continue
		}
		r := score.Project(src, classify.Classify(src, row, rng), p, proj)
		if r.Degraded {
			out.Degraded = true
			out.Issues = append(out.Issues, e.degraded(src, row, r.Err))
		}
		observability.Layout().OnRaster(src.ID(), row, len(r.Buckets), r.Degraded)
		out.Rows = append(out.Rows, r)
	}
	e.logger().Debug("rasterized scores", "alignment", src.ID(), "rows", len(out.Rows),
		"buckets", buckets, "averageable", p.Averageable(), "degraded", out.Degraded)
	return out
}

// ClassifySpliceSite reports whether donor and acceptor form a canonical pair.
func (e *Engine) ClassifySpliceSite(donor, acceptor string) splice.Result {
	return splice.Classify(donor, acceptor)
}

// NonConsensusSites returns the anchor spans of introns with non-canonical
// splice sites, clipped to visible. Sources without exon structure have none.
func (e *Engine) NonConsensusSites(a aln.Alignment, visible coord.Range) []coord.Range {
	if a == nil {
		return nil
	}
	sp, ok := a.Source().(aln.Spliced)
	if !ok {
		return nil
	}
	var out []coord.Range
	for _, r := range splice.NonConsensusIntrons(sp.Exons()) {
		if c := r.Intersect(visible); !c.Empty() {
			out = append(out, c)
		}
	}
	return out
}

func statusColor(s aln.ReadStatus) *colorful.Color {
	var c colorful.Color
	switch s {
	case aln.ReadPCRDuplicate:
		c = score.PCRDuplicate
	case aln.ReadPoorQuality:
		c = score.PoorSeqQuality
	default:
		return nil
	}
	return &c
}

func (e *Engine) barHeight() float64 {
	if e.BarHeight <= 0 {
		return DefaultBarHeight
	}
	return e.BarHeight
}

func (e *Engine) degraded(src aln.Source, row int, err error) errors.Issue {
	if err == nil {
		err = errors.New(errors.ErrCodeInternal, "degraded without cause")
	}
	e.logger().Warn("degraded row", "alignment", src.ID(), "row", row,
		"code", errors.GetCode(err), "err", errors.UserMessage(err))
	observability.Layout().OnDegraded(src.ID(), row, err)
	return errors.Issue{Row: row, Err: err}
}
