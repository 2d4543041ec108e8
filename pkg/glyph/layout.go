package glyph

import (
	"github.com/matzehuels/alnglyph/pkg/aln"
	"github.com/matzehuels/alnglyph/pkg/coord"
	"github.com/matzehuels/alnglyph/pkg/errors"
	"github.com/matzehuels/alnglyph/pkg/interval"
	"github.com/matzehuels/alnglyph/pkg/score"
	"github.com/matzehuels/alnglyph/pkg/tail"
)

// LayoutOptions describe the viewport of a full layout pass.
type LayoutOptions struct {
	Visible coord.Range // anchor model units; empty means the whole anchor
	Width   float64     // screen pixels spanned by Visible
	Buckets int         // score pixels; non-positive means one per screen pixel
	Mode    tail.Mode
}

// Layout is everything a renderer needs to draw one glyph.
type Layout struct {
	AlignmentID  string                   `json:"alignment_id"`
	Kind         string                   `json:"kind"`
	Visible      coord.Range              `json:"visible"`
	Width        float64                  `json:"width"`
	Scale        float64                  `json:"scale"`
	BarHeight    float64                  `json:"bar_height"`
	TailMode     string                   `json:"tail_mode"`
	Intervals    []interval.ModelInterval `json:"intervals"`
	Introns      []interval.ModelInterval `json:"introns,omitempty"`
	FiveTail     tail.Spec                `json:"five_tail"`
	ThreeTail    tail.Spec                `json:"three_tail"`
	Rows         []RowLayout              `json:"rows,omitempty"`
	NonConsensus []coord.Range            `json:"non_consensus,omitempty"`
	Consensus    string                   `json:"consensus_color"`
	NonConsColor string                   `json:"non_consensus_color"`
	Degraded     bool                     `json:"degraded"`
	Issues       []string                 `json:"issues,omitempty"`
}

// RowLayout is the score raster of one non-anchor row.
type RowLayout struct {
	Row      int            `json:"row"`
	Degraded bool           `json:"degraded,omitempty"`
	Buckets  []score.Bucket `json:"buckets"`
}

// KindOf names the alignment variant.
func KindOf(a aln.Alignment) string {
	switch a.(type) {
	case aln.Pairwise:
		return "pairwise"
	case aln.Multiple:
		return "multiple"
	}
	return "none"
}

// Layout runs a full pass: merged intervals, tails, score rasters when p is
// non-nil, and non-consensus splice sites. Clamped tail ranges are listed in
// Issues without degrading the layout.
func (e *Engine) Layout(a aln.Alignment, p score.Provider, opts LayoutOptions) Layout {
	out := Layout{Kind: KindOf(a), Width: opts.Width, BarHeight: e.barHeight(), TailMode: opts.Mode.String()}
	if a == nil {
		return out
	}
	src := a.Source()
	visible := opts.Visible
	if visible.Empty() {
		visible = aln.AnchorRange(src)
	}
	scale := 1.0
	if opts.Width > 0 && visible.Len() > 0 {
		scale = opts.Width / float64(visible.Len())
	}
	buckets := opts.Buckets
	if buckets <= 0 {
		buckets = int(opts.Width)
	}
	out.AlignmentID, out.Visible, out.Scale = src.ID(), visible, scale

	iv := e.ComputeMergedIntervals(a, visible, scale)
	out.Intervals, out.Introns = iv.List, iv.Introns
	out.Degraded = iv.Degraded
	for _, is := range iv.Issues {
		out.Issues = append(out.Issues, is.String())
	}

	var tailIssues []errors.Issue
	out.FiveTail, out.ThreeTail, tailIssues = e.tailSpecs(a, opts.Mode, scale)
	for _, is := range tailIssues {
		out.Issues = append(out.Issues, is.String())
	}

	if p != nil {
		rs := e.RasterizeScores(a, p, visible, buckets)
		for _, r := range rs.Rows {
			out.Rows = append(out.Rows, RowLayout{Row: r.Row, Degraded: r.Degraded, Buckets: r.Buckets})
		}
		out.Degraded = out.Degraded || rs.Degraded
		for _, is := range rs.Issues {
			out.Issues = append(out.Issues, is.String())
		}
	}

	out.NonConsensus = e.NonConsensusSites(a, visible)
	policy := e.Policy
	if policy.ValueToColor == nil {
		policy = score.DefaultPolicy()
	}
	out.Consensus, out.NonConsColor = policy.Consensus.Hex(), policy.NonConsensus.Hex()
	return out
}
