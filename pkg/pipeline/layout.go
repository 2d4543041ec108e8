package pipeline

import (
	"github.com/matzehuels/alnglyph/pkg/aln"
	"github.com/matzehuels/alnglyph/pkg/coord"
	"github.com/matzehuels/alnglyph/pkg/glyph"
)

// ComputeLayout runs the glyph engine over the loaded alignment. Score rows
// are always computed; NoScores only affects rendering.
//
// Row-level failures do not make ComputeLayout fail; they are reported in
// the layout's Degraded flag and Issues.
func ComputeLayout(in *Input, opts Options) (glyph.Layout, error) {
	policy, err := opts.Policy()
	if err != nil {
		return glyph.Layout{}, err
	}
	e := glyph.NewEngine(opts.Logger)
	e.Policy = policy
	e.BarHeight = opts.BarHeight

	// an open-ended range runs to the end of the anchor
	visible := coord.R(opts.VisibleFrom, opts.VisibleTo)
	if opts.VisibleTo == 0 && opts.VisibleFrom != 0 {
		visible.To = aln.AnchorRange(in.Doc.Source).To
	}

	return e.Layout(in.Doc.Alignment(), in.Doc.Provider(), glyph.LayoutOptions{
		Visible: visible,
		Width:   opts.Width,
		Buckets: opts.Buckets,
		Mode:    opts.Mode(),
	}), nil
}
