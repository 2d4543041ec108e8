package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/alnglyph/pkg/pipeline"
)

// addLayoutFlags registers the layout options. Zero values defer to the
// file's [display] table and then to the pipeline defaults.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	f.Float64Var(&opts.Width, "width", 0, "pixel width of the visible range (default 800)")
	f.IntVar(&opts.Buckets, "buckets", 0, "score raster buckets (default: one per pixel)")
	f.IntVar(&opts.VisibleFrom, "from", 0, "start of the visible anchor range")
	f.IntVar(&opts.VisibleTo, "to", 0, "end of the visible anchor range (default: whole anchor)")
	f.StringVar(&opts.TailMode, "tails", "", "tail mode: hide, glyph (default), sequence")
	f.Float64Var(&opts.BarHeight, "bar-height", 0, "bar height in pixels")
	f.StringVar(&opts.Low, "low", "", "hex color of the lowest score")
	f.StringVar(&opts.High, "high", "", "hex color of the highest score")
	f.StringVar(&opts.Insertion, "insertion", "", "hex color of insertion buckets")
	f.StringVar(&opts.Unavailable, "unavailable", "", "hex color of rows without score data")
	f.BoolVar(&opts.Refresh, "refresh", false, "recompute instead of reading the cache")

	_ = cmd.RegisterFlagCompletionFunc("tails", cobra.FixedCompletions(
		[]string{"hide", "glyph", "sequence"}, cobra.ShellCompDirectiveNoFileComp))
}

// addRenderFlags registers the render options.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	f := cmd.Flags()
	f.StringVarP(formats, "format", "f", "", "output format(s): svg (default), json, txt (comma-separated)")
	f.Float64Var(&opts.RowHeight, "row-height", 0, "height of each score row in pixels (svg)")
	f.BoolVar(&opts.NoScores, "no-scores", false, "draw the bar only")
	f.IntVar(&opts.Columns, "columns", 0, "terminal cells spanned by the visible range (txt)")

	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}
