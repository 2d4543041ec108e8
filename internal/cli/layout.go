package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/alnglyph/pkg/pipeline"
	"github.com/matzehuels/alnglyph/pkg/render"
)

// maxIssues is the number of degraded rows listed without --verbose.
const maxIssues = 5

// layoutCommand creates the layout command for computing glyph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [alignment.toml]",
		Short: "Compute a glyph layout from an alignment description",
		Long: `Compute a glyph layout from an alignment description.

The layout command reads a TOML alignment description and computes the
merged intervals, tails, splice-site markers and score rasters for the
visible range. The output is a layout.json file (same format as
'render -f json') that can be drawn with the 'visualize' command.

Flags override the file's [display] table. Results are cached locally for
faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles("toml"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the alignment, computes the layout, and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.Path = input
	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	in, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	opts.ApplyDisplay(in.Doc.Display)

	layout, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, in, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("Computed layout")

	data, err := render.RenderJSON(layout)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + layoutSuffix
	}
	if err := writeFile(outputPath, data); err != nil {
		return err
	}

	printSuccess(c.Out, "Layout complete")
	printFile(c.Out, outputPath)
	printStats(c.Out, in.Doc.Source.NumRows(), len(layout.Intervals), cacheHit)
	if layout.Degraded {
		printIssues(c.Out, layout.Issues, maxIssues)
	}
	printNewline(c.Out)
	printNextStep(c.Out, "Render", appName+" visualize "+outputPath)

	return nil
}
