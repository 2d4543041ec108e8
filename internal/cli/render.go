package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/alnglyph/pkg/pipeline"
	"github.com/matzehuels/alnglyph/pkg/render"
)

// renderCommand creates the render command, which runs the whole pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		preview    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [alignment.toml]",
		Short: "Render an alignment description in one step",
		Long: `Render an alignment description in one step.

The render command is equivalent to 'layout' followed by 'visualize'. With
--preview the glyph is also drawn in the terminal.

Examples:
  alnglyph render tp53.toml
  alnglyph render tp53.toml -f svg,json --from 1200 --to 4800
  alnglyph render tp53.toml -f txt -o - --columns 120`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles("toml"),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache, preview)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "draw the glyph in the terminal")
	addLayoutFlags(cmd, &opts)
	addRenderFlags(cmd, &opts, &formatsStr)

	return cmd
}

// runRender executes the pipeline and writes its artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache, preview bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.Path = input
	opts.Logger = c.Logger

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(c.Out, result.Artifacts, input, output)
	if err != nil {
		return err
	}

	if preview {
		cols := opts.Columns
		if cols == 0 {
			cols = pipeline.DefaultColumns
		}
		fmt.Fprintln(c.Out, render.RenderText(result.Layout, render.WithColumns(cols)))
		printNewline(c.Out)
	}
	if len(paths) == 0 {
		return nil
	}

	printSuccess(c.Out, "Render complete")
	for _, p := range paths {
		printFile(c.Out, p)
	}
	printStats(c.Out, result.Stats.Rows, result.Stats.Intervals, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	if result.Layout.Degraded {
		printIssues(c.Out, result.Layout.Issues, maxIssues)
	}
	return nil
}
