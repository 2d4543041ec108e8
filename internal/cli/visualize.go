package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/alnglyph/pkg/errors"
	"github.com/matzehuels/alnglyph/pkg/glyph"
	"github.com/matzehuels/alnglyph/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, JSON or plain text. The layout contains all positioning
information, so this step is purely about drawing.

Use 'render' as a shortcut to go directly from the alignment description to
visual output.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles("json"),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addRenderFlags(cmd, &opts, &formatsStr)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	layout, err := readLayoutFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return err
	}
	prog.done("Rendered " + layout.AlignmentID)

	paths, err := writeArtifacts(c.Out, artifacts, input, output)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	printSuccess(c.Out, "Visualization complete")
	for _, p := range paths {
		printFile(c.Out, p)
	}
	printStats(c.Out, len(layout.Rows)+1, len(layout.Intervals), cacheHit)
	return nil
}

// readLayoutFile decodes a layout written by the layout command or by
// 'render -f json'.
func readLayoutFile(path string) (glyph.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return glyph.Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return glyph.Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	var l glyph.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return glyph.Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout %s", path)
	}
	return l, nil
}
