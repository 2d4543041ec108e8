// Package cli implements the alnglyph command-line interface.
//
// The commands load TOML alignment descriptions, compute glyph layouts and
// render them as SVG, JSON or terminal previews. The CLI is built using
// cobra and logs via charmbracelet/log.
//
// # Commands
//
//   - layout: Compute a glyph layout and write it as JSON
//   - visualize: Render a previously computed layout
//   - render: Load, lay out and render in one step
//   - splice: Check splice-site consensus
//   - cache: Manage the layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// lists the rows that degraded during layout.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/alnglyph/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "alnglyph draws alignments as compact glyphs",
		Long:         `alnglyph renders pairwise and multiple sequence alignments as compact glyphs: merged aligned blocks on the anchor axis, intron and splice-site markers, unaligned tails and per-row score rasters.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.spliceCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
