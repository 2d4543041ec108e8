// Package render turns a [glyph.Layout] into output formats.
//
// # Overview
//
// The layout engine decides what to draw; this package decides how. It
// provides three sinks:
//
//   - [RenderSVG]: a static SVG strip
//   - [RenderJSON]: the layout itself, for external renderers
//   - [RenderText]: a colored terminal preview
//
// # SVG
//
// The strip is laid out left to right: the 5' tail, the visible anchor range
// at the layout's scale, then the 3' tail. Merged intervals are drawn as bars
// joined by thin intron lines; introns with non-canonical splice sites get a
// marker in the non-consensus color. Each aligned row with scores is drawn
// underneath as runs of equal pixels, so a row costs one rectangle per color
// change rather than one per pixel.
//
//	svg := render.RenderSVG(layout, render.WithRowHeight(4))
//
// Drawing is delegated to a [Style]; [Simple] is the default flat style and
// can be replaced with [WithStyle].
//
// # Terminal
//
// [RenderText] samples the layout at one cell per column using lipgloss for
// color. Pass [WithRenderer] to control the color profile, for example a
// renderer on a non-terminal writer for plain output.
//
// [glyph.Layout]: github.com/matzehuels/alnglyph/pkg/glyph.Layout
package render
