package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/alnglyph/pkg/coord"
	"github.com/matzehuels/alnglyph/pkg/glyph"
	"github.com/matzehuels/alnglyph/pkg/raster"
	"github.com/matzehuels/alnglyph/pkg/tail"
)

const (
	marginY          = 4.0
	defaultRowHeight = 6.0
	rowGap           = 2.0
	minTailWidth     = 0.01
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style     Style
	rowHeight float64
	scores    bool
}

// WithStyle replaces the default flat style.
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithRowHeight sets the height of each score row in pixels.
func WithRowHeight(h float64) SVGOption { return func(r *svgRenderer) { r.rowHeight = h } }

// WithoutScores draws the bar and tails only.
func WithoutScores() SVGOption { return func(r *svgRenderer) { r.scores = false } }

// RenderSVG draws a layout as a static SVG strip: the merged intervals as
// bars joined by intron lines, non-canonical splice sites as markers on those
// lines, the unaligned tails on either side and one row of score pixels per
// aligned row underneath.
func RenderSVG(l glyph.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	f := newFrame(l)

	rows := 0
	if r.scores {
		rows = len(l.Rows)
	}
	barY := marginY
	width := f.total()
	height := barY + l.BarHeight + marginY + float64(rows)*(r.rowHeight+rowGap)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(l.AlignmentID))
	if len(l.Issues) > 0 {
		fmt.Fprintf(&buf, "  <desc>%s</desc>\n", EscapeXML(strings.Join(l.Issues, "; ")))
	}
	r.style.RenderDefs(&buf)

	cy := barY + l.BarHeight/2
	for _, in := range l.Introns {
		r.style.RenderIntron(&buf, Line{X1: f.x(in.From), X2: f.x(in.To), Y: cy})
	}
	for _, nc := range l.NonConsensus {
		h := l.BarHeight / 3
		r.style.RenderBar(&buf, Bar{
			Class: "non-consensus",
			X:     f.x(nc.From), Y: cy - h/2,
			W: f.span(nc), H: h,
			Fill: l.NonConsColor,
		})
	}
	for _, iv := range l.Intervals {
		r.style.RenderBar(&buf, Bar{
			Class: "interval",
			X:     f.x(iv.From), Y: barY,
			W: f.span(iv.Range()), H: l.BarHeight,
		})
	}
	for _, t := range buildTails(l, f, barY) {
		r.style.RenderTail(&buf, t)
	}
	if rows > 0 {
		renderRows(&buf, r, l, f, barY+l.BarHeight+marginY)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: DefaultStyle(), rowHeight: defaultRowHeight, scores: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.rowHeight <= 0 {
		r.rowHeight = defaultRowHeight
	}
	return r
}

// frame maps anchor model units onto the strip. The visible range starts
// after the 5' tail.
type frame struct {
	left, width, right float64
	scale              float64
	from               int
}

func newFrame(l glyph.Layout) frame {
	f := frame{scale: l.Scale, from: l.Visible.From, width: l.Width}
	if f.scale <= 0 {
		f.scale = 1
	}
	if f.width <= 0 {
		f.width = float64(l.Visible.Len()) * f.scale
	}
	f.left = l.FiveTail.ModelLength * f.scale
	f.right = l.ThreeTail.ModelLength * f.scale
	return f
}

func (f frame) x(m int) float64            { return f.left + float64(m-f.from)*f.scale }
func (f frame) span(r coord.Range) float64 { return float64(r.Len()) * f.scale }
func (f frame) total() float64             { return f.left + f.width + f.right }

func buildTails(l glyph.Layout, f frame, y float64) []Tail {
	compact := l.BarHeight <= tail.CompactBarHeight
	var out []Tail
	for _, s := range []tail.Spec{l.FiveTail, l.ThreeTail} {
		if s.ModelLength <= 0 {
			continue
		}
		out = append(out, layoutTail(s, l.TailMode == tail.ShowSequence.String(), f, compact, y, l.BarHeight))
	}
	return out
}

// layoutTail splits the reserved tail width into the drawn sequence stretch,
// the glyph standing in for the rest, and the length label, from the bar
// outward.
func layoutTail(s tail.Spec, sequence bool, f frame, compact bool, y, h float64) Tail {
	glyphW, space := float64(tail.GlyphWidth), float64(tail.LabelSpace)
	if compact {
		glyphW, space = tail.CompactGlyphWidth, tail.CompactLabelSpace
	}
	w := s.ModelLength * f.scale
	t := Tail{FivePrime: s.Direction == tail.FivePrime, Y: y, H: h, PolyA: s.PolyA}

	rest := s.TrueLength
	if sequence {
		rest -= s.VisibleLength
	}
	if rest <= 0 {
		t.SeqW = w
		glyphW, space = 0, 0
	} else {
		labelW := 0.0
		if s.LabelWidth > 0 {
			labelW = s.LabelWidth*f.scale + space
			t.Label = tail.FormatLength(rest)
		}
		t.GlyphW = glyphW
		if seq := w - glyphW - space - labelW; seq > minTailWidth {
			t.SeqW = seq
		}
	}

	if t.FivePrime {
		t.SeqX = f.left - t.SeqW
		t.GlyphX = t.SeqX - space - glyphW
		t.LabelX = t.GlyphX - space
	} else {
		t.SeqX = f.left + f.width
		t.GlyphX = t.SeqX + t.SeqW + space
		t.LabelX = t.GlyphX + glyphW + space
	}
	return t
}

func renderRows(buf *bytes.Buffer, r svgRenderer, l glyph.Layout, f frame, top float64) {
	for i, row := range l.Rows {
		n := len(row.Buckets)
		if n == 0 {
			continue
		}
		bw := f.width / float64(n)
		y := top + float64(i)*(r.rowHeight+rowGap)
		for _, run := range raster.Runs(row.Buckets) {
			b := run.Value
			if !b.Covered && !b.Unavailable {
				continue
			}
			r.style.RenderRun(buf, Run{
				Row: row.Row,
				X:   f.left + float64(run.From)*bw, Y: y,
				W: float64(run.To-run.From) * bw, H: r.rowHeight,
				Fill:    b.Color.Hex(),
				Gap:     b.Gap,
				Missing: b.Unavailable,
			})
		}
	}
}

// EscapeXML escapes s for use in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
