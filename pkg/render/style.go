package render

import (
	"bytes"
	"fmt"
)

// Style defines the visual appearance of a glyph strip.
// Implementations control how bars, introns, tails and score runs are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderBar writes one merged interval or splice marker.
	RenderBar(buf *bytes.Buffer, b Bar)
	// RenderIntron writes the connector between two intervals.
	RenderIntron(buf *bytes.Buffer, l Line)
	// RenderTail writes an unaligned tail with its optional label.
	RenderTail(buf *bytes.Buffer, t Tail)
	// RenderRun writes a run of equal score pixels.
	RenderRun(buf *bytes.Buffer, r Run)
}

// Bar is a filled rectangle in screen coordinates.
type Bar struct {
	Class      string
	X, Y, W, H float64
	Fill       string
}

// Line is a horizontal connector at height Y.
type Line struct {
	X1, X2, Y float64
	Stroke    string
}

// Tail is the screen geometry of one unaligned flank.
type Tail struct {
	FivePrime bool
	SeqX      float64 // start of the drawn sequence stretch
	SeqW      float64
	GlyphX    float64
	GlyphW    float64 // zero when the whole tail is shown as sequence
	Label     string
	LabelX    float64
	Y, H      float64
	PolyA     bool
}

// Run is a stretch of equal score buckets.
type Run struct {
	Row        int
	X, Y, W, H float64
	Fill       string
	Gap        bool
	Missing    bool // scores were unavailable
}

// Simple draws flat bars with thin connectors.
type Simple struct {
	BarFill  string
	Stroke   string
	TailFill string
	FontSize float64
}

// DefaultStyle returns the standard flat style.
func DefaultStyle() Simple {
	return Simple{BarFill: "#4a6fa5", Stroke: "#2c3e50", TailFill: "#8e9aaf", FontSize: 11}
}

func (s Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <pattern id="missing" width="4" height="4" patternUnits="userSpaceOnUse" patternTransform="rotate(45)">
      <rect width="4" height="4" fill="#eeeeee"/>
      <line x1="0" y1="0" x2="0" y2="4" stroke="#bbbbbb" stroke-width="2"/>
    </pattern>
  </defs>
`)
}

func (s Simple) RenderBar(buf *bytes.Buffer, b Bar) {
	fill := b.Fill
	if fill == "" {
		fill = s.BarFill
	}
	fmt.Fprintf(buf, `  <rect class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		b.Class, b.X, b.Y, b.W, b.H, fill)
}

func (s Simple) RenderIntron(buf *bytes.Buffer, l Line) {
	stroke := l.Stroke
	if stroke == "" {
		stroke = s.Stroke
	}
	fmt.Fprintf(buf, `  <line class="intron" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
		l.X1, l.Y, l.X2, l.Y, stroke)
}

func (s Simple) RenderTail(buf *bytes.Buffer, t Tail) {
	cy := t.Y + t.H/2
	class := "tail"
	if t.PolyA {
		class += " polya"
	}
	fmt.Fprintf(buf, `  <g class="%s">`+"\n", class)
	if t.SeqW > 0 {
		fmt.Fprintf(buf, `    <rect class="tail-sequence" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			t.SeqX, t.Y+t.H/4, t.SeqW, t.H/2, s.TailFill)
	}
	if t.GlyphW > 0 {
		fmt.Fprintf(buf, `    <path class="tail-glyph" d="%s" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
			zigzag(t.GlyphX, cy, t.GlyphW, t.H/2), s.Stroke)
	}
	if t.Label != "" {
		anchor := "start"
		if t.FivePrime {
			anchor = "end"
		}
		fmt.Fprintf(buf, `    <text class="tail-label" x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="middle" font-family="monospace" font-size="%.0f">%s</text>`+"\n",
			t.LabelX, cy, anchor, s.FontSize, EscapeXML(t.Label))
	}
	if t.PolyA {
		buf.WriteString("    <title>poly(A)</title>\n")
	}
	buf.WriteString("  </g>\n")
}

func (s Simple) RenderRun(buf *bytes.Buffer, r Run) {
	class, fill := "score", r.Fill
	switch {
	case r.Missing:
		class, fill = "score missing", "url(#missing)"
	case r.Gap:
		class = "score gap"
	}
	fmt.Fprintf(buf, `  <rect class="%s" data-row="%d" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		class, r.Row, r.X, r.Y, r.W, r.H, fill)
}

// zigzag draws a three-peak wave across [x, x+w) centered on cy.
func zigzag(x, cy, w, amp float64) string {
	const peaks = 3
	step := w / (2 * peaks)
	var b bytes.Buffer
	fmt.Fprintf(&b, "M%.2f %.2f", x, cy)
	for i := 1; i <= 2*peaks; i++ {
		dy := amp / 2
		if i%2 == 0 {
			dy = -dy
		}
		fmt.Fprintf(&b, " L%.2f %.2f", x+float64(i)*step, cy+dy)
	}
	return b.String()
}
