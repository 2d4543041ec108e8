package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/alnglyph/pkg/coord"
	"github.com/matzehuels/alnglyph/pkg/glyph"
	"github.com/matzehuels/alnglyph/pkg/interval"
	"github.com/matzehuels/alnglyph/pkg/score"
	"github.com/matzehuels/alnglyph/pkg/tail"
)

const (
	cellBar     = "█"
	cellIntron  = "─"
	cellNonCons = "╌"
	cellGap     = "▒"
	cellMissing = "░"
	cellEmpty   = " "

	defaultColumns = 80
)

// TextOption configures terminal rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	lip  *lipgloss.Renderer
	cols int
}

// WithRenderer sets the lipgloss renderer, and with it the color profile.
func WithRenderer(r *lipgloss.Renderer) TextOption { return func(t *textRenderer) { t.lip = r } }

// WithColumns sets the number of terminal cells spanned by the visible range.
func WithColumns(n int) TextOption { return func(t *textRenderer) { t.cols = n } }

// RenderText draws a layout as terminal lines: a header, the bar with its
// tail labels, and one line of score cells per aligned row.
func RenderText(l glyph.Layout, opts ...TextOption) string {
	r := textRenderer{lip: lipgloss.DefaultRenderer(), cols: defaultColumns}
	for _, opt := range opts {
		opt(&r)
	}
	if r.cols <= 0 {
		r.cols = defaultColumns
	}

	var (
		title   = r.lip.NewStyle().Bold(true)
		dim     = r.lip.NewStyle().Faint(true)
		warn    = r.lip.NewStyle().Foreground(lipgloss.Color("220"))
		bar     = r.lip.NewStyle().Foreground(lipgloss.Color(DefaultStyle().BarFill))
		nonCons = r.lip.NewStyle().Foreground(lipgloss.Color(l.NonConsColor))
	)

	header := title.Render(l.AlignmentID) + " " + dim.Render(fmt.Sprintf("%s %d-%d", l.Kind, l.Visible.From, l.Visible.To))
	if l.Degraded {
		header += " " + warn.Render(fmt.Sprintf("degraded (%d issues)", len(l.Issues)))
	}
	lines := []string{header}
	if l.Visible.Empty() {
		return strings.Join(lines, "\n")
	}

	five, three := tailText(l.FiveTail), tailText(l.ThreeTail)
	pad := strings.Repeat(" ", lipgloss.Width(five))

	var b strings.Builder
	b.WriteString(dim.Render(five))
	for c := 0; c < r.cols; c++ {
		m := columnModel(l.Visible, c, r.cols)
		switch {
		case inRanges(l.NonConsensus, m):
			b.WriteString(nonCons.Render(cellNonCons))
		case inIntervals(l.Intervals, m):
			b.WriteString(bar.Render(cellBar))
		case inIntervals(l.Introns, m):
			b.WriteString(dim.Render(cellIntron))
		default:
			b.WriteString(cellEmpty)
		}
	}
	b.WriteString(dim.Render(three))
	lines = append(lines, b.String())

	for _, row := range l.Rows {
		lines = append(lines, pad+r.scoreLine(row.Buckets, dim))
	}
	return strings.Join(lines, "\n")
}

func (r textRenderer) scoreLine(buckets []score.Bucket, dim lipgloss.Style) string {
	n := len(buckets)
	if n == 0 {
		return ""
	}
	var b strings.Builder
	for c := 0; c < r.cols; c++ {
		bk := buckets[c*n/r.cols]
		switch {
		case bk.Unavailable:
			b.WriteString(dim.Render(cellMissing))
		case !bk.Covered:
			b.WriteString(cellEmpty)
		case bk.Gap:
			b.WriteString(r.lip.NewStyle().Foreground(lipgloss.Color(bk.Color.Hex())).Render(cellGap))
		default:
			b.WriteString(r.lip.NewStyle().Foreground(lipgloss.Color(bk.Color.Hex())).Render(cellBar))
		}
	}
	return b.String()
}

func tailText(s tail.Spec) string {
	if s.ModelLength <= 0 || s.TrueLength <= 0 {
		return ""
	}
	n := tail.FormatLength(s.TrueLength)
	if s.PolyA {
		n += "(A)"
	}
	if s.Direction == tail.FivePrime {
		return n + "~ "
	}
	return " ~" + n
}

// columnModel returns the anchor position under the center of cell c.
func columnModel(visible coord.Range, c, cols int) int {
	return visible.From + int((float64(c)+0.5)*float64(visible.Len())/float64(cols))
}

func inIntervals(ivs []interval.ModelInterval, m int) bool {
	for _, iv := range ivs {
		if iv.Range().Contains(m) {
			return true
		}
	}
	return false
}

func inRanges(rs []coord.Range, m int) bool {
	for _, r := range rs {
		if r.Contains(m) {
			return true
		}
	}
	return false
}
