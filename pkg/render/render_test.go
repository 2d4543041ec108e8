package render

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/alnglyph/pkg/coord"
	"github.com/matzehuels/alnglyph/pkg/glyph"
	"github.com/matzehuels/alnglyph/pkg/interval"
	"github.com/matzehuels/alnglyph/pkg/score"
	"github.com/matzehuels/alnglyph/pkg/tail"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func testLayout() glyph.Layout {
	red, blue := colorful.Color{R: 1}, colorful.Color{B: 1}
	buckets := make([]score.Bucket, 10)
	for i := range buckets {
		c := red
		if i >= 5 {
			c = blue
		}
		buckets[i] = score.Bucket{Color: c, Covered: true}
	}
	missing := make([]score.Bucket, 10)
	for i := range missing {
		missing[i] = score.Bucket{Color: colorful.Color{R: 0.7, G: 0.7, B: 0.7}, Unavailable: true}
	}

	return glyph.Layout{
		AlignmentID: "tp<53>",
		Kind:        "pairwise",
		Visible:     coord.R(0, 100),
		Width:       100,
		Scale:       1,
		BarHeight:   14,
		TailMode:    "glyph",
		Intervals: []interval.ModelInterval{
			{From: 0, To: 40}, {From: 60, To: 100},
		},
		Introns:      []interval.ModelInterval{{From: 40, To: 60, Kind: interval.Intron}},
		NonConsensus: []coord.Range{coord.R(40, 60)},
		NonConsColor: "#d62728",
		FiveTail:     tail.Spec{Direction: tail.FivePrime, TrueLength: 500, ModelLength: 43, LabelWidth: 21},
		ThreeTail:    tail.Spec{Direction: tail.ThreePrime},
		Rows: []glyph.RowLayout{
			{Row: 1, Buckets: buckets},
			{Row: 2, Degraded: true, Buckets: missing},
		},
		Degraded: true,
		Issues:   []string{"row 2: scores unavailable"},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testLayout()))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	for _, want := range []string{
		`width="143"`,
		`<title>tp&lt;53&gt;</title>`,
		`<desc>row 2: scores unavailable</desc>`,
		`fill="#d62728"`,
		`>500</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s", want)
		}
	}

	counts := []struct {
		class string
		want  int
	}{
		{`class="interval"`, 2},
		{`class="intron"`, 1},
		{`class="non-consensus"`, 1},
		{`class="tail"`, 1},
		{`class="score"`, 2},
		{`class="score missing"`, 1},
	}
	for _, c := range counts {
		if got := strings.Count(svg, c.class); got != c.want {
			t.Errorf("%s appears %d times, want %d", c.class, got, c.want)
		}
	}
}

func TestRenderSVGWithoutScores(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithoutScores(), WithRowHeight(3)))
	if strings.Contains(svg, `class="score`) {
		t.Error("score rows drawn despite WithoutScores")
	}
	if !strings.Contains(svg, `height="22"`) {
		t.Errorf("height should cover the bar only:\n%s", svg)
	}
}

type countingStyle struct {
	Simple
	bars int
}

func (s *countingStyle) RenderBar(buf *bytes.Buffer, b Bar) {
	s.bars++
	s.Simple.RenderBar(buf, b)
}

func TestRenderSVGWithStyle(t *testing.T) {
	s := &countingStyle{Simple: DefaultStyle()}
	RenderSVG(testLayout(), WithStyle(s))
	if s.bars != 3 {
		t.Errorf("RenderBar called %d times, want 3 (two intervals, one splice marker)", s.bars)
	}
}

func TestLayoutTail(t *testing.T) {
	tests := []struct {
		name     string
		spec     tail.Spec
		sequence bool
		f        frame
		want     Tail
	}{
		{
			name: "5' glyph with label",
			spec: tail.Spec{Direction: tail.FivePrime, TrueLength: 500, ModelLength: 43, LabelWidth: 21},
			f:    frame{left: 43, width: 100, scale: 1},
			want: Tail{FivePrime: true, SeqX: 43, GlyphX: 26, GlyphW: 12, Label: "500", LabelX: 21, H: 14},
		},
		{
			name:     "3' sequence with remainder",
			spec:     tail.Spec{Direction: tail.ThreePrime, TrueLength: 100, VisibleLength: 40, ModelLength: 76, LabelWidth: 14},
			sequence: true,
			f:        frame{width: 100, scale: 1},
			want:     Tail{SeqX: 100, SeqW: 40, GlyphX: 145, GlyphW: 12, Label: "60", LabelX: 162, H: 14},
		},
		{
			name:     "3' sequence fully visible",
			spec:     tail.Spec{Direction: tail.ThreePrime, TrueLength: 30, VisibleLength: 30, ModelLength: 30},
			sequence: true,
			f:        frame{width: 100, scale: 1},
			want:     Tail{SeqX: 100, SeqW: 30, GlyphX: 130, LabelX: 130, H: 14},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := layoutTail(tt.spec, tt.sequence, tt.f, false, 0, 14)
			if got != tt.want {
				t.Errorf("layoutTail() = %+v\nwant %+v", got, tt.want)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testLayout())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var out struct {
		Kind      string `json:"kind"`
		Intervals []struct {
			Kind string `json:"kind"`
		} `json:"intervals"`
		FiveTail struct {
			Direction string `json:"direction"`
		} `json:"five_tail"`
		Rows []struct {
			Buckets []struct {
				Color string `json:"color"`
			} `json:"buckets"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Kind != "pairwise" || out.Intervals[0].Kind != "aligned" || out.FiveTail.Direction != "5'" {
		t.Errorf("decoded %+v", out)
	}
	if got := out.Rows[0].Buckets[0].Color; got != "#ff0000" {
		t.Errorf("first bucket color = %q, want #ff0000", got)
	}

	compact, err := RenderJSON(testLayout(), WithJSONCompact(), WithJSONNoScores())
	if err != nil {
		t.Fatalf("RenderJSON compact: %v", err)
	}
	if bytes.Contains(compact, []byte("\n")) || bytes.Contains(compact, []byte(`"rows"`)) {
		t.Errorf("compact output = %s", compact)
	}
}

func TestRenderText(t *testing.T) {
	l := testLayout()
	l.NonConsensus = nil
	out := RenderText(l, WithColumns(10), WithRenderer(lipgloss.NewRenderer(&bytes.Buffer{})))
	lines := strings.Split(ansi.ReplaceAllString(out, ""), "\n")

	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header, bar and two rows:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "tp<53> pairwise 0-100") || !strings.Contains(lines[0], "degraded (1 issues)") {
		t.Errorf("header = %q", lines[0])
	}
	if want := "500~ ████──████"; lines[1] != want {
		t.Errorf("bar = %q, want %q", lines[1], want)
	}
	if want := "     ██████████"; lines[2] != want {
		t.Errorf("row = %q, want %q", lines[2], want)
	}
	if want := "     ░░░░░░░░░░"; lines[3] != want {
		t.Errorf("missing row = %q, want %q", lines[3], want)
	}
}

func TestRenderTextEmptyVisible(t *testing.T) {
	l := testLayout()
	l.Visible = coord.Range{}
	out := RenderText(l, WithRenderer(lipgloss.NewRenderer(&bytes.Buffer{})))
	if strings.Contains(out, "\n") {
		t.Errorf("empty viewport should render the header only, got %q", out)
	}
}
