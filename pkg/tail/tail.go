// Package tail sizes the unaligned flanks ("tails") drawn beside a pairwise
// alignment glyph.
//
// A tail is reserved space on the anchor's model axis. Depending on [Mode] it
// holds nothing, a fixed-size glyph with a length label, or the visible part
// of the flanking sequence followed by a glyph for whatever was truncated.
// Glyph and label sizes are fixed in screen pixels and converted to model
// units through the planner's scale.
package tail

import (
	"strings"

	"github.com/matzehuels/alnglyph/pkg/coord"
	"github.com/matzehuels/alnglyph/pkg/errors"
)

// Screen sizes, in pixels.
const (
	GlyphWidth        = 12
	CompactGlyphWidth = 2
	LabelSpace        = 5
	CompactLabelSpace = 1

	// CompactBarHeight is the bar height at or below which compact sizes apply.
	CompactBarHeight = 2
)

// Mode selects how tails are displayed.
type Mode uint8

const (
	Hide Mode = iota
	ShowGlyph
	ShowSequence
)

var modeNames = map[Mode]string{
	Hide:         "hide",
	ShowGlyph:    "glyph",
	ShowSequence: "sequence",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMode parses "hide", "glyph" or "sequence".
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return Hide, errors.New(errors.ErrCodeInvalidMode, "unknown tail mode %q (want hide, glyph or sequence)", s)
}

// Direction is the side of the alignment a tail is on.
type Direction uint8

const (
	FivePrime Direction = iota
	ThreePrime
)

func (d Direction) String() string {
	if d == FivePrime {
		return "5'"
	}
	return "3'"
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "5'":
		*d = FivePrime
	case "3'":
		*d = ThreePrime
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown tail direction %q", text)
	}
	return nil
}

// Input holds a row's flank lengths in row bases.
type Input struct {
	True5, True3       int
	Visible5, Visible3 int
	BaseWidth          int
	PolyA5, PolyA3     bool
	Compact            bool // force compact sizes
}

func (in Input) side(dir Direction) (trueLen, visible int, polyA bool) {
	if dir == FivePrime {
		return in.True5, in.Visible5, in.PolyA5
	}
	return in.True3, in.Visible3, in.PolyA3
}

// Spec is the computed geometry of one tail. Lengths are in model units.
type Spec struct {
	Direction     Direction `json:"direction"`
	TrueLength    int       `json:"true_length"`
	VisibleLength int       `json:"visible_length"`
	ModelLength   float64   `json:"model_length"`
	LabelWidth    float64   `json:"label_width"`
	PolyA         bool      `json:"poly_a,omitempty"`

	// Shown sequence, set by [Frame.Locate] in sequence mode.
	Aln coord.Range `json:"aln"`
	Seq coord.Range `json:"seq"`
}

// Planner computes tail specs for one layout pass.
type Planner struct {
	Mode      Mode
	Scale     float64 // screen pixels per model unit
	Metrics   TextMetrics
	BarHeight float64
}

// ComputeTailSpec returns the space to reserve for the tail on dir.
func (p Planner) ComputeTailSpec(in Input, dir Direction) Spec {
	trueLen, visible, polyA := in.side(dir)
	trueLen = max(trueLen, 0)
	visible = min(max(visible, 0), trueLen)
	spec := Spec{Direction: dir, TrueLength: trueLen, VisibleLength: visible, PolyA: polyA}
	if trueLen == 0 {
		return spec
	}

	compact := in.Compact || p.BarHeight <= CompactBarHeight
	glyph, space := float64(GlyphWidth), float64(LabelSpace)
	if compact {
		glyph, space = CompactGlyphWidth, CompactLabelSpace
	}
	reserve := func(labelLen int) {
		spec.ModelLength += p.toModel(glyph + space)
		spec.LabelWidth = p.labelWidth(labelLen)
		if spec.LabelWidth > 0 {
			spec.ModelLength += spec.LabelWidth + p.toModel(space)
		}
	}

	switch p.Mode {
	case ShowGlyph:
		reserve(trueLen)
	case ShowSequence:
		spec.ModelLength = float64(visible * max(in.BaseWidth, 1))
		if rest := trueLen - visible; rest > 0 {
			reserve(rest)
		}
	}
	return spec
}

// ComputeTailSpecs returns the 5' and 3' specs.
func (p Planner) ComputeTailSpecs(in Input) (five, three Spec) {
	return p.ComputeTailSpec(in, FivePrime), p.ComputeTailSpec(in, ThreePrime)
}

func (p Planner) toModel(px float64) float64 {
	if p.Scale <= 0 {
		return px
	}
	return px / p.Scale
}

// labelWidth returns the model width of the length label, or 0 when the
// label font does not fit inside the bar.
func (p Planner) labelWidth(n int) float64 {
	m := p.Metrics
	if m == nil {
		m = DefaultMetrics()
	}
	if m.TextHeight() >= p.BarHeight {
		return 0
	}
	return p.toModel(m.TextWidth(FormatLength(n)))
}

// Frame locates the aligned part of a row, used to derive tail ranges.
type Frame struct {
	Aln         coord.Range // aligned range in alignment space
	Native      coord.Range // aligned range on the row
	RowWidth    int
	AnchorWidth int
	Reverse     bool // row runs against the anchor
}

func (f Frame) widths() (row, anchor int) {
	return max(f.RowWidth, 1), max(f.AnchorWidth, 1)
}

// AlnTailRange returns the alignment-space range a tail of n row bases
// occupies next to the aligned part. A 5' range that would start below zero
// is clamped and the underflow is reported.
func (f Frame) AlnTailRange(dir Direction, n int) (coord.Range, error) {
	w, _ := f.widths()
	if dir == ThreePrime {
		return coord.Range{From: f.Aln.To, To: f.Aln.To + n*w}, nil
	}
	from, err := errors.ClampUnderflow(f.Aln.From, n*w)
	return coord.Range{From: from, To: f.Aln.From}, err
}

// SeqRange maps an alignment-space tail range onto the row's native axis.
// On a reverse row the 5' tail lies past the aligned end and the 3' tail
// before the aligned start. A range that would start below zero is clamped.
func (f Frame) SeqRange(dir Direction, r coord.Range) (coord.Range, error) {
	rw, aw := f.widths()
	conv := func(d int) int { return floorDiv(d, rw) * aw }

	var out coord.Range
	switch {
	case !f.Reverse && dir == FivePrime:
		out = coord.Range{From: f.Native.From + conv(r.From-f.Aln.From), To: f.Native.From + conv(r.To-f.Aln.From)}
	case !f.Reverse:
		out = coord.Range{From: f.Native.To + conv(r.From-f.Aln.To), To: f.Native.To + conv(r.To-f.Aln.To)}
	case dir == FivePrime:
		out = coord.Range{From: f.Native.To + conv(f.Aln.From-r.To), To: f.Native.To + conv(f.Aln.From-r.From)}
	default:
		out = coord.Range{From: f.Native.From - conv(r.To-f.Aln.To), To: f.Native.From - conv(r.From-f.Aln.To)}
	}
	if out.From < 0 {
		from, err := errors.ClampUnderflow(out.From, 0)
		out.From = from
		out.To = max(out.To, 0)
		return out, err
	}
	return out, nil
}

// Locate sets the alignment and row ranges of the n bases shown in s.
// Ranges clamped at zero are still set and the underflow is returned.
func (f Frame) Locate(s *Spec, n int) error {
	r, err := f.AlnTailRange(s.Direction, n)
	seq, serr := f.SeqRange(s.Direction, r)
	s.Aln, s.Seq = r, seq
	if err != nil {
		return err
	}
	return serr
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
