package score

import colorful "github.com/lucasb-eyer/go-colorful"

// ColorPolicy turns normalized scores into colors and supplies the fixed
// tints used by the projectors and the splice bars.
type ColorPolicy struct {
	// ValueToColor maps a normalized score in [0, 1] to a color.
	ValueToColor func(float64) colorful.Color

	Insertion    colorful.Color
	Consensus    colorful.Color
	NonConsensus colorful.Color
	Unavailable  colorful.Color
}

// Read-status colors that replace score colors for flagged reads.
var (
	PCRDuplicate    = colorful.Color{R: 0.9, G: 0.67, B: 0.9}
	PoorSeqQuality  = colorful.Color{R: 1.0, G: 0.17, B: 0.0}
	defaultLow      = colorful.Color{R: 0.84, G: 0.19, B: 0.12}
	defaultHigh     = colorful.Color{R: 0.10, G: 0.40, B: 0.75}
	defaultInsert   = colorful.Color{R: 0.60, G: 0.20, B: 0.80}
	defaultConsens  = colorful.Color{R: 0.17, G: 0.63, B: 0.17}
	defaultNonCons  = colorful.Color{R: 0.84, G: 0.15, B: 0.16}
	defaultUnavail  = colorful.Color{R: 0.74, G: 0.74, B: 0.74}
)

// DefaultPolicy returns a low-red to high-blue gradient with standard tints.
func DefaultPolicy() ColorPolicy {
	return ColorPolicy{
		ValueToColor: Gradient(defaultLow, defaultHigh),
		Insertion:    defaultInsert,
		Consensus:    defaultConsens,
		NonConsensus: defaultNonCons,
		Unavailable:  defaultUnavail,
	}
}

// Gradient interpolates between low and high in HCL space.
func Gradient(low, high colorful.Color) func(float64) colorful.Color {
	return func(v float64) colorful.Color {
		return low.BlendHcl(high, clamp01(v)).Clamped()
	}
}

// ParsePolicy builds a policy from hex colors. Empty strings keep the
// default for that slot.
func ParsePolicy(low, high, insertion, unavailable string) (ColorPolicy, error) {
	p := DefaultPolicy()
	lo, hi := defaultLow, defaultHigh
	for _, c := range []struct {
		hex string
		dst *colorful.Color
	}{
		{low, &lo},
		{high, &hi},
		{insertion, &p.Insertion},
		{unavailable, &p.Unavailable},
	} {
		if c.hex == "" {
			continue
		}
		col, err := colorful.Hex(c.hex)
		if err != nil {
			return ColorPolicy{}, err
		}
		*c.dst = col
	}
	p.ValueToColor = Gradient(lo, hi)
	return p, nil
}

func (p ColorPolicy) color(v float64) colorful.Color {
	if p.ValueToColor == nil {
		return Gradient(defaultLow, defaultHigh)(v)
	}
	return p.ValueToColor(v)
}

// mix returns a*alpha + b*(1-alpha).
func mix(a, b colorful.Color, alpha float64) colorful.Color {
	return b.BlendRgb(a, clamp01(alpha))
}
