// Package interval reduces classified alignment segments to the minimal list
// of display intervals on the anchor's model axis.
//
// # Merging
//
// Neighbouring aligned blocks closer than [DefaultThreshold] screen units are
// drawn as one bar:
//
//	m := interval.Merger{Scale: ctx.Scale}
//	bars := m.Merge(interval.FromSegments(src, res.Aligned()))
//
// [Merger.Merge] is idempotent: merging its own output returns it unchanged.
package interval

import (
	"cmp"
	"slices"

	"github.com/matzehuels/alnglyph/pkg/aln"
	"github.com/matzehuels/alnglyph/pkg/classify"
	"github.com/matzehuels/alnglyph/pkg/coord"
	"github.com/matzehuels/alnglyph/pkg/errors"
)

// DefaultThreshold is the screen distance below which neighbours merge.
const DefaultThreshold = 1.5

// Kind tags a model interval.
type Kind uint8

const (
	Aligned Kind = iota
	Intron
	UnalignedTail
)

func (k Kind) String() string {
	switch k {
	case Aligned:
		return "aligned"
	case Intron:
		return "intron"
	case UnalignedTail:
		return "unaligned"
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	for _, c := range []Kind{Aligned, Intron, UnalignedTail} {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown interval kind %q", text)
}

// ModelInterval is a renderable range [From, To) in anchor model units.
type ModelInterval struct {
	From int  `json:"from"`
	To   int  `json:"to"`
	Kind Kind `json:"kind"`
}

// Range returns the interval's extent.
func (m ModelInterval) Range() coord.Range { return coord.Range{From: m.From, To: m.To} }

// Merger coalesces intervals. Scale is screen units per model unit.
type Merger struct {
	Scale     float64
	Threshold float64 // zero means DefaultThreshold
}

func (m Merger) threshold() float64 {
	if m.Threshold <= 0 {
		return DefaultThreshold
	}
	return m.Threshold
}

// Merge returns the sorted, non-overlapping, minimal interval list for in.
// Each input interval either extends the last emitted one, when the rendered
// gap between them is below the threshold, or starts a new one.
func (m Merger) Merge(in []ModelInterval) []ModelInterval {
	if len(in) == 0 {
		return nil
	}
	sorted := slices.Clone(in)
	slices.SortStableFunc(sorted, func(a, b ModelInterval) int { return cmp.Compare(a.From, b.From) })

	out := make([]ModelInterval, 0, len(sorted))
	for _, iv := range sorted {
		if iv.To < iv.From {
			continue
		}
		if n := len(out); n > 0 {
			last := &out[n-1]
			gap := float64(iv.From-last.To) * m.Scale
			if gap < m.threshold() {
				last.To = max(last.To, iv.To)
				continue
			}
		}
		out = append(out, iv)
	}
	return out
}

// FromSegments converts aligned segments into anchor model intervals.
// Segments that are not aligned are skipped. Ranges that wrap the origin of a
// circular anchor are split.
func FromSegments(src aln.Source, segs []classify.Segment) []ModelInterval {
	anchor := src.Row(src.Anchor())
	var out []ModelInterval
	for _, s := range segs {
		if s.Kind != classify.Aligned || s.Aln.Empty() {
			continue
		}
		r := aln.AlnToAnchor(src, s.Aln)
		for _, part := range coord.SplitCircular(r, anchor.Circular) {
			out = append(out, ModelInterval{From: part.From, To: part.To, Kind: Aligned})
		}
	}
	slices.SortStableFunc(out, func(a, b ModelInterval) int { return cmp.Compare(a.From, b.From) })
	return out
}

// Gaps returns the intron spans between consecutive intervals, limited to
// within. The input must be merged.
func Gaps(merged []ModelInterval, within coord.Range) []ModelInterval {
	var out []ModelInterval
	for i := 1; i < len(merged); i++ {
		g := coord.Range{From: merged[i-1].To, To: merged[i].From}.Intersect(within)
		if !g.Empty() {
			out = append(out, ModelInterval{From: g.From, To: g.To, Kind: Intron})
		}
	}
	return out
}

// Clip restricts intervals to visible, dropping those that fall outside.
func Clip(in []ModelInterval, visible coord.Range) []ModelInterval {
	var out []ModelInterval
	for _, iv := range in {
		r := iv.Range().Intersect(visible)
		if r.Empty() {
			continue
		}
		out = append(out, ModelInterval{From: r.From, To: r.To, Kind: iv.Kind})
	}
	return out
}
