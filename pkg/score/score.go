// Package score projects per-row score samples onto a fixed number of pixel
// buckets along the anchor's model axis.
//
// Samples come from an external [Provider], one forward-only stream per row.
// [Walk] joins that stream with the row's classified segments; the projectors
// feed the overlaps into a [raster.Rasterizer] with the policy matching the
// provider:
//
//   - [ProjectNonAveragable] keeps, per bucket, the sample that covers most
//     of it ([raster.MaxCoverage]).
//   - [ProjectAveragable] blends all samples landing in a bucket
//     ([raster.Accumulate]), tinting toward the insertion color and toward
//     the lowest short-segment score.
//
// A failing provider never aborts the pass: uncovered buckets are marked
// unavailable and the row is flagged degraded.
package score

import (
	"github.com/matzehuels/alnglyph/pkg/classify"
	"github.com/matzehuels/alnglyph/pkg/coord"
)

// Sample is one score over an alignment range.
type Sample struct {
	Range coord.Range `json:"range" toml:"range"`
	Value float64     `json:"value" toml:"value"`
}

// SampleIterator is a forward-only cursor over samples in alignment order.
type SampleIterator interface {
	Next() bool
	Sample() Sample
	Err() error
}

// Provider is the external score source.
type Provider interface {
	Samples(row int) SampleIterator
	// Averageable reports whether scores may be blended.
	Averageable() bool
}

// Overlap is the part of a segment covered by one sample.
type Overlap struct {
	Aln     coord.Range
	Kind    classify.Kind
	Value   float64
	Segment classify.Segment
}

// Walk merge-joins segs and samples, both ordered by alignment position, and
// calls fn for every non-empty overlap. Whichever cursor ends first advances.
// An insertion (empty alignment range) is reported once, with the sample that
// contains its position, or else with the sample ending exactly there.
// Walk returns the iterator's error, if any.
func Walk(segs []classify.Segment, samples SampleIterator, fn func(Overlap)) error {
	var prev Sample
	hasPrev := false
	cur, ok := nextSample(samples)
	for i := 0; i < len(segs); {
		seg := segs[i]

		if seg.Aln.Empty() {
			p := seg.Aln.From
			switch {
			case ok && cur.Range.To <= p:
				prev, hasPrev = cur, true
				cur, ok = nextSample(samples)
			case ok && cur.Range.From <= p:
				fn(Overlap{Aln: seg.Aln, Kind: seg.Kind, Value: cur.Value, Segment: seg})
				i++
			default:
				if hasPrev && prev.Range.To == p {
					fn(Overlap{Aln: seg.Aln, Kind: seg.Kind, Value: prev.Value, Segment: seg})
				}
				i++
			}
			continue
		}
		if !ok {
			break
		}

		sr := cur.Range
		switch {
		case sr.To <= seg.Aln.From:
			prev, hasPrev = cur, true
			cur, ok = nextSample(samples)
			continue
		case seg.Aln.To <= sr.From:
			i++
			continue
		}

		ov := seg.Aln.Intersect(sr)
		fn(Overlap{Aln: ov, Kind: seg.Kind, Value: cur.Value, Segment: seg})
		if ov.To == seg.Aln.To {
			i++
		}
		if ov.To == sr.To {
			prev, hasPrev = cur, true
			cur, ok = nextSample(samples)
		}
	}
	return samples.Err()
}

func nextSample(it SampleIterator) (Sample, bool) {
	for it.Next() {
		if s := it.Sample(); !s.Range.Empty() {
			return s, true
		}
	}
	return Sample{}, false
}

// Normalizer maps observed scores onto [0, 1].
type Normalizer struct {
	min, max float64
	seen     bool
}

// Observe widens the normalizer's range to include v.
func (n *Normalizer) Observe(v float64) {
	if !n.seen {
		n.min, n.max, n.seen = v, v, true
		return
	}
	n.min = min(n.min, v)
	n.max = max(n.max, v)
}

// Bounds returns the observed range.
func (n *Normalizer) Bounds() (lo, hi float64) { return n.min, n.max }

// Normalize returns v's position in the observed range, clamped to [0, 1].
// When every observed value is equal it returns 0.
func (n *Normalizer) Normalize(v float64) float64 {
	span := n.max - n.min
	if !n.seen || span <= 0 {
		return 0
	}
	return clamp01((v - n.min) / span)
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}

// SliceProvider serves fixed samples per row.
type SliceProvider struct {
	Rows     map[int][]Sample
	Averages bool
}

func (p SliceProvider) Samples(row int) SampleIterator {
	return &sliceIterator{samples: p.Rows[row], pos: -1}
}

func (p SliceProvider) Averageable() bool { return p.Averages }

type sliceIterator struct {
	samples []Sample
	pos     int
}

func (it *sliceIterator) Next() bool {
	it.pos++
	return it.pos < len(it.samples)
}

func (it *sliceIterator) Sample() Sample { return it.samples[it.pos] }
func (it *sliceIterator) Err() error     { return nil }

var _ Provider = SliceProvider{}
