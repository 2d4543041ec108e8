package score

import (
	"encoding/json"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/alnglyph/pkg/aln"
	"github.com/matzehuels/alnglyph/pkg/classify"
	"github.com/matzehuels/alnglyph/pkg/coord"
	"github.com/matzehuels/alnglyph/pkg/errors"
	"github.com/matzehuels/alnglyph/pkg/raster"
)

// MaxIndelScreenLength is the longest indel, in screen units, whose score
// still tints an averaged bucket.
const MaxIndelScreenLength = 1.5

const coverEps = 1e-3

// Bucket is one projected pixel.
type Bucket struct {
	Color       colorful.Color `json:"color"`
	Gap         bool           `json:"gap,omitempty"`
	Covered     bool           `json:"covered,omitempty"`
	Unavailable bool           `json:"unavailable,omitempty"`
}

type jsonBucket struct {
	Color       string `json:"color,omitempty"`
	Gap         bool   `json:"gap,omitempty"`
	Covered     bool   `json:"covered,omitempty"`
	Unavailable bool   `json:"unavailable,omitempty"`
}

// MarshalJSON writes the color as hex and omits it for empty buckets.
func (b Bucket) MarshalJSON() ([]byte, error) {
	out := jsonBucket{Gap: b.Gap, Covered: b.Covered, Unavailable: b.Unavailable}
	if b.Covered || b.Unavailable {
		out.Color = b.Color.Hex()
	}
	return json.Marshal(out)
}

func (b *Bucket) UnmarshalJSON(data []byte) error {
	var in jsonBucket
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*b = Bucket{Gap: in.Gap, Covered: in.Covered, Unavailable: in.Unavailable}
	if in.Color == "" {
		return nil
	}
	c, err := colorful.Hex(in.Color)
	if err != nil {
		return err
	}
	b.Color = c
	return nil
}

// Projection describes the output raster of one row.
type Projection struct {
	Policy  ColorPolicy
	Visible coord.Range // anchor model range
	Buckets int
	// Override, when set, replaces every score color (read status).
	Override *colorful.Color
}

// Raster is the projected row.
type Raster struct {
	Row      int
	Buckets  []Bucket
	Degraded bool
	Err      error
}

// Project dispatches on the provider's averageability.
func Project(src aln.Source, res classify.Result, p Provider, proj Projection) Raster {
	samples := p.Samples(res.Row)
	if p.Averageable() {
		return ProjectAveragable(src, res, samples, proj)
	}
	return ProjectNonAveragable(src, res, samples, proj)
}

// ProjectNonAveragable gives each bucket the value of the sample covering
// most of it. Indels and gaps are kept and flagged.
func ProjectNonAveragable(src aln.Source, res classify.Result, samples SampleIterator, proj Projection) Raster {
	r := raster.New[raster.Pixel](proj.Buckets, float64(proj.Visible.From), float64(proj.Visible.To))
	out := Raster{Row: res.Row, Degraded: res.Degraded, Err: res.Err}

	var norm Normalizer
	err := Walk(res.Segments, samples, func(ov Overlap) {
		if ov.Kind == classify.UnalignedTail {
			return
		}
		norm.Observe(ov.Value)
		px := raster.Pixel{Score: ov.Value, Gap: ov.Kind != classify.Aligned}
		for _, s := range anchorSpans(src, ov.Aln) {
			r.AddInterval(float64(s.From), float64(s.To), px, raster.MaxCoverage)
		}
	})

	out.Buckets = make([]Bucket, r.Len())
	for i, px := range r.Raster() {
		if px.MaxCoverage <= coverEps {
			continue
		}
		out.Buckets[i] = Bucket{
			Color:   proj.scoreColor(norm.Normalize(px.Score)),
			Gap:     px.Gap,
			Covered: true,
		}
	}
	return out.finish(err, proj.Policy)
}

// ProjectAveragable blends every sample landing in a bucket. Short low
// scores darken the bucket and short indels tint it toward the insertion
// color, so small features survive at coarse scales. Both apply on top of a
// read-status override.
func ProjectAveragable(src aln.Source, res classify.Result, samples SampleIterator, proj Projection) Raster {
	r := raster.New[raster.AvgPixel](proj.Buckets, float64(proj.Visible.From), float64(proj.Visible.To))
	out := Raster{Row: res.Row, Degraded: res.Degraded, Err: res.Err}

	screenPerUnit := 0.0
	if w := r.BucketWidth(); w > 0 {
		screenPerUnit = 1 / w
	}

	var norm Normalizer
	err := Walk(res.Segments, samples, func(ov Overlap) {
		spans := anchorSpans(src, ov.Aln)
		switch ov.Kind {
		case classify.Aligned:
			norm.Observe(ov.Value)
			for _, s := range spans {
				r.AddInterval(float64(s.From), float64(s.To), raster.Aligned(ov.Value), raster.Accumulate)
			}
		case classify.Indel, classify.Gap:
			if float64(spanLen(spans))*screenPerUnit > MaxIndelScreenLength {
				return
			}
			for _, s := range spans {
				r.AddInterval(float64(s.From), float64(s.To), raster.Indel(ov.Value), raster.Accumulate)
			}
		}
	})

	out.Buckets = make([]Bucket, r.Len())
	for i, px := range r.Raster() {
		sc, ok := px.Score()
		if !ok {
			continue
		}
		n := norm.Normalize(sc)
		c := proj.scoreColor(n)
		if px.Initialized {
			c = mix(proj.Policy.color(norm.Normalize(px.MinScore)), c, 1-n*0.75)
		}
		gap := px.GapLen > coverEps
		if gap {
			c = mix(proj.Policy.Insertion, c, min(1, 0.25+px.GapLen*0.75))
		}
		out.Buckets[i] = Bucket{Color: c, Gap: gap, Covered: true}
	}
	return out.finish(err, proj.Policy)
}

func (p Projection) scoreColor(n float64) colorful.Color {
	if p.Override != nil {
		return *p.Override
	}
	return p.Policy.color(n)
}

// finish marks every uncovered bucket unavailable when the sample stream
// failed.
func (out Raster) finish(err error, policy ColorPolicy) Raster {
	if err == nil {
		return out
	}
	out.Degraded = true
	out.Err = errors.Wrap(errors.ErrCodeDataUnavailable, err, "row %d scores", out.Row)
	for i := range out.Buckets {
		if !out.Buckets[i].Covered {
			out.Buckets[i] = Bucket{Color: policy.Unavailable, Unavailable: true}
		}
	}
	return out
}

// anchorSpans converts an alignment range into anchor model spans. An
// insertion occupies one anchor unit at its position.
func anchorSpans(src aln.Source, r coord.Range) []coord.Range {
	a := aln.AlnToAnchor(src, r)
	if a.Empty() {
		a.To = a.From + 1
	}
	return coord.SplitCircular(a, src.Row(src.Anchor()).Circular)
}

func spanLen(spans []coord.Range) int {
	n := 0
	for _, s := range spans {
		n += s.Len()
	}
	return n
}
