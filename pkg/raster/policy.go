package raster

// Pixel is the bucket of a non-averageable score: the contribution with the
// largest coverage owns the bucket.
type Pixel struct {
	Score       float64
	MaxCoverage float64
	Gap         bool
}

// MaxCoverage keeps src only when it covers strictly more of the bucket than
// the current owner. Ties keep the value seen first.
func MaxCoverage(dst *Pixel, src Pixel, fraction float64, _ bool) {
	if fraction > dst.MaxCoverage {
		dst.Score = src.Score
		dst.Gap = src.Gap
		dst.MaxCoverage = fraction
	}
}

// AvgPixel accumulates coverage-weighted scores of aligned and of gap/indel
// contributions, plus the minimum score seen among contributions that fit
// inside a single bucket.
type AvgPixel struct {
	IntScore    float64
	IntLen      float64
	GapScore    float64
	GapLen      float64
	MinScore    float64
	Initialized bool
}

const lenEps = 1e-5

// Score returns the coverage-weighted aligned score, and false when no aligned
// contribution landed in the bucket.
func (p AvgPixel) Score() (float64, bool) {
	if p.IntLen <= lenEps {
		return 0, false
	}
	return p.IntScore / p.IntLen, true
}

// Aligned builds an aligned contribution of the given score.
func Aligned(score float64) AvgPixel { return AvgPixel{IntScore: score, IntLen: 1} }

// Indel builds a gap/indel contribution of the given score.
func Indel(score float64) AvgPixel { return AvgPixel{GapScore: score, GapLen: 1} }

// Accumulate adds src weighted by fraction. Contributions that do not span
// several buckets also feed the bucket's minimum score.
func Accumulate(dst *AvgPixel, src AvgPixel, fraction float64, long bool) {
	dst.IntScore += src.IntScore * fraction
	dst.IntLen += src.IntLen * fraction
	dst.GapScore += src.GapScore * fraction
	dst.GapLen += src.GapLen * fraction

	if long {
		return
	}
	if src.IntLen > lenEps {
		dst.takeMin(src.IntScore)
	}
	if src.GapLen > lenEps {
		dst.takeMin(src.GapScore)
	}
}

func (p *AvgPixel) takeMin(v float64) {
	if !p.Initialized {
		p.MinScore = v
		p.Initialized = true
		return
	}
	p.MinScore = min(p.MinScore, v)
}
