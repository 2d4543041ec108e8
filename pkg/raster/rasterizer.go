// Package raster distributes range-valued contributions onto a fixed number
// of output buckets (pixels), weighting each contribution by how much of the
// bucket it covers.
//
// A [Rasterizer] is generic over the bucket accumulator; the caller supplies
// the [MergeFunc] that folds a contribution into a bucket. Two policies ship
// with the package: [MaxCoverage] for categorical scores and [Accumulate]
// for scores that may be averaged.
package raster

import "math"

// MergeFunc folds src into the bucket dst. fraction is the part of the bucket
// covered by the contributing interval, in (0, 1]. long is true when the
// interval spans more than one bucket.
type MergeFunc[T any] func(dst *T, src T, fraction float64, long bool)

// Rasterizer maps the value range [from, to) linearly onto n buckets.
type Rasterizer[T any] struct {
	raster []T
	from   float64
	to     float64
	scale  float64 // buckets per value unit
}

// New creates a rasterizer with n buckets over [from, to). A non-positive
// bucket count or an empty value range yields a rasterizer that ignores all
// contributions and has an empty raster.
func New[T any](n int, from, to float64) *Rasterizer[T] {
	if n <= 0 || !(to > from) {
		return &Rasterizer[T]{from: from, to: from}
	}
	return &Rasterizer[T]{
		raster: make([]T, n),
		from:   from,
		to:     to,
		scale:  float64(n) / (to - from),
	}
}

// Len returns the number of buckets.
func (r *Rasterizer[T]) Len() int { return len(r.raster) }

// Raster returns the bucket array. It is owned by the rasterizer.
func (r *Rasterizer[T]) Raster() []T { return r.raster }

// BucketWidth returns the value-space width of one bucket.
func (r *Rasterizer[T]) BucketWidth() float64 {
	if r.scale == 0 {
		return 0
	}
	return 1 / r.scale
}

// BucketRange returns the value-space extent of bucket i.
func (r *Rasterizer[T]) BucketRange(i int) (from, to float64) {
	w := r.BucketWidth()
	return r.from + float64(i)*w, r.from + float64(i+1)*w
}

// AddInterval distributes v over every bucket overlapping [from, to).
// The interval is clipped to the rasterizer's value range; empty intervals
// are ignored.
func (r *Rasterizer[T]) AddInterval(from, to float64, v T, merge MergeFunc[T]) {
	if len(r.raster) == 0 || !(to > from) {
		return
	}
	from = max(from, r.from)
	to = min(to, r.to)
	if !(to > from) {
		return
	}

	x1 := (from - r.from) * r.scale
	x2 := (to - r.from) * r.scale
	first := int(math.Floor(x1))
	last := int(math.Ceil(x2)) - 1
	if last >= len(r.raster) {
		last = len(r.raster) - 1
	}
	if first < 0 {
		first = 0
	}
	long := last > first

	for i := first; i <= last; i++ {
		f := min(x2, float64(i+1)) - max(x1, float64(i))
		if f <= 0 {
			continue
		}
		merge(&r.raster[i], v, min(f, 1), long)
	}
}

// Run is a maximal stretch of equal adjacent buckets [From, To).
type Run[T any] struct {
	From, To int
	Value    T
}

// Runs collapses adjacent equal buckets so callers emit one rectangle per run.
func Runs[T comparable](raster []T) []Run[T] {
	var runs []Run[T]
	for i := 0; i < len(raster); {
		j := i + 1
		for j < len(raster) && raster[j] == raster[i] {
			j++
		}
		runs = append(runs, Run[T]{From: i, To: j, Value: raster[i]})
		i = j
	}
	return runs
}
