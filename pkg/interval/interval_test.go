package interval

import (
	"slices"
	"testing"

	"github.com/matzehuels/alnglyph/pkg/aln"
	"github.com/matzehuels/alnglyph/pkg/classify"
	"github.com/matzehuels/alnglyph/pkg/coord"
)

func iv(from, to int) ModelInterval { return ModelInterval{From: from, To: to} }

func TestMergeThreshold(t *testing.T) {
	in := []ModelInterval{iv(0, 10), iv(12, 20)}

	tests := []struct {
		name  string
		scale float64
		want  []ModelInterval
	}{
		{"gap of two screen units stays split", 1.0, []ModelInterval{iv(0, 10), iv(12, 20)}},
		{"gap of one screen unit merges", 0.5, []ModelInterval{iv(0, 20)}},
		{"gap just below threshold merges", 0.74, []ModelInterval{iv(0, 20)}},
		{"gap at threshold stays split", 0.75, []ModelInterval{iv(0, 10), iv(12, 20)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merger{Scale: tt.scale}.Merge(in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	in := []ModelInterval{
		iv(40, 45), iv(0, 10), iv(11, 13), iv(30, 35), iv(36, 38), iv(100, 200), iv(150, 160),
	}
	for _, scale := range []float64{0.1, 0.5, 1, 2, 10} {
		m := Merger{Scale: scale}
		once := m.Merge(in)
		twice := m.Merge(once)
		if !slices.Equal(once, twice) {
			t.Errorf("scale %v: Merge not idempotent: %v then %v", scale, once, twice)
		}
		for i := 1; i < len(once); i++ {
			if once[i].From <= once[i-1].To {
				t.Errorf("scale %v: intervals %v and %v overlap or touch", scale, once[i-1], once[i])
			}
		}
	}
}

func TestMergeEmpty(t *testing.T) {
	if got := (Merger{Scale: 1}).Merge(nil); got != nil {
		t.Errorf("Merge(nil) = %v, want nil", got)
	}
}

func TestFromSegments(t *testing.T) {
	src := &aln.Memory{
		Rows: []aln.MemoryRow{
			{Meta: coord.Row{BaseWidth: 1, Native: coord.R(500, 600)}},
			{Meta: coord.Row{BaseWidth: 1, Native: coord.R(0, 100)}},
		},
	}
	segs := []classify.Segment{
		{Kind: classify.Aligned, Aln: coord.R(20, 30)},
		{Kind: classify.Indel, Aln: coord.R(30, 35)},
		{Kind: classify.Aligned, Aln: coord.R(0, 10)},
	}
	got := FromSegments(src, segs)
	want := []ModelInterval{iv(500, 510), iv(520, 530)}
	if !slices.Equal(got, want) {
		t.Errorf("FromSegments() = %v, want %v", got, want)
	}
}

func TestFromSegmentsReverseAnchor(t *testing.T) {
	src := &aln.Memory{
		Rows: []aln.MemoryRow{
			{Meta: coord.Row{BaseWidth: 1, Strand: coord.Reverse, Native: coord.R(0, 100)}},
			{Meta: coord.Row{BaseWidth: 1, Native: coord.R(0, 100)}},
		},
	}
	got := FromSegments(src, []classify.Segment{{Kind: classify.Aligned, Aln: coord.R(0, 10)}})
	if want := []ModelInterval{iv(90, 100)}; !slices.Equal(got, want) {
		t.Errorf("FromSegments() = %v, want %v", got, want)
	}
}

func TestGapsAndClip(t *testing.T) {
	merged := []ModelInterval{iv(0, 10), iv(20, 30), iv(50, 60)}

	gaps := Gaps(merged, coord.R(0, 55))
	want := []ModelInterval{
		{From: 10, To: 20, Kind: Intron},
		{From: 30, To: 50, Kind: Intron},
	}
	if !slices.Equal(gaps, want) {
		t.Errorf("Gaps() = %v, want %v", gaps, want)
	}

	clipped := Clip(merged, coord.R(5, 25))
	if want := []ModelInterval{iv(5, 10), iv(20, 25)}; !slices.Equal(clipped, want) {
		t.Errorf("Clip() = %v, want %v", clipped, want)
	}
}
