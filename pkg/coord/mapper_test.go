package coord

import "testing"

func TestRoundTripUnitWidth(t *testing.T) {
	rows := []Row{
		{BaseWidth: 1, Strand: Forward, Native: R(100, 200), AlnFrom: 0},
		{BaseWidth: 1, Strand: Reverse, Native: R(100, 200), AlnFrom: 0},
		{BaseWidth: 1, Strand: Forward, Native: R(5, 50), AlnFrom: 17},
	}
	for _, row := range rows {
		for p := row.Native.From; p < row.Native.To; p++ {
			if got := ToRowPosition(ToAnchorPosition(p, row), row); got != p {
				t.Fatalf("strand %v: round trip of %d = %d", row.Strand, p, got)
			}
		}
	}
}

func TestRoundTripCodonWidth(t *testing.T) {
	for _, strand := range []Strand{Forward, Reverse} {
		row := Row{BaseWidth: 3, Strand: strand, Native: R(10, 40), AlnFrom: 6}
		for p := row.Native.From; p < row.Native.To; p++ {
			if got := ToRowPosition(ToAnchorPosition(p, row), row); got != p {
				t.Errorf("strand %v: native round trip of %d = %d", strand, p, got)
			}
		}
		for a := row.AlnFrom; a < row.AlnSpan().To; a++ {
			back := ToAnchorPosition(ToRowPosition(a, row), row)
			if d := a - back; d < 0 || d > 2 {
				t.Errorf("strand %v: aln round trip of %d = %d", strand, a, back)
			}
		}
	}
}

func TestReverseStrandDecreasing(t *testing.T) {
	row := Row{BaseWidth: 1, Strand: Reverse, Native: R(0, 64)}
	prev := ToRowPosition(0, row)
	for a := 1; a < 64; a++ {
		cur := ToRowPosition(a, row)
		if cur >= prev {
			t.Fatalf("ToRowPosition(%d) = %d, not below %d", a, cur, prev)
		}
		prev = cur
	}
}

func TestReverseStrandCodonNonIncreasing(t *testing.T) {
	row := Row{BaseWidth: 3, Strand: Reverse, Native: R(0, 20)}
	prev := ToRowPosition(0, row)
	for a := 1; a < 60; a++ {
		cur := ToRowPosition(a, row)
		if cur > prev {
			t.Fatalf("ToRowPosition(%d) = %d, above %d", a, cur, prev)
		}
		prev = cur
	}
	if got := ToRowPosition(59, row); got != 0 {
		t.Errorf("last codon = %d, want 0", got)
	}
}

func TestFrameShift(t *testing.T) {
	tests := []struct {
		off, width, want int
	}{
		{0, 3, 0},
		{1, 3, 1},
		{5, 3, 2},
		{-1, 3, 2},
		{-3, 3, 0},
		{7, 1, 0},
	}
	for _, tt := range tests {
		if got := FrameShift(tt.off, tt.width); got != tt.want {
			t.Errorf("FrameShift(%d, %d) = %d, want %d", tt.off, tt.width, got, tt.want)
		}
	}
}

func TestNegativeOffsetRoundsToContainingCodon(t *testing.T) {
	row := Row{BaseWidth: 3, Native: R(10, 20), AlnFrom: 30}
	if got := ToRowPosition(29, row); got != 9 {
		t.Errorf("ToRowPosition(29) = %d, want 9", got)
	}
}

func TestAlnRangeToRow(t *testing.T) {
	fwd := Row{BaseWidth: 1, Native: R(100, 200)}
	rev := Row{BaseWidth: 1, Strand: Reverse, Native: R(100, 200)}
	prot := Row{BaseWidth: 3, Native: R(0, 50)}

	tests := []struct {
		name string
		row  Row
		in   Range
		want Range
	}{
		{"forward", fwd, R(10, 20), R(110, 120)},
		{"reverse", rev, R(10, 20), R(180, 190)},
		{"codon", prot, R(3, 12), R(1, 4)},
		{"partial codon", prot, R(4, 8), R(1, 3)},
		{"empty forward", fwd, R(10, 10), R(110, 110)},
		{"empty reverse", rev, R(10, 10), R(190, 190)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlnRangeToRow(tt.in, tt.row); got != tt.want {
				t.Errorf("AlnRangeToRow(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRowRangeToAln(t *testing.T) {
	prot := Row{BaseWidth: 3, Native: R(0, 50), AlnFrom: 0}
	if got, want := RowRangeToAln(R(1, 4), prot), R(3, 12); got != want {
		t.Errorf("RowRangeToAln = %v, want %v", got, want)
	}
	rev := Row{BaseWidth: 1, Strand: Reverse, Native: R(100, 200)}
	if got, want := RowRangeToAln(R(180, 190), rev), R(10, 20); got != want {
		t.Errorf("RowRangeToAln reverse = %v, want %v", got, want)
	}
}

func TestCircularWrap(t *testing.T) {
	row := Row{BaseWidth: 1, Native: R(90, 110), Circular: 100}
	if got := ToRowPosition(15, row); got != 5 {
		t.Errorf("ToRowPosition across origin = %d, want 5", got)
	}
	if got := ToAnchorPosition(5, row); got != 15 {
		t.Errorf("ToAnchorPosition across origin = %d, want 15", got)
	}
}
