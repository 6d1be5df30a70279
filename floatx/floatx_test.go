package floatx

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestCheck2D(t *testing.T) {

	n1, n2, err := Check2D([][]float64{{11, 22}, {33, 44}, {55, 66}})
	if err != nil {
		t.Fatal(err)
	}
	if n1 != 3 || n2 != 2 {
		t.Fatalf("wrong dims. expected [3 2], got [%d %d]", n1, n2)
	}

	if _, _, err := Check2D([][]float64{{1, 2}, {3}}); err != ErrRagged {
		t.Fatalf("expected ErrRagged, got %v", err)
	}
	if _, _, err := Check2D(nil); err != ErrZeroLength {
		t.Fatalf("expected ErrZeroLength, got %v", err)
	}
}

func TestSegments(t *testing.T) {

	s := [][]float64{{1}, {2}, {3}, {4}, {5}}
	segs, err := Segments(s, []int{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 2 || len(segs[0]) != 2 || len(segs[1]) != 3 {
		t.Fatalf("bad segmentation: %v", segs)
	}
	if segs[1][0][0] != 3 {
		t.Fatalf("second segment starts at [%f], expected [3]", segs[1][0][0])
	}

	segs, err = Segments(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 1 || len(segs[0]) != 5 {
		t.Fatalf("nil lengths must yield a single segment, got %v", segs)
	}

	for _, lengths := range [][]int{{2, 2}, {2, 4}, {0, 5}, {-1, 6}} {
		if _, err := Segments(s, lengths); err == nil {
			t.Errorf("lengths %v: expected error", lengths)
		}
	}
}

func TestArgMax(t *testing.T) {

	inf := math.Inf(-1)
	cases := []struct {
		in       []float64
		expected int
	}{
		{[]float64{1, 3, 2}, 1},
		{[]float64{3, 3, 2}, 0},
		{[]float64{inf, inf}, 0},
		{[]float64{math.NaN(), 1}, 1},
		{[]float64{}, -1},
	}
	for _, c := range cases {
		if got := ArgMax(c.in); got != c.expected {
			t.Errorf("ArgMax(%v). Expected: [%d], Got: [%d]", c.in, c.expected, got)
		}
	}
}

func TestApply(t *testing.T) {

	in := []float64{1, 2, 4}
	out := make([]float64, 3)
	Apply(Sq, in, out)
	if !floats.Equal(out, []float64{1, 4, 16}) {
		t.Fatalf("sq failed. got %v", out)
	}
	Apply(Inv, in, nil)
	if !floats.Equal(in, []float64{1, 0.5, 0.25}) {
		t.Fatalf("in place inv failed. got %v", in)
	}
	Apply(SetValueFunc(0), in, nil)
	if floats.Sum(in) != 0 {
		t.Fatalf("set value failed. got %v", in)
	}
}
