package analysis

import (
	"math"
	"testing"
)

func TestMannWhitneyUExactSeparated(t *testing.T) {
	// Complete separation of two tie-free samples of four. Exactly one of
	// the C(8,4)=70 equally likely rank interleavings has U=0.
	x := []float64{1, 2, 3, 4}
	y := []float64{5, 6, 7, 8}

	res, err := MannWhitneyU(x, y, Less)
	if err != nil {
		t.Fatalf("MannWhitneyU() failed: %v", err)
	}

	if !res.Exact {
		t.Error("Exact = false, want exact path for small tie-free samples")
	}
	if res.U != 0 {
		t.Errorf("U = %v, want 0", res.U)
	}
	if want := 1.0 / 70.0; math.Abs(res.P-want) > 1e-12 {
		t.Errorf("P = %v, want %v", res.P, want)
	}
}

func TestMannWhitneyUExactSymmetry(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{5, 6, 7, 8}

	less, err := MannWhitneyU(x, y, Less)
	if err != nil {
		t.Fatalf("MannWhitneyU() failed: %v", err)
	}
	greater, err := MannWhitneyU(y, x, Greater)
	if err != nil {
		t.Fatalf("MannWhitneyU() failed: %v", err)
	}

	if math.Abs(less.P-greater.P) > 1e-12 {
		t.Errorf("P(x<y) = %v, P(y>x) = %v, want equal", less.P, greater.P)
	}

	two, err := MannWhitneyU(x, y, TwoSided)
	if err != nil {
		t.Fatalf("MannWhitneyU() failed: %v", err)
	}
	if want := 2.0 / 70.0; math.Abs(two.P-want) > 1e-12 {
		t.Errorf("two-sided P = %v, want %v", two.P, want)
	}
}

func TestMannWhitneyUTiesUseApproximation(t *testing.T) {
	x := []float64{49, 50, 51, 50}
	y := []float64{99, 100, 101, 100}

	res, err := MannWhitneyU(x, y, Less)
	if err != nil {
		t.Fatalf("MannWhitneyU() failed: %v", err)
	}

	if res.Exact {
		t.Error("Exact = true, want normal approximation in the presence of ties")
	}
	if res.U != 0 {
		t.Errorf("U = %v, want 0", res.U)
	}
	// z = (0 - 8 + 0.5) / sqrt(16/12 * (9 - 12/56)), about -2.19
	if res.P >= 0.05 {
		t.Errorf("P = %v, want below 0.05 for fully separated groups", res.P)
	}
	if res.P < 0.005 {
		t.Errorf("P = %v, implausibly small for n=4 vs 4", res.P)
	}
}

func TestMannWhitneyUIdenticalMultisets(t *testing.T) {
	x := []float64{10, 12, 11}
	y := []float64{10, 11, 12}

	res, err := MannWhitneyU(x, y, Less)
	if err != nil {
		t.Fatalf("MannWhitneyU() failed: %v", err)
	}
	if res.P < 0.5 {
		t.Errorf("P = %v, want at least 0.5 for identical samples", res.P)
	}
}

func TestMannWhitneyUAllValuesTied(t *testing.T) {
	x := []float64{5, 5, 5}
	y := []float64{5, 5}

	res, err := MannWhitneyU(x, y, Less)
	if err != nil {
		t.Fatalf("MannWhitneyU() failed: %v", err)
	}
	if res.P != 1 {
		t.Errorf("P = %v, want 1 when the ranks carry no information", res.P)
	}
}

func TestMannWhitneyUEmptySample(t *testing.T) {
	if _, err := MannWhitneyU(nil, []float64{1, 2}, Less); err == nil {
		t.Error("MannWhitneyU(nil, y) succeeded, want error")
	}
	if _, err := MannWhitneyU([]float64{1, 2}, nil, Less); err == nil {
		t.Error("MannWhitneyU(x, nil) succeeded, want error")
	}
}

func TestMannWhitneyULargeSamplesApproximate(t *testing.T) {
	// Above the exact enumeration limit, tie-free samples still go through
	// the normal approximation.
	var x, y []float64
	for i := 0; i < 30; i++ {
		x = append(x, float64(i)+0.5)
		y = append(y, float64(i)+30.25)
	}

	res, err := MannWhitneyU(x, y, Less)
	if err != nil {
		t.Fatalf("MannWhitneyU() failed: %v", err)
	}
	if res.Exact {
		t.Error("Exact = true, want approximation above the size limit")
	}
	if res.P >= 1e-6 {
		t.Errorf("P = %v, want essentially zero for fully separated n=30 samples", res.P)
	}
}
