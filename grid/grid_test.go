package grid

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// TestSample_S5 checks the spec's S5 golden: a 2x2 static grid with
// lat=[0,1], lon=[0,1], u10=[0,10,20,30]. At (0.25, 0.75) the bilinear
// blend is 0.75*(0.25*0+0.75*10) + 0.25*(0.25*20+0.75*30) = 12.5.
func TestSample_S5(t *testing.T) {
	g := New([]float64{0, 1}, []float64{0, 1}, nil, map[string][]float64{
		"u10": {0, 10, 20, 30},
	})

	if got := g.Sample("u10", 0.5, 0.5, 0); !almostEqual(got, 15, 1e-9) {
		t.Errorf("Sample(0.5,0.5) = %v, want 15", got)
	}
	if got := g.Sample("u10", 0.25, 0.75, 0); !almostEqual(got, 12.5, 1e-9) {
		t.Errorf("Sample(0.25,0.75) = %v, want 12.5", got)
	}
}

func TestSample_ExactNodeMatchesData(t *testing.T) {
	lat := []float64{0, 1, 2}
	lon := []float64{0, 1}
	data := []float64{1, 2, 3, 4, 5, 6}
	g := New(lat, lon, nil, map[string][]float64{"v": data})

	for i := range lat {
		for j := range lon {
			got := g.Sample("v", lat[i], lon[j], 0)
			want := data[i*len(lon)+j]
			if !almostEqual(got, want, 1e-9) {
				t.Errorf("Sample(%v,%v) = %v, want %v", lat[i], lon[j], got, want)
			}
		}
	}
}

func TestSample_MissingVariableYieldsZero(t *testing.T) {
	g := New([]float64{0, 1}, []float64{0, 1}, nil, map[string][]float64{"u10": {0, 10, 20, 30}})
	if got := g.Sample("v10", 0.5, 0.5, 0); got != 0 {
		t.Errorf("Sample of missing var = %v, want 0", got)
	}
}

func TestSample_OutOfAxisClamps(t *testing.T) {
	g := New([]float64{0, 1}, []float64{0, 1}, nil, map[string][]float64{"u10": {0, 10, 20, 30}})
	inBound := g.Sample("u10", 0, 0, 0)
	outBound := g.Sample("u10", -50, -50, 0)
	if !almostEqual(inBound, outBound, 1e-9) {
		t.Errorf("out-of-axis sample %v should clamp to corner value %v", outBound, inBound)
	}
}

func TestContains(t *testing.T) {
	g := New([]float64{10, 20}, []float64{100, 110}, nil, map[string][]float64{"v": {0, 0, 0, 0}})
	if !g.Contains(15, 105) {
		t.Error("expected (15,105) to be contained")
	}
	if g.Contains(30, 105) {
		t.Error("expected (30,105) to be outside the lat range")
	}
}

func TestSample_TimeVaryingInterpolatesLinearly(t *testing.T) {
	lat := []float64{0, 1}
	lon := []float64{0, 1}
	times := []float64{0, 10}
	// Both time slices share the same spatial pattern but differ by a constant
	// offset, so the time blend is trivial to check.
	data := []float64{
		0, 10, 20, 30, // t=0
		100, 110, 120, 130, // t=10
	}
	g := New(lat, lon, times, map[string][]float64{"v": data})

	got := g.Sample("v", 0.5, 0.5, 5)
	want := 0.5*15 + 0.5*115
	if !almostEqual(got, want, 1e-9) {
		t.Errorf("time-interpolated sample = %v, want %v", got, want)
	}

	if got := g.Sample("v", 0.5, 0.5, -100); !almostEqual(got, 15, 1e-9) {
		t.Errorf("clamp before first time = %v, want 15", got)
	}
	if got := g.Sample("v", 0.5, 0.5, 1000); !almostEqual(got, 115, 1e-9) {
		t.Errorf("clamp after last time = %v, want 115", got)
	}
}

func TestValidateAxis_RejectsNonAscending(t *testing.T) {
	if err := validateAxis("lat", []float64{0, 1, 0.5}); err == nil {
		t.Error("expected error for non-ascending axis")
	}
}

func TestValidateVar_RejectsLengthMismatch(t *testing.T) {
	if err := validateVar("u10", []float64{1, 2, 3}, 4); err == nil {
		t.Error("expected error for length mismatch")
	}
}

func TestFromDocument_SanitizesLandMaskMissingTo1(t *testing.T) {
	d := &document{
		Lat: []float64{0, 1},
		Lon: []float64{0, 1},
		Vars: map[string][]float64{
			"lsm": {0, math.NaN(), 1, 0},
		},
	}
	g, err := fromDocument(d, true)
	if err != nil {
		t.Fatalf("fromDocument: %v", err)
	}
	if got := g.Sample("lsm", 0, 1, 0); !almostEqual(got, 1, 1e-9) {
		t.Errorf("sanitized NaN in landmask = %v, want 1", got)
	}
}

func TestFromDocument_SanitizesOrdinaryMissingTo0(t *testing.T) {
	d := &document{
		Lat: []float64{0, 1},
		Lon: []float64{0, 1},
		Vars: map[string][]float64{
			"u10": {0, math.NaN(), 1, 0},
		},
	}
	g, err := fromDocument(d, false)
	if err != nil {
		t.Fatalf("fromDocument: %v", err)
	}
	if got := g.Sample("u10", 0, 1, 0); got != 0 {
		t.Errorf("sanitized NaN in ordinary var = %v, want 0", got)
	}
}
