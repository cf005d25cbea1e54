package timeseries_test

import (
	"errors"
	"math"
	"testing"

	"transients/internal/timeseries"
)

func grid(t *testing.T, peak float64) *timeseries.Source {
	t.Helper()
	phase := []float64{0, 5, 10, 15, 20}
	var wave []float64
	for w := 3000.0; w <= 10000; w += 50 {
		wave = append(wave, w)
	}
	flux := make([][]float64, len(phase))
	for i, p := range phase {
		row := make([]float64, len(wave))
		for j := range wave {
			row[j] = math.Exp(-(p - peak) * (p - peak) / 50)
		}
		flux[i] = row
	}
	src, err := timeseries.New(phase, wave, flux, "test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return src
}

func TestPeakPhaseFindsBrightestEpoch(t *testing.T) {
	src := grid(t, 10)
	for _, band := range []string{"bessellB", "bessellV", "bessellR", "bessellI"} {
		peak, err := src.PeakPhase(band)
		if err != nil {
			t.Fatalf("PeakPhase(%s): %v", band, err)
		}
		if peak != 10 {
			t.Fatalf("PeakPhase(%s) = %v, want 10", band, peak)
		}
	}
}

func TestPeakPhaseUnknownBand(t *testing.T) {
	src := grid(t, 5)
	if _, err := src.PeakPhase("sdssz"); !errors.Is(err, timeseries.ErrUnknownBandpass) {
		t.Fatalf("expected ErrUnknownBandpass, got %v", err)
	}
}

func TestBandFluxOutOfRange(t *testing.T) {
	src, err := timeseries.New([]float64{0, 1}, []float64{4000, 4500, 5000}, [][]float64{{1, 1, 1}, {1, 1, 1}}, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := src.PeakPhase("bessellB"); !errors.Is(err, timeseries.ErrBandOutOfRange) {
		t.Fatalf("expected ErrBandOutOfRange, got %v", err)
	}
}

func TestFluxInterpolatesBilinearly(t *testing.T) {
	src, err := timeseries.New(
		[]float64{0, 10},
		[]float64{4000, 6000},
		[][]float64{{0, 2}, {10, 12}},
		"interp",
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cases := []struct {
		phase, wave, want float64
	}{
		{0, 4000, 0},
		{0, 5000, 1},
		{10, 6000, 12},
		{5, 5000, 6},
		{-1, 5000, 0},
		{5, 7000, 0},
	}
	for _, tc := range cases {
		if got := src.Flux(tc.phase, tc.wave); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("Flux(%v, %v) = %v, want %v", tc.phase, tc.wave, got, tc.want)
		}
	}
	if src.Name() != "interp" {
		t.Fatalf("unexpected name %q", src.Name())
	}
}

func TestNewRejectsInvalidGrids(t *testing.T) {
	cases := map[string]struct {
		phase, wave []float64
		flux        [][]float64
	}{
		"empty phase":     {nil, []float64{1, 2}, nil},
		"unsorted phase":  {[]float64{1, 0}, []float64{1, 2}, [][]float64{{1, 1}, {1, 1}}},
		"duplicate phase": {[]float64{1, 1}, []float64{1, 2}, [][]float64{{1, 1}, {1, 1}}},
		"unsorted wave":   {[]float64{0}, []float64{2, 1}, [][]float64{{1, 1}}},
		"row count":       {[]float64{0, 1}, []float64{1, 2}, [][]float64{{1, 1}}},
		"row width":       {[]float64{0}, []float64{1, 2}, [][]float64{{1}}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := timeseries.New(tc.phase, tc.wave, tc.flux, ""); !errors.Is(err, timeseries.ErrInvalidGrid) {
				t.Fatalf("expected ErrInvalidGrid, got %v", err)
			}
		})
	}
}

func TestRegisterBandpass(t *testing.T) {
	err := timeseries.RegisterBandpass(&timeseries.Bandpass{
		Name:  "flat5000",
		Wave:  []float64{4900, 5100},
		Trans: []float64{1, 1},
	})
	if err != nil {
		t.Fatalf("RegisterBandpass: %v", err)
	}
	bp, err := timeseries.LookupBandpass("flat5000")
	if err != nil {
		t.Fatalf("LookupBandpass: %v", err)
	}
	if bp.Transmission(5000) != 1 || bp.Transmission(6000) != 0 {
		t.Fatalf("unexpected transmission")
	}

	src, err := timeseries.New([]float64{0, 1}, []float64{4000, 6000}, [][]float64{{1, 1}, {2, 2}}, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := src.BandFlux(bp, 0)
	if err != nil {
		t.Fatalf("BandFlux: %v", err)
	}
	// ∫ λ dλ over [4900, 5100]
	want := (5100.0*5100 - 4900.0*4900) / 2
	if math.Abs(got-want)/want > 1e-9 {
		t.Fatalf("BandFlux = %v, want %v", got, want)
	}

	if err := timeseries.RegisterBandpass(&timeseries.Bandpass{Name: "bad", Wave: []float64{1}, Trans: []float64{1}}); err == nil {
		t.Fatal("expected error for single-sample bandpass")
	}
}
