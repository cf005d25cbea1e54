package transient_test

import (
	"errors"
	"math"
	"testing"

	"transients/internal/table"
	"transients/internal/testsupport"
	"transients/internal/timeseries"
	"transients/internal/transient"
)

type countingBuilder struct {
	calls  int
	peaks  int
	phases [][]float64
}

type fakeSource struct {
	name  string
	peak  float64
	owner *countingBuilder
}

func (f fakeSource) Name() string { return f.name }

func (f fakeSource) PeakPhase(string) (float64, error) {
	f.owner.peaks++
	return f.peak, nil
}

func (c *countingBuilder) build(phase, _ []float64, _ [][]float64, name string) (transient.Source, error) {
	c.calls++
	c.phases = append(c.phases, append([]float64(nil), phase...))
	return fakeSource{name: name, peak: 54005, owner: c}, nil
}

func threeEpochs(t *testing.T, opts ...transient.Option) *transient.Object {
	t.Helper()

	wave := testsupport.Grid(3000, 100, 41)
	return mustObject(t, transient.Input{
		Name:    "SN2007uy",
		Days:    []float64{54010, 54000, 54005},
		Mangled: []*table.Table{spectrum(wave, 2), spectrum(wave, 1), spectrum(wave, 3)},
	}, opts...)
}

func TestSourceCachesPeakPhase(t *testing.T) {
	builder := &countingBuilder{}
	obj := threeEpochs(t, transient.WithSourceBuilder(builder.build))

	if _, ok := obj.PhasePeak(); ok {
		t.Fatal("peak phase set before first Source call")
	}
	src, err := obj.Source()
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if src.Name() != "SN2007uy" {
		t.Fatalf("source name = %q", src.Name())
	}
	peak, ok := obj.PhasePeak()
	if !ok || peak != 54005 {
		t.Fatalf("PhasePeak = %v, %v; want 54005, true", peak, ok)
	}
	if builder.peaks != 1 {
		t.Fatalf("peak queried %d times, want 1", builder.peaks)
	}
	if want := []float64{-5, 0, 5}; !equalFloats(builder.phases[1], want) {
		t.Fatalf("canonical phases = %v, want %v", builder.phases[1], want)
	}

	if _, err := obj.Source(); err != nil {
		t.Fatalf("second Source: %v", err)
	}
	if builder.peaks != 1 {
		t.Fatalf("peak re-queried on second call: %d", builder.peaks)
	}
	if builder.calls != 3 {
		t.Fatalf("builder calls = %d, want 3 (provisional + two canonical)", builder.calls)
	}
}

func TestSetPhasePeakSkipsDerivation(t *testing.T) {
	builder := &countingBuilder{}
	obj := threeEpochs(t, transient.WithSourceBuilder(builder.build))
	obj.SetPhasePeak(54000)

	if _, err := obj.Source(); err != nil {
		t.Fatalf("Source: %v", err)
	}
	if builder.peaks != 0 || builder.calls != 1 {
		t.Fatalf("peaks=%d calls=%d, want 0 and 1", builder.peaks, builder.calls)
	}
	if want := []float64{0, 5, 10}; !equalFloats(builder.phases[0], want) {
		t.Fatalf("phases = %v, want %v", builder.phases[0], want)
	}
}

func TestSourceWithTimeSeries(t *testing.T) {
	obj := threeEpochs(t)
	src, err := obj.Source()
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	ts, ok := src.(*timeseries.Source)
	if !ok {
		t.Fatalf("source type %T, want *timeseries.Source", src)
	}
	if want := []float64{-5, 0, 5}; !equalFloats(ts.Phase(), want) {
		t.Fatalf("phases = %v, want %v", ts.Phase(), want)
	}
	peak, err := src.PeakPhase("bessellB")
	if err != nil {
		t.Fatalf("PeakPhase: %v", err)
	}
	if peak != 0 {
		t.Fatalf("re-centred peak = %v, want 0", peak)
	}
}

func TestSourceGridMismatch(t *testing.T) {
	obj := mustObject(t, transient.Input{
		Days: []float64{1, 2},
		Mangled: []*table.Table{
			table.MustFromColumns([]float64{4000, 5000, 6000}, []float64{1, 1, 1}),
			table.MustFromColumns([]float64{4000, 5000}, []float64{1, 1}),
		},
	})
	if _, err := obj.Source(); !errors.Is(err, transient.ErrGridMismatch) {
		t.Fatalf("expected ErrGridMismatch, got %v", err)
	}
	if _, ok := obj.PhasePeak(); ok {
		t.Fatal("peak cached after failed derivation")
	}
}

func TestSourceUnknownReferenceBand(t *testing.T) {
	obj := threeEpochs(t, transient.WithReferenceBand("sdssz"))
	if _, err := obj.Source(); !errors.Is(err, timeseries.ErrUnknownBandpass) {
		t.Fatalf("expected ErrUnknownBandpass, got %v", err)
	}
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}
