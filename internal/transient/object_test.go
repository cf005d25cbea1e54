package transient_test

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"testing"

	"transients/internal/table"
	"transients/internal/testsupport"
	"transients/internal/transient"
)

func spectrum(wave []float64, flux float64) *table.Table {
	return table.MustFromColumns(wave, testsupport.Constant(flux, len(wave)))
}

func mustObject(t *testing.T, in transient.Input, opts ...transient.Option) *transient.Object {
	t.Helper()

	obj, err := transient.New(in, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return obj
}

func TestNewSortsParallelSequences(t *testing.T) {
	wave := testsupport.Grid(4000, 10, 5)
	days := []float64{54010, 54000, 54005, 54000}
	in := transient.Input{
		Name:         "SN2000x",
		Days:         days,
		Mangled:      []*table.Table{spectrum(wave, 10), spectrum(wave, 0), spectrum(wave, 5), spectrum(wave, 1)},
		Spectra:      []*table.Table{spectrum(wave, 110), spectrum(wave, 100), spectrum(wave, 105), spectrum(wave, 101)},
		DataFiles:    []string{"c.dat", "a.dat", "b.dat", "a2.dat"},
		MangledFiles: []string{"c_mangled.txt", "a_mangled.txt", "b_mangled.txt", "a2_mangled.txt"},
	}
	obj := mustObject(t, in)

	got := obj.Days()
	if !sort.Float64sAreSorted(got) {
		t.Fatalf("days not sorted: %v", got)
	}
	// Equal days keep their input order.
	if want := []int{1, 3, 2, 0}; !reflect.DeepEqual(obj.SortOrder(), want) {
		t.Fatalf("sort order = %v, want %v", obj.SortOrder(), want)
	}
	if want := []string{"a.dat", "a2.dat", "b.dat", "c.dat"}; !reflect.DeepEqual(obj.DataFiles(), want) {
		t.Fatalf("data files = %v, want %v", obj.DataFiles(), want)
	}
	if want := []string{"a_mangled.txt", "a2_mangled.txt", "b_mangled.txt", "c_mangled.txt"}; !reflect.DeepEqual(obj.MangledFiles(), want) {
		t.Fatalf("mangled files = %v, want %v", obj.MangledFiles(), want)
	}
	for i, src := range obj.SortOrder() {
		if obj.Mangled()[i] != in.Mangled[src] {
			t.Fatalf("mangled[%d] not permuted with days", i)
		}
		if obj.Spectra()[i] != in.Spectra[src] {
			t.Fatalf("spectra[%d] not permuted with days", i)
		}
	}
	if !obj.Consistent() {
		t.Fatalf("unexpected mismatches: %v", obj.Mismatches())
	}
}

func TestNewWithoutRawSpectra(t *testing.T) {
	wave := testsupport.Grid(4000, 10, 5)
	obj := mustObject(t, transient.Input{
		Days:    []float64{2, 1},
		Mangled: []*table.Table{spectrum(wave, 2), spectrum(wave, 1)},
	})
	if len(obj.Spectra()) != 0 {
		t.Fatalf("expected no raw spectra, got %d", len(obj.Spectra()))
	}
	if obj.Len() != 2 {
		t.Fatalf("Len = %d, want 2", obj.Len())
	}
}

func TestNewLengthMismatch(t *testing.T) {
	wave := testsupport.Grid(4000, 10, 5)
	tests := []struct {
		name string
		in   transient.Input
	}{
		{
			name: "mangled",
			in:   transient.Input{Days: []float64{1, 2}, Mangled: []*table.Table{spectrum(wave, 1)}},
		},
		{
			name: "spectra",
			in: transient.Input{
				Days:    []float64{1, 2},
				Mangled: []*table.Table{spectrum(wave, 1), spectrum(wave, 2)},
				Spectra: []*table.Table{spectrum(wave, 1)},
			},
		},
		{
			name: "filenames",
			in: transient.Input{
				Days:         []float64{1, 2},
				Mangled:      []*table.Table{spectrum(wave, 1), spectrum(wave, 2)},
				MangledFiles: []string{"a", "b", "c"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := transient.New(tt.in); !errors.Is(err, transient.ErrLengthMismatch) {
				t.Fatalf("expected ErrLengthMismatch, got %v", err)
			}
		})
	}
}

func TestNewLengthMismatchReportsFirstSequence(t *testing.T) {
	wave := testsupport.Grid(4000, 10, 5)
	in := transient.Input{
		Days:      []float64{1, 2},
		Mangled:   []*table.Table{spectrum(wave, 1), spectrum(wave, 2)},
		Spectra:   []*table.Table{spectrum(wave, 1)},
		DataFiles: []string{"a", "b", "c"},
	}
	for range 20 {
		_, err := transient.New(in)
		if !errors.Is(err, transient.ErrLengthMismatch) {
			t.Fatalf("expected ErrLengthMismatch, got %v", err)
		}
		if !strings.Contains(err.Error(), "1 spectra for 2 days") {
			t.Fatalf("expected spectra to be reported first, got %q", err)
		}
	}
}

func TestValidateWavelengthsLengthMismatch(t *testing.T) {
	obj := mustObject(t, transient.Input{
		Days: []float64{1, 2},
		Mangled: []*table.Table{
			table.MustFromColumns([]float64{4000, 5000, 6000}, []float64{1, 1, 1}),
			table.MustFromColumns([]float64{4000, 5000}, []float64{1, 1}),
		},
	})
	got := obj.Mismatches()
	if len(got) != 1 {
		t.Fatalf("mismatches = %v, want one", got)
	}
	if got[0].Index != 1 || got[0].Kind != transient.MismatchLength {
		t.Fatalf("mismatch = %+v, want length mismatch at index 1", got[0])
	}
}

func TestValidateWavelengthsKinds(t *testing.T) {
	tests := []struct {
		name   string
		second []float64
		want   []transient.MismatchKind
	}{
		{name: "within tolerance", second: []float64{4000, 5000.00001, 6000}},
		{name: "values", second: []float64{4000, 5001, 6000}, want: []transient.MismatchKind{transient.MismatchValues}},
		{
			name:   "not increasing",
			second: []float64{4000, 4000, 3000},
			want:   []transient.MismatchKind{transient.MismatchValues, transient.MismatchNotIncreasing},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := mustObject(t, transient.Input{
				Days: []float64{1, 2},
				Mangled: []*table.Table{
					table.MustFromColumns([]float64{4000, 5000, 6000}, []float64{1, 1, 1}),
					table.MustFromColumns(tt.second, []float64{1, 1, 1}),
				},
			})
			var kinds []transient.MismatchKind
			for _, m := range obj.Mismatches() {
				if m.Index != 1 {
					t.Fatalf("mismatch at index %d, want 1", m.Index)
				}
				kinds = append(kinds, m.Kind)
			}
			if !reflect.DeepEqual(kinds, tt.want) {
				t.Fatalf("kinds = %v, want %v", kinds, tt.want)
			}
		})
	}
}

func TestValidateWavelengthsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	obj := mustObject(t, transient.Input{
		Days: []float64{1, 2, 3},
		Mangled: []*table.Table{
			table.MustFromColumns([]float64{4000, 5000, 6000}, []float64{1, 1, 1}),
			table.MustFromColumns([]float64{4000, 5000}, []float64{1, 1}),
			table.MustFromColumns([]float64{4000, 5000, 6000}, []float64{1, 1, 1}),
		},
	}, transient.WithLogger(logger))

	buf.Reset()
	first := obj.ValidateWavelengths(true)
	firstLog := buf.String()
	buf.Reset()
	second := obj.ValidateWavelengths(true)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports differ: %v vs %v", first, second)
	}
	if firstLog != buf.String() {
		t.Fatalf("logs differ:\n%s\n---\n%s", firstLog, buf.String())
	}
	if !reflect.DeepEqual(first, obj.Mismatches()) {
		t.Fatalf("stored report %v differs from %v", obj.Mismatches(), first)
	}
	if !strings.Contains(firstLog, "wavelength grid match") {
		t.Fatalf("verbose validation did not log matches:\n%s", firstLog)
	}
	if !strings.Contains(firstLog, "level=WARN") {
		t.Fatalf("mismatch not logged at WARN:\n%s", firstLog)
	}
}
