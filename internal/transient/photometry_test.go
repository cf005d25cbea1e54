package transient_test

import (
	"errors"
	"testing"

	"transients/internal/table"
	"transients/internal/testsupport"
	"transients/internal/transient"
)

func TestObjectPhotometryTwoBands(t *testing.T) {
	dir := t.TempDir()
	testsupport.WritePhotometry(t, dir, "B", "sn_B.DAT", [][3]float64{{1, 10, 0.1}, {2, 11, 0.1}})
	testsupport.WritePhotometry(t, dir, "V", "sn_V.dat", [][3]float64{{1, 20, 0.2}, {2, 21, 0.2}, {3, 22, 0.2}})

	obj := mustObject(t, transient.Input{
		Mangled: []*table.Table{spectrum(testsupport.Grid(4000, 10, 5), 1)},
		Days:    []float64{1},
	})
	phot, err := obj.Photometry(dir, []string{"B", "V"})
	if err != nil {
		t.Fatalf("Photometry: %v", err)
	}
	if phot.Len() != 5 {
		t.Fatalf("rows = %d, want 5", phot.Len())
	}
	for i, want := range []string{"bessellB", "bessellB", "bessellV", "bessellV", "bessellV"} {
		if got := phot.Rows[i].Band; got != want {
			t.Fatalf("row %d band = %q, want %q", i, got, want)
		}
	}
}

func TestObjectPhotometryUnknownBand(t *testing.T) {
	obj := mustObject(t, transient.Input{
		Mangled: []*table.Table{spectrum(testsupport.Grid(4000, 10, 5), 1)},
		Days:    []float64{1},
	})
	_, err := obj.Photometry(t.TempDir(), []string{"U"})
	if !errors.Is(err, transient.ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter, got %v", err)
	}
}
