package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Grid returns n evenly spaced values starting at start.
func Grid(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Constant returns n copies of value.
func Constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// WriteSpectrum writes a two-column table with the two-line header the
// spectrum loader skips.
func WriteSpectrum(t testing.TB, path string, wave, flux []float64) {
	t.Helper()

	if len(wave) != len(flux) {
		t.Fatalf("WriteSpectrum %s: %d wavelengths for %d fluxes", path, len(wave), len(flux))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", filepath.Base(path))
	b.WriteString("# wavelength flux\n")
	for i := range wave {
		b.WriteString(strconv.FormatFloat(wave[i], 'g', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(flux[i], 'g', -1, 64))
		b.WriteByte('\n')
	}
	writeFile(t, path, b.String())
}

// WriteMangled writes <dir>/<prefix>_<day>_mangled.txt and returns its path.
func WriteMangled(t testing.TB, dir, prefix, day string, wave, flux []float64) string {
	t.Helper()

	path := filepath.Join(dir, fmt.Sprintf("%s_%s_mangled.txt", prefix, day))
	WriteSpectrum(t, path, wave, flux)
	return path
}

// WriteRaw writes <dir>/<prefix>_<day>.dat and returns its path.
func WriteRaw(t testing.TB, dir, prefix, day string, wave, flux []float64) string {
	t.Helper()

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.dat", prefix, day))
	WriteSpectrum(t, path, wave, flux)
	return path
}

// WritePhotometry writes a (time, flux, fluxerr) CSV file under dir/band.
func WritePhotometry(t testing.TB, dir, band, name string, rows [][3]float64) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("time,flux,fluxerr\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%g,%g,%g\n", row[0], row[1], row[2])
	}
	path := filepath.Join(dir, band, name)
	writeFile(t, path, b.String())
	return path
}

func writeFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
