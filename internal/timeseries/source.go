package timeseries

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrInvalidGrid indicates axes that are empty, unsorted, or do not match the flux shape.
	ErrInvalidGrid = errors.New("invalid source grid")
	// ErrBandOutOfRange indicates a bandpass extending beyond the source wavelength grid.
	ErrBandOutOfRange = errors.New("bandpass outside source wavelength range")
)

// integrationStep is the wavelength resolution, in Angstroms, of band-flux integrals.
const integrationStep = 5.0

// Source is a flux grid over phase (rows) and wavelength (columns).
type Source struct {
	name  string
	phase []float64
	wave  []float64
	flux  [][]float64
}

// New validates the grid and copies it into a Source.
func New(phase, wave []float64, flux [][]float64, name string) (*Source, error) {
	if len(phase) == 0 || len(wave) == 0 {
		return nil, fmt.Errorf("%w: empty axis (phase=%d wave=%d)", ErrInvalidGrid, len(phase), len(wave))
	}
	if !strictlyIncreasing(phase) {
		return nil, fmt.Errorf("%w: phases must be strictly increasing", ErrInvalidGrid)
	}
	if !strictlyIncreasing(wave) {
		return nil, fmt.Errorf("%w: wavelengths must be strictly increasing", ErrInvalidGrid)
	}
	if len(flux) != len(phase) {
		return nil, fmt.Errorf("%w: %d flux rows for %d phases", ErrInvalidGrid, len(flux), len(phase))
	}
	grid := make([][]float64, len(flux))
	for i, row := range flux {
		if len(row) != len(wave) {
			return nil, fmt.Errorf("%w: flux row %d has %d samples for %d wavelengths", ErrInvalidGrid, i, len(row), len(wave))
		}
		grid[i] = append([]float64(nil), row...)
	}
	return &Source{
		name:  name,
		phase: append([]float64(nil), phase...),
		wave:  append([]float64(nil), wave...),
		flux:  grid,
	}, nil
}

func (s *Source) Name() string { return s.name }

// Phase returns a copy of the phase axis.
func (s *Source) Phase() []float64 { return append([]float64(nil), s.phase...) }

// Wave returns a copy of the wavelength axis.
func (s *Source) Wave() []float64 { return append([]float64(nil), s.wave...) }

func (s *Source) MinPhase() float64 { return s.phase[0] }

func (s *Source) MaxPhase() float64 { return s.phase[len(s.phase)-1] }

func (s *Source) MinWave() float64 { return s.wave[0] }

func (s *Source) MaxWave() float64 { return s.wave[len(s.wave)-1] }

// Flux interpolates bilinearly; zero outside the grid.
func (s *Source) Flux(phase, wave float64) float64 {
	if phase < s.MinPhase() || phase > s.MaxPhase() || wave < s.MinWave() || wave > s.MaxWave() {
		return 0
	}
	i, ti := bracket(s.phase, phase)
	if ti == 0 {
		return interp1(s.wave, s.flux[i], wave)
	}
	lo := interp1(s.wave, s.flux[i], wave)
	hi := interp1(s.wave, s.flux[i+1], wave)
	return lo + ti*(hi-lo)
}

// BandFlux integrates F(λ)·T(λ)·λ over the bandpass at phase.
func (s *Source) BandFlux(band *Bandpass, phase float64) (float64, error) {
	if band.MinWave() < s.MinWave() || band.MaxWave() > s.MaxWave() {
		return 0, fmt.Errorf("%w: %s spans [%g, %g], source spans [%g, %g]",
			ErrBandOutOfRange, band.Name, band.MinWave(), band.MaxWave(), s.MinWave(), s.MaxWave())
	}
	n := int(math.Ceil((band.MaxWave()-band.MinWave())/integrationStep)) + 1
	step := (band.MaxWave() - band.MinWave()) / float64(n-1)
	var sum float64
	prev := 0.0
	for k := 0; k < n; k++ {
		w := band.MinWave() + float64(k)*step
		v := s.Flux(phase, w) * band.Transmission(w) * w
		if k > 0 {
			sum += 0.5 * (prev + v) * step
		}
		prev = v
	}
	return sum, nil
}

// PeakPhase returns the phase at which the named band flux is largest.
// Band flux is linear in phase between grid nodes, so the maximum lies on a
// node; ties resolve to the earliest phase.
func (s *Source) PeakPhase(band string) (float64, error) {
	bp, err := LookupBandpass(band)
	if err != nil {
		return 0, err
	}
	best := math.Inf(-1)
	peak := s.phase[0]
	for _, p := range s.phase {
		f, err := s.BandFlux(bp, p)
		if err != nil {
			return 0, err
		}
		if f > best {
			best, peak = f, p
		}
	}
	return peak, nil
}

// bracket returns i and t with xs[i] <= x <= xs[i+1] and x = xs[i] + t*(xs[i+1]-xs[i]).
// x must lie within xs.
func bracket(xs []float64, x float64) (int, float64) {
	j := sort.SearchFloat64s(xs, x)
	if j < len(xs) && xs[j] == x {
		return j, 0
	}
	i := j - 1
	return i, (x - xs[i]) / (xs[i+1] - xs[i])
}

func interp1(xs, ys []float64, x float64) float64 {
	if len(xs) == 0 || x < xs[0] || x > xs[len(xs)-1] {
		return 0
	}
	i, t := bracket(xs, x)
	if t == 0 {
		return ys[i]
	}
	return ys[i] + t*(ys[i+1]-ys[i])
}

func strictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return false
		}
	}
	return true
}
