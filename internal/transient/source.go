package transient

import (
	"fmt"

	"transients/internal/logging"
	"transients/internal/timeseries"
)

// Source is the time-series flux capability derived from an Object.
type Source interface {
	Name() string
	// PeakPhase returns the phase at which the named band flux peaks.
	PeakPhase(band string) (float64, error)
}

// SourceBuilder constructs a Source from a phase axis, a wavelength grid and
// a flux matrix of one row per phase.
type SourceBuilder func(phase, wave []float64, flux [][]float64, name string) (Source, error)

// TimeSeriesBuilder builds sources with the timeseries package.
func TimeSeriesBuilder(phase, wave []float64, flux [][]float64, name string) (Source, error) {
	src, err := timeseries.New(phase, wave, flux, name)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// FluxGrid returns the shared wavelength grid and the flux matrix built from
// the mangled spectra, one row per epoch.
func (o *Object) FluxGrid() ([]float64, [][]float64, error) {
	if len(o.mangled) == 0 {
		return nil, nil, ErrNoSpectra
	}
	wave := o.mangled[0].Column(0)
	flux := make([][]float64, len(o.mangled))
	for i, spectrum := range o.mangled {
		if spectrum.Cols() < 2 {
			return nil, nil, fmt.Errorf("%w: epoch %d has %d columns", ErrMalformedSpectrum, i, spectrum.Cols())
		}
		row := spectrum.Column(1)
		if len(row) != len(wave) {
			return nil, nil, fmt.Errorf("%w: epoch %d has %d samples, first has %d", ErrGridMismatch, i, len(row), len(wave))
		}
		flux[i] = row
	}
	return wave, flux, nil
}

// Source returns the mangled spectra as a time-series source whose phase axis
// is the observation days shifted so the reference band peaks at zero. The
// peak is derived once, from a provisional source over the unshifted days,
// and cached for later calls.
func (o *Object) Source() (Source, error) {
	wave, flux, err := o.FluxGrid()
	if err != nil {
		return nil, err
	}

	peak, err := o.peak(wave, flux)
	if err != nil {
		return nil, err
	}

	phase := make([]float64, len(o.days))
	for i, day := range o.days {
		phase[i] = day - peak
	}
	src, err := o.settings.builder(phase, wave, flux, o.name)
	if err != nil {
		return nil, fmt.Errorf("build source: %w", err)
	}
	return src, nil
}

func (o *Object) peak(wave []float64, flux [][]float64) (float64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.phasePeak != nil {
		return *o.phasePeak, nil
	}

	provisional, err := o.settings.builder(o.days, wave, flux, o.name)
	if err != nil {
		return 0, fmt.Errorf("build provisional source: %w", err)
	}
	peak, err := provisional.PeakPhase(o.settings.referenceBand)
	if err != nil {
		return 0, fmt.Errorf("peak phase in %s: %w", o.settings.referenceBand, err)
	}
	o.phasePeak = &peak
	o.logger.Debug("peak phase derived",
		logging.String("band", o.settings.referenceBand),
		logging.Float64("phase", peak),
	)
	return peak, nil
}

// PhasePeak reports the cached peak phase, if one has been derived or set.
func (o *Object) PhasePeak() (float64, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.phasePeak == nil {
		return 0, false
	}
	return *o.phasePeak, true
}

// SetPhasePeak primes the peak phase cache so Source skips derivation.
func (o *Object) SetPhasePeak(peak float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.phasePeak = &peak
}

// ReferenceBand reports the band used for peak derivation.
func (o *Object) ReferenceBand() string { return o.settings.referenceBand }
