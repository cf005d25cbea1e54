package timeseries

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownBandpass indicates a bandpass name with no registered curve.
var ErrUnknownBandpass = errors.New("unknown bandpass")

// Bandpass is a tabulated transmission curve.
type Bandpass struct {
	Name  string
	Wave  []float64
	Trans []float64
}

// MinWave returns the blue edge of the curve.
func (b *Bandpass) MinWave() float64 { return b.Wave[0] }

// MaxWave returns the red edge of the curve.
func (b *Bandpass) MaxWave() float64 { return b.Wave[len(b.Wave)-1] }

// Transmission interpolates the curve at wave; zero outside it.
func (b *Bandpass) Transmission(wave float64) float64 {
	return interp1(b.Wave, b.Trans, wave)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Bandpass{}
)

// RegisterBandpass adds or replaces a named curve.
func RegisterBandpass(b *Bandpass) error {
	if b == nil || b.Name == "" {
		return errors.New("bandpass requires a name")
	}
	if len(b.Wave) < 2 || len(b.Wave) != len(b.Trans) {
		return fmt.Errorf("bandpass %s: need at least two samples with matching transmission", b.Name)
	}
	if !strictlyIncreasing(b.Wave) {
		return fmt.Errorf("bandpass %s: wavelengths must be strictly increasing", b.Name)
	}
	registryMu.Lock()
	registry[b.Name] = b
	registryMu.Unlock()
	return nil
}

// LookupBandpass returns the registered curve for name.
func LookupBandpass(name string) (*Bandpass, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBandpass, name)
	}
	return b, nil
}

// Bandpasses lists registered names in sorted order.
func Bandpasses() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func stepped(start, step float64, trans ...float64) *Bandpass {
	wave := make([]float64, len(trans))
	for i := range trans {
		wave[i] = start + float64(i)*step
	}
	return &Bandpass{Wave: wave, Trans: trans}
}

// Bessell (1990) UBVRI transmission curves, in Angstroms.
func init() {
	b := stepped(3600, 100,
		0.000, 0.030, 0.134, 0.567, 0.920, 0.978, 1.000, 0.978, 0.935, 0.853, 0.740,
		0.640, 0.536, 0.424, 0.325, 0.235, 0.150, 0.095, 0.043, 0.009, 0.000)
	b.Name = "bessellB"

	v := stepped(4700, 100,
		0.000, 0.030, 0.163, 0.458, 0.780, 0.967, 1.000, 0.973, 0.898, 0.792, 0.684, 0.574,
		0.461, 0.359, 0.270, 0.197, 0.135, 0.081, 0.045, 0.025, 0.017, 0.013, 0.009, 0.000)
	v.Name = "bessellV"

	r := stepped(5500, 100,
		0.00, 0.23, 0.74, 0.91, 0.98, 1.00, 0.98, 0.96, 0.93, 0.90, 0.86,
		0.81, 0.78, 0.72, 0.67, 0.61, 0.56, 0.51, 0.46, 0.40, 0.35)
	r.Name = "bessellR"
	r.Wave = append(r.Wave, 8000, 8500, 9000)
	r.Trans = append(r.Trans, 0.14, 0.03, 0.00)

	i := stepped(7000, 100,
		0.000, 0.024, 0.232, 0.555, 0.785, 0.910, 0.965, 0.985, 0.990, 0.995, 1.000, 1.000,
		0.990, 0.980, 0.950, 0.910, 0.860, 0.750, 0.560, 0.330, 0.150, 0.030, 0.000)
	i.Name = "bessellI"

	for _, bp := range []*Bandpass{b, v, r, i} {
		if err := RegisterBandpass(bp); err != nil {
			panic(err)
		}
	}
}
