package transient

import (
	"fmt"
	"math"

	"transients/internal/logging"
)

// MismatchKind classifies a wavelength-grid finding.
type MismatchKind int

const (
	// MismatchLength means the grid has a different number of samples than the first.
	MismatchLength MismatchKind = iota + 1
	// MismatchValues means the grid differs from the first beyond tolerance.
	MismatchValues
	// MismatchNotIncreasing means the grid is not strictly increasing.
	MismatchNotIncreasing
)

func (k MismatchKind) String() string {
	switch k {
	case MismatchLength:
		return "length"
	case MismatchValues:
		return "values"
	case MismatchNotIncreasing:
		return "not_increasing"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name.
func (k MismatchKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *MismatchKind) UnmarshalText(text []byte) error {
	for _, kind := range []MismatchKind{MismatchLength, MismatchValues, MismatchNotIncreasing} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown mismatch kind %q", text)
}

// Mismatch describes one mangled spectrum whose grid disagrees with the
// reference (index 0) grid.
type Mismatch struct {
	Index     int          `json:"index"`
	Reference int          `json:"reference"`
	Kind      MismatchKind `json:"kind"`
	Detail    string       `json:"detail"`
	File      string       `json:"file,omitempty"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("spectrum %d vs %d: %s (%s)", m.Index, m.Reference, m.Kind, m.Detail)
}

// ValidateWavelengths compares every mangled wavelength column with the
// first one and checks that each is strictly increasing. It only reports:
// calling it repeatedly yields the same result and the same log lines.
func (o *Object) ValidateWavelengths(verbose bool) []Mismatch {
	if len(o.mangled) == 0 {
		return nil
	}
	first := o.mangled[0].Column(0)

	var out []Mismatch
	for i, spectrum := range o.mangled {
		wave := spectrum.Column(0)
		found := false
		report := func(kind MismatchKind, detail string) {
			m := Mismatch{Index: i, Reference: 0, Kind: kind, Detail: detail}
			if i < len(o.mangledFiles) {
				m.File = o.mangledFiles[i]
			}
			out = append(out, m)
			found = true
			o.logger.Warn("wavelength grid mismatch",
				logging.Int(logging.FieldIndex, i),
				logging.String("kind", kind.String()),
				logging.String("detail", detail),
				logging.String(logging.FieldFile, m.File),
			)
		}

		switch {
		case len(wave) != len(first):
			report(MismatchLength, fmt.Sprintf("%d samples, reference has %d", len(wave), len(first)))
		default:
			if j, ok := firstDifference(wave, first, o.settings.relTol, o.settings.absTol); ok {
				report(MismatchValues, fmt.Sprintf("sample %d is %g, reference has %g", j, wave[j], first[j]))
			}
		}
		if j, ok := firstNonIncreasing(wave); ok {
			report(MismatchNotIncreasing, fmt.Sprintf("sample %d (%g) does not exceed sample %d (%g)", j, wave[j], j-1, wave[j-1]))
		}

		if !found && verbose {
			o.logger.Info("wavelength grid match", logging.Int(logging.FieldIndex, i))
		}
	}
	return out
}

// firstDifference returns the first index where |a-b| > atol + rtol*|b|.
func firstDifference(a, b []float64, rtol, atol float64) (int, bool) {
	for i := range a {
		if !(math.Abs(a[i]-b[i]) <= atol+rtol*math.Abs(b[i])) {
			return i, true
		}
	}
	return 0, false
}

func firstNonIncreasing(xs []float64) (int, bool) {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return i, true
		}
	}
	return 0, false
}
