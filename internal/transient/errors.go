package transient

import (
	"errors"

	"transients/internal/photometry"
)

var (
	// ErrLengthMismatch indicates a parallel sequence whose length is neither
	// the number of days nor zero.
	ErrLengthMismatch = errors.New("parallel sequence length mismatch")
	// ErrNoSpectra indicates there are no mangled spectra to work from.
	ErrNoSpectra = errors.New("no mangled spectra")
	// ErrUnpairedSpectra indicates raw and mangled files that cannot be paired one to one.
	ErrUnpairedSpectra = errors.New("raw and mangled spectra cannot be paired")
	// ErrGridMismatch indicates a mangled spectrum that does not fit the shared wavelength grid.
	ErrGridMismatch = errors.New("mangled spectra do not share a wavelength grid")
	// ErrMalformedSpectrum indicates a spectrum table without wavelength and flux columns.
	ErrMalformedSpectrum = errors.New("malformed spectrum")

	// ErrUnknownFilter and ErrNoPhotometry are re-exported from photometry.
	ErrUnknownFilter = photometry.ErrUnknownFilter
	ErrNoPhotometry  = photometry.ErrNoPhotometry
)
