// Package timeseries is the default time-series flux source used to expose
// mangled spectra to light-curve code.
//
// A Source is a flux grid over (phase, wavelength). It interpolates
// bilinearly, integrates band fluxes through registered bandpasses, and finds
// the phase at which a band peaks.
package timeseries
