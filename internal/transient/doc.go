// Package transient builds the in-memory model of a single supernova: its
// raw spectra, the mangled (photometry-calibrated) spectra, the observation
// days they were taken on, and the derived time-series flux source.
//
// Construction sorts every parallel sequence by day exactly once and runs a
// soft wavelength-grid validation whose findings are returned as Mismatch
// values rather than aborting the load. The time-series source and its peak
// phase are derived lazily through an injected SourceBuilder so the alignment
// logic does not depend on any particular model implementation.
package transient
