// Package photometry assembles per-band light-curve files into one tagged
// table.
//
// Each band lives in its own subdirectory of a transient's data directory
// and holds three-column (time, flux, fluxerr) files. Rows are tagged with
// the filter-system name of their band (B becomes bessellB, and so on) and
// stacked in band order.
package photometry
