// Package table reads delimited numeric text files into row-major matrices.
//
// Spectrum and photometry files are small whitespace- or comma-delimited
// tables with a short free-form header. Loader is the capability the
// transient package depends on; TextLoader is the file-backed default.
package table
