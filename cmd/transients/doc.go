// Package main hosts the transients CLI entrypoint and command graph.
//
// The Cobra command tree loads a transient's spectra from a data directory,
// reports wavelength-grid consistency, assembles photometry, derives the
// peak phase and maintains the ingest catalogue. Configuration resolution
// and logger construction live in commandContext so subcommands only deal
// with presentation.
package main
