// Package config loads, normalizes, and validates transients configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TRANSIENTS_DATA_DIR. The Config type centralizes every knob the loader and
// CLI need: spectrum file patterns, wavelength tolerances, photometry filter
// mappings, the peak-phase reference band, and catalogue/log locations.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
