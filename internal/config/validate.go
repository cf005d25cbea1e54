package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSpectra(); err != nil {
		return err
	}
	if err := c.validatePhotometry(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSpectra() error {
	for key, pattern := range map[string]string{
		"spectra.raw_pattern":     c.Spectra.RawPattern,
		"spectra.mangled_pattern": c.Spectra.MangledPattern,
	} {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%s: invalid glob %q: %w", key, pattern, err)
		}
	}
	if c.Spectra.HeaderRows < 0 {
		return errors.New("spectra.header_rows must be >= 0")
	}
	if c.Spectra.Workers <= 0 {
		return errors.New("spectra.workers must be positive")
	}
	if c.Spectra.RelTolerance < 0 {
		return errors.New("spectra.rel_tolerance must be >= 0")
	}
	if c.Spectra.AbsTolerance < 0 {
		return errors.New("spectra.abs_tolerance must be >= 0")
	}
	return nil
}

func (c *Config) validatePhotometry() error {
	for _, band := range c.Photometry.DefaultBands {
		if _, ok := c.Photometry.Filters[band]; !ok {
			return fmt.Errorf("photometry.default_bands: band %q has no entry in photometry.filters", band)
		}
	}
	if strings.ContainsAny(c.Photometry.Extension, `*?[\/`) {
		return fmt.Errorf("photometry.extension %q must be a plain file extension", c.Photometry.Extension)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}
