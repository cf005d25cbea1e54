package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSpectra()
	c.normalizePhotometry()
	c.normalizeSource()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		if value, ok := os.LookupEnv("TRANSIENTS_DATA_DIR"); ok {
			c.Paths.DataDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CatalogDir) == "" {
		c.Paths.CatalogDir = defaultCatalogDir()
	}
	if c.Paths.CatalogDir, err = expandPath(c.Paths.CatalogDir); err != nil {
		return fmt.Errorf("paths.catalog_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSpectra() {
	c.Spectra.RawPattern = strings.TrimSpace(c.Spectra.RawPattern)
	if c.Spectra.RawPattern == "" {
		c.Spectra.RawPattern = defaultRawPattern
	}
	c.Spectra.MangledPattern = strings.TrimSpace(c.Spectra.MangledPattern)
	if c.Spectra.MangledPattern == "" {
		c.Spectra.MangledPattern = defaultMangledPattern
	}
	if c.Spectra.Workers <= 0 {
		c.Spectra.Workers = defaultWorkers
	}
}

func (c *Config) normalizePhotometry() {
	ext := strings.TrimSpace(c.Photometry.Extension)
	if ext == "" {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Photometry.Extension = ext
	c.Photometry.ExcludeMarker = strings.TrimSpace(c.Photometry.ExcludeMarker)

	if len(c.Photometry.Filters) == 0 {
		c.Photometry.Filters = defaultFilters()
	} else {
		filters := make(map[string]string, len(c.Photometry.Filters))
		for band, name := range c.Photometry.Filters {
			band = strings.TrimSpace(band)
			name = strings.TrimSpace(name)
			if band == "" || name == "" {
				continue
			}
			filters[band] = name
		}
		c.Photometry.Filters = filters
	}

	bands := make([]string, 0, len(c.Photometry.DefaultBands))
	seen := make(map[string]struct{}, len(c.Photometry.DefaultBands))
	for _, band := range c.Photometry.DefaultBands {
		band = strings.TrimSpace(band)
		if band == "" {
			continue
		}
		if _, exists := seen[band]; exists {
			continue
		}
		seen[band] = struct{}{}
		bands = append(bands, band)
	}
	c.Photometry.DefaultBands = bands
}

func (c *Config) normalizeSource() {
	c.Source.ReferenceBand = strings.TrimSpace(c.Source.ReferenceBand)
	if c.Source.ReferenceBand == "" {
		c.Source.ReferenceBand = defaultReferenceBand
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("TRANSIENTS_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
