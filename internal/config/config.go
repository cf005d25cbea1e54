package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir    string `toml:"data_dir"`
	CatalogDir string `toml:"catalog_dir"`
	LogDir     string `toml:"log_dir"`
}

// Spectra controls how spectrum files are discovered and compared.
type Spectra struct {
	RawPattern     string  `toml:"raw_pattern"`
	MangledPattern string  `toml:"mangled_pattern"`
	HeaderRows     int     `toml:"header_rows"`
	Workers        int     `toml:"workers"`
	RelTolerance   float64 `toml:"rel_tolerance"`
	AbsTolerance   float64 `toml:"abs_tolerance"`
}

// Photometry controls per-band light-curve discovery.
type Photometry struct {
	Extension     string            `toml:"extension"`
	ExcludeMarker string            `toml:"exclude_marker"`
	DefaultBands  []string          `toml:"default_bands"`
	Filters       map[string]string `toml:"filters"`
}

// Source configures time-series source derivation.
type Source struct {
	// ReferenceBand is the bandpass whose peak re-centres the phase axis.
	ReferenceBand string `toml:"reference_band"`
}

// Catalog configures the SQLite ingest catalogue.
type Catalog struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for transients.
//
// Configuration sections by subsystem:
//   - Paths: default data directory, catalogue and log locations
//   - Spectra: raw/mangled file patterns, header rows, loader workers, grid tolerances
//   - Photometry: light-curve file extension, magnitude marker, band to filter mapping
//   - Source: reference band used for peak-phase normalization
//   - Catalog: ingest catalogue toggle
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Spectra    Spectra    `toml:"spectra"`
	Photometry Photometry `toml:"photometry"`
	Source     Source     `toml:"source"`
	Catalog    Catalog    `toml:"catalog"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/transients/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		// A filters table in the file replaces the defaults rather than merging.
		cfg.Photometry.Filters = nil
		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("transients.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the catalogue and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.CatalogDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CatalogPath returns the SQLite catalogue location.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.Paths.CatalogDir, "catalog.db")
}

// FilterName maps a band directory key (B, V, r, i) to its filter-system name.
func (c *Config) FilterName(band string) (string, bool) {
	name, ok := c.Photometry.Filters[band]
	return name, ok
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCatalogDir() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "transients")
	}
	return defaultDataHome
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
