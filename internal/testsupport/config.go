package testsupport

import (
	"path/filepath"
	"testing"

	"transients/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.CatalogDir = filepath.Join(base, "catalog")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Spectra.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDataDir overrides the default data directory.
func WithDataDir(dir string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.DataDir = dir
	}
}

// WithReferenceBand overrides the peak-phase reference band.
func WithReferenceBand(band string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Source.ReferenceBand = band
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.CatalogDir)
}
