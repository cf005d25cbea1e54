package transient

import (
	"log/slog"

	"transients/internal/config"
	"transients/internal/logging"
	"transients/internal/photometry"
	"transients/internal/table"
)

type settings struct {
	logger         *slog.Logger
	verbose        bool
	relTol         float64
	absTol         float64
	builder        SourceBuilder
	referenceBand  string
	rawPattern     string
	mangledPattern string
	loader         table.Loader
	workers        int
	photometry     photometry.Options
}

func defaultSettings() settings {
	return settings{
		logger:         logging.NewNop(),
		relTol:         1e-5,
		absTol:         1e-8,
		builder:        TimeSeriesBuilder,
		referenceBand:  "bessellB",
		rawPattern:     "*.dat",
		mangledPattern: "*mangled.txt",
		loader:         table.TextLoader{SkipRows: 2},
		workers:        4,
	}
}

// Option customizes construction.
type Option func(*settings)

// WithLogger routes validation and loading diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithVerbose also logs an info line for every matching wavelength grid.
func WithVerbose(verbose bool) Option {
	return func(s *settings) { s.verbose = verbose }
}

// WithTolerance sets the relative and absolute wavelength comparison tolerances.
func WithTolerance(rel, abs float64) Option {
	return func(s *settings) {
		s.relTol = rel
		s.absTol = abs
	}
}

// WithSourceBuilder replaces the time-series source implementation.
func WithSourceBuilder(builder SourceBuilder) Option {
	return func(s *settings) {
		if builder != nil {
			s.builder = builder
		}
	}
}

// WithReferenceBand sets the band whose peak re-centres the phase axis.
func WithReferenceBand(band string) Option {
	return func(s *settings) {
		if band != "" {
			s.referenceBand = band
		}
	}
}

// WithPatterns sets the raw and mangled filename globs used by FromDataDir.
func WithPatterns(raw, mangled string) Option {
	return func(s *settings) {
		if raw != "" {
			s.rawPattern = raw
		}
		if mangled != "" {
			s.mangledPattern = mangled
		}
	}
}

// WithLoader replaces the spectrum table loader used by FromDataDir.
func WithLoader(loader table.Loader) Option {
	return func(s *settings) {
		if loader != nil {
			s.loader = loader
		}
	}
}

// WithWorkers bounds concurrent file loads in FromDataDir.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithPhotometry sets the discovery options used by Object.Photometry.
func WithPhotometry(opts photometry.Options) Option {
	return func(s *settings) { s.photometry = opts }
}

// ConfigOptions translates loaded configuration into options.
func ConfigOptions(cfg *config.Config) []Option {
	if cfg == nil {
		return nil
	}
	return []Option{
		WithTolerance(cfg.Spectra.RelTolerance, cfg.Spectra.AbsTolerance),
		WithReferenceBand(cfg.Source.ReferenceBand),
		WithPatterns(cfg.Spectra.RawPattern, cfg.Spectra.MangledPattern),
		WithLoader(table.TextLoader{SkipRows: cfg.Spectra.HeaderRows}),
		WithWorkers(cfg.Spectra.Workers),
		WithPhotometry(photometry.Options{
			Filters:       photometry.Filters(cfg.Photometry.Filters),
			Extension:     cfg.Photometry.Extension,
			ExcludeMarker: cfg.Photometry.ExcludeMarker,
		}),
	}
}
