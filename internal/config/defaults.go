package config

const (
	defaultDataHome       = "~/.local/share/transients"
	defaultLogDir         = "~/.local/share/transients/logs"
	defaultRawPattern     = "*.dat"
	defaultMangledPattern = "*mangled.txt"
	defaultHeaderRows     = 2
	defaultWorkers        = 4
	defaultRelTolerance   = 1e-5
	defaultAbsTolerance   = 1e-8
	defaultExtension      = ".DAT"
	defaultExcludeMarker  = "_mag"
	defaultReferenceBand  = "bessellB"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

func defaultFilters() map[string]string {
	return map[string]string{
		"B": "bessellB",
		"V": "bessellV",
		"r": "bessellR",
		"i": "bessellI",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogDir: defaultCatalogDir(),
			LogDir:     defaultLogDir,
		},
		Spectra: Spectra{
			RawPattern:     defaultRawPattern,
			MangledPattern: defaultMangledPattern,
			HeaderRows:     defaultHeaderRows,
			Workers:        defaultWorkers,
			RelTolerance:   defaultRelTolerance,
			AbsTolerance:   defaultAbsTolerance,
		},
		Photometry: Photometry{
			Extension:     defaultExtension,
			ExcludeMarker: defaultExcludeMarker,
			DefaultBands:  []string{"B", "V", "r", "i"},
			Filters:       defaultFilters(),
		},
		Source: Source{
			ReferenceBand: defaultReferenceBand,
		},
		Catalog: Catalog{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
