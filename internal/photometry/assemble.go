package photometry

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"transients/internal/logging"
	"transients/internal/table"
)

var (
	// ErrUnknownFilter indicates a band key with no filter-system mapping.
	ErrUnknownFilter = errors.New("unknown photometric filter")
	// ErrNoPhotometry indicates that no light-curve files were found for any requested band.
	ErrNoPhotometry = errors.New("no photometry files found")
)

// Filters maps band directory keys to filter-system names.
type Filters map[string]string

// DefaultFilters returns the Bessell mapping for B, V, r and i.
func DefaultFilters() Filters {
	return Filters{
		"B": "bessellB",
		"V": "bessellV",
		"r": "bessellR",
		"i": "bessellI",
	}
}

// Lookup maps band to its filter-system name.
func (f Filters) Lookup(band string) (string, error) {
	name, ok := f[band]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, band)
	}
	return name, nil
}

// Options controls discovery and parsing.
type Options struct {
	Filters Filters
	// Extension is matched case-insensitively; default ".DAT".
	Extension string
	// ExcludeMarker removes files whose name contains it, case-insensitively;
	// default "_mag". Set to "-" to keep every file.
	ExcludeMarker string
	Loader        table.Loader
	Logger        *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Filters == nil {
		o.Filters = DefaultFilters()
	}
	if o.Extension == "" {
		o.Extension = ".DAT"
	}
	if o.ExcludeMarker == "" {
		o.ExcludeMarker = "_mag"
	}
	if o.Loader == nil {
		o.Loader = table.TextLoader{SkipHeader: true, Columns: 3}
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	return o
}

// ReadFile loads one three-column light-curve file and tags every row with filter.
func ReadFile(path, filter string, loader table.Loader) (*Table, error) {
	data, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	if data.Rows() > 0 && data.Cols() != 3 {
		return nil, fmt.Errorf("%s: want 3 columns (time, flux, fluxerr), got %d", path, data.Cols())
	}
	out := &Table{Rows: make([]Row, data.Rows())}
	for i := range out.Rows {
		r := data.Row(i)
		out.Rows[i] = Row{Time: r[0], Flux: r[1], FluxErr: r[2], Band: filter}
	}
	return out, nil
}

// Files lists the light-curve files for one band directory in name order.
func Files(dir string, opts Options) ([]string, error) {
	opts = opts.withDefaults()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read band directory: %w", err)
	}
	fold := cases.Fold()
	ext := fold.String(opts.Extension)
	marker := ""
	if opts.ExcludeMarker != "-" {
		marker = fold.String(opts.ExcludeMarker)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := fold.String(entry.Name())
		if !strings.HasSuffix(name, ext) {
			continue
		}
		if marker != "" && strings.Contains(name, marker) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Assemble reads every band subdirectory of dataDir and stacks the results.
func Assemble(dataDir string, bands []string, opts Options) (*Table, error) {
	opts = opts.withDefaults()

	var tables []*Table
	for _, band := range bands {
		filter, err := opts.Filters.Lookup(band)
		if err != nil {
			return nil, err
		}
		files, err := Files(filepath.Join(dataDir, band), opts)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			opts.Logger.Warn("no photometry files for band",
				logging.String("band", band),
				logging.String(logging.FieldFile, filepath.Join(dataDir, band)),
			)
			continue
		}
		for _, path := range files {
			t, err := ReadFile(path, filter, opts.Loader)
			if err != nil {
				return nil, err
			}
			opts.Logger.Debug("loaded photometry",
				logging.String(logging.FieldFile, path),
				logging.String("filter", filter),
				logging.Int("rows", t.Len()),
			)
			tables = append(tables, t)
		}
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: bands %v under %s", ErrNoPhotometry, bands, dataDir)
	}
	return Stack(tables...), nil
}
