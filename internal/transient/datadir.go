package transient

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"transients/internal/logging"
	"transients/internal/table"
)

const mangledMarker = "_mangled"

// ParseMJD extracts the observation day from a mangled spectrum filename:
// the last underscore-delimited token before the first "_mangled".
func ParseMJD(filename string) (float64, error) {
	base := filepath.Base(filename)
	stem, _, _ := strings.Cut(base, mangledMarker)
	token := stem
	if i := strings.LastIndex(stem, "_"); i >= 0 {
		token = stem[i+1:]
	}
	day, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("parse day from %q: %w", base, err)
	}
	return day, nil
}

// FromDataDir loads the raw and mangled spectra found in dir and builds an
// Object from them.
func FromDataDir(ctx context.Context, name, dir string, opts ...Option) (*Object, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	logger := logging.ForTransient(logging.NewComponentLogger(s.logger, "loader"), name)

	rawFiles, mangledFiles, err := scanDataDir(dir, s.rawPattern, s.mangledPattern)
	if err != nil {
		return nil, err
	}
	if len(mangledFiles) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSpectra, dir)
	}
	rawFiles, err = pairFiles(rawFiles, mangledFiles, logger.Warn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	days := make([]float64, len(mangledFiles))
	for i, path := range mangledFiles {
		day, err := ParseMJD(path)
		if err != nil {
			return nil, err
		}
		days[i] = day
	}

	mangled, err := loadSpectra(ctx, s.loader, s.workers, mangledFiles)
	if err != nil {
		return nil, err
	}
	raw, err := loadSpectra(ctx, s.loader, s.workers, rawFiles)
	if err != nil {
		return nil, err
	}

	logger.Info("spectra loaded",
		logging.String("dir", dir),
		logging.Int("mangled", len(mangled)),
		logging.Int("raw", len(raw)),
	)

	return New(Input{
		Name:         name,
		Spectra:      raw,
		Mangled:      mangled,
		Days:         days,
		DataFiles:    rawFiles,
		MangledFiles: mangledFiles,
	}, opts...)
}

// scanDataDir lists the raw and mangled files in dir in lexical order. A file
// matching both patterns counts as mangled.
func scanDataDir(dir, rawPattern, mangledPattern string) ([]string, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read data dir: %w", err)
	}
	var raw, mangled []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		isMangled, err := filepath.Match(mangledPattern, name)
		if err != nil {
			return nil, nil, fmt.Errorf("mangled pattern: %w", err)
		}
		if isMangled {
			mangled = append(mangled, filepath.Join(dir, name))
			continue
		}
		isRaw, err := filepath.Match(rawPattern, name)
		if err != nil {
			return nil, nil, fmt.Errorf("raw pattern: %w", err)
		}
		if isRaw {
			raw = append(raw, filepath.Join(dir, name))
		}
	}
	return raw, mangled, nil
}

// pairFiles reorders raw so raw[i] belongs with mangled[i]. Files pair by
// stem when every mangled stem has exactly one raw file; otherwise lexical
// order is kept.
func pairFiles(raw, mangled []string, warn func(string, ...any)) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if len(raw) != len(mangled) {
		return nil, fmt.Errorf("%w: %d raw, %d mangled", ErrUnpairedSpectra, len(raw), len(mangled))
	}

	byStem := make(map[string]string, len(raw))
	for _, path := range raw {
		base := filepath.Base(path)
		byStem[strings.TrimSuffix(base, filepath.Ext(base))] = path
	}
	paired := make([]string, len(mangled))
	used := make(map[string]bool, len(raw))
	for i, path := range mangled {
		stem, _, _ := strings.Cut(filepath.Base(path), mangledMarker)
		match, ok := byStem[stem]
		if !ok || used[match] {
			warn("raw spectra do not share stems with mangled spectra; pairing by filename order",
				logging.String(logging.FieldFile, path),
			)
			return raw, nil
		}
		used[match] = true
		paired[i] = match
	}
	return paired, nil
}

// loadSpectra loads paths concurrently; result i always corresponds to paths[i].
func loadSpectra(ctx context.Context, loader table.Loader, workers int, paths []string) ([]*table.Table, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	out := make([]*table.Table, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := loader.Load(path)
			if err != nil {
				return err
			}
			if t.Cols() < 2 {
				return fmt.Errorf("%w: %s has %d columns, need wavelength and flux", ErrMalformedSpectrum, path, t.Cols())
			}
			out[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
