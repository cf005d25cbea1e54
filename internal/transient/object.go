package transient

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"transients/internal/logging"
	"transients/internal/photometry"
	"transients/internal/table"
)

// Input holds the parallel sequences an Object is built from. Spectra,
// DataFiles and MangledFiles are optional: each must either match Days in
// length or be empty.
type Input struct {
	Name         string
	Spectra      []*table.Table
	Mangled      []*table.Table
	Days         []float64
	DataFiles    []string
	MangledFiles []string
}

// Object is a transient with day-ordered raw and mangled spectra.
type Object struct {
	name         string
	days         []float64
	spectra      []*table.Table
	mangled      []*table.Table
	dataFiles    []string
	mangledFiles []string
	order        []int

	settings   settings
	logger     *slog.Logger
	mismatches []Mismatch

	mu        sync.Mutex
	phasePeak *float64
}

// New sorts every sequence in in by ascending day (stable), then validates
// the mangled wavelength grids. Grid problems are reported through
// Mismatches and never fail construction.
func New(in Input, opts ...Option) (*Object, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	n := len(in.Days)
	if len(in.Mangled) != n {
		return nil, fmt.Errorf("%w: %d mangled spectra for %d days", ErrLengthMismatch, len(in.Mangled), n)
	}
	optional := []struct {
		label  string
		length int
	}{
		{"spectra", len(in.Spectra)},
		{"data files", len(in.DataFiles)},
		{"mangled files", len(in.MangledFiles)},
	}
	for _, seq := range optional {
		if seq.length != 0 && seq.length != n {
			return nil, fmt.Errorf("%w: %d %s for %d days", ErrLengthMismatch, seq.length, seq.label, n)
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return in.Days[order[a]] < in.Days[order[b]]
	})

	obj := &Object{
		name:         in.Name,
		days:         permute(in.Days, order),
		spectra:      permute(in.Spectra, order),
		mangled:      permute(in.Mangled, order),
		dataFiles:    permute(in.DataFiles, order),
		mangledFiles: permute(in.MangledFiles, order),
		order:        order,
		settings:     s,
		logger:       logging.ForTransient(logging.NewComponentLogger(s.logger, "transient"), in.Name),
	}
	obj.mismatches = obj.ValidateWavelengths(s.verbose)
	return obj, nil
}

func permute[T any](values []T, order []int) []T {
	if len(values) == 0 {
		return nil
	}
	out := make([]T, len(order))
	for i, src := range order {
		out[i] = values[src]
	}
	return out
}

func (o *Object) Name() string { return o.name }

// Len reports the number of epochs.
func (o *Object) Len() int { return len(o.days) }

// Days returns the ascending observation days.
func (o *Object) Days() []float64 { return append([]float64(nil), o.days...) }

// Spectra returns the raw spectra in day order; empty when none were loaded.
func (o *Object) Spectra() []*table.Table { return append([]*table.Table(nil), o.spectra...) }

// Mangled returns the mangled spectra in day order.
func (o *Object) Mangled() []*table.Table { return append([]*table.Table(nil), o.mangled...) }

func (o *Object) DataFiles() []string { return append([]string(nil), o.dataFiles...) }

func (o *Object) MangledFiles() []string { return append([]string(nil), o.mangledFiles...) }

// SortOrder returns, for each sorted position, the index it came from in the input.
func (o *Object) SortOrder() []int { return append([]int(nil), o.order...) }

// Mismatches returns the wavelength-grid findings recorded at construction.
func (o *Object) Mismatches() []Mismatch { return append([]Mismatch(nil), o.mismatches...) }

// Consistent reports whether construction found no grid mismatches.
func (o *Object) Consistent() bool { return len(o.mismatches) == 0 }

// Photometry assembles the per-band light curves stored under dataDir.
func (o *Object) Photometry(dataDir string, bands []string) (*photometry.Table, error) {
	opts := o.settings.photometry
	if opts.Logger == nil {
		opts.Logger = o.logger
	}
	return photometry.Assemble(dataDir, bands, opts)
}
