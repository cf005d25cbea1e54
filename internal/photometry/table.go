package photometry

// Row is one photometric measurement.
type Row struct {
	Time    float64 `json:"time"`
	Flux    float64 `json:"flux"`
	FluxErr float64 `json:"fluxerr"`
	Band    string  `json:"band"`
}

// Table is an ordered collection of rows.
type Table struct {
	Rows []Row `json:"rows"`
}

// Len reports the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Bands lists distinct band names in first-seen order.
func (t *Table) Bands() []string {
	if t == nil {
		return nil
	}
	var bands []string
	seen := map[string]struct{}{}
	for _, row := range t.Rows {
		if _, ok := seen[row.Band]; ok {
			continue
		}
		seen[row.Band] = struct{}{}
		bands = append(bands, row.Band)
	}
	return bands
}

// FilterBand returns the rows tagged with band.
func (t *Table) FilterBand(band string) *Table {
	out := &Table{}
	if t == nil {
		return out
	}
	for _, row := range t.Rows {
		if row.Band == band {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Stack concatenates tables vertically, preserving order.
func Stack(tables ...*Table) *Table {
	n := 0
	for _, t := range tables {
		n += t.Len()
	}
	out := &Table{Rows: make([]Row, 0, n)}
	for _, t := range tables {
		if t == nil {
			continue
		}
		out.Rows = append(out.Rows, t.Rows...)
	}
	return out
}
