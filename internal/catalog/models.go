package catalog

import "time"

// Entry is the persisted summary of one ingested transient.
type Entry struct {
	Name          string    `json:"name"`
	DataDir       string    `json:"data_dir"`
	EpochCount    int       `json:"epoch_count"`
	FirstDay      float64   `json:"first_day"`
	LastDay       float64   `json:"last_day"`
	PeakPhase     *float64  `json:"peak_phase,omitempty"`
	ReferenceBand string    `json:"reference_band,omitempty"`
	Mismatches    int       `json:"mismatch_count"`
	LoadID        string    `json:"load_id"`
	LoadedAt      time.Time `json:"loaded_at"`
	Epochs        []Epoch   `json:"epochs,omitempty"`
}

// Epoch is one observation of an Entry.
type Epoch struct {
	Index       int     `json:"index"`
	Day         float64 `json:"day"`
	MangledFile string  `json:"mangled_file,omitempty"`
	DataFile    string  `json:"data_file,omitempty"`
	Samples     int     `json:"samples"`
}
