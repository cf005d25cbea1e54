package catalog

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"transients/internal/transient"
)

// EntryFromObject summarises obj loaded from dir. An empty loadID is
// replaced with a fresh UUID.
func EntryFromObject(obj *transient.Object, dir, loadID string) Entry {
	if loadID == "" {
		loadID = uuid.NewString()
	}
	days := obj.Days()
	mangled := obj.Mangled()
	mangledFiles := obj.MangledFiles()
	dataFiles := obj.DataFiles()

	entry := Entry{
		Name:          obj.Name(),
		DataDir:       dir,
		EpochCount:    len(days),
		ReferenceBand: obj.ReferenceBand(),
		Mismatches:    len(obj.Mismatches()),
		LoadID:        loadID,
		LoadedAt:      time.Now().UTC(),
		Epochs:        make([]Epoch, len(days)),
	}
	if len(days) > 0 {
		entry.FirstDay = days[0]
		entry.LastDay = days[len(days)-1]
	}
	if peak, ok := obj.PhasePeak(); ok {
		entry.PeakPhase = &peak
	}
	for i, day := range days {
		epoch := Epoch{Index: i, Day: day, Samples: mangled[i].Rows()}
		if i < len(mangledFiles) {
			epoch.MangledFile = filepath.Base(mangledFiles[i])
		}
		if i < len(dataFiles) {
			epoch.DataFile = filepath.Base(dataFiles[i])
		}
		entry.Epochs[i] = epoch
	}
	return entry
}
