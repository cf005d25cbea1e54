package testsupport

import (
	"testing"

	"transients/internal/catalog"
	"transients/internal/config"
)

// MustOpenCatalog opens the catalogue for cfg and closes it when the test ends.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
