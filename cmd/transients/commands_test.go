package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"transients/internal/catalog"
	"transients/internal/testsupport"
	"transients/internal/transient"
)

func TestInspectRendersEpochs(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"inspect", env.dataDir}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "== SN2007uy ==")
	requireContains(t, out, "SN2007uy_54005_mangled.txt")
	requireContains(t, out, "[OK] all mangled spectra share one grid")
}

func TestInspectVerboseLogsMatchesAtDefaultLevel(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env.configPath, env.cfg, "")

	_, stderr, err := runCLI(t, []string{"inspect", "--verbose", env.dataDir}, env.configPath)
	if err != nil {
		t.Fatalf("inspect --verbose: %v", err)
	}
	requireContains(t, stderr, "INFO")
	requireContains(t, stderr, "wavelength grid match")
	requireContains(t, stderr, "index=2")

	_, stderr, err = runCLI(t, []string{"inspect", env.dataDir}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if strings.Contains(stderr, "wavelength grid match") {
		t.Fatalf("expected no match lines without --verbose, got %q", stderr)
	}
}

func TestLogsFollowCommandErrorWriter(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env.configPath, env.cfg, "warn")
	testsupport.WriteMangled(t, env.dataDir, "SN2007uy", "54020",
		testsupport.Grid(3000, 100, 40), testsupport.Constant(1, 40))

	_, stderr, err := runCLI(t, []string{"validate", env.dataDir}, env.configPath)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	requireContains(t, stderr, "WARN")
	requireContains(t, stderr, "wavelength grid mismatch")
}

func TestInspectJSONAndRecord(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"inspect", env.dataDir, "--json", "--record", "--name", "SN 2007uy"}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var report inspectReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Name != "SN 2007uy" || len(report.Epochs) != 3 || !report.Consistent {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Epochs[0].Day != 54000 || report.Epochs[2].Day != 54010 {
		t.Fatalf("epochs not in day order: %+v", report.Epochs)
	}
	if report.LoadID == "" {
		t.Fatal("expected a load id after --record")
	}

	out, _, err = runCLI(t, []string{"catalog", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "SN 2007uy")

	out, _, err = runCLI(t, []string{"catalog", "show", "SN 2007uy"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog show: %v", err)
	}
	requireContains(t, out, report.LoadID)

	if _, _, err := runCLI(t, []string{"catalog", "remove", "SN 2007uy"}, env.configPath); err != nil {
		t.Fatalf("catalog remove: %v", err)
	}
	_, _, err = runCLI(t, []string{"catalog", "show", "SN 2007uy"}, env.configPath)
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestValidateStrict(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteMangled(t, env.dataDir, "SN2007uy", "54020",
		testsupport.Grid(3000, 100, 40), testsupport.Constant(1, 40))

	out, _, err := runCLI(t, []string{"validate", env.dataDir}, env.configPath)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	requireContains(t, out, "[ERROR] 1 mismatch(es) against epoch 0 (length 1)")
	requireContains(t, out, "length: 40 samples, reference has 41")

	_, _, err = runCLI(t, []string{"validate", "--strict", env.dataDir}, env.configPath)
	if !errors.Is(err, transient.ErrGridMismatch) {
		t.Fatalf("expected ErrGridMismatch with --strict, got %v", err)
	}
}

func TestPhotometryCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WritePhotometry(t, env.dataDir, "B", "SN2007uy_B.DAT", [][3]float64{{54000, 1.5, 0.1}})
	testsupport.WritePhotometry(t, env.dataDir, "V", "SN2007uy_V.dat", [][3]float64{{54001, 2.5, 0.2}, {54002, 2.6, 0.2}})
	testsupport.WritePhotometry(t, env.dataDir, "V", "SN2007uy_V_mag.dat", [][3]float64{{54001, 15.1, 0.02}})

	out, _, err := runCLI(t, []string{"photometry", env.dataDir, "--filters", "B,V", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("photometry: %v", err)
	}
	var payload struct {
		Rows []struct {
			Time float64 `json:"time"`
			Band string  `json:"band"`
		} `json:"rows"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode photometry: %v\n%s", err, out)
	}
	if len(payload.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(payload.Rows))
	}
	if payload.Rows[0].Band != "bessellB" || payload.Rows[2].Band != "bessellV" {
		t.Fatalf("unexpected bands: %+v", payload.Rows)
	}

	_, _, err = runCLI(t, []string{"photometry", env.dataDir, "--filters", "U"}, env.configPath)
	if !errors.Is(err, transient.ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter, got %v", err)
	}
}

func TestPeakCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"peak", env.dataDir, "--record"}, env.configPath)
	if err != nil {
		t.Fatalf("peak: %v", err)
	}
	requireContains(t, out, "Peak (bessellB):")
	requireContains(t, out, "[OK] 54005")

	store := testsupport.MustOpenCatalog(t, env.cfg)
	entry, err := store.Get(t.Context(), filepath.Base(env.dataDir))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry.PeakPhase == nil || *entry.PeakPhase != 54005 {
		t.Fatalf("recorded peak = %v", entry.PeakPhase)
	}
}

func TestDataDirFromEnvironment(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("TRANSIENTS_DATA_DIR", env.dataDir)

	out, _, err := runCLI(t, []string{"validate"}, env.configPath)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	requireContains(t, out, "[OK]")
}
