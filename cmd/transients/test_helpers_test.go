package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"transients/internal/config"
	"transients/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	dataDir    string
}

// setupCLITestEnv writes a config pointing at temp directories and a data
// directory holding three mangled epochs peaking at day 54005.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("TRANSIENTS_DATA_DIR", "")
	t.Setenv("NO_COLOR", "1")
	t.Setenv("TRANSIENTS_LOG_LEVEL", "")

	dataDir := filepath.Join(base, "SN2007uy")
	wave := testsupport.Grid(3000, 100, 41)
	for _, epoch := range []struct {
		day  string
		flux float64
	}{{"54000", 1}, {"54005", 3}, {"54010", 2}} {
		testsupport.WriteMangled(t, dataDir, "SN2007uy", epoch.day, wave, testsupport.Constant(epoch.flux, len(wave)))
	}

	configPath := filepath.Join(base, "transients.toml")
	writeTestConfig(t, configPath, cfg, "error")

	return &cliTestEnv{cfg: cfg, configPath: configPath, dataDir: dataDir}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTestConfig writes the paths of cfg; an empty level keeps the default.
func writeTestConfig(t *testing.T, path string, cfg *config.Config, level string) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ncatalog_dir = %q\nlog_dir = %q\n",
		cfg.Paths.CatalogDir,
		cfg.Paths.LogDir,
	)
	if level != "" {
		content += fmt.Sprintf("\n[logging]\nlevel = %q\n", level)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
