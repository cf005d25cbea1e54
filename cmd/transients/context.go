package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"transients/internal/catalog"
	"transients/internal/config"
	"transients/internal/logging"
	"transients/internal/transient"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the logger once; console output goes to the command's
// error writer so callers that redirect stderr also capture log lines.
func (c *commandContext) ensureLogger(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// dataDir resolves the directory argument, falling back to paths.data_dir.
func (c *commandContext) dataDir(args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return config.ExpandPath(strings.TrimSpace(args[0]))
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Paths.DataDir == "" {
		return "", errors.New("no data directory given and paths.data_dir is not set")
	}
	return cfg.Paths.DataDir, nil
}

// loadObject loads the transient stored in dir. An empty name defaults to
// the directory's base name.
func (c *commandContext) loadObject(cmd *cobra.Command, dir, name string, extra ...transient.Option) (*transient.Object, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger(cmd)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		name = filepath.Base(dir)
	}
	opts := append(transient.ConfigOptions(cfg), transient.WithLogger(logger))
	opts = append(opts, extra...)
	return transient.FromDataDir(cmd.Context(), name, dir, opts...)
}

func (c *commandContext) withCatalog(fn func(*catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// record stores obj in the catalogue when the catalogue is enabled.
func (c *commandContext) record(cmd *cobra.Command, obj *transient.Object, dir string) (string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if !cfg.Catalog.Enabled {
		return "", errors.New("catalog is disabled (catalog.enabled = false)")
	}
	entry := catalog.EntryFromObject(obj, dir, "")
	err = c.withCatalog(func(store *catalog.Store) error {
		return store.Record(cmd.Context(), entry)
	})
	if err != nil {
		return "", err
	}
	return entry.LoadID, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
