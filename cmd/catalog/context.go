package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"catalog/internal/catalog"
	"catalog/internal/config"
	"catalog/internal/logging"
	"catalog/internal/store"
)

type globalFlags struct {
	config  string
	kind    string
	file    string
	format  string
	verbose bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
	sessionID  string
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration file once and applies flag overrides.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.ApplyOverrides(config.Overrides{
			Kind:   c.flags.kind,
			File:   c.flags.file,
			Format: c.flags.format,
		}); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// loggerFor builds the invocation logger on first use. Output goes to the
// command's stderr.
func (c *commandContext) loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if c.flags.verbose {
			level = "debug"
		}
		c.sessionID = uuid.NewString()
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:     level,
			Format:    cfg.Logging.Format,
			Writer:    cmd.ErrOrStderr(),
			SessionID: c.sessionID,
		})
	})
	return c.logger, c.loggerErr
}

// openCatalog returns an empty catalog wired to the configured store. Callers
// load it explicitly.
func (c *commandContext) openCatalog(cmd *cobra.Command) (*catalog.Catalog, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	persister, err := store.Open(cfg.Catalog.Format, cfg.Schema())
	if err != nil {
		return nil, nil, err
	}
	return c.newCatalog(cmd, cfg, persister)
}

// openCatalogAt is openCatalog for an explicit path whose extension picks the
// format.
func (c *commandContext) openCatalogAt(cmd *cobra.Command, path string) (*catalog.Catalog, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	persister, err := store.OpenForPath(path, cfg.Catalog.Format, cfg.Schema())
	if err != nil {
		return nil, nil, err
	}
	return c.newCatalog(cmd, cfg, persister)
}

func (c *commandContext) newCatalog(cmd *cobra.Command, cfg *config.Config, persister catalog.Persister) (*catalog.Catalog, *config.Config, error) {
	logger, err := c.loggerFor(cmd)
	if err != nil {
		return nil, nil, err
	}
	cat := catalog.New(cfg.Schema(), persister,
		catalog.WithSortKey(cfg.SortKey()),
		catalog.WithLogger(logger),
	)
	return cat, cfg, nil
}

// loadCatalog opens the configured catalog and loads its data file.
func (c *commandContext) loadCatalog(cmd *cobra.Command) (*catalog.Catalog, *config.Config, error) {
	cat, cfg, err := c.openCatalog(cmd)
	if err != nil {
		return nil, nil, err
	}
	if _, err := cat.Load(cmd.Context(), cfg.Catalog.File); err != nil {
		return nil, nil, err
	}
	return cat, cfg, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// usageError marks err as an argument problem so Cobra prints usage with it.
func usageError(cmd *cobra.Command, err error) error {
	cmd.SilenceUsage = false
	return err
}

func printTable(out io.Writer, rendered string) {
	fmt.Fprintln(out, rendered)
}
