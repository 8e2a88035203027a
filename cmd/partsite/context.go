package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"partsite/internal/catalog"
	"partsite/internal/config"
	"partsite/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
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

// logger writes to the command's stderr and, when logName is set, to a file
// of that name in the log directory.
func (c *commandContext) logger(cmd *cobra.Command, logName string) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, logName, cmd.ErrOrStderr())
}

// withStore opens the catalog for the duration of fn.
func (c *commandContext) withStore(ctx context.Context, logger *slog.Logger, fn func(*catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()

	if logger != nil {
		if store.Created() {
			logger.Info("Creating new database", logging.String(logging.FieldPath, store.Path()))
		} else {
			logger.Info(fmt.Sprintf("Database v%d opened", store.SchemaVersion()),
				logging.String(logging.FieldPath, store.Path()),
			)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
