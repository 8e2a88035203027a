package config

import (
	"errors"
	"fmt"
	"net"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRepository(); err != nil {
		return err
	}
	if err := c.validateWeb(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRepository() error {
	if c.Repository.Origin == "" {
		return errors.New("repository.origin must be set (or export PARTSITE_REPO_ORIGIN)")
	}
	if c.Repository.Branch == "" {
		return errors.New("repository.branch must be set")
	}
	return nil
}

func (c *Config) validateWeb() error {
	if _, _, err := net.SplitHostPort(c.Web.Bind); err != nil {
		return fmt.Errorf("web.bind %q: %w", c.Web.Bind, err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
