package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRepository()
	c.normalizeWeb()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}

	derived := []struct {
		key      string
		value    *string
		fallback string
	}{
		{"paths.repo_dir", &c.Paths.RepoDir, defaultRepoDirName},
		{"paths.database_path", &c.Paths.DatabasePath, defaultDatabaseName},
		{"paths.log_dir", &c.Paths.LogDir, defaultLogDirName},
	}
	for _, d := range derived {
		if strings.TrimSpace(*d.value) == "" {
			*d.value = filepath.Join(c.Paths.DataDir, d.fallback)
		}
		if *d.value, err = expandPath(*d.value); err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
	}
	return nil
}

func (c *Config) normalizeRepository() {
	if value, ok := os.LookupEnv("PARTSITE_REPO_ORIGIN"); ok && strings.TrimSpace(value) != "" {
		c.Repository.Origin = value
	}
	c.Repository.Origin = strings.TrimSpace(c.Repository.Origin)
	c.Repository.Branch = strings.TrimSpace(c.Repository.Branch)
	if c.Repository.Branch == "" {
		c.Repository.Branch = defaultRepositoryBranch
	}
}

func (c *Config) normalizeWeb() {
	if value, ok := os.LookupEnv("PARTSITE_WEB_BIND"); ok && strings.TrimSpace(value) != "" {
		c.Web.Bind = value
	}
	c.Web.Bind = strings.TrimSpace(c.Web.Bind)
	if c.Web.Bind == "" {
		c.Web.Bind = defaultWebBind
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
