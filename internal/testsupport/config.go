package testsupport

import (
	"path/filepath"
	"testing"

	"partsite/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.RepoDir = filepath.Join(base, "data", "parts-repo")
	cfgVal.Paths.DatabasePath = filepath.Join(base, "data", "parts-site.sqlite")
	cfgVal.Paths.LogDir = filepath.Join(base, "data", "logs")
	cfgVal.Web.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithOrigin points the repository origin at a (usually local) git repository.
func WithOrigin(origin string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Repository.Origin = origin
	}
}

// WithBranch overrides the repository branch.
func WithBranch(branch string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Repository.Branch = branch
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
