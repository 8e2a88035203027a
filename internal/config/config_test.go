package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"partsite/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("PARTSITE_REPO_ORIGIN", "")
	t.Setenv("PARTSITE_WEB_BIND", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "partsite")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.RepoDir != filepath.Join(wantData, "parts-repo") {
		t.Fatalf("unexpected repo dir: %q", cfg.Paths.RepoDir)
	}
	if cfg.Paths.DatabasePath != filepath.Join(wantData, "parts-site.sqlite") {
		t.Fatalf("unexpected database path: %q", cfg.Paths.DatabasePath)
	}
	if cfg.Paths.LogDir != filepath.Join(wantData, "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Repository.Origin != config.Default().Repository.Origin {
		t.Fatalf("unexpected origin: %q", cfg.Repository.Origin)
	}
	if cfg.Repository.Branch != "master" {
		t.Fatalf("unexpected branch: %q", cfg.Repository.Branch)
	}
	if cfg.Web.Bind != "127.0.0.1:5000" {
		t.Fatalf("unexpected bind: %q", cfg.Web.Bind)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("PARTSITE_REPO_ORIGIN", "")
	t.Setenv("PARTSITE_WEB_BIND", "")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.Paths.DataDir = "~/parts"
	cfg.Paths.DatabasePath = "~/db/catalog.sqlite"
	cfg.Repository.Origin = "https://example.com/parts.git"
	cfg.Repository.Branch = "  main  "
	cfg.Web.Bind = ":8080"
	cfg.Logging.Format = "JSON"

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if loaded.Paths.DataDir != filepath.Join(tempHome, "parts") {
		t.Fatalf("unexpected data dir: %q", loaded.Paths.DataDir)
	}
	if loaded.Paths.RepoDir != filepath.Join(tempHome, "parts", "parts-repo") {
		t.Fatalf("repo dir should derive from data dir, got %q", loaded.Paths.RepoDir)
	}
	if loaded.Paths.DatabasePath != filepath.Join(tempHome, "db", "catalog.sqlite") {
		t.Fatalf("unexpected database path: %q", loaded.Paths.DatabasePath)
	}
	if loaded.Repository.Branch != "main" {
		t.Fatalf("expected trimmed branch, got %q", loaded.Repository.Branch)
	}
	if loaded.Web.Bind != ":8080" {
		t.Fatalf("unexpected bind: %q", loaded.Web.Bind)
	}
	if loaded.Logging.Format != "json" {
		t.Fatalf("expected lowercased format, got %q", loaded.Logging.Format)
	}
}

func TestLoadHonoursEnvironmentFallbacks(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PARTSITE_REPO_ORIGIN", "file:///srv/parts")
	t.Setenv("PARTSITE_WEB_BIND", "0.0.0.0:9000")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Repository.Origin != "file:///srv/parts" {
		t.Fatalf("expected origin from env, got %q", cfg.Repository.Origin)
	}
	if cfg.Web.Bind != "0.0.0.0:9000" {
		t.Fatalf("expected bind from env, got %q", cfg.Web.Bind)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PARTSITE_REPO_ORIGIN", "")
	t.Setenv("PARTSITE_WEB_BIND", "")

	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"empty origin", "[repository]\norigin = \"\"\n", "repository.origin"},
		{"bad bind", "[web]\nbind = \"nonsense\"\n", "web.bind"},
		{"bad format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"bad level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"unknown key", "[web]\nport = 80\n", "parse config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PARTSITE_REPO_ORIGIN", "")
	t.Setenv("PARTSITE_WEB_BIND", "")

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Repository.Branch != "master" {
		t.Fatalf("unexpected sample branch: %q", cfg.Repository.Branch)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "data", "logs")
	cfg.Paths.DatabasePath = filepath.Join(base, "db", "parts.sqlite")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, filepath.Dir(cfg.Paths.DatabasePath)} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s to exist (err=%v)", dir, err)
		}
	}
	if cfg.LockPath() != filepath.Join(cfg.Paths.DataDir, "update.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
}
