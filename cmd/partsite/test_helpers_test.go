package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"partsite/internal/config"
	"partsite/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	originDir  string
	origin     *git.Repository
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	originDir := filepath.Join(base, "origin")
	origin, err := git.PlainInit(originDir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}

	env := &cliTestEnv{originDir: originDir, origin: origin}
	env.commitDescriptor(t, "nes", "controller", "a-button", testsupport.Descriptor{
		Author:      "eldstal",
		Class:       "button",
		Fits:        []string{"NES-004", "NES-101", "NES-004"},
		License:     "CC-BY-4.0",
		Description: "Rubber A button",
	})

	head, err := origin.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	env.cfg = testsupport.NewConfig(t,
		testsupport.WithOrigin(originDir),
		testsupport.WithBranch(head.Name().Short()),
	)
	env.cfg.Logging.Level = "error"

	env.configPath = filepath.Join(base, "partsite.toml")
	writeTestConfig(t, env.configPath, env.cfg)
	return env
}

func (e *cliTestEnv) commitDescriptor(t *testing.T, system, device, part string, d testsupport.Descriptor) {
	t.Helper()

	path := testsupport.WriteDescriptor(t, e.originDir, system, device, part, d)
	rel, err := filepath.Rel(e.originDir, path)
	if err != nil {
		t.Fatalf("Rel: %v", err)
	}
	worktree, err := e.origin.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := worktree.Add(filepath.ToSlash(rel)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := worktree.Commit("add "+rel, &git.CommitOptions{
		Author: &object.Signature{Name: "parts", Email: "parts@example.com", When: time.Now()},
	}); err != nil {
		t.Fatalf("Commit: %v", err)
	}
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

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
repo_dir = %q
database_path = %q
log_dir = %q

[repository]
origin = %q
branch = %q

[web]
bind = %q

[logging]
format = %q
level = %q
`,
		cfg.Paths.DataDir,
		cfg.Paths.RepoDir,
		cfg.Paths.DatabasePath,
		cfg.Paths.LogDir,
		cfg.Repository.Origin,
		cfg.Repository.Branch,
		cfg.Web.Bind,
		cfg.Logging.Format,
		cfg.Logging.Level,
	)
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
