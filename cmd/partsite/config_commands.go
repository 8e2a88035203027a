package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"partsite/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the partsite configuration",
	}
	configCmd.AddCommand(newConfigValidateCommand(ctx), newConfigInitCommand())
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration pointing at the default parts repository",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if err := writeSampleConfig(target, overwrite); err != nil {
				return err
			}

			// Reload so the summary shows the expanded locations.
			cfg, _, _, err := config.Load(target)
			if err != nil {
				return fmt.Errorf("load written config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			printSiteLayout(out, cfg)
			fmt.Fprintf(out, "Next: partsite --config %s update\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	return cmd
}

func initTarget(flagValue string) (string, error) {
	target := strings.TrimSpace(flagValue)
	if target == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(target)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

func writeSampleConfig(target string, overwrite bool) error {
	if !overwrite {
		_, err := os.Stat(target)
		switch {
		case err == nil:
			return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
		case !errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("check config path: %w", err)
		}
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory %q: %w", dir, err)
	}
	if err := config.CreateSample(target); err != nil {
		return fmt.Errorf("create sample config: %w", err)
	}
	return nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Check the configuration and report the state of the checkout and catalog",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			out := cmd.OutOrStdout()
			source := path
			if !exists {
				source += " (not found, using defaults)"
			}
			fmt.Fprintf(out, "Config: %s\n", source)
			printSiteLayout(out, cfg)
			if !checkoutPresent(cfg.Paths.RepoDir) || !fileExists(cfg.Paths.DatabasePath) {
				fmt.Fprintln(out, "Catalog not built yet; run `partsite update`")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

// printSiteLayout renders where the site pulls parts from, where it keeps
// them, and how it serves them.
func printSiteLayout(out io.Writer, cfg *config.Config) {
	rows := [][]string{
		{"Parts repository", fmt.Sprintf("%s (%s)", cfg.Repository.Origin, cfg.Repository.Branch), ""},
		{"Checkout", cfg.Paths.RepoDir, presence(checkoutPresent(cfg.Paths.RepoDir))},
		{"Catalog database", cfg.Paths.DatabasePath, presence(fileExists(cfg.Paths.DatabasePath))},
		{"Logs", cfg.Paths.LogDir, ""},
		{"Web bind", cfg.Web.Bind, ""},
		{"Log output", fmt.Sprintf("%s/%s", cfg.Logging.Format, cfg.Logging.Level), ""},
	}
	fmt.Fprintln(out, renderTable([]string{"Setting", "Value", "State"}, rows))
}

func checkoutPresent(repoDir string) bool {
	info, err := os.Stat(filepath.Join(repoDir, ".git"))
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func presence(ok bool) string {
	if ok {
		return "present"
	}
	return "missing"
}
