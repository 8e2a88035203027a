package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"partsite/internal/catalog"
	"partsite/internal/config"
	"partsite/internal/importer"
	"partsite/internal/repo"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var summary bool
	var noFetch bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Sync the parts repository and import its descriptors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd, "update.log")
			if err != nil {
				return err
			}

			release, err := importer.Lock(cfg.LockPath())
			if err != nil {
				return err
			}
			defer release()

			if !noFetch {
				progress := repo.NewProgressWriter(cmd.ErrOrStderr(), isTerminal(cmd.ErrOrStderr()))
				if _, err := repo.Sync(cmd.Context(), repo.Options{
					Dir:      cfg.Paths.RepoDir,
					Origin:   cfg.Repository.Origin,
					Branch:   cfg.Repository.Branch,
					Progress: progress,
					Logger:   logger,
				}); err != nil {
					return fmt.Errorf("sync parts repository: %w", err)
				}
			}

			return runImport(cmd, ctx, logger, cfg.Paths.RepoDir, summary)
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "Print a table of per-descriptor outcomes")
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Import the existing checkout without contacting the origin")
	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "import [dir]",
		Short: "Import descriptors from a local directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root := cfg.Paths.RepoDir
			if len(args) == 1 {
				root, err = config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve import directory: %w", err)
				}
			}

			logger, err := ctx.logger(cmd, "update.log")
			if err != nil {
				return err
			}

			release, err := importer.Lock(cfg.LockPath())
			if err != nil {
				return err
			}
			defer release()

			return runImport(cmd, ctx, logger, root, summary)
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "Print a table of per-descriptor outcomes")
	return cmd
}

// runImport reconciles every descriptor under root into the catalog. The
// caller holds the update lock.
func runImport(cmd *cobra.Command, ctx *commandContext, logger *slog.Logger, root string, summary bool) error {
	return ctx.withStore(cmd.Context(), logger, func(store *catalog.Store) error {
		imp := importer.New(store, logger)
		result, err := imp.Run(cmd.Context(), root)
		if summary {
			printImportSummary(cmd.OutOrStdout(), result)
		}
		if err != nil {
			return fmt.Errorf("import %s: %w", root, err)
		}
		return nil
	})
}

func printImportSummary(out io.Writer, result importer.Result) {
	rows := make([][]string, 0, len(result.Files))
	for _, file := range result.Files {
		note := file.UUID
		if file.Err != nil {
			note = file.Err.Error()
		}
		rows = append(rows, []string{file.Key.String(), string(file.Outcome), note})
	}
	fmt.Fprintln(out, renderTable([]string{"Part", "Outcome", "UUID / Error"}, rows))
	fmt.Fprintf(out, "%d created, %d updated, %d skipped\n",
		result.Count(importer.OutcomeCreated),
		result.Count(importer.OutcomeUpdated),
		result.Count(importer.OutcomeSkipped),
	)
}
