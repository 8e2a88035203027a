package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"partsite/internal/catalog"
	"partsite/internal/web"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parts catalog over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd, "web.log")
			if err != nil {
				return err
			}
			address := cfg.Web.Bind
			if strings.TrimSpace(bind) != "" {
				address = bind
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return ctx.withStore(runCtx, logger, func(store *catalog.Store) error {
				handler, err := web.NewHandler(store, logger)
				if err != nil {
					return err
				}
				server, err := web.NewServer(address, handler, logger)
				if err != nil {
					return err
				}
				return server.Run(runCtx)
			})
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides web.bind)")
	return cmd
}
