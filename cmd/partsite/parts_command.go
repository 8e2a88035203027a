package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"partsite/internal/catalog"
)

func newPartsCommand(ctx *commandContext) *cobra.Command {
	var filter catalog.Filter

	cmd := &cobra.Command{
		Use:   "parts",
		Short: "List catalog parts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), nil, func(store *catalog.Store) error {
				parts, err := store.List(cmd.Context(), filter)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(parts) == 0 {
					fmt.Fprintln(out, "No parts found")
					return nil
				}

				rows := make([][]string, 0, len(parts))
				for _, p := range parts {
					views := "0"
					counter, err := store.Counter(cmd.Context(), p.UUID)
					if err != nil {
						return err
					}
					if counter != nil {
						views = strconv.FormatInt(counter.Views, 10)
					}
					rows = append(rows, []string{
						p.Key.System,
						p.Key.Device,
						p.Key.Part,
						p.Class,
						strings.Join(p.Fits, ", "),
						views,
						p.UUID,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"System", "Device", "Part", "Class", "Fits", "Views", "UUID"},
					rows,
					5,
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filter.System, "system", "", "Only list parts of this system")
	cmd.Flags().StringVar(&filter.Device, "device", "", "Only list parts of this device")
	cmd.Flags().StringVar(&filter.Model, "model", "", "Only list parts fitting this model")
	return cmd
}
