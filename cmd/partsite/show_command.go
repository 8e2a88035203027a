package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"partsite/internal/catalog"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <system>/<device>/<part>",
		Short: "Show a single catalog part",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(cmd.Context(), nil, func(store *catalog.Store) error {
				part, err := store.FindByKey(cmd.Context(), key)
				if err != nil {
					return err
				}
				if part == nil {
					return fmt.Errorf("part %s not found", key)
				}
				counter, err := store.Counter(cmd.Context(), part.UUID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Part:        %s\n", part.Key)
				fmt.Fprintf(out, "UUID:        %s\n", part.UUID)
				fmt.Fprintf(out, "Author:      %s\n", part.Author)
				fmt.Fprintf(out, "Class:       %s\n", part.Class)
				fmt.Fprintf(out, "License:     %s\n", part.License)
				fmt.Fprintf(out, "Fits:        %s\n", strings.Join(part.Fits, ", "))
				if counter != nil {
					fmt.Fprintf(out, "Views:       %d\n", counter.Views)
					fmt.Fprintf(out, "Downloads:   %d\n", counter.Downloads)
				}
				fmt.Fprintf(out, "Created:     %s\n", part.CreatedAt.Local().Format(time.DateTime))
				fmt.Fprintf(out, "Updated:     %s\n", part.UpdatedAt.Local().Format(time.DateTime))
				if desc := strings.TrimSpace(part.Description); desc != "" {
					fmt.Fprintf(out, "\n%s\n", desc)
				}
				return nil
			})
		},
	}
}

func parseKey(value string) (catalog.NaturalKey, error) {
	segments := strings.Split(strings.Trim(value, "/"), "/")
	if len(segments) != 3 {
		return catalog.NaturalKey{}, fmt.Errorf("invalid part %q: expected <system>/<device>/<part>", value)
	}
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			return catalog.NaturalKey{}, fmt.Errorf("invalid part %q: empty segment", value)
		}
	}
	return catalog.NaturalKey{System: segments[0], Device: segments[1], Part: segments[2]}, nil
}
