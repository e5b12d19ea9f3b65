package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gridiron/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the player catalog",
	}

	catalogCmd.AddCommand(newCatalogCheckCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))

	return catalogCmd
}

func newCatalogCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: "Load and validate the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var override string
			if len(args) == 1 {
				override = args[0]
			}
			cat, path, err := ctx.loadCatalog(override)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog: %s\n", path)
			fmt.Fprintf(out, "Players: %d\n", cat.Len())
			for _, position := range catalog.Positions() {
				count := 0
				for _, entry := range cat.Entries() {
					if entry.Position == position {
						count++
					}
				}
				if count > 0 {
					fmt.Fprintf(out, "%s: %d\n", position, count)
				}
			}
			fmt.Fprintln(out, "Catalog valid")
			return nil
		},
	}
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	var positionFilter string
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Preview catalog entries in rank order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var override string
			if len(args) == 1 {
				override = args[0]
			}
			cat, _, err := ctx.loadCatalog(override)
			if err != nil {
				return err
			}

			entries := cat.Entries()
			if filter := strings.TrimSpace(positionFilter); filter != "" {
				position, ok := catalog.ParsePosition(filter)
				if !ok {
					return fmt.Errorf("unknown position %q", positionFilter)
				}
				filtered := make([]catalog.Entry, 0, len(entries))
				for _, entry := range entries {
					if entry.Position == position {
						filtered = append(filtered, entry)
					}
				}
				entries = filtered
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			if jsonOutput {
				return writeJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No catalog entries match")
				return nil
			}
			table := renderTable(
				[]string{"Rank", "Player", "Pos", "Team", "Bye"},
				buildCatalogRows(entries),
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().StringVarP(&positionFilter, "position", "p", "", "Only show entries at this position")
	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "Maximum entries to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")
	return cmd
}
