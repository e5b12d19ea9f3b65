package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gridiron/internal/catalog"
	"gridiron/internal/reconcile"
	"gridiron/internal/session"
)

func newCorrectCommand(ctx *commandContext) *cobra.Command {
	var row int
	var col int
	var playerName string
	var freeText string
	var catalogPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "correct [session]",
		Short: "Pin a player to a cell (defaults to the newest session)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player := strings.TrimSpace(playerName)
			text := strings.TrimSpace(freeText)
			if (player == "") == (text == "") {
				return errors.New("exactly one of --player or --text is required")
			}
			if row < 0 || col < 0 {
				return errors.New("--row and --col are required")
			}

			var ref string
			if len(args) == 1 {
				ref = args[0]
			}
			return ctx.withStore(func(store *session.Store) error {
				sess, err := store.ResolveSession(cmd.Context(), ref)
				if err != nil {
					return err
				}
				result, err := store.LoadResult(cmd.Context(), sess.ID)
				if err != nil {
					return err
				}

				override := catalogPath
				if strings.TrimSpace(override) == "" {
					override = sess.CatalogPath
				}
				cat, _, err := ctx.loadCatalog(override)
				if err != nil {
					return err
				}
				logger, err := ctx.sessionLogger(cmd.Context(), sess.ID)
				if err != nil {
					return err
				}
				engine, err := ctx.newEngine(cat, sess.Geometry(), logger)
				if err != nil {
					return err
				}

				coord := reconcile.Coord{Row: row, Col: col}
				var report *reconcile.CorrectionReport
				if player != "" {
					entry, findErr := findCatalogPlayer(cat, player)
					if findErr != nil {
						return findErr
					}
					report, err = engine.Correct(result, coord, entry)
				} else {
					report, err = engine.CorrectText(result, coord, text)
				}
				if err != nil {
					return err
				}

				if err := store.UpdateResult(cmd.Context(), sess.ID, result); err != nil {
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"session_id": sess.ID,
						"applied":    report.Applied,
						"displaced":  report.Displaced,
						"reassigned": report.Reassigned,
					})
				}
				printCorrectionReport(cmd, report)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&row, "row", -1, "Board row of the cell to correct")
	cmd.Flags().IntVar(&col, "col", -1, "Board column of the cell to correct")
	cmd.Flags().StringVar(&playerName, "player", "", "Catalog player to pin to the cell")
	cmd.Flags().StringVar(&freeText, "text", "", "Free text to pin for players outside the catalog")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog CSV path (defaults to the session's catalog)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")
	_ = cmd.MarkFlagRequired("row")
	_ = cmd.MarkFlagRequired("col")
	return cmd
}

// findCatalogPlayer resolves a human-entered name to exactly one catalog
// entry. Ambiguity is an error, listing the alternatives so the operator
// can type a fuller name.
func findCatalogPlayer(cat *catalog.Catalog, name string) (catalog.Entry, error) {
	matches := cat.FindByName(name)
	switch len(matches) {
	case 0:
		return catalog.Entry{}, fmt.Errorf("no catalog player matches %q", name)
	case 1:
		return matches[0], nil
	default:
		labels := make([]string, 0, len(matches))
		for _, entry := range matches {
			labels = append(labels, fmt.Sprintf("%s (%s %s)", entry.DisplayName(), entry.Position, entry.Team))
		}
		return catalog.Entry{}, fmt.Errorf("player %q is ambiguous: %s", name, strings.Join(labels, ", "))
	}
}

func printCorrectionReport(cmd *cobra.Command, report *reconcile.CorrectionReport) {
	out := cmd.OutOrStdout()
	applied := report.Applied
	name := applied.DisplayName()
	if name == "" {
		name = unreadableCellText
	}
	fmt.Fprintf(out, "Pinned %s to %s (pick %d)\n", name, applied.Coord(), applied.Pick)
	if report.Displaced != nil {
		fmt.Fprintf(out, "Displaced %s from %s\n", report.Displaced.DisplayName(), report.Displaced.Coord())
	}
	if report.Reassigned != nil {
		replacement := report.Reassigned.DisplayName()
		if replacement == "" {
			replacement = unreadableCellText
		}
		fmt.Fprintf(out, "Cell %s is now %s\n", report.Reassigned.Coord(), replacement)
	}
}
