package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gridiron/internal/session"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect stored reconciliation sessions",
	}

	sessionsCmd.AddCommand(newSessionsListCommand(ctx))
	sessionsCmd.AddCommand(newSessionsShowCommand(ctx))
	sessionsCmd.AddCommand(newSessionsDeleteCommand(ctx))

	return sessionsCmd
}

func newSessionsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *session.Store) error {
				sessions, err := store.ListSessions(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					items := make([]map[string]any, 0, len(sessions))
					for _, sess := range sessions {
						items = append(items, sessionJSON(sess))
					}
					return writeJSON(cmd, map[string]any{"sessions": items})
				}
				if len(sessions) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No stored sessions")
					return nil
				}
				table := renderTable(
					[]string{"ID", "Created", "Board", "Cells", "Catalog", "Manual", "Raw", "Mean"},
					buildSessionListRows(sessions),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")
	return cmd
}

func newSessionsShowCommand(ctx *commandContext) *cobra.Command {
	var reviewOnly bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show [session]",
		Short: "Show a stored session's board (defaults to the newest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
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

				if jsonOutput {
					payload := sessionJSON(sess)
					payload["assignments"] = result.Assignments()
					if reviewOnly {
						payload["review"] = buildReviewRows(result, sess.Threshold+cfg.Scoring.ReviewMargin)
					}
					return writeJSON(cmd, payload)
				}

				out := cmd.OutOrStdout()
				printSessionSummary(out, sess)
				if reviewOnly {
					cutoff := sess.Threshold + cfg.Scoring.ReviewMargin
					rows := buildReviewRows(result, cutoff)
					if len(rows) == 0 {
						fmt.Fprintf(out, "No cells below %s\n", formatScore(cutoff))
						return nil
					}
					table := renderTable(
						[]string{"Pick", "Cell", "Player", "Score", "Suggestions"},
						rows,
						[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
					)
					fmt.Fprintln(out, table)
					return nil
				}
				fmt.Fprintln(out, renderBoardTable(result.Assignments()))
				printResultSummary(out, result.Stats())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&reviewOnly, "review", false, "Only list cells that need operator review")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")
	return cmd
}

func newSessionsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session>",
		Short: "Delete a stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *session.Store) error {
				sess, err := store.ResolveSession(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := store.DeleteSession(cmd.Context(), sess.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", shortID(sess.ID))
				return nil
			})
		},
	}
}

func sessionJSON(sess *session.Session) map[string]any {
	return map[string]any{
		"id":              sess.ID,
		"created_at":      sess.CreatedAt.Format(time.RFC3339),
		"updated_at":      sess.UpdatedAt.Format(time.RFC3339),
		"rows":            sess.Rows,
		"cols":            sess.Cols,
		"threshold":       sess.Threshold,
		"catalog_path":    sess.CatalogPath,
		"catalog_entries": sess.CatalogEntries,
		"source_path":     sess.SourcePath,
		"cells":           sess.Cells,
		"catalog_cells":   sess.CatalogCells,
		"manual_cells":    sess.ManualCells,
		"raw_cells":       sess.RawCells,
		"mean_score":      sess.MeanScore,
	}
}
