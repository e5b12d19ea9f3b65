package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gridiron/internal/config"
	"gridiron/internal/export"
	"gridiron/internal/session"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var outDir string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "export [session]",
		Short: "Write export files for a stored session (defaults to the newest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			format, err := export.ParseFormat(formatFlag)
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

				dir := strings.TrimSpace(outDir)
				if dir == "" {
					dir = filepath.Join(cfg.Paths.ExportDir, shortID(sess.ID))
				} else {
					dir, err = config.ExpandPath(dir)
					if err != nil {
						return err
					}
				}

				logger, err := ctx.sessionLogger(cmd.Context(), sess.ID)
				if err != nil {
					return err
				}
				exporter := export.New(dir, sess.Threshold, cfg.Scoring.ReviewMargin, logger)
				files, err := exporter.Write(result, format)
				if err != nil {
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"session_id": sess.ID,
						"format":     string(format),
						"files":      files,
					})
				}
				for _, file := range files {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", file)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "all", "Export format: rows, cols, csv, json, review, or all")
	cmd.Flags().StringVar(&outDir, "out", "", "Target directory (defaults to the configured export directory)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")
	return cmd
}
