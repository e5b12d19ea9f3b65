package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"gridiron/internal/config"
	"gridiron/internal/export"
	"gridiron/internal/ingest"
	"gridiron/internal/preflight"
	"gridiron/internal/reconcile"
	"gridiron/internal/session"
)

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	var observationsPath string
	var catalogPath string
	var rowsFlag int
	var colsFlag int
	var skipExport bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile an OCR observation document into a stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			for _, check := range preflight.RunAll(cfg) {
				if !check.Passed {
					fmt.Fprintln(cmd.ErrOrStderr(), renderStatusLine(check.Name, statusWarn, check.Detail, shouldColorize(cmd.ErrOrStderr())))
				}
			}

			sourcePath, err := config.ExpandPath(observationsPath)
			if err != nil {
				return err
			}
			doc, err := ingest.Load(sourcePath)
			if err != nil {
				return err
			}
			if err := applyGeometryFlags(doc, cfg, rowsFlag, colsFlag); err != nil {
				return err
			}

			cat, resolvedCatalog, err := ctx.loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			engine, err := ctx.newEngine(cat, doc.Geometry(), logger)
			if err != nil {
				return err
			}

			result, err := engine.Reconcile(cmd.Context(), doc.Inputs())
			if err != nil {
				return err
			}

			var sess *session.Session
			err = ctx.withStore(func(store *session.Store) error {
				prov := session.Provenance{
					CatalogPath:    resolvedCatalog,
					CatalogEntries: cat.Len(),
					SourcePath:     sourcePath,
					Threshold:      engine.Threshold(),
				}
				saved, saveErr := store.SaveResult(cmd.Context(), prov, result)
				if saveErr != nil {
					return saveErr
				}
				sess = saved
				return nil
			})
			if err != nil {
				return err
			}

			var files []string
			if !skipExport {
				exportLogger, logErr := ctx.sessionLogger(cmd.Context(), sess.ID)
				if logErr != nil {
					return logErr
				}
				exportDir := filepath.Join(cfg.Paths.ExportDir, shortID(sess.ID))
				exporter := export.New(exportDir, cfg.Scoring.ConfidenceThreshold, cfg.Scoring.ReviewMargin, exportLogger)
				files, err = exporter.Write(result, export.FormatAll)
				if err != nil {
					return err
				}
			}

			if jsonOutput {
				return writeReconcileJSON(cmd, sess, result, files)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderBoardTable(result.Assignments()))
			printResultSummary(out, result.Stats())
			fmt.Fprintf(out, "Session %s saved\n", shortID(sess.ID))
			for _, file := range files {
				fmt.Fprintf(out, "Wrote %s\n", file)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&observationsPath, "observations", "o", "", "Path to the OCR observation document (JSON)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog CSV path (defaults to the configured catalog)")
	cmd.Flags().IntVar(&rowsFlag, "rows", 0, "Board rows, overriding the document geometry")
	cmd.Flags().IntVar(&colsFlag, "cols", 0, "Board columns, overriding the document geometry")
	cmd.Flags().BoolVar(&skipExport, "no-export", false, "Skip writing export files")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")
	_ = cmd.MarkFlagRequired("observations")
	return cmd
}

// applyGeometryFlags settles the board dimensions: explicit flags beat the
// document, and the configured default covers documents that carry none.
func applyGeometryFlags(doc *ingest.Document, cfg *config.Config, rows, cols int) error {
	switch {
	case rows > 0 && cols > 0:
		return doc.ApplyGeometry(rows, cols)
	case rows > 0 || cols > 0:
		return errors.New("--rows and --cols must be given together")
	case !doc.HasGeometry():
		return doc.ApplyGeometry(cfg.Board.Rows, cfg.Board.Cols)
	default:
		return nil
	}
}

func writeReconcileJSON(cmd *cobra.Command, sess *session.Session, result *reconcile.Result, files []string) error {
	stats := result.Stats()
	geometry := result.Board.Geometry()
	return writeJSON(cmd, map[string]any{
		"session_id":  sess.ID,
		"rows":        geometry.Rows,
		"cols":        geometry.Cols,
		"cells":       stats.Cells,
		"catalog":     stats.Catalog,
		"exact":       stats.Exact,
		"manual":      stats.Manual,
		"raw_text":    stats.RawText,
		"unreadable":  stats.Unnamed,
		"mean_score":  stats.MeanConf,
		"exports":     files,
		"assignments": result.Assignments(),
	})
}
