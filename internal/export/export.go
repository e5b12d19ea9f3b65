package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gridiron/internal/logging"
	"gridiron/internal/reconcile"
	"gridiron/internal/services"
)

// Format selects one output file, or all of them.
type Format string

const (
	FormatRows   Format = "rows"
	FormatCols   Format = "cols"
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatReview Format = "review"
	FormatAll    Format = "all"
)

// ParseFormat maps a CLI format flag onto a Format.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatRows:
		return FormatRows, nil
	case FormatCols:
		return FormatCols, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatReview:
		return FormatReview, nil
	case FormatAll, "":
		return FormatAll, nil
	default:
		return "", services.Wrap(services.ErrValidation, "export", "format",
			fmt.Sprintf("unknown format %q (rows, cols, csv, json, review, all)", value), nil)
	}
}

// Exporter writes result files into a target directory. The threshold and
// review margin decide which cells land on the review sheet.
type Exporter struct {
	dir       string
	threshold float64
	margin    float64
	logger    *slog.Logger
}

// New builds an Exporter rooted at dir.
func New(dir string, threshold, margin float64, logger *slog.Logger) *Exporter {
	return &Exporter{
		dir:       dir,
		threshold: threshold,
		margin:    margin,
		logger:    logging.NewComponentLogger(logger, "export"),
	}
}

// Write renders the requested format and returns the paths written.
func (e *Exporter) Write(result *reconcile.Result, format Format) ([]string, error) {
	if result == nil || result.Board == nil {
		return nil, services.Wrap(services.ErrValidation, "export", "write", "result must not be nil", nil)
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrUnavailable, "export", "write",
			fmt.Sprintf("create export directory %q", e.dir), err)
	}

	writers := []struct {
		format Format
		file   string
		render func(*reconcile.Result) ([]byte, error)
	}{
		{FormatRows, "rows.txt", e.renderRows},
		{FormatCols, "cols.txt", e.renderCols},
		{FormatCSV, "board.csv", e.renderCSV},
		{FormatJSON, "board.json", e.renderJSON},
		{FormatReview, "review.csv", e.renderReview},
	}

	var paths []string
	for _, w := range writers {
		if format != FormatAll && format != w.format {
			continue
		}
		data, err := w.render(result)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(e.dir, w.file)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, services.Wrap(services.ErrUnavailable, "export", "write",
				fmt.Sprintf("write %s", path), err)
		}
		e.logger.Info("export written",
			logging.String("format", string(w.format)),
			logging.String("path", path),
			logging.Int("cells", result.Board.Len()),
			logging.String(logging.FieldEventType, "export_written"))
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		return nil, services.Wrap(services.ErrValidation, "export", "write",
			fmt.Sprintf("format %q produced no files", format), nil)
	}
	return paths, nil
}
