package session

import (
	"database/sql"
	"errors"
	"time"
)

const sessionColumns = "id, created_at, updated_at, board_rows, board_cols, threshold, catalog_path, catalog_entries, source_path, cells, catalog_cells, manual_cells, raw_cells, mean_score"

func scanSession(scanner interface{ Scan(dest ...any) error }) (*Session, error) {
	var (
		id             string
		createdRaw     sql.NullString
		updatedRaw     sql.NullString
		boardRows      int
		boardCols      int
		threshold      sql.NullFloat64
		catalogPath    sql.NullString
		catalogEntries sql.NullInt64
		sourcePath     sql.NullString
		cells          sql.NullInt64
		catalogCells   sql.NullInt64
		manualCells    sql.NullInt64
		rawCells       sql.NullInt64
		meanScore      sql.NullFloat64
	)

	if err := scanner.Scan(
		&id,
		&createdRaw,
		&updatedRaw,
		&boardRows,
		&boardCols,
		&threshold,
		&catalogPath,
		&catalogEntries,
		&sourcePath,
		&cells,
		&catalogCells,
		&manualCells,
		&rawCells,
		&meanScore,
	); err != nil {
		return nil, err
	}

	sess := &Session{
		ID:             id,
		Rows:           boardRows,
		Cols:           boardCols,
		Threshold:      threshold.Float64,
		CatalogPath:    catalogPath.String,
		CatalogEntries: int(catalogEntries.Int64),
		SourcePath:     sourcePath.String,
		Cells:          int(cells.Int64),
		CatalogCells:   int(catalogCells.Int64),
		ManualCells:    int(manualCells.Int64),
		RawCells:       int(rawCells.Int64),
		MeanScore:      meanScore.Float64,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		sess.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		sess.UpdatedAt = updated
	}
	return sess, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}
