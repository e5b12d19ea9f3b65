package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"gridiron/internal/config"
	"gridiron/internal/draft"
	"gridiron/internal/reconcile"
	"gridiron/internal/services"
)

// Session is one stored reconciliation run. The cell payloads live in
// the cells table; the session row carries geometry, provenance, and the
// tallies shown by listings.
type Session struct {
	ID             string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Rows           int
	Cols           int
	Threshold      float64
	CatalogPath    string
	CatalogEntries int
	SourcePath     string
	Cells          int
	CatalogCells   int
	ManualCells    int
	RawCells       int
	MeanScore      float64
}

// Geometry returns the stored board dimensions.
func (s *Session) Geometry() draft.Board {
	return draft.Board{Rows: s.Rows, Cols: s.Cols}
}

// Provenance records where a stored run came from.
type Provenance struct {
	CatalogPath    string
	CatalogEntries int
	SourcePath     string
	Threshold      float64
}

// Store manages session persistence backed by SQLite. Opening the store
// takes an exclusive file lock so two gridiron processes never write the
// same database.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the session database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.StorePath()
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConflict, "session", "open",
			"another gridiron process holds the session database", nil)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database and releases the process lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var closeErr error
	if s.db != nil {
		closeErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	return closeErr
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SaveResult stores a completed run as a new session and returns its
// record.
func (s *Store) SaveResult(ctx context.Context, prov Provenance, result *reconcile.Result) (*Session, error) {
	if result == nil || result.Board == nil {
		return nil, services.Wrap(services.ErrValidation, "session", "save", "result must not be nil", nil)
	}

	geometry := result.Board.Geometry()
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	stats := result.Stats()

	sess := &Session{
		ID:             uuid.NewString(),
		CreatedAt:      now,
		UpdatedAt:      now,
		Rows:           geometry.Rows,
		Cols:           geometry.Cols,
		Threshold:      prov.Threshold,
		CatalogPath:    prov.CatalogPath,
		CatalogEntries: prov.CatalogEntries,
		SourcePath:     prov.SourcePath,
		Cells:          stats.Cells,
		CatalogCells:   stats.Catalog,
		ManualCells:    stats.Manual,
		RawCells:       stats.RawText,
		MeanScore:      stats.MeanConf,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (
            id, created_at, updated_at, board_rows, board_cols, threshold,
            catalog_path, catalog_entries, source_path,
            cells, catalog_cells, manual_cells, raw_cells, mean_score
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		timestamp,
		timestamp,
		sess.Rows,
		sess.Cols,
		sess.Threshold,
		nullableString(sess.CatalogPath),
		sess.CatalogEntries,
		nullableString(sess.SourcePath),
		sess.Cells,
		sess.CatalogCells,
		sess.ManualCells,
		sess.RawCells,
		sess.MeanScore,
	); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	if err := insertCells(ctx, tx, sess.ID, result); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save: %w", err)
	}
	return sess, nil
}

// UpdateResult replaces a stored session's cells with the given result
// and refreshes the listing tallies. Used after manual corrections.
func (s *Store) UpdateResult(ctx context.Context, id string, result *reconcile.Result) error {
	if result == nil || result.Board == nil {
		return services.Wrap(services.ErrValidation, "session", "update", "result must not be nil", nil)
	}
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return err
	}
	if sess == nil {
		return services.Wrap(services.ErrNotFound, "session", "update", fmt.Sprintf("session %s", id), nil)
	}

	stats := result.Stats()
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cells WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("clear cells: %w", err)
	}
	if err := insertCells(ctx, tx, id, result); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE sessions
         SET updated_at = ?, cells = ?, catalog_cells = ?, manual_cells = ?, raw_cells = ?, mean_score = ?
         WHERE id = ?`,
		timestamp,
		stats.Cells,
		stats.Catalog,
		stats.Manual,
		stats.RawText,
		stats.MeanConf,
		id,
	); err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}
	return nil
}

func insertCells(ctx context.Context, tx *sql.Tx, sessionID string, result *reconcile.Result) error {
	for _, a := range result.Assignments() {
		coord := a.Coord()
		assignmentJSON, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("marshal assignment %s: %w", coord, err)
		}
		var selectionJSON []byte
		if sel, ok := result.Selection(coord); ok {
			selectionJSON, err = json.Marshal(sel)
			if err != nil {
				return fmt.Errorf("marshal selection %s: %w", coord, err)
			}
		}
		var traceJSON []byte
		if trace, ok := result.Trace(coord); ok {
			traceJSON, err = json.Marshal(trace)
			if err != nil {
				return fmt.Errorf("marshal trace %s: %w", coord, err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cells (
                session_id, board_row, board_col, pick, source, match_kind,
                locked, total, assignment_json, selection_json, trace_json
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sessionID,
			coord.Row,
			coord.Col,
			a.Pick,
			string(a.Source),
			nullableString(string(a.Match)),
			boolToInt(a.Locked),
			a.Total(),
			string(assignmentJSON),
			nullableString(string(selectionJSON)),
			nullableString(string(traceJSON)),
		); err != nil {
			return fmt.Errorf("insert cell %s: %w", coord, err)
		}
	}
	return nil
}

// GetSession fetches a session by exact identifier. Returns nil when no
// such session exists.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// ResolveSession turns a CLI session reference into a stored session: an
// exact identifier, a unique identifier prefix, or empty for the most
// recent run.
func (s *Store) ResolveSession(ctx context.Context, ref string) (*Session, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		sessions, err := s.ListSessions(ctx)
		if err != nil {
			return nil, err
		}
		if len(sessions) == 0 {
			return nil, services.Wrap(services.ErrNotFound, "session", "resolve", "no stored sessions", nil)
		}
		return sessions[0], nil
	}

	sess, err := s.GetSession(ctx, ref)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		return sess, nil
	}

	matches, err := s.sessionsByPrefix(ctx, ref)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, services.Wrap(services.ErrNotFound, "session", "resolve",
			fmt.Sprintf("no session matches %q", ref), nil)
	case 1:
		return matches[0], nil
	default:
		return nil, services.Wrap(services.ErrConflict, "session", "resolve",
			fmt.Sprintf("%d sessions match %q, use a longer prefix", len(matches), ref), nil)
	}
}

func (s *Store) sessionsByPrefix(ctx context.Context, prefix string) ([]*Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id LIKE ? ORDER BY created_at DESC`,
		prefix+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("query by prefix: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// ListSessions returns all stored sessions, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]*Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// LoadResult rebuilds the reconciliation result stored under the
// session, including the reservation bookkeeping corrections rely on.
func (s *Store) LoadResult(ctx context.Context, id string) (*reconcile.Result, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, services.Wrap(services.ErrNotFound, "session", "load", fmt.Sprintf("session %s", id), nil)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT assignment_json, selection_json, trace_json FROM cells
         WHERE session_id = ? ORDER BY board_row, board_col`, id)
	if err != nil {
		return nil, fmt.Errorf("query cells: %w", err)
	}
	defer rows.Close()

	var (
		assignments []*reconcile.Assignment
		selections  []reconcile.Selection
		traces      []reconcile.CellTrace
	)
	for rows.Next() {
		var (
			assignmentJSON string
			selectionJSON  sql.NullString
			traceJSON      sql.NullString
		)
		if err := rows.Scan(&assignmentJSON, &selectionJSON, &traceJSON); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}

		var a reconcile.Assignment
		if err := json.Unmarshal([]byte(assignmentJSON), &a); err != nil {
			return nil, fmt.Errorf("decode assignment: %w", err)
		}
		assignments = append(assignments, &a)

		if selectionJSON.Valid && selectionJSON.String != "" {
			var sel reconcile.Selection
			if err := json.Unmarshal([]byte(selectionJSON.String), &sel); err != nil {
				return nil, fmt.Errorf("decode selection: %w", err)
			}
			selections = append(selections, sel)
		}
		if traceJSON.Valid && traceJSON.String != "" {
			var trace reconcile.CellTrace
			if err := json.Unmarshal([]byte(traceJSON.String), &trace); err != nil {
				return nil, fmt.Errorf("decode trace: %w", err)
			}
			traces = append(traces, trace)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reconcile.RestoreResult(sess.Geometry(), assignments, selections, traces)
}

// DeleteSession removes a session and its cells.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "session", "delete", fmt.Sprintf("session %s", id), nil)
	}
	return nil
}
