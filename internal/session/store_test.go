package session_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"gridiron/internal/catalog"
	"gridiron/internal/draft"
	"gridiron/internal/logging"
	"gridiron/internal/reconcile"
	"gridiron/internal/score"
	"gridiron/internal/services"
	"gridiron/internal/session"
	"gridiron/internal/testsupport"
)

func fixtureEngine(t *testing.T) *reconcile.Engine {
	t.Helper()

	cat, err := catalog.New([]catalog.Entry{
		{FirstName: "Justin", LastName: "Jefferson", Team: "MIN", Position: catalog.PositionWR, ByeWeek: 6},
		{FirstName: "Jonathan", LastName: "Taylor", Team: "IND", Position: catalog.PositionRB, ByeWeek: 11},
		{FirstName: "Travis", LastName: "Kelce", Team: "KC", Position: catalog.PositionTE, ByeWeek: 8},
		{FirstName: "Tyreek", LastName: "Hill", Team: "MIA", Position: catalog.PositionWR, ByeWeek: 10},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	model := draft.NewModel(draft.Board{Rows: 2, Cols: 2}, 0, 0)
	engine, err := reconcile.New(cat, model, nil, reconcile.Options{}, logging.NewNop())
	if err != nil {
		t.Fatalf("reconcile.New: %v", err)
	}
	return engine
}

func fixtureResult(t *testing.T, engine *reconcile.Engine) *reconcile.Result {
	t.Helper()

	inputs := []reconcile.CellInput{
		{
			Row: 0, Col: 0,
			Targeted: score.Observation{
				LastText: "Jefforson",
				TeamText: "MIN",
				ByeText:  "6",
				Color:    &score.ColorEstimate{Position: catalog.PositionWR, Confidence: 1.0},
			},
		},
		{
			Row: 0, Col: 1,
			Targeted: score.Observation{LastText: "Zzyzx"},
		},
		{Row: 1, Col: 1},
	}
	result, err := engine.Reconcile(context.Background(), inputs)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	return result
}

func fixtureProvenance() session.Provenance {
	return session.Provenance{
		CatalogPath:    "cheatsheet.csv",
		CatalogEntries: 4,
		SourcePath:     "observations.json",
		Threshold:      reconcile.DefaultThreshold,
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	engine := fixtureEngine(t)
	result := fixtureResult(t, engine)

	ctx := context.Background()
	sess, err := store.SaveResult(ctx, fixtureProvenance(), result)
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected a session identifier")
	}
	if sess.Rows != 2 || sess.Cols != 2 {
		t.Fatalf("unexpected geometry %dx%d", sess.Rows, sess.Cols)
	}

	fetched, err := store.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected stored session")
	}
	if fetched.Cells != 3 || fetched.CatalogCells != 1 || fetched.RawCells != 2 {
		t.Fatalf("unexpected tallies: %+v", fetched)
	}
	if fetched.CatalogPath != "cheatsheet.csv" || fetched.CatalogEntries != 4 {
		t.Fatalf("provenance lost: %+v", fetched)
	}
	if fetched.MeanScore <= 0 {
		t.Fatalf("expected positive mean score, got %f", fetched.MeanScore)
	}

	loaded, err := store.LoadResult(ctx, sess.ID)
	if err != nil {
		t.Fatalf("LoadResult: %v", err)
	}
	assignments := loaded.Assignments()
	if len(assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(assignments))
	}

	first, ok := loaded.Board.Assignment(reconcile.Coord{Row: 0, Col: 0})
	if !ok {
		t.Fatal("expected assignment at r0c0")
	}
	if first.Source != reconcile.SourceCatalog || first.LastName != "Jefferson" {
		t.Fatalf("unexpected r0c0 assignment: %+v", first)
	}
	if first.Breakdown.LastName <= 0 {
		t.Fatal("expected breakdown to survive the round trip")
	}
	if !loaded.Board.InUse(first.Key) {
		t.Fatal("expected identity reservation to be rebuilt on load")
	}

	sel, ok := loaded.Selection(reconcile.Coord{Row: 0, Col: 1})
	if !ok {
		t.Fatal("expected selection for r0c1")
	}
	if sel.Winner.Observation.LastText != "Zzyzx" {
		t.Fatalf("unexpected winning observation: %+v", sel.Winner.Observation)
	}

	trace, ok := loaded.Trace(reconcile.Coord{Row: 0, Col: 0})
	if !ok {
		t.Fatal("expected trace for r0c0")
	}
	if len(trace.Candidates) == 0 {
		t.Fatal("expected traced candidates to survive the round trip")
	}
}

func TestCorrectionsSurviveReload(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	engine := fixtureEngine(t)
	result := fixtureResult(t, engine)

	ctx := context.Background()
	sess, err := store.SaveResult(ctx, fixtureProvenance(), result)
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	loaded, err := store.LoadResult(ctx, sess.ID)
	if err != nil {
		t.Fatalf("LoadResult: %v", err)
	}

	kelce, found := engine.Catalog().ByKey(catalog.Entry{
		FirstName: "Travis", LastName: "Kelce", Team: "KC", Position: catalog.PositionTE, ByeWeek: 8,
	}.Key())
	if !found {
		t.Fatal("fixture catalog lost Kelce")
	}
	if _, err := engine.Correct(loaded, reconcile.Coord{Row: 0, Col: 1}, kelce); err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if err := store.UpdateResult(ctx, sess.ID, loaded); err != nil {
		t.Fatalf("UpdateResult: %v", err)
	}

	reloaded, err := store.LoadResult(ctx, sess.ID)
	if err != nil {
		t.Fatalf("LoadResult after update: %v", err)
	}
	corrected, ok := reloaded.Board.Assignment(reconcile.Coord{Row: 0, Col: 1})
	if !ok {
		t.Fatal("expected corrected assignment at r0c1")
	}
	if corrected.Match != reconcile.MatchManual || !corrected.Locked {
		t.Fatalf("correction lost on reload: %+v", corrected)
	}
	if corrected.LastName != "Kelce" {
		t.Fatalf("unexpected corrected player: %+v", corrected)
	}

	// The reloaded board must still hold Kelce's reservation: pinning him
	// somewhere else has to conflict.
	if _, err := engine.Correct(reloaded, reconcile.Coord{Row: 1, Col: 0}, kelce); !errors.Is(err, services.ErrConflict) {
		t.Fatalf("expected conflict re-pinning a locked player, got %v", err)
	}

	updated, err := store.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if updated.ManualCells != 1 {
		t.Fatalf("expected 1 manual cell, got %d", updated.ManualCells)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("updated_at went backwards: %+v", updated)
	}
}

func TestResolveSessionReferences(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	engine := fixtureEngine(t)

	ctx := context.Background()
	first, err := store.SaveResult(ctx, fixtureProvenance(), fixtureResult(t, engine))
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := store.SaveResult(ctx, fixtureProvenance(), fixtureResult(t, engine))
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected distinct session identifiers")
	}

	sessions, err := store.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != second.ID {
		t.Fatalf("expected newest session first, got %s", sessions[0].ID)
	}

	byID, err := store.ResolveSession(ctx, first.ID)
	if err != nil {
		t.Fatalf("ResolveSession by id: %v", err)
	}
	if byID.ID != first.ID {
		t.Fatalf("resolved wrong session: %s", byID.ID)
	}

	byPrefix, err := store.ResolveSession(ctx, first.ID[:8])
	if err != nil {
		t.Fatalf("ResolveSession by prefix: %v", err)
	}
	if byPrefix.ID != first.ID {
		t.Fatalf("prefix resolved wrong session: %s", byPrefix.ID)
	}

	latest, err := store.ResolveSession(ctx, "")
	if err != nil {
		t.Fatalf("ResolveSession latest: %v", err)
	}
	if latest.ID != second.ID {
		t.Fatalf("expected latest session, got %s", latest.ID)
	}

	if _, err := store.ResolveSession(ctx, "no-such-session"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDeleteSessionRemovesCells(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	engine := fixtureEngine(t)

	ctx := context.Background()
	sess, err := store.SaveResult(ctx, fixtureProvenance(), fixtureResult(t, engine))
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	if err := store.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	gone, err := store.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected session to be gone, got %+v", gone)
	}
	if _, err := store.LoadResult(ctx, sess.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found loading deleted session, got %v", err)
	}
	if err := store.DeleteSession(ctx, sess.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found deleting twice, got %v", err)
	}
}

func TestOpenRejectsSecondProcess(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MustOpenStore(t, cfg)

	if _, err := session.Open(cfg); !errors.Is(err, services.ErrConflict) {
		t.Fatalf("expected conflict opening the store twice, got %v", err)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := session.Open(cfg)
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	path := store.Path()
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("rewrite schema version: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw db: %v", err)
	}

	if _, err := session.Open(cfg); !errors.Is(err, session.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}
