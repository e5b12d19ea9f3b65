package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestReconcileRendersBoardAndWritesExports(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, []string{"reconcile", "--observations", env.observationsPath}, env.configPath)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	requireContains(t, out, "Christian McCaffrey")
	requireContains(t, out, "Tyreek Hill")
	requireContains(t, out, "Cells: 4")
	requireContains(t, out, "Catalog: 4")
	requireContains(t, out, "saved")
	requireContains(t, out, "Wrote ")
}

func TestReconcileJSONReportsSessionAndExports(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, []string{"reconcile", "--observations", env.observationsPath, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	var payload struct {
		SessionID string   `json:"session_id"`
		Rows      int      `json:"rows"`
		Cols      int      `json:"cols"`
		Cells     int      `json:"cells"`
		Catalog   int      `json:"catalog"`
		Exports   []string `json:"exports"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if payload.Rows != 2 || payload.Cols != 2 {
		t.Fatalf("unexpected geometry: %dx%d", payload.Rows, payload.Cols)
	}
	if payload.Cells != 4 || payload.Catalog != 4 {
		t.Fatalf("unexpected tallies: %+v", payload)
	}
	if len(payload.Exports) == 0 {
		t.Fatal("expected export files")
	}
	for _, file := range payload.Exports {
		if _, err := os.Stat(file); err != nil {
			t.Fatalf("export file %s missing: %v", file, err)
		}
	}

	boardCSV := filepath.Join(env.exportDir, shortID(payload.SessionID), "board.csv")
	if _, err := os.Stat(boardCSV); err != nil {
		t.Fatalf("expected board.csv under the session export dir: %v", err)
	}
}

func TestReconcileNoExportSkipsFiles(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, []string{"reconcile", "--observations", env.observationsPath, "--no-export"}, env.configPath)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	requireContains(t, out, "saved")

	entries, err := os.ReadDir(env.exportDir)
	if err != nil {
		t.Fatalf("read export dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no exports, found %d entries", len(entries))
	}
}

func TestReconcileGeometryFlags(t *testing.T) {
	env := setupCLIEnv(t)

	_, _, err := runCLI(t, []string{"reconcile", "--observations", env.observationsPath, "--rows", "3"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for --rows without --cols")
	}
	requireContains(t, err.Error(), "together")

	// Explicit flags override the document's own geometry.
	out, _, err := runCLI(t, []string{"reconcile", "--observations", env.observationsPath, "--rows", "3", "--cols", "2", "--json", "--no-export"}, env.configPath)
	if err != nil {
		t.Fatalf("reconcile with geometry flags: %v", err)
	}
	var payload struct {
		Rows int `json:"rows"`
		Cols int `json:"cols"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if payload.Rows != 3 || payload.Cols != 2 {
		t.Fatalf("expected 3x2 board, got %dx%d", payload.Rows, payload.Cols)
	}
}

func TestReconcileMissingObservations(t *testing.T) {
	env := setupCLIEnv(t)

	_, _, err := runCLI(t, []string{"reconcile", "--observations", filepath.Join(env.baseDir, "absent.json")}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing observation document")
	}
}
