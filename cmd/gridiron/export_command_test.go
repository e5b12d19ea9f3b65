package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportSingleFormat(t *testing.T) {
	env := setupCLIEnv(t)
	id := reconcileSession(t, env)

	outDir := filepath.Join(env.baseDir, "out")
	out, _, err := runCLI(t, []string{"export", id, "--format", "csv", "--out", outDir}, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "board.csv")

	data, err := os.ReadFile(filepath.Join(outDir, "board.csv"))
	if err != nil {
		t.Fatalf("read board.csv: %v", err)
	}
	if !strings.Contains(string(data), "McCaffrey") {
		t.Fatalf("expected board.csv to list players, got %q", string(data))
	}
}

func TestExportAllDefaultsToNewestSession(t *testing.T) {
	env := setupCLIEnv(t)
	reconcileSession(t, env)

	outDir := filepath.Join(env.baseDir, "out-all")
	out, _, err := runCLI(t, []string{"export", "--out", outDir}, env.configPath)
	if err != nil {
		t.Fatalf("export all: %v", err)
	}
	for _, name := range []string{"rows.txt", "cols.txt", "board.csv", "board.json", "review.csv"} {
		requireContains(t, out, name)
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	env := setupCLIEnv(t)
	reconcileSession(t, env)

	_, _, err := runCLI(t, []string{"export", "--format", "pdf"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	requireContains(t, err.Error(), "unknown format")
}
