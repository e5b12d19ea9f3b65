package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir          string
	configPath       string
	catalogPath      string
	observationsPath string
	exportDir        string
}

const sampleObservations = `{
  "rows": 2,
  "cols": 2,
  "cells": [
    {
      "row": 0, "col": 0,
      "roi": {"pos": "RB", "first": "Christian", "last": "McCaffrey", "team": "SF", "bye": "9"},
      "whole": {"last": "Christian McCaffrey"},
      "color": {"position": "RB", "confidence": 1.0}
    },
    {
      "row": 0, "col": 1,
      "roi": {"pos": "WR", "first": "Justin", "last": "Jefferson", "team": "MIN", "bye": "6"},
      "whole": {"last": "Justin Jefferson"},
      "color": {"position": "WR", "confidence": 1.0}
    },
    {
      "row": 1, "col": 0,
      "roi": {"pos": "TE", "first": "Travis", "last": "Kelce", "team": "KC", "bye": "8"},
      "whole": {"last": "Travis Kelce"},
      "color": {"position": "TE", "confidence": 1.0}
    },
    {
      "row": 1, "col": 1,
      "roi": {"pos": "WR", "first": "Tyreek", "last": "Hill", "team": "MIA", "bye": "10"},
      "whole": {"last": "Tyreek Hill"},
      "color": {"position": "WR", "confidence": 1.0}
    }
  ]
}`

func setupCLIEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	catalogPath := filepath.Join(base, "catalog.csv")
	catalogCSV := strings.Join([]string{
		"Player Name,Team,Pos,Bye Week",
		"Justin Jefferson,MIN,WR,6",
		"Christian McCaffrey,SF,RB,9",
		"Tyreek Hill,MIA,WR,10",
		"Travis Kelce,KC,TE,8",
		"Skyy Moore,KC,WR,10",
	}, "\n") + "\n"
	if err := os.WriteFile(catalogPath, []byte(catalogCSV), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	exportDir := filepath.Join(base, "exports")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
export_dir = %q
log_dir = %q
catalog = %q

[board]
rows = 2
cols = 2
`,
		filepath.Join(base, "data"),
		exportDir,
		filepath.Join(base, "logs"),
		catalogPath,
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	observationsPath := filepath.Join(base, "board.json")
	if err := os.WriteFile(observationsPath, []byte(sampleObservations), 0o644); err != nil {
		t.Fatalf("write observations: %v", err)
	}

	return &cliTestEnv{
		baseDir:          base,
		configPath:       configPath,
		catalogPath:      catalogPath,
		observationsPath: observationsPath,
		exportDir:        exportDir,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// reconcileSession runs the full pipeline against the sample observations
// and returns the stored session id.
func reconcileSession(t *testing.T, env *cliTestEnv) string {
	t.Helper()
	out, _, err := runCLI(t, []string{"reconcile", "--observations", env.observationsPath, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	var payload struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode reconcile output: %v", err)
	}
	if payload.SessionID == "" {
		t.Fatal("expected a session id in reconcile output")
	}
	return payload.SessionID
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
