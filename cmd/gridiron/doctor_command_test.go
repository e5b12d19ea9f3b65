package main

import (
	"encoding/json"
	"os"
	"testing"
)

func TestDoctorHealthy(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	requireContains(t, out, "Preflight")
	requireContains(t, out, "All checks passed")
}

func TestDoctorReportsMissingCatalog(t *testing.T) {
	env := setupCLIEnv(t)
	if err := os.Remove(env.catalogPath); err != nil {
		t.Fatalf("remove catalog: %v", err)
	}

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err == nil {
		t.Fatal("expected doctor to fail without a catalog")
	}
	requireContains(t, err.Error(), "checks failed")
	requireContains(t, out, "ERROR")
}

func TestDoctorJSON(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, []string{"doctor", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor --json: %v", err)
	}
	var payload struct {
		Healthy bool `json:"healthy"`
		Checks  []struct {
			Name   string `json:"name"`
			Passed bool   `json:"passed"`
		} `json:"checks"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if !payload.Healthy {
		t.Fatalf("expected healthy result, got %+v", payload)
	}
	if len(payload.Checks) == 0 {
		t.Fatal("expected check results")
	}
}
