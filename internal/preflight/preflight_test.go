package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gridiron/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.ExportDir = filepath.Join(base, "exports")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.Catalog = filepath.Join(base, "catalog.csv")
	return &cfg
}

func writeCatalog(t *testing.T, path string) {
	t.Helper()

	contents := "Player Name,Team,Pos,Bye Week\nJustin Jefferson,MIN,WR,6\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
}

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCatalog_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	writeCatalog(t, path)

	result := CheckCatalog(path)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "1 entries") {
		t.Fatalf("expected entry count in detail, got: %s", result.Detail)
	}
}

func TestCheckCatalog_Missing(t *testing.T) {
	result := CheckCatalog(filepath.Join(t.TempDir(), "nope.csv"))
	if result.Passed {
		t.Fatal("expected failure for missing catalog")
	}
}

func TestCheckCatalog_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte("Player Name,Team,Pos,Bye Week\nSomeone,MIN,XX,6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckCatalog(path)
	if result.Passed {
		t.Fatal("expected failure for unknown position")
	}
}

func TestCheckDiskSpace_Stubbed(t *testing.T) {
	cases := []struct {
		name   string
		total  uint64
		free   uint64
		err    error
		passed bool
	}{
		{"plenty", 1000, 500, nil, true},
		{"nearly full", 1000, 10, nil, false},
		{"unknown size", 0, 0, nil, true},
		{"statfs error", 0, 0, errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := checkDiskSpace("disk", "/data", func(string) (uint64, uint64, error) {
				return tc.total, tc.free, tc.err
			})
			if result.Passed != tc.passed {
				t.Fatalf("expected passed=%v, got %+v", tc.passed, result)
			}
		})
	}
}

func TestCheckDatabase_OK(t *testing.T) {
	cfg := testConfig(t)
	result := CheckDatabase(cfg)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result.Detail != cfg.StorePath() {
		t.Fatalf("expected store path detail, got: %s", result.Detail)
	}
}

func TestCheckDatabase_DataDirBlocked(t *testing.T) {
	cfg := testConfig(t)
	// A file where the data directory should be makes MkdirAll fail.
	if err := os.WriteFile(cfg.Paths.DataDir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDatabase(cfg)
	if result.Passed {
		t.Fatal("expected failure when the data dir cannot be created")
	}
}

func TestRunAllReportsEveryCheck(t *testing.T) {
	cfg := testConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	writeCatalog(t, cfg.Paths.Catalog)

	results := RunAll(cfg)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	if !Healthy(results) {
		for _, r := range results {
			t.Logf("%s: passed=%v detail=%s", r.Name, r.Passed, r.Detail)
		}
		t.Fatal("expected all checks to pass")
	}
}

func TestRunAllFlagsMissingCatalog(t *testing.T) {
	cfg := testConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(cfg)
	if Healthy(results) {
		t.Fatal("expected a failing check for the missing catalog")
	}
	var foundCatalog bool
	for _, r := range results {
		if r.Name == "Catalog" {
			foundCatalog = true
			if r.Passed {
				t.Fatal("expected catalog check to fail")
			}
		}
	}
	if !foundCatalog {
		t.Fatal("expected a catalog check in the results")
	}
}
