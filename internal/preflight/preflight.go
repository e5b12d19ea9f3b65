package preflight

import (
	"gridiron/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem and catalog checks for the given
// config. The session database probe is not included because callers
// running a reconciliation already hold the store lock; doctor invokes
// CheckDatabase separately.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	return []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Export directory", cfg.Paths.ExportDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckCatalog(cfg.Paths.Catalog),
		CheckDiskSpace("Data disk", cfg.Paths.DataDir),
	}
}

// Healthy reports whether every result passed.
func Healthy(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
