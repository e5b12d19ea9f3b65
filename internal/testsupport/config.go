package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gridiron/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.ExportDir = filepath.Join(base, "exports")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.Catalog = filepath.Join(base, "catalog.csv")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBoard overrides the board geometry on the test config.
func WithBoard(rows, cols int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Board.Rows = rows
		b.cfg.Board.Cols = cols
	}
}

// WithThreshold overrides the acceptance threshold on the test config.
func WithThreshold(value float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scoring.ConfidenceThreshold = value
	}
}

// WithCatalog writes a cheatsheet CSV holding the provided data rows into
// the test directory and points the config at it. Rows use the standard
// "Player Name,Team,Pos,Bye Week" column order.
func WithCatalog(rows ...string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, "catalog.csv")
		lines := append([]string{"Player Name,Team,Pos,Bye Week"}, rows...)
		if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
			b.t.Fatalf("write catalog: %v", err)
		}
		b.cfg.Paths.Catalog = path
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
