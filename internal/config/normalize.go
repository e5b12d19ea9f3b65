package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScoring()
	c.normalizeWorkers()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.ExportDir, err = expandPath(c.Paths.ExportDir); err != nil {
		return fmt.Errorf("paths.export_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.Catalog = strings.TrimSpace(c.Paths.Catalog)
	if c.Paths.Catalog == "" {
		if value, ok := os.LookupEnv("GRIDIRON_CATALOG"); ok {
			c.Paths.Catalog = strings.TrimSpace(value)
		}
	}
	if c.Paths.Catalog == "" {
		c.Paths.Catalog = defaultCatalog
	}
	if c.Paths.Catalog, err = expandPath(c.Paths.Catalog); err != nil {
		return fmt.Errorf("paths.catalog: %w", err)
	}
	return nil
}

func (c *Config) normalizeScoring() {
	if c.Scoring.SigmaBase <= 0 {
		c.Scoring.SigmaBase = defaultSigmaBase
	}
	if c.Scoring.TopCandidates <= 0 {
		c.Scoring.TopCandidates = defaultTopCandidates
	}
}

func (c *Config) normalizeWorkers() {
	if c.Workers.Scoring < 0 {
		c.Workers.Scoring = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
