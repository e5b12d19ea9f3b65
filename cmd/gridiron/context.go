package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"gridiron/internal/catalog"
	"gridiron/internal/config"
	"gridiron/internal/draft"
	"gridiron/internal/logging"
	"gridiron/internal/reconcile"
	"gridiron/internal/score"
	"gridiron/internal/services"
	"gridiron/internal/session"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) flagPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.flagPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the CLI logger. Output goes to the log file only so
// structured records never interleave with rendered tables on stdout.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		logPath := cfg.LogFilePath()
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:            cfg.Logging.Level,
			Format:           cfg.Logging.Format,
			OutputPaths:      []string{logPath},
			ErrorOutputPaths: []string{logPath},
		})
	})
	return c.logger, c.loggerErr
}

// sessionLogger returns the CLI logger annotated with the session id, so
// records written while working on a stored session are attributable.
func (c *commandContext) sessionLogger(ctx context.Context, sessionID string) (*slog.Logger, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return logging.WithContext(services.WithSessionID(ctx, sessionID), logger), nil
}

// withStore opens the session store for the duration of fn. Each CLI
// invocation holds the store lock only while it runs.
func (c *commandContext) withStore(fn func(*session.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := session.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// loadCatalog resolves the cheatsheet path and loads it. An explicit
// override beats the configured path.
func (c *commandContext) loadCatalog(override string) (*catalog.Catalog, string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, "", err
	}
	path := strings.TrimSpace(override)
	if path == "" {
		path = cfg.Paths.Catalog
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, "", err
	}
	cat, err := catalog.Load(expanded)
	if err != nil {
		return nil, "", err
	}
	return cat, expanded, nil
}

// newEngine assembles a reconciliation engine from the configured
// calibration knobs.
func (c *commandContext) newEngine(cat *catalog.Catalog, geometry draft.Board, logger *slog.Logger) (*reconcile.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	model := draft.NewModel(geometry, cfg.Scoring.SigmaBase, cfg.Scoring.SigmaSlope)
	scorer := score.NewScorer(score.Params{PositionPartialCredit: cfg.Scoring.PositionPartialCredit})
	return reconcile.New(cat, model, scorer, reconcile.Options{
		Threshold:     cfg.Scoring.ConfidenceThreshold,
		TopCandidates: cfg.Scoring.TopCandidates,
		Workers:       cfg.Workers.Scoring,
	}, logger)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
