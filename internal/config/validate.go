package config

import (
	"errors"
	"fmt"
	"strings"
)

// maxConfidenceThreshold matches the scoring system's maximum attainable total.
const maxConfidenceThreshold = 125

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateBoard(); err != nil {
		return err
	}
	if err := c.validateScoring(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	for key, value := range map[string]string{
		"paths.data_dir":   c.Paths.DataDir,
		"paths.export_dir": c.Paths.ExportDir,
		"paths.log_dir":    c.Paths.LogDir,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	return nil
}

func (c *Config) validateBoard() error {
	if c.Board.Rows <= 0 {
		return errors.New("board.rows must be positive")
	}
	if c.Board.Cols <= 0 {
		return errors.New("board.cols must be positive")
	}
	return nil
}

func (c *Config) validateScoring() error {
	if c.Scoring.ConfidenceThreshold < 0 || c.Scoring.ConfidenceThreshold > maxConfidenceThreshold {
		return fmt.Errorf("scoring.confidence_threshold must be between 0 and %d", maxConfidenceThreshold)
	}
	if c.Scoring.PositionPartialCredit < 0 || c.Scoring.PositionPartialCredit > 1 {
		return errors.New("scoring.position_partial_credit must be between 0 and 1")
	}
	if c.Scoring.ReviewMargin < 0 {
		return errors.New("scoring.review_margin must be >= 0")
	}
	if c.Scoring.SigmaSlope < 0 {
		return errors.New("scoring.sigma_slope must be >= 0")
	}
	return nil
}
