// Package config loads, normalizes, and validates gridiron configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GRIDIRON_CONFIG and GRIDIRON_CATALOG. The Config type centralizes every
// knob the CLI needs, so session storage, export locations, and scoring
// calibration are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
