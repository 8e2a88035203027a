// Package config loads, normalizes, and validates partsite configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PARTSITE_REPO_ORIGIN. The Config type centralizes every knob the updater,
// the web front end, and the CLI need, so the parts repository checkout, the
// catalog database, and the listen address are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
