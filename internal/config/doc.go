// Package config loads, normalizes, and validates learnlang configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the LEARNLANG_API_BASE environment
// override for the backend address. The Config type centralizes every knob the
// CLI and client packages need so the API base, media limits and state
// directories are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives a
// trimmed base URL, sanitized paths and clear validation errors.
package config
