// Package config loads, normalizes, and validates muxxy configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files resolved from an explicit path,
// ~/.config/muxxy/config.toml, or muxxy.toml in the working directory. A
// missing file is not an error: every option carries a usable default, and
// command line flags override the loaded values afterwards.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
