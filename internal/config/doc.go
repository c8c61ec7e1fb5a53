// Package config loads, normalizes, and validates the TOML configuration
// used by the cratesync CLI. Paths are expanded to absolute form during
// load so the rest of the code never deals with ~ or relative paths.
package config
