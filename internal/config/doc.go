// Package config loads, validates, and normalizes matchscan configuration.
//
// Configuration comes from a TOML file (~/.config/matchscan/config.toml or a
// matchscan.toml in the working directory), falling back to built-in defaults
// when no file exists. Load expands ~ in path fields, trims and lowercases
// enum-ish values, and rejects configurations the search cannot run with.
package config
