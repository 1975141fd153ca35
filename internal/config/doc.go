// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. Besides server settings it carries the
// initial pagination defaults handed to the defaults store.
package config
