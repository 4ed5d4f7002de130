// Package config loads, parses and validates application settings from
// defaults, an optional config.yaml and ACCOUNTS_-prefixed environment
// variables.
package config
