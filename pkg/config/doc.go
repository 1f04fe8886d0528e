// Package config handles configuration management for dotlink.
// It supports loading configuration from multiple sources including
// embedded defaults, TOML or YAML files in the dotfiles root,
// environment variables, and command-line flags.
package config
