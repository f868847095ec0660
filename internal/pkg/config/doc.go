// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file with environment overrides, validated per
// section and shared by the web server, the summary poller and the CLI.
package config
