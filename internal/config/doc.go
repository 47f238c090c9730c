// Package config loads and validates application configuration from
// files and environment variables. Configuration is organized into
// logical groups (logging, scheduling) and validated on load, so the
// rest of the application can assume a well-formed Config.
package config
