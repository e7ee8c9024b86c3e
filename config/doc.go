// Package config loads process configuration from environment variables,
// optionally seeded from a .env file.
package config
