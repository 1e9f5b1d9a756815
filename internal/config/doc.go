// Package config defines the application configuration structure and
// loading. Credentials and identifiers are read once at process start
// from the environment (optionally seeded from a .env file) and are
// immutable for the run's duration; a missing required value is a fatal
// startup condition surfaced by Load.
package config
