// Package config loads the web app configuration from an optional YAML file,
// environment variables and command line flags, and validates it before the
// server starts. It covers the listen address and timeouts, the environment,
// log level, page minification and the metrics pipeline.
package config
