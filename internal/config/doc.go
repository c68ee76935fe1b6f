// Package config defines the application configuration structure and
// loading logic. Configuration is read from an optional config file and
// from environment variables prefixed with TASKHUB_, with environment
// variables taking precedence. The loaded configuration is validated
// before use; an invalid configuration aborts startup.
package config
