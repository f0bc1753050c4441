// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (nothing to do, unrecognized command, not found).
	UserError = 1

	// ConfigError indicates a missing or invalid configuration file.
	ConfigError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
