// Package cli is responsible for parsing command-line arguments, merging
// them with the settings file and environment, validating user input, and
// handling process-level concerns like exit codes. It translates everything
// into the application's internal configuration.
package cli
