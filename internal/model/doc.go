// Package model defines the exit codes and the exit-code-carrying error
// type (CLIError) shared by the unsquash CLI commands. The extraction
// domain types themselves live in the public unsquash package; this
// package only holds what the CLI layer needs to turn wrapper errors into
// process exit statuses.
package model
