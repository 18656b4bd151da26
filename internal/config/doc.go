// Package config loads optional defaults for the unsquash CLI from the
// user config directory ($XDG_CONFIG_HOME/unsquash on Linux). Both YAML
// and JSONC (JSON with comments) are accepted, chosen by file extension.
// Config values are defaults only — command-line flags always override
// them, and a missing config file is not an error.
package config
