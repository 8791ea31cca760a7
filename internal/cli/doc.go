// Package cli defines the Cobra command tree for the generate-agent CLI.
// The root command runs a generation; each other file in this package
// registers one top-level command (version, config, doctor, etc.) with the
// root command. Command implementations delegate to internal packages for
// business logic and only handle flag parsing, I/O formatting, and user
// interaction.
package cli
