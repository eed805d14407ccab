// Package app wires application dependencies for the CLI.
//
// It loads Config from defaults, an optional YAML file and SPECTRE_*
// environment variables, builds the redacting logger, and constructs the
// derivation engine, session, worker and metrics registry exposed via Wire.
package app
