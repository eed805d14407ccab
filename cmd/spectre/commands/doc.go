// Package commands defines the spectre CLI and wires dependencies for subcommands.
//
// Commands
//
//   - password   Derive the password for a site
//   - login      Derive the login name for a site
//   - answer     Derive a security answer for a site
//   - identicon  Print the identicon of a user
//   - serve      Run the worker over JSON lines on stdin/stdout
//
// # Implementation
//
// The root command loads the configuration and builds the app (engine,
// session, worker and metrics registry) before any subcommand runs. Every
// derivation goes through a worker client, exactly as a long-running caller
// of serve would.
package commands
