// Package app wires application dependencies for the CLI.
//
// It loads Config from the environment, builds the logger, catalog source,
// inventory store and services, and exposes them through App for commands
// to use.
package app
