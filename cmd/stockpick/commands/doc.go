// Package commands defines the stockpick CLI and wires dependencies for subcommands.
//
// Commands
//
//   - catalog   Print (and optionally sort or export) the product table
//   - combos    Enumerate combinations once and print them
//   - shell     Interactive session: size, limit, run, pick, sort, export
//   - version   Print the build version
//
// # Implementation
//
// The root command loads configuration from the environment (and an optional
// .env file), applies flag overrides, loads the catalog and builds the
// inventory store and services before any subcommand runs. Logs go to
// stderr; tables go to stdout.
package commands
