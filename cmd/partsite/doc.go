// Package main hosts the partsite CLI.
//
// The Cobra command tree wires configuration, logging and the catalog store
// together for each subcommand: update syncs the parts repository and imports
// its descriptors, import reads a local directory, serve runs the web
// catalog, and parts/show inspect what the store holds. Configuration is
// resolved once per invocation and shared through commandContext.
package main
