// Package cli implements the command-line interface for toto-draws.
//
// The cli package provides the Cobra-based CLI with subcommands to update
// the local draw store from the remote archive, list and filter stored
// draws, report collection analytics, and maintain the store. It coordinates
// the scraper, reconcile, store, and stats packages.
package cli
