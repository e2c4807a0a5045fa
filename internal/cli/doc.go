// Package cli implements the command-line interface for groups-catalog.
//
// The cli package provides the Cobra-based CLI with a one-shot "refresh"
// command that runs the pipeline and prints a text or JSON summary, and a
// "serve" command that exposes the catalog and refresh endpoint over HTTP.
// It wires together the config, storage, refresh, and server packages.
package cli
