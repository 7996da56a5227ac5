// Package cmd provides CLI commands for the lcmap tool.
//
// This package implements the command-line interface for lcmap, providing
// commands for loading the Cassandra schema and for turning ESPA Landsat
// scene archives into tile specs and tile rows. Commands share one set of
// global flags and one runtime, which owns the database session for the
// duration of a run.
//
// # Available Commands
//
// The cmd package currently provides:
//   - exec: run the configured CQL schema script against the cluster
//   - spec: adopt tile specs from ESPA scene archives
//   - tile: ingest tiles from ESPA scene archives
//   - info: print the merged configuration
//
// # Command Structure
//
// Each command is implemented as a function returning a *Handler. Handlers
// are collected through an fx value group and dispatched by name from the
// first positional argument; the operands that follow are passed through to
// the handler. An unrecognized command name is logged and the run still
// exits zero.
//
// # Global Options
//
// Connection and naming flags default from the LCMAP_* environment
// variables, so a configured environment needs no flags at all:
//
//	lcmap exec                                          # Load the schema
//	lcmap --hosts localhost:9042 spec scene.tar.gz      # Adopt tile specs
//	lcmap --hosts localhost:9042 tile scene.tar.gz      # Ingest tiles
//	lcmap info                                          # Show effective config
//
// Archives given to spec and tile are processed strictly in order, each one
// extracted to its own staging directory and cleaned up before the next
// begins.
package cmd
