// Package utils provides small helpers shared across the lcmap codebase.
//
// # Identifier Utilities (identifier.go)
//
// The identifier utilities provide consistent double-quote handling for CQL
// identifiers. Cassandra folds unquoted identifiers to lower case, so every
// generated statement quotes keyspace and table names to preserve them
// exactly as configured:
//
//	// Simple identifier
//	name := utils.QuoteIdentifier("tiles")
//	// Result: "tiles" (quoted)
//
//	// Keyspace-qualified name
//	qualified := utils.QualifiedName("lcmap", "tile_specs")
//	// Result: "lcmap"."tile_specs"
//
// Qualified names let the tool run against a session with no bound keyspace,
// which is required because the schema script that creates the keyspace is
// itself executed through the same session.
//
// The helpers are idempotent: quoting an already-quoted identifier does not
// double-quote it.
package utils
