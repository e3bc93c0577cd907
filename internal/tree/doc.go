// Package tree provides a parsed JSON value type and tolerant accessors over it.
//
// Event payloads are loosely formatted: optional fields may be missing, null,
// or of an unexpected shape at any depth. Everything here degrades to "not
// present" instead of returning an error:
//   - Object.Get walks a dotted path and yields Null{} on any miss
//   - typed accessors return database/sql null types ready to bind
//   - NullTime parses ISO-8601 strings and yields an invalid NullTime on failure
//
// This package imports nothing internal.
package tree
