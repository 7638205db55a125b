// Package history persists identified tracks to a local SQLite database.
//
// The store is an append-only log surfaced by the CLI's history command; the
// identification pipeline never reads it back, so past results do not
// influence future lookups. Schema changes bump a version guard rather than
// migrating in place.
package history
