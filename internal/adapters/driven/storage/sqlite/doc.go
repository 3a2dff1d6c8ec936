// Package sqlite provides a SQLite implementation of driven.StateStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Tallies are stored one row per mirrored page, keyed by
// category and page, so a page holds a single revision per category.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// The database is stored at <dir>/state.db, next to the mirror tree.
package sqlite
