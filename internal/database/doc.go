// Package database writes normalized name lists into a SQLite file.
//
// Every write is a table replacement: the target table is dropped,
// recreated as (name TEXT) with no key or index, and filled with multi-row
// INSERT statements of at most BatchSize rows each, which keeps every
// statement under SQLite's host parameter limit. Replacing a table runs in
// one transaction. ReplaceTables commits table by table unless
// Options.Atomic asks for a single transaction over all of them.
//
// The driver is modernc.org/sqlite, a CGO-free SQLite implementation.
package database
