// Package catalog persists a summary of every ingested transient in SQLite.
//
// Each Record call replaces the transient's row and its epochs inside one
// transaction. Writers take an exclusive file lock next to the database so
// concurrent CLI invocations fail fast with ErrLocked instead of
// interleaving.
package catalog
