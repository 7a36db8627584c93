// Package repository defines the dataset store used by Dynasty.
//
// The store holds the raw family dataset, not the computed graph: graphs are
// rebuilt from the dataset on every load. It lets an operator import a
// curated dataset once (see cmd/dataprep) and serve it without keeping the
// source document around.
//
// # SQLite Implementation
//
// The sqlite subpackage implements Repository on modernc.org/sqlite with
// WAL mode for file databases. It handles:
//
// - Ordered storage of families, members and connection strings
// - Transactional replacement of the whole dataset
// - Import metadata (source and time of the last save)
//
// # Schema Migration
//
// The schema is created on startup with CREATE ... IF NOT EXISTS, so opening
// an existing store is safe.
//
// # Testing
//
// The sqlite repository is tested against in-memory databases (":memory:").
package repository
