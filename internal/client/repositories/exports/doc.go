// Package exports provides the client-side persistence layer for the export
// history.
//
// # Overview
//
// Every successful export (CSV, JSON or YAML, to a local directory or an S3
// bucket) is recorded with the view it came from, the format, where the bytes
// went, and how many rows were written. The console lists the most recent
// records with the "exports" command.
//
// # Retention
//
// Prune keeps only the newest N records. The export service calls it in the
// same transaction that inserts a new record.
//
// Key Types
//
//   - type Repository: interface used by the export service
//   - type SQLiteRepository: SQLite implementation over dbx.DBTX
//
// Typical Usage
//
//	repo := exports.NewSQLiteRepository(db)
//	_ = repo.Add(ctx, &rec)
//	recent, _ := repo.List(ctx, 10)
package exports
