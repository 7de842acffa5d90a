// Package store provides the SQLite container behind the "sqlite" export
// format.
//
// Each export writes its own database file with two tables:
//   - runs: one row per export (run ID, stem, seed, record count, time,
//     dataset fingerprint)
//   - activities: the records, keyed by (run_id, id)
//
// # Ordering
//
// All reads use ORDER BY id ASC so a database reads back in generation order,
// matching the CSV, XLSX and JSON exports.
//
// # Database Configuration
//
//   - journal_mode=DELETE: the export is a single self-contained file
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: activities must reference a run
//
// # Migrations
//
// schema.sql is version 0. Open applies each newer entry of the migrations
// table in its own transaction and records progress in PRAGMA user_version,
// so files written by older builds are upgraded in place.
//
// The seed is stored as TEXT because the driver rejects uint64 values with
// the high bit set.
package store
