// Package sqlite stores the recommendation history in a SQLite database,
// by default at ~/.kado/data/history.db.
//
// The driver is modernc.org/sqlite (pure Go, no CGO), opened in WAL mode.
// Schema changes ship as embedded, versioned .up.sql/.down.sql pairs under
// migrations/ and apply on open.
package sqlite
