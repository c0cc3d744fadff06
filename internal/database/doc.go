// Package database provides SQLite-based storage for research run history.
//
// Every completed research run is recorded with its full result JSON plus
// queryable metadata (topic, timestamp, source counts), so past research can
// be listed and re-displayed without re-spending search quota or model
// tokens.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
