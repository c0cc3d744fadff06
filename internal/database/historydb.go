package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/topicscan/topicscan/internal/model"
)

// HistoryDB provides SQLite-based storage for research run history.
// It manages connection pooling and provides methods for recording and
// querying past runs.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "topicscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids lock
	// contention errors.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Research runs store complete results as JSON plus queryable metadata
	CREATE TABLE IF NOT EXISTS research_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		topic TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		requested INTEGER NOT NULL,
		processed INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		elapsed_ns INTEGER NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_topic ON research_runs(topic);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON research_runs(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunMetadata contains summary information about a stored research run.
// This is used for displaying history without loading the full result.
type RunMetadata struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Topic is the research topic.
	Topic string

	// Timestamp is when the run started.
	Timestamp time.Time

	// Requested is how many sources were asked for.
	Requested int

	// Processed is how many sources were successfully summarized.
	Processed int

	// Failed is how many sources could not be processed.
	Failed int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// SaveRun records a completed research run.
// Returns the database ID of the new row.
func (hdb *HistoryDB) SaveRun(ctx context.Context, result *model.ResearchResult) (int64, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize result: %w", err)
	}

	query := `
	INSERT INTO research_runs (topic, timestamp, requested, processed, failed, elapsed_ns, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := hdb.db.ExecContext(ctx, query,
		result.Topic,
		result.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		result.Requested,
		result.Processed(),
		result.FailureCount(),
		int64(result.Elapsed),
		string(resultJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save research run: %w", err)
	}

	return res.LastInsertId()
}

// ListRuns returns metadata for stored runs, most recent first. When topic is
// non-empty only runs for that topic are returned. limit <= 0 means no limit.
func (hdb *HistoryDB) ListRuns(ctx context.Context, topic string, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, topic, timestamp, requested, processed, failed, elapsed_ns
	FROM research_runs
	WHERE 1=1
	`
	args := make([]any, 0)

	if topic != "" {
		query += " AND topic = ?"
		args = append(args, topic)
	}

	query += " ORDER BY timestamp DESC, id DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list research runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var timestamp string
		var elapsed int64

		if err := rows.Scan(&meta.ID, &meta.Topic, &timestamp, &meta.Requested, &meta.Processed, &meta.Failed, &elapsed); err != nil {
			return nil, fmt.Errorf("failed to scan run metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)
		meta.Elapsed = time.Duration(elapsed)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetRun retrieves a stored research result by its database ID.
// Returns nil without error when no run has that ID.
func (hdb *HistoryDB) GetRun(ctx context.Context, id int64) (*model.ResearchResult, error) {
	query := `
	SELECT result_json FROM research_runs
	WHERE id = ?
	`

	var resultJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get research run: %w", err)
	}

	var result model.ResearchResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse stored result: %w", err)
	}

	return &result, nil
}

// LatestRun retrieves the most recent stored result for a topic.
// Returns nil without error when the topic has never been researched.
func (hdb *HistoryDB) LatestRun(ctx context.Context, topic string) (*model.ResearchResult, error) {
	query := `
	SELECT result_json FROM research_runs
	WHERE topic = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var resultJSON string
	err := hdb.db.QueryRowContext(ctx, query, topic).Scan(&resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	var result model.ResearchResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse stored result: %w", err)
	}

	return &result, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
