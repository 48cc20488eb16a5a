package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sitewalk/sitewalk/internal/model"
)

// DB stores finished crawl runs in a SQLite database.
//
// Design decision: one database file for all runs rather than a file per
// seed. This keeps listing cheap and backup/restore a single-file affair.
type DB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures DB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Record is one stored crawl run.
type Record struct {
	// ID is the database row ID.
	ID int64

	// Seed is the crawl's starting URL.
	Seed string

	// MaxDepth is the depth bound the crawl ran with.
	MaxDepth int

	// StartedAt is when the crawl began.
	StartedAt time.Time

	// Duration is the total crawl time.
	Duration time.Duration

	// URLCount and ErrorCount summarize the run for listings.
	URLCount   int
	ErrorCount int

	// URLs are the discovered URLs, populated by Get but not List.
	URLs []string

	// Errors are the per-page failures, populated by Get but not List.
	Errors []model.CrawlError
}

// Open opens or creates a history DB in the given directory.
func Open(dbDir string, opts Options) (*DB, error) {
	dbPath := filepath.Join(dbDir, "sitewalk.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to refuse creating new files and
	// mode=rwc to allow it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; readers can share.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &DB{
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
func (h *DB) Close() error {
	return h.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (h *DB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS crawls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed TEXT NOT NULL,
		max_depth INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER NOT NULL,
		url_count INTEGER NOT NULL,
		error_count INTEGER NOT NULL,
		urls TEXT NOT NULL,
		errors TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_crawls_seed ON crawls(seed);
	CREATE INDEX IF NOT EXISTS idx_crawls_started_at ON crawls(started_at);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// Save stores a finished crawl and returns its row ID. URL and error
// lists are stored as JSON; they are read back whole, never queried into.
func (h *DB) Save(ctx context.Context, report *model.CrawlReport) (int64, error) {
	urls, err := json.Marshal(report.URLs)
	if err != nil {
		return 0, fmt.Errorf("failed to encode urls: %w", err)
	}

	crawlErrors := report.Errors
	if crawlErrors == nil {
		crawlErrors = []model.CrawlError{}
	}
	errs, err := json.Marshal(crawlErrors)
	if err != nil {
		return 0, fmt.Errorf("failed to encode errors: %w", err)
	}

	res, err := h.db.ExecContext(ctx, `
		INSERT INTO crawls (seed, max_depth, started_at, duration_ms, url_count, error_count, urls, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.Seed,
		report.MaxDepth,
		report.StartedAt.UTC(),
		report.Duration.Milliseconds(),
		len(report.URLs),
		len(report.Errors),
		string(urls),
		string(errs),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save crawl: %w", err)
	}

	return res.LastInsertId()
}

// List returns the most recent crawl runs, newest first, without their
// URL and error lists.
func (h *DB) List(ctx context.Context, limit int) ([]Record, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, seed, max_depth, started_at, duration_ms, url_count, error_count
		FROM crawls ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list crawls: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		var durationMS int64
		if err := rows.Scan(&rec.ID, &rec.Seed, &rec.MaxDepth, &rec.StartedAt, &durationMS, &rec.URLCount, &rec.ErrorCount); err != nil {
			return nil, fmt.Errorf("failed to scan crawl: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Get returns one stored crawl with its full URL and error lists.
func (h *DB) Get(ctx context.Context, id int64) (*Record, error) {
	var rec Record
	var durationMS int64
	var urls, errs string

	err := h.db.QueryRowContext(ctx, `
		SELECT id, seed, max_depth, started_at, duration_ms, url_count, error_count, urls, errors
		FROM crawls WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Seed, &rec.MaxDepth, &rec.StartedAt, &durationMS, &rec.URLCount, &rec.ErrorCount, &urls, &errs)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("crawl %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crawl: %w", err)
	}

	rec.Duration = time.Duration(durationMS) * time.Millisecond
	if err := json.Unmarshal([]byte(urls), &rec.URLs); err != nil {
		return nil, fmt.Errorf("failed to decode urls: %w", err)
	}
	if err := json.Unmarshal([]byte(errs), &rec.Errors); err != nil {
		return nil, fmt.Errorf("failed to decode errors: %w", err)
	}

	return &rec, nil
}
