// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means you need a C compiler installed and
// cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere
// Go works.
//
// The single *DB here backs all three repositories (campgrounds, reviews,
// users). sql.DB is a connection pool shared across requests; the application
// adds no pool sizing of its own.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/gocamp.db" → file-based database (persistent)
//   - ":memory:"       → in-memory database (great for tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// SQLite allows one writer at a time; a pool of one connection serializes
	// writes instead of surfacing SQLITE_BUSY. It also keeps ":memory:"
	// databases coherent — every pool connection would otherwise open its own
	// empty database.
	conn.SetMaxOpenConns(1)

	// Ping forces an immediate connection so a bad path or permissions issue
	// surfaces here rather than on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in flight — needed
	// for a web server where multiple requests hit the DB.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite for backwards compatibility.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it idempotent,
// so it is safe to run on every startup.
//
// SCHEMA NOTES:
//   - campground_reviews is a membership table: the campground owns a set of
//     review references, and review rows carry no campground column.
//   - There is deliberately NO cascade from campgrounds to reviews. Deleting
//     a campground removes its membership rows and leaves the review records
//     orphaned — matching the two-step, non-transactional delete flow the
//     handlers use.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS campgrounds (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			location    TEXT NOT NULL,
			image       TEXT NOT NULL DEFAULT '',
			price       REAL NOT NULL DEFAULT 0 CHECK (price >= 0),
			description TEXT NOT NULL DEFAULT '',
			author_id   TEXT NOT NULL REFERENCES users(id),
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_campgrounds_created_at ON campgrounds(created_at);
		CREATE INDEX IF NOT EXISTS idx_campgrounds_author_id ON campgrounds(author_id);
	`)
	if err != nil {
		return fmt.Errorf("creating campgrounds table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS reviews (
			id         TEXT PRIMARY KEY,
			body       TEXT NOT NULL,
			rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			author_id  TEXT NOT NULL REFERENCES users(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating reviews table: %w", err)
	}

	// No foreign keys here: membership rows must outlive neither side, but a
	// campground delete removes them explicitly rather than via cascade, and
	// review rows are allowed to orphan.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS campground_reviews (
			campground_id TEXT NOT NULL,
			review_id     TEXT NOT NULL,
			PRIMARY KEY (campground_id, review_id)
		);
		CREATE INDEX IF NOT EXISTS idx_campground_reviews_review ON campground_reviews(review_id);
	`)
	if err != nil {
		return fmt.Errorf("creating campground_reviews table: %w", err)
	}

	return nil
}
