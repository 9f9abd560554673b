// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a
// C compiler installed and cross-compilation becomes painful.
// modernc.org/sqlite is a pure Go translation of the SQLite C code — no C
// compiler needed, works everywhere Go works.
//
// THE CONSTRAINTS ARE THE CONTRACT:
// The schema below carries the invariants the rest of the system relies on:
//   - users.username and users.email are UNIQUE
//   - reviews has UNIQUE(user_id, item_id) — one review per user per item
//   - reviews.rating has CHECK(rating BETWEEN 1 AND 5)
//   - comments.review_id is ON DELETE CASCADE — deleting a review removes
//     its comments in the same logical operation
//
// The service layer pre-checks most of these for friendlier error messages,
// but under concurrent requests two pre-checks can both pass. There is no
// wrapping transaction; the constraint rejecting the losing INSERT is the
// authoritative backstop, and that rejection is re-classified as a Conflict
// (see isUniqueViolation), never surfaced as an internal error.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// Blank import: the driver registers itself with database/sql under the
	// name "sqlite" via its init function.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
//
// sql.DB is already a bounded pool: concurrent callers block waiting for a
// connection when the pool is saturated rather than failing immediately.
// The pool is constructed here, handed to whoever needs it, and closed
// exactly once by its owner — there is no lazy global.
type DB struct {
	conn *sql.DB
}

// New creates a new SQLite database connection pool and runs migrations.
//
// dbPath is a filesystem path such as "data/reviewhub.db". Tests point it
// at a file in a per-test temp directory.
func New(dbPath string) (*DB, error) {
	// PRAGMAs are per-connection state, and sql.DB is a pool — executing
	// them once after Open would configure only the connection that
	// happened to run them. The _pragma DSN options make the driver apply
	// them to EVERY connection it opens:
	//   - journal_mode(WAL): concurrent reads while a write is happening
	//   - foreign_keys(1):   OFF by default in SQLite; the comment cascade
	//     depends on the constraint being enforced
	//   - busy_timeout(5000): writers wait for the lock instead of failing
	//     immediately with SQLITE_BUSY
	dsn := "file:" + dbPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)"

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Ping verifies the connection actually works. Without this, a bad path
	// or permissions issue would only surface on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Safe to call once from the
// owning component during shutdown; database/sql makes repeat calls no-ops.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Users returns the user repository backed by this pool.
//
// Each accessor returns a thin view over the SAME sql.DB — there is one
// pool, owned by DB, and the per-entity types exist only to give each
// repository interface its own method set.
func (db *DB) Users() *UserDB { return &UserDB{conn: db.conn} }

// Items returns the item repository backed by this pool.
func (db *DB) Items() *ItemDB { return &ItemDB{conn: db.conn} }

// Reviews returns the review repository backed by this pool.
func (db *DB) Reviews() *ReviewDB { return &ReviewDB{conn: db.conn} }

// Comments returns the comment repository backed by this pool.
func (db *DB) Comments() *CommentDB { return &CommentDB{conn: db.conn} }

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this
// idempotent — safe on every startup against an existing database.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			username   TEXT NOT NULL UNIQUE,
			email      TEXT NOT NULL UNIQUE,
			password   TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS items (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category    TEXT NOT NULL DEFAULT '',
			image_url   TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);
	`)
	if err != nil {
		return fmt.Errorf("creating items table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS reviews (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL REFERENCES users(id),
			item_id    INTEGER NOT NULL REFERENCES items(id),
			content    TEXT NOT NULL,
			rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, item_id)
		);
		CREATE INDEX IF NOT EXISTS idx_reviews_item_id ON reviews(item_id);
		CREATE INDEX IF NOT EXISTS idx_reviews_user_id ON reviews(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating reviews table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS comments (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL REFERENCES users(id),
			review_id  INTEGER NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
			content    TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_comments_review_id ON comments(review_id);
		CREATE INDEX IF NOT EXISTS idx_comments_user_id ON comments(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating comments table: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint rejection.
// The driver exposes constraint failures as ordinary errors carrying the
// SQLite message text, so we match on that.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
