package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var sqliteDialect = dialect{
	name: "sqlite",
	schema: `CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL CHECK(name <> ''),
		date TEXT NOT NULL CHECK(date <> ''),
		amount INTEGER NOT NULL,
		kind TEXT NOT NULL CHECK(kind IN ('income', 'expense'))
	)`,
	list:     `SELECT id, name, date, amount, kind FROM entries ORDER BY id DESC`,
	get:      `SELECT id, name, date, amount, kind FROM entries WHERE id = ?`,
	insert:   `INSERT INTO entries (name, date, amount, kind) VALUES (?, ?, ?, ?) RETURNING id, name, date, amount, kind`,
	delete:   `DELETE FROM entries WHERE id = ?`,
	summary:  `SELECT kind, COALESCE(SUM(amount), 0), COUNT(*) FROM entries GROUP BY kind`,
	classify: classifySQLite,
}

// OpenSQLite opens the file store at path, creating the file if it doesn't exist
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("repository, sqlite path is required")
	}
	dsn := "file:" + filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("repository, open sqlite db error: %w", err)
	}
	// one connection: the engine serializes writes and every request shares it
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repository, ping sqlite db error: %w: %v", ErrUnavailable, err)
	}
	return db, nil
}

func classifySQLite(err error) error {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}
	switch sqliteErr.Code() & 0xff {
	case sqlite3lib.SQLITE_CONSTRAINT:
		return ErrConstraint
	case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED, sqlite3lib.SQLITE_CANTOPEN, sqlite3lib.SQLITE_IOERR:
		return ErrUnavailable
	}
	return nil
}
