package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var postgresDialect = dialect{
	name: "postgres",
	schema: `CREATE TABLE IF NOT EXISTS entries (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL CHECK(name <> ''),
		date TEXT NOT NULL CHECK(date <> ''),
		amount BIGINT NOT NULL,
		kind TEXT NOT NULL CHECK(kind IN ('income', 'expense'))
	)`,
	list:     `SELECT id, name, date, amount, kind FROM entries ORDER BY id DESC`,
	get:      `SELECT id, name, date, amount, kind FROM entries WHERE id = $1`,
	insert:   `INSERT INTO entries (name, date, amount, kind) VALUES ($1, $2, $3, $4) RETURNING id, name, date, amount, kind`,
	delete:   `DELETE FROM entries WHERE id = $1`,
	summary:  `SELECT kind, COALESCE(SUM(amount), 0)::BIGINT, COUNT(*) FROM entries GROUP BY kind`,
	classify: classifyPostgres,
}

// OpenPostgres connects to the database behind endpoint, a lib/pq connection string or URL
func OpenPostgres(ctx context.Context, endpoint string) (*sql.DB, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("repository, postgres endpoint is required")
	}
	db, err := sql.Open("postgres", endpoint)
	if err != nil {
		return nil, fmt.Errorf("repository, open postgres db error: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repository, ping postgres db error: %w: %v", ErrUnavailable, err)
	}
	return db, nil
}

func classifyPostgres(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}
	switch pqErr.Code.Class() {
	case "23": // integrity_constraint_violation
		return ErrConstraint
	case "08", "57": // connection_exception, operator_intervention
		return ErrUnavailable
	}
	return nil
}
