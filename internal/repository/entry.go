package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/chucky-1/uangjajan/internal/model"
)

var (
	ErrNotFound    = errors.New("entry not found")
	ErrConstraint  = errors.New("entry violates storage constraint")
	ErrUnavailable = errors.New("storage unavailable")
)

//go:generate mockery --name=Entries

type Entries interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]model.Entry, error)
	Get(ctx context.Context, id int64) (*model.Entry, error)
	Create(ctx context.Context, input *model.EntryInput) (*model.Entry, error)
	DeleteByID(ctx context.Context, id int64) error
	Summary(ctx context.Context) (*model.Summary, error)
}

// dialect holds the statements that differ between SQL engines
type dialect struct {
	name    string
	schema  string
	list    string
	get     string
	insert  string
	delete  string
	summary string
	// classify maps a driver specific error to one of the sentinel errors, or returns nil
	classify func(err error) error
}

// SQL keeps entries in a single table behind database/sql
type SQL struct {
	db      *sql.DB
	dialect dialect
}

func NewSQLite(db *sql.DB) *SQL {
	return &SQL{
		db:      db,
		dialect: sqliteDialect,
	}
}

func NewPostgres(db *sql.DB) *SQL {
	return &SQL{
		db:      db,
		dialect: postgresDialect,
	}
}

// Init creates the entries table if it doesn't exist yet
func (s *SQL) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return s.wrap("init schema", err)
	}
	return nil
}

// List returns all entries, newest first
func (s *SQL) List(ctx context.Context) ([]model.Entry, error) {
	logQuery(s.dialect.list)
	rows, err := s.db.QueryContext(ctx, s.dialect.list)
	if err != nil {
		return nil, s.wrap("list entries", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logrus.Errorf("repository.Entries couldn't close rows in List method: %v", err)
		}
	}(rows)

	entries := make([]model.Entry, 0)
	for rows.Next() {
		var entry model.Entry
		if err = rows.Scan(&entry.ID, &entry.Name, &entry.Date, &entry.Amount, &entry.Kind); err != nil {
			return nil, s.wrap("scan entry", err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, s.wrap("iterate entries", err)
	}
	return entries, nil
}

func (s *SQL) Get(ctx context.Context, id int64) (*model.Entry, error) {
	logQuery(s.dialect.get, id)
	var entry model.Entry
	err := s.db.QueryRowContext(ctx, s.dialect.get, id).Scan(&entry.ID, &entry.Name, &entry.Date, &entry.Amount, &entry.Kind)
	if err != nil {
		return nil, s.wrap("get entry", err)
	}
	return &entry, nil
}

// Create inserts one row and returns it with the id storage assigned
func (s *SQL) Create(ctx context.Context, input *model.EntryInput) (*model.Entry, error) {
	logQuery(s.dialect.insert, input.Name, input.Date, input.Amount, input.Kind)
	var entry model.Entry
	err := s.db.QueryRowContext(ctx, s.dialect.insert, input.Name, input.Date, input.Amount, string(input.Kind)).
		Scan(&entry.ID, &entry.Name, &entry.Date, &entry.Amount, &entry.Kind)
	if err != nil {
		return nil, s.wrap("create entry", err)
	}
	return &entry, nil
}

// DeleteByID removes the row with the given id. Deleting a missing row is not an error.
func (s *SQL) DeleteByID(ctx context.Context, id int64) error {
	logQuery(s.dialect.delete, id)
	if _, err := s.db.ExecContext(ctx, s.dialect.delete, id); err != nil {
		return s.wrap("delete entry", err)
	}
	return nil
}

func (s *SQL) Summary(ctx context.Context) (*model.Summary, error) {
	logQuery(s.dialect.summary)
	rows, err := s.db.QueryContext(ctx, s.dialect.summary)
	if err != nil {
		return nil, s.wrap("summary", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logrus.Errorf("repository.Entries couldn't close rows in Summary method: %v", err)
		}
	}(rows)

	var summary model.Summary
	for rows.Next() {
		var (
			kind         model.Kind
			total, count int64
		)
		if err = rows.Scan(&kind, &total, &count); err != nil {
			return nil, s.wrap("scan summary", err)
		}
		switch kind {
		case model.Income:
			summary.Income = total
		case model.Expense:
			summary.Expense = total
		}
		summary.Count += count
	}
	if err = rows.Err(); err != nil {
		return nil, s.wrap("iterate summary", err)
	}
	summary.Balance = summary.Income - summary.Expense
	return &summary, nil
}

// wrap attaches the operation name and, when the cause is recognised, one of the sentinel errors
func (s *SQL) wrap(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("repository.Entries, %s error: %w", op, ErrNotFound)
	}
	if sentinel := classifyConn(err); sentinel != nil {
		return fmt.Errorf("repository.Entries, %s error: %w: %v", op, sentinel, err)
	}
	if sentinel := s.dialect.classify(err); sentinel != nil {
		return fmt.Errorf("repository.Entries, %s error: %w: %v", op, sentinel, err)
	}
	return fmt.Errorf("repository.Entries, %s error on %s: %w", op, s.dialect.name, err)
}

func logQuery(query string, args ...interface{}) {
	logrus.WithField("args", args).Debug(query)
}

var _ Entries = (*SQL)(nil)
