// Package postgres is the PostgreSQL implementation of domain.Store,
// using pgx through database/sql and goose for migrations.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/msomdec/taskvault/internal/dbx"
	"github.com/msomdec/taskvault/internal/domain"
	"github.com/msomdec/taskvault/internal/repository/postgres/migrations"
)

const uniqueViolation = "23505"

// DB wraps a PostgreSQL connection pool and implements domain.Store.
type DB struct {
	SqlDB *sql.DB
}

// New opens a pool for the given DSN and verifies connectivity.
func New(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{SqlDB: db}, nil
}

// NewFromDB wraps an existing pool.
func NewFromDB(db *sql.DB) *DB {
	return &DB{SqlDB: db}
}

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Migrate applies the embedded goose migrations.
func (db *DB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUp(ctx, db.SqlDB, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.SqlDB.PingContext(ctx)
}

func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// WithinTx runs fn with repositories bound to a single transaction.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context, sess domain.Session) error) error {
	return dbx.WithTx(ctx, db.SqlDB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, session{tx: tx})
	})
}

type session struct {
	tx dbx.DBTX
}

func (s session) Users() domain.UserRepository { return NewUserRepository(s.tx) }

func (s session) Tasks() domain.TaskRepository { return NewTaskRepository(s.tx) }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
