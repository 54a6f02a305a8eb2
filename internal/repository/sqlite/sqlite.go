package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/taskvault/internal/dbx"
	"github.com/msomdec/taskvault/internal/domain"
	"github.com/msomdec/taskvault/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection pool and implements domain.Store.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection serializes writers; SQLite allows only one anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
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
