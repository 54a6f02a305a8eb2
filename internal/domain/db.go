package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation (SQLite, Postgres) owns its own migration
// files and strategy, ensuring the entire backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Session exposes repositories bound to a single transaction.
type Session interface {
	Users() UserRepository
	Tasks() TaskRepository
}

// Store is a Database that can scope work to a transactional Session.
type Store interface {
	Database
	// WithinTx runs fn inside one transaction. The transaction is committed
	// when fn returns nil and rolled back on error or panic.
	WithinTx(ctx context.Context, fn func(ctx context.Context, sess Session) error) error
}
