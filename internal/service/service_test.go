package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/taskvault/internal/config"
	"github.com/msomdec/taskvault/internal/domain"
	"github.com/msomdec/taskvault/internal/repository/sqlite"
	"github.com/msomdec/taskvault/internal/service"
)

const testSecretKey = "test-secret-key-for-unit-tests-0123456789"

func newTestStore(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                testSecretKey,
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 60,
		PasswordHasher:           "argon2id",
		Argon2MemoryKiB:          64,
		Argon2Iterations:         1,
		Argon2Parallelism:        1,
		BcryptCost:               4,
	}
}

// Cheap parameters keep the tests fast.
func newTestHasher() *service.Argon2Hasher {
	return service.NewArgon2Hasher(64, 1, 1)
}

func newTestTokens(t *testing.T) *service.TokenService {
	t.Helper()
	tokens, err := service.NewTokenService(testConfig())
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return tokens
}

// inTx runs fn inside a committed transaction and fails the test on error.
func inTx(t *testing.T, store domain.Store, fn func(ctx context.Context, sess domain.Session) error) {
	t.Helper()
	if err := store.WithinTx(context.Background(), fn); err != nil {
		t.Fatalf("WithinTx: %v", err)
	}
}

func registerUser(t *testing.T, store domain.Store, email, password string) *domain.User {
	t.Helper()
	accounts := service.NewAccountService(newTestHasher())
	var user *domain.User
	inTx(t, store, func(ctx context.Context, sess domain.Session) error {
		var err error
		user, err = accounts.Register(ctx, sess, email, password)
		return err
	})
	return user
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func deactivate(t *testing.T, db *sqlite.DB, id int64) {
	t.Helper()
	if _, err := db.SqlDB.Exec("UPDATE users SET is_active = 0 WHERE id = ?", id); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
}
