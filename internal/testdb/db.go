//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"

	"github.com/cihanisildar/dailingo-api/internal/domain"
	"github.com/cihanisildar/dailingo-api/internal/platform/postgres"
	"github.com/cihanisildar/dailingo-api/migrations"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

// Connect opens a connection to the integration test database and ensures
// the embedded migrations have been applied. The connection is closed when
// the test finishes. Tests calling Connect skip when no database URL is
// configured.
func Connect(t *testing.T) *sql.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		t.Skip("set DATABASE_URL to run database integration tests")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("failed to open database connection: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Goose configuration is process-global, so the schema is migrated once
	// per test binary.
	migrateOnce.Do(func() {
		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			migrateErr = fmt.Errorf("failed to set goose dialect: %w", err)
			return
		}
		if err := goose.Up(db, "."); err != nil {
			migrateErr = fmt.Errorf("failed to apply migrations: %w", err)
		}
	})
	if migrateErr != nil {
		t.Fatalf("failed to prepare test database schema: %v", migrateErr)
	}

	return db
}

// CreateUser inserts a user with a unique email for the current test and
// removes it again during cleanup. Every other table references users with
// ON DELETE CASCADE, so deleting the user also removes the test's cards,
// review logs, schedules, and streaks.
func CreateUser(t *testing.T, db *sql.DB) *domain.User {
	t.Helper()

	email := fmt.Sprintf("integration-%s@example.com", uuid.NewString())
	user, err := domain.NewUser(email, "integration-test-password")
	if err != nil {
		t.Fatalf("failed to build test user: %v", err)
	}
	// The stores never verify this value, so a real bcrypt hash is not needed.
	user.HashedPassword = "test-hashed-password"

	userStore := postgres.NewPostgresUserStore(db, nil)
	if err := userStore.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), `DELETE FROM users WHERE id = $1`, user.ID)
	})

	return user
}
