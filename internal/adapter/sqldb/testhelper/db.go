package testhelper

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb"
	"github.com/heartmarshall/temple-api/internal/config"
)

// SQLiteConfig returns the database settings used by tests for a file at path.
func SQLiteConfig(path string) config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		DSN:             path,
		MaxConns:        4,
		AcquireTimeout:  2 * time.Second,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Hour,
		JournalMode:     "WAL",
		Synchronous:     "NORMAL",
		BusyTimeout:     5 * time.Second,
	}
}

// SetupTestDB creates a fresh SQLite database in a temp dir, applies the
// migrations, and returns it. The pool is closed via t.Cleanup.
func SetupTestDB(t *testing.T) *sqldb.DB {
	t.Helper()
	return SetupTestDBWith(t, SQLiteConfig(filepath.Join(t.TempDir(), "test.db")))
}

// SetupTestDBWith is SetupTestDB with explicit settings.
func SetupTestDBWith(t *testing.T, cfg config.DatabaseConfig) *sqldb.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sqldb.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("testhelper: open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("testhelper: migrate: %v", err)
	}
	return db
}

var (
	pgOnce sync.Once
	pgDSN  string
	pgErr  error
)

// SetupPostgresDB starts a shared PostgreSQL container (once for the entire
// test run), applies the migrations and returns a new pool connected to
// it. Tests are skipped under -short or when no container runtime is
// available. The container lives until the process exits, so callers must
// use unique data.
func SetupPostgresDB(t *testing.T) *sqldb.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("testhelper: postgres tests skipped in -short mode")
	}

	pgOnce.Do(func() {
		pgDSN, pgErr = startPostgres()
	})
	if pgErr != nil {
		t.Skipf("testhelper: postgres unavailable: %v", pgErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.DatabaseConfig{
		Driver:          config.DriverPostgres,
		DSN:             pgDSN,
		MaxConns:        4,
		AcquireTimeout:  2 * time.Second,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Hour,
	}
	db, err := sqldb.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("testhelper: open postgres: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func startPostgres() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	db, err := sqldb.Open(ctx, config.DatabaseConfig{
		Driver:         config.DriverPostgres,
		DSN:            dsn,
		MaxConns:       2,
		AcquireTimeout: 5 * time.Second,
	})
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return "", err
	}

	return dsn, nil
}
