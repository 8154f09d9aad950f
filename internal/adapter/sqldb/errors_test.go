package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/temple-api/internal/config"
	"github.com/heartmarshall/temple-api/internal/domain"
)

func openSQLite(t *testing.T, maxConns int, acquire time.Duration) *DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		DSN:            filepath.Join(t.TempDir(), "t.db"),
		MaxConns:       maxConns,
		AcquireTimeout: acquire,
		JournalMode:    "WAL",
		Synchronous:    "NORMAL",
		BusyTimeout:    time.Second,
	}
	db, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil, "activity", 1))
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	got := MapError(fmt.Errorf("scan row: %w", sql.ErrNoRows), "activity", 42)

	require.ErrorIs(t, got, domain.ErrNotFound)
	assert.Equal(t, "activity 42: not found", got.Error())
}

func TestMapError_ContextPassesThrough(t *testing.T) {
	t.Parallel()

	got := MapError(context.DeadlineExceeded, "activity", 1)
	assert.ErrorIs(t, got, context.DeadlineExceeded)
	assert.NotErrorIs(t, got, domain.ErrNotFound)
}

func TestMapError_PgCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want error
	}{
		{code: "23505", want: domain.ErrAlreadyExists},
		{code: "23503", want: domain.ErrNotFound},
		{code: "23514", want: domain.ErrValidation},
		{code: "23502", want: domain.ErrValidation},
		{code: "40001", want: domain.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			got := MapError(&pgconn.PgError{Code: tt.code}, "activity", 1)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapError_UnknownPassesThrough(t *testing.T) {
	t.Parallel()

	orig := errors.New("disk on fire")
	got := MapError(orig, "mydata", "abc")

	assert.ErrorIs(t, got, orig)
	assert.Equal(t, "mydata abc: disk on fire", got.Error())
}

func TestMapError_SQLiteUniqueViolation(t *testing.T) {
	t.Parallel()

	db := openSQLite(t, 1, time.Second)
	ctx := context.Background()

	_, err := db.SQL().ExecContext(ctx, `CREATE TABLE u (k TEXT UNIQUE)`)
	require.NoError(t, err)
	_, err = db.SQL().ExecContext(ctx, `INSERT INTO u (k) VALUES ('a')`)
	require.NoError(t, err)
	_, err = db.SQL().ExecContext(ctx, `INSERT INTO u (k) VALUES ('a')`)
	require.Error(t, err)

	assert.ErrorIs(t, MapError(err, "u", "a"), domain.ErrAlreadyExists)
}
