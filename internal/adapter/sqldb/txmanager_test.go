package sqldb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTx(t *testing.T) (*DB, *TxManager) {
	t.Helper()

	db := openSQLite(t, 2, time.Second)
	_, err := db.SQL().ExecContext(context.Background(), `CREATE TABLE items (name TEXT)`)
	require.NoError(t, err)
	return db, NewTxManager(db)
}

func countItems(t *testing.T, db *DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.SQL().QueryRowContext(context.Background(), `SELECT COUNT(*) FROM items`).Scan(&n))
	return n
}

func insertItem(ctx context.Context, db *DB) error {
	return db.Run(ctx, func(q Querier) error {
		_, err := q.ExecContext(ctx, `INSERT INTO items (name) VALUES ('x')`)
		return err
	})
}

func TestRunInTx_Commit(t *testing.T) {
	t.Parallel()

	db, tm := setupTx(t)

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertItem(ctx, db)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countItems(t, db))
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	t.Parallel()

	db, tm := setupTx(t)
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		require.NoError(t, insertItem(ctx, db))
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 0, countItems(t, db))
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	t.Parallel()

	db, tm := setupTx(t)

	assert.Panics(t, func() {
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			require.NoError(t, insertItem(ctx, db))
			panic("boom")
		})
	})
	assert.Equal(t, 0, countItems(t, db))
}

func TestRunInTx_UsesTxConnection(t *testing.T) {
	t.Parallel()

	// With a single pooled connection, Run inside the transaction must reuse
	// the transaction instead of acquiring again.
	db := openSQLite(t, 1, 100*time.Millisecond)
	_, err := db.SQL().ExecContext(context.Background(), `CREATE TABLE items (name TEXT)`)
	require.NoError(t, err)
	tm := NewTxManager(db)

	err = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertItem(ctx, db)
	})
	require.NoError(t, err)
}
