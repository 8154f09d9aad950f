package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	_ "modernc.org/sqlite"             // pure Go SQLite driver

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/query"
	"github.com/heartmarshall/temple-api/internal/config"
	"github.com/heartmarshall/temple-api/internal/domain"
	"github.com/heartmarshall/temple-api/internal/observability"
)

// DB is a bounded connection pool with an acquire timeout.
type DB struct {
	db             *sql.DB
	dialect        query.Dialect
	acquireTimeout time.Duration
}

// Open creates a connection pool configured from DatabaseConfig. It applies
// pool settings (and SQLite pragmas), pings the database for fail-fast
// validation, and returns the ready pool.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	driver, dsn, dialect, err := driverDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxConns)
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	d := &DB{db: db, dialect: dialect, acquireTimeout: cfg.AcquireTimeout}

	if err := d.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return d, nil
}

func driverDSN(cfg config.DatabaseConfig) (driver, dsn string, dialect query.Dialect, err error) {
	if !cfg.IsSQLite() {
		return "pgx", cfg.DSN, query.Postgres, nil
	}
	dsn, err = SQLiteDSN(cfg)
	return "sqlite", dsn, query.SQLite, err
}

// SQLiteDSN turns a database URL ("sqlite:data.db", "sqlite://data.db" or a
// plain path) into a modernc DSN carrying the configured pragmas. Writing
// transactions take the write lock up front.
func SQLiteDSN(cfg config.DatabaseConfig) (string, error) {
	path := cfg.DSN
	for _, prefix := range []string{"sqlite://", "sqlite:"} {
		if strings.HasPrefix(path, prefix) {
			path = strings.TrimPrefix(path, prefix)
			break
		}
	}

	params := url.Values{}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		existing, err := url.ParseQuery(path[i+1:])
		if err != nil {
			return "", fmt.Errorf("parse database DSN: %w", err)
		}
		params = existing
		path = path[:i]
	}
	if path == "" {
		return "", fmt.Errorf("parse database DSN: empty path")
	}

	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()))
	if cfg.JournalMode != "" {
		params.Add("_pragma", fmt.Sprintf("journal_mode(%s)", cfg.JournalMode))
	}
	if cfg.Synchronous != "" {
		params.Add("_pragma", fmt.Sprintf("synchronous(%s)", cfg.Synchronous))
	}
	if params.Get("_txlock") == "" {
		params.Set("_txlock", "immediate")
	}

	return path + "?" + params.Encode(), nil
}

// Dialect returns the SQL dialect of the pool.
func (d *DB) Dialect() query.Dialect { return d.dialect }

// SQL exposes the underlying pool for tooling (migrations, stats).
func (d *DB) SQL() *sql.DB { return d.db }

// Ping checks connectivity.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close closes the pool.
func (d *DB) Close() error {
	return d.db.Close()
}

// Conn acquires a dedicated connection, waiting at most the acquire
// timeout. Exhaustion is reported as domain.ErrUnavailable.
func (d *DB) Conn(ctx context.Context) (*sql.Conn, error) {
	acqCtx, cancel := context.WithTimeout(ctx, d.acquireTimeout)
	defer cancel()

	conn, err := d.db.Conn(acqCtx)
	if err == nil {
		return conn, nil
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		observability.PoolAcquireTimeouts.Inc()
		return nil, fmt.Errorf("acquire connection after %s: %w", d.acquireTimeout, domain.ErrUnavailable)
	}
	return nil, fmt.Errorf("acquire connection: %w", err)
}

// Run executes fn on the transaction carried by ctx, or else on a freshly
// acquired connection that is released when fn returns.
func (d *DB) Run(ctx context.Context, fn func(q Querier) error) error {
	if tx, ok := txFromCtx(ctx); ok {
		return fn(tx)
	}

	conn, err := d.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn)
}

// Checkpoint flushes the SQLite write-ahead log into the main database
// file and truncates it. It is a no-op for PostgreSQL.
func (d *DB) Checkpoint(ctx context.Context) error {
	if d.dialect.Name != query.SQLite.Name {
		return nil
	}
	if _, err := d.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}
	return nil
}
