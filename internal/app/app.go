package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/activity"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/monthlydonate"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/mydata"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/participation"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/query"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/registration"
	"github.com/heartmarshall/temple-api/internal/config"
	"github.com/heartmarshall/temple-api/internal/transport/rest"
)

// Run loads configuration, opens the database, serves the API until ctx is
// canceled and then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("db_driver", cfg.Database.Driver),
	)

	db, err := OpenDB(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer CloseDB(db, logger)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           NewHandler(cfg, db, logger),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// OpenDB opens the pool and, when configured, applies the bundled schema.
func OpenDB(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sqldb.DB, error) {
	db, err := sqldb.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		n, err := db.Migrate(ctx)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("migrations applied", slog.Int("count", n))
	}

	logger.Info("database connected",
		slog.String("dialect", db.Dialect().Name),
		slog.Int("max_conns", cfg.MaxConns),
		slog.Duration("acquire_timeout", cfg.AcquireTimeout),
	)
	return db, nil
}

// CloseDB checkpoints the SQLite write-ahead log and closes the pool.
func CloseDB(db *sqldb.DB, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.Checkpoint(ctx); err != nil {
		logger.Warn("wal checkpoint failed", slog.String("error", err.Error()))
	}
	if err := db.Close(); err != nil {
		logger.Warn("close database", slog.String("error", err.Error()))
	}
}

// NewHandler wires the repositories into the HTTP router.
func NewHandler(cfg *config.Config, db *sqldb.DB, logger *slog.Logger) http.Handler {
	b := query.NewBuilder(db.Dialect(), query.Limits{
		Default: cfg.Query.DefaultLimit,
		Max:     cfg.Query.MaxLimit,
	})

	return rest.NewRouter(rest.RouterDeps{
		Logger: logger,
		DB:     db,
		Repos: rest.Repos{
			Activities:     activity.New(db, b, logger),
			Registrations:  registration.New(db, b, logger),
			MonthlyDonates: monthlydonate.New(db, b, logger),
			Participations: participation.New(db, b, logger),
			MyData:         mydata.New(db, b, logger),
		},
		CORS:    cfg.CORS,
		Version: BuildVersion(),
	})
}
