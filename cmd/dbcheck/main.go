// Command dbcheck tests the database connection and prints the tables and
// size of the configured database. With -migrate it first applies the
// bundled development schema; with -checkpoint it truncates the SQLite
// write-ahead log afterwards.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb"
	"github.com/heartmarshall/temple-api/internal/app"
	"github.com/heartmarshall/temple-api/internal/config"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply the bundled schema before checking")
	checkpoint := flag.Bool("checkpoint", false, "checkpoint the SQLite WAL after checking")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	db, err := sqldb.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database connected",
		slog.String("dialect", db.Dialect().Name),
		slog.Duration("latency", time.Since(start)),
	)

	if *migrate {
		n, err := db.Migrate(ctx)
		if err != nil {
			logger.Error("migrate failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migrations applied", slog.Int("count", n))
	}

	stats, err := db.Stats(ctx)
	if err != nil {
		logger.Error("database stats failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stats); err != nil {
		logger.Error("write stats", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *checkpoint {
		if err := db.Checkpoint(ctx); err != nil {
			logger.Error("checkpoint failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("wal checkpoint completed")
	}
}
