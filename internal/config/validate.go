package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	journalModes = []string{"DELETE", "TRUNCATE", "PERSIST", "MEMORY", "WAL", "OFF"}
	syncModes    = []string{"OFF", "NORMAL", "FULL", "EXTRA"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := c.Query.validate(); err != nil {
		return fmt.Errorf("query: %w", err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	return nil
}

func (d *DatabaseConfig) validate() error {
	d.Driver = strings.ToLower(strings.TrimSpace(d.Driver))
	if d.Driver != DriverSQLite && d.Driver != DriverPostgres {
		return fmt.Errorf("driver must be %q or %q (got %q)", DriverSQLite, DriverPostgres, d.Driver)
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.AcquireTimeout <= 0 {
		return fmt.Errorf("acquire_timeout must be > 0 (got %v)", d.AcquireTimeout)
	}

	if !d.IsSQLite() {
		return nil
	}

	d.JournalMode = strings.ToUpper(d.JournalMode)
	if !slices.Contains(journalModes, d.JournalMode) {
		return fmt.Errorf("journal_mode %q is not one of %v", d.JournalMode, journalModes)
	}
	d.Synchronous = strings.ToUpper(d.Synchronous)
	if !slices.Contains(syncModes, d.Synchronous) {
		return fmt.Errorf("synchronous %q is not one of %v", d.Synchronous, syncModes)
	}
	if d.BusyTimeout < 0 {
		return fmt.Errorf("busy_timeout must be >= 0 (got %v)", d.BusyTimeout)
	}
	return nil
}

func (q *QueryConfig) validate() error {
	if q.MaxLimit <= 0 {
		return fmt.Errorf("max_limit must be > 0 (got %d)", q.MaxLimit)
	}
	if q.DefaultLimit <= 0 || q.DefaultLimit > q.MaxLimit {
		return fmt.Errorf("default_limit must be in 1..%d (got %d)", q.MaxLimit, q.DefaultLimit)
	}
	return nil
}
