package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/testhelper"
	"github.com/heartmarshall/temple-api/internal/config"
)

func TestOpenDB_AutoMigrateAndServe(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dbCfg := testhelper.SQLiteConfig(filepath.Join(t.TempDir(), "app.db"))
	dbCfg.AutoMigrate = true

	db, err := OpenDB(context.Background(), dbCfg, logger)
	require.NoError(t, err)
	defer CloseDB(db, logger)

	cfg := &config.Config{
		Database: dbCfg,
		Query:    config.QueryConfig{DefaultLimit: 2, MaxLimit: 10},
		CORS:     config.CORSConfig{AllowedOrigins: "*"},
	}
	h := NewHandler(cfg, db, logger)

	for _, body := range []string{
		`{"activityId":"A-1","name":"a","date":"2024-01-01"}`,
		`{"activityId":"A-2","name":"b","date":"2024-01-02"}`,
		`{"activityId":"A-3","name":"c","date":"2024-01-03"}`,
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/activities", strings.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/activities", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"meta":{"total":3,"limit":2,"offset":0}`)
}

func TestBuildVersion(t *testing.T) {
	assert.Equal(t, "dev", BuildVersion())

	Commit, BuildTime = "abc123", "2024-01-01"
	t.Cleanup(func() { Commit, BuildTime = "unknown", "unknown" })
	assert.Equal(t, "dev (commit: abc123, built: 2024-01-01)", BuildVersion())
}
