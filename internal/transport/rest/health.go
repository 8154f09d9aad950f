package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb"
)

// dbChecker is the database surface used by health checks.
type dbChecker interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (sqldb.Stats, error)
}

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	db      dbChecker
	version string
	log     *slog.Logger
}

func NewHealthHandler(db dbChecker, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, version: version, log: logger.With("handler", "health")}
}

// HealthResponse is the JSON body of the operational endpoints.
type HealthResponse struct {
	Status     string               `json:"status"`
	Version    string               `json:"version,omitempty"`
	Components map[string]Component `json:"components,omitempty"`
	Database   *sqldb.Stats         `json:"database,omitempty"`
	Timestamp  time.Time            `json:"timestamp"`
}

// Component reports one dependency.
type Component struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

const checkTimeout = 3 * time.Second

// Live answers 200 while the process is up.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 when the database accepts a ping and 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	db := h.ping(ctx)
	writeJSON(w, statusFor(db), HealthResponse{Status: db.Status, Timestamp: time.Now()})
}

// Health reports the database component with ping latency, plus table
// statistics when they can be read.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	db := h.ping(ctx)
	resp := HealthResponse{
		Status:     db.Status,
		Version:    h.version,
		Components: map[string]Component{"database": db},
	}
	if db.Status == "ok" {
		if stats, err := h.db.Stats(ctx); err != nil {
			h.log.WarnContext(ctx, "database stats failed", slog.String("error", err.Error()))
		} else {
			resp.Database = &stats
		}
	}

	resp.Timestamp = time.Now()
	writeJSON(w, statusFor(db), resp)
}

func (h *HealthHandler) ping(ctx context.Context) Component {
	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		h.log.WarnContext(ctx, "database ping failed", slog.String("error", err.Error()))
		return Component{Status: "down"}
	}
	return Component{Status: "ok", Latency: time.Since(start).String()}
}

func statusFor(c Component) int {
	if c.Status == "ok" {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}
