package handlers

import (
	"context"
	"net/http"
	"time"

	"TRIPMOA_BACK-END/internal/dto"
	"TRIPMOA_BACK-END/internal/utils"
)

const serviceName = "tripmoa-backend"

// dbPingTimeout bounds the readiness probe so a stuck database cannot hang
// the health endpoint.
const dbPingTimeout = 3 * time.Second

// Pinger is the connectivity probe used by the readiness check.
// *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db      Pinger
	started time.Time
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

func (h *HealthHandler) uptime() string {
	return time.Since(h.started).Round(time.Second).String()
}

// HealthCheck reports process health without touching the database
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Details: map[string]any{"service": serviceName, "uptime": h.uptime()},
	})
}

// LivenessCheck handles process liveness check
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "alive"})
}

// ReadinessCheck handles readiness check (includes database connectivity)
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbPingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status:  "degraded",
			Details: map[string]any{"db": err.Error()},
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:  "ready",
		Details: map[string]any{"db": "ok", "uptime": h.uptime()},
	})
}
