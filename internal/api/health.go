package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger checks that the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BrokerStatus reports whether the message broker connection is up.
type BrokerStatus interface {
	Healthy() bool
}

// HealthHandler reports liveness of the server and its dependencies.
type HealthHandler struct {
	DB     Pinger
	Broker BrokerStatus
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := map[string]string{"status": "ok", "database": "ok", "broker": "disabled"}
	status := http.StatusOK

	if err := h.DB.Ping(ctx); err != nil {
		slog.Error("health check: database unreachable", "error", err)
		resp["status"] = "unavailable"
		resp["database"] = "down"
		status = http.StatusServiceUnavailable
	}
	if h.Broker != nil {
		resp["broker"] = "ok"
		if !h.Broker.Healthy() {
			resp["broker"] = "down"
		}
	}
	jsonResponse(w, status, resp)
}
