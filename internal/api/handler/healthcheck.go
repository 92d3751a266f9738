package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const healthcheckTimeout = 2 * time.Second

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// HealthcheckHandler responde 200 enquanto o banco responde. Integrações não
// configuradas deixam o status como degraded, sem derrubar a instância.
func HealthcheckHandler(db Pinger, integrations map[string]bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
			Checks:    make(map[string]string, len(integrations)+1),
		}

		for name, configured := range integrations {
			if configured {
				resp.Checks[name] = "configured"
				continue
			}
			resp.Checks[name] = "not_configured"
			resp.Status = "degraded"
		}

		status := http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				logrus.WithError(err).Warn("error responding to healthcheck")
				resp.Checks["database"] = "unreachable"
				resp.Status = "unhealthy"
				status = http.StatusServiceUnavailable
			} else {
				resp.Checks["database"] = "ok"
			}
		}

		writeJSON(w, status, resp)
	})
}
