package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/apiErrors"
)

// RunMonitor dispara um ciclo do monitor fora do cron. O ciclo roda em
// background; o resultado aparece em /v1/monitor/status.
func RunMonitor(monitor MonitorRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunMonitor")

		if !monitor.TriggerManualSync(r.Context()) {
			apiErrors.WriteError(w, apiErrors.ErrConflict, "Ciclo do monitor já está em andamento", monitor.GetStatus())
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"status":       "triggered",
			"message":      "Ciclo do monitor iniciado",
			"triggered_at": time.Now().UTC(),
		})
	}
}

// GetMonitorStatus retorna o estado dos agendadores
func GetMonitorStatus(monitor MonitorRunner, accountSync StatusReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"budget_monitor": monitor.GetStatus(),
		}
		if accountSync != nil {
			status["account_sync"] = accountSync.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
