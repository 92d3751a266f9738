package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/apiErrors"
)

// ListStates lista o último estado conhecido das campanhas. stale_before
// retorna apenas campanhas que não aparecem nas coletas desde a data.
func ListStates(reader StateReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		platform, ok := platformParam(w, query.Get("platform"))
		if !ok {
			return
		}

		filters := domain.StateFilters{Platform: platform}

		if value := query.Get("account_id"); value != "" {
			filters.AccountID = &value
		}

		if filters.StaleBefore, ok = dateParam(w, query.Get("stale_before"), "stale_before", false); !ok {
			return
		}

		if filters.Limit, ok = limitParam(w, query.Get("limit")); !ok {
			return
		}

		states, err := reader.ListStates(r.Context(), filters)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar estados das campanhas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar estados das campanhas", nil)
			return
		}

		writeJSON(w, http.StatusOK, states)
	}
}
