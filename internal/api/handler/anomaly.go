package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/acknowledging"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/apiErrors"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/middleware"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/utils"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
	summaryWindow    = 30 * 24 * time.Hour
)

type AcknowledgeRequest struct {
	AnomalyIDs    []string `json:"anomaly_ids"`
	FalsePositive bool     `json:"false_positive"`
	Note          string   `json:"note"`
}

// ListAnomalies lista o histórico de anomalias, das mais recentes para as
// mais antigas. Filtros: platform, category, account_id, acknowledged, since,
// until e limit.
func ListAnomalies(reader AnomalyReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, ok := anomalyFilters(w, r.URL.Query())
		if !ok {
			return
		}

		anomalies, err := reader.ListAnomalies(r.Context(), filters)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar anomalias")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar anomalias", nil)
			return
		}

		writeJSON(w, http.StatusOK, anomalies)
	}
}

// GetAnomalySummary agrega as anomalias por plataforma e categoria. Sem since,
// considera os últimos 30 dias.
func GetAnomalySummary(reader AnomalyReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, ok := anomalyFilters(w, r.URL.Query())
		if !ok {
			return
		}

		if filters.Since == nil {
			since := time.Now().UTC().Add(-summaryWindow)
			filters.Since = &since
		}

		summary, err := reader.Summary(r.Context(), filters)
		if err != nil {
			logrus.WithError(err).Error("Erro ao resumir anomalias")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar resumo de anomalias", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"since":      filters.Since,
			"until":      filters.Until,
			"categories": summary,
		})
	}
}

// GetAnomalyPeriods lista os meses com anomalias registradas
func GetAnomalyPeriods(reader AnomalyReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		periods, err := reader.AvailablePeriods(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Erro ao buscar períodos disponíveis")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar períodos disponíveis", nil)
			return
		}

		writeJSON(w, http.StatusOK, periods)
	}
}

// AcknowledgeAnomalies confirma (ou marca como falso positivo) as anomalias
// informadas em nome do usuário autenticado.
func AcknowledgeAnomalies(service acknowledging.AcknowledgeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - AcknowledgeAnomalies")

		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req AcknowledgeRequest
		if !decodeBody(w, r, &req) {
			return
		}

		result, err := service.Acknowledge(r.Context(), domain.Acknowledgment{
			AnomalyIDs:    req.AnomalyIDs,
			By:            userClaims.UserEmail,
			Note:          req.Note,
			FalsePositive: req.FalsePositive,
		})
		if err != nil {
			var ackErr *acknowledging.AcknowledgeError
			if errors.As(err, &ackErr) {
				apiErrors.WriteError(w, ackErr.Code, ackErr.Error(), nil)
				return
			}
			logrus.WithError(err).Error("Erro ao confirmar anomalias")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao confirmar anomalias", nil)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func anomalyFilters(w http.ResponseWriter, query url.Values) (domain.AnomalyFilters, bool) {
	filters := domain.AnomalyFilters{Limit: defaultListLimit}

	platform, ok := platformParam(w, query.Get("platform"))
	if !ok {
		return filters, false
	}
	filters.Platform = platform

	if value := query.Get("category"); value != "" {
		category := domain.Category(strings.ToLower(value))
		if !category.IsValid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Categoria inválida", map[string]any{"accepted": domain.Categories})
			return filters, false
		}
		filters.Category = &category
	}

	if value := query.Get("account_id"); value != "" {
		filters.AccountID = &value
	}

	if value := query.Get("acknowledged"); value != "" {
		acknowledged, err := strconv.ParseBool(value)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "acknowledged deve ser true ou false", nil)
			return filters, false
		}
		filters.Acknowledged = &acknowledged
	}

	since, ok := dateParam(w, query.Get("since"), "since", false)
	if !ok {
		return filters, false
	}
	filters.Since = since

	until, ok := dateParam(w, query.Get("until"), "until", true)
	if !ok {
		return filters, false
	}
	filters.Until = until

	limit, ok := limitParam(w, query.Get("limit"))
	if !ok {
		return filters, false
	}
	filters.Limit = limit

	return filters, true
}

// dateParam aceita YYYY-MM-DD ou RFC3339. Datas sem hora usadas como limite
// superior cobrem o dia inteiro.
func dateParam(w http.ResponseWriter, value, name string, endOfDay bool) (*time.Time, bool) {
	date, err := utils.ParseDate(value)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, name+" deve estar no formato YYYY-MM-DD ou RFC3339", nil)
		return nil, false
	}

	if date != nil && endOfDay && len(value) == len(time.DateOnly) {
		end := utils.EndOfDay(*date)
		date = &end
	}

	return date, true
}

func limitParam(w http.ResponseWriter, value string) (uint64, bool) {
	if value == "" {
		return defaultListLimit, true
	}

	limit, err := strconv.ParseUint(value, 10, 64)
	if err != nil || limit == 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", nil)
		return 0, false
	}

	return min(limit, maxListLimit), true
}
