package handler

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MonitorRunner é o agendador do monitor de orçamento
type MonitorRunner interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

type StatusReporter interface {
	GetStatus() map[string]any
}

// AnomalyReader expõe as consultas do histórico de anomalias usadas pelo dashboard
type AnomalyReader interface {
	ListAnomalies(ctx context.Context, filters domain.AnomalyFilters) ([]*domain.Anomaly, error)
	Summary(ctx context.Context, filters domain.AnomalyFilters) ([]*domain.AnomalySummary, error)
	AvailablePeriods(ctx context.Context) (*domain.AvailablePeriods, error)
}

type StateReader interface {
	ListStates(ctx context.Context, filters domain.StateFilters) ([]*domain.CurrentState, error)
}

// Pinger verifica a conexão com o banco no healthcheck
type Pinger interface {
	Ping(ctx context.Context) error
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
		return false
	}
	return true
}
