package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/account"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/apiErrors"
)

// AdAccountList lista as contas monitoradas. Filtros: platform e status
// (lista separada por vírgula).
func AdAccountList(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		platform, ok := platformParam(w, query.Get("platform"))
		if !ok {
			return
		}

		availableStatus := make([]domain.AdAccountStatus, 0)
		if filterStatus := query.Get("status"); filterStatus != "" {
			for _, status := range strings.Split(filterStatus, ",") {
				availableStatus = append(availableStatus, domain.AdAccountStatus(strings.ToUpper(strings.TrimSpace(status))))
			}
		}

		adAccounts, err := service.ListAdAccounts(r.Context(), platform, availableStatus)
		if err != nil {
			logrus.Error("Error listing accounts:", err)
			handleAccountError(w, err, "Erro ao listar contas")
			return
		}

		writeJSON(w, http.StatusOK, adAccounts)
	})
}

// SyncAccounts sincroniza as contas de todas as plataformas ou apenas da
// informada em ?platform=
func SyncAccounts(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SyncAccounts")

		platform, ok := platformParam(w, r.URL.Query().Get("platform"))
		if !ok {
			return
		}

		if platform != nil {
			resp, err := service.SyncPlatform(r.Context(), *platform)
			if err != nil {
				logrus.Error("Error syncing accounts:", err)
				handleAccountError(w, err, "Erro ao sincronizar contas")
				return
			}
			writeJSON(w, http.StatusOK, []*domain.SyncAccountsResponse{resp})
			return
		}

		// falha em uma plataforma não impede o retorno das demais
		resp, err := service.SyncAccounts(r.Context())
		if err != nil && len(resp) == 0 {
			logrus.Error("Error syncing accounts:", err)
			handleAccountError(w, err, "Erro ao sincronizar contas")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

func UpdateAdAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateAdAccount")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		var updateRequest domain.UpdateAdAccountRequest
		if !decodeBody(w, r, &updateRequest) {
			return
		}

		// Garante que o ID da URL seja usado
		updateRequest.ID = id

		resp, err := service.UpdateAccount(r.Context(), &updateRequest)
		if err != nil {
			logrus.Error("Error updating account:", err)
			handleAccountError(w, err, "Erro interno ao atualizar conta")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

func handleAccountError(w http.ResponseWriter, err error, fallback string) {
	var accountErr *account.AccountError
	if errors.As(err, &accountErr) {
		var details map[string]any
		if accountErr.AccountID != "" {
			details = map[string]any{"account_id": accountErr.AccountID}
		}
		apiErrors.WriteError(w, accountErr.Code, accountErr.Error(), details)
		return
	}

	switch {
	case errors.Is(err, account.ErrPlatformIntegration):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao obter contas da plataforma", nil)

	case errors.Is(err, account.ErrFetchAccounts) || errors.Is(err, account.ErrDatabaseOperation):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar contas no banco de dados", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}

func platformParam(w http.ResponseWriter, value string) (*domain.Platform, bool) {
	if value == "" {
		return nil, true
	}

	platform := domain.Platform(strings.ToLower(value))
	if !platform.IsValid() {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Plataforma inválida. Valores aceitos: meta, google_ads", nil)
		return nil, false
	}

	return &platform, true
}
