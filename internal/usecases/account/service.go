package account

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/repository"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/apiErrors"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/metrics"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/utils"
)

// AccountSource lista as contas de anúncios visíveis numa plataforma
type AccountSource interface {
	Platform() domain.Platform
	GetAdAccounts(ctx context.Context) ([]*domain.AdAccount, error)
}

type AccountService interface {
	UpdateAccount(ctx context.Context, request *domain.UpdateAdAccountRequest) (*domain.AdAccount, error)
	ListAdAccounts(ctx context.Context, platform *domain.Platform, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error)
	SyncAccounts(ctx context.Context) ([]*domain.SyncAccountsResponse, error)
	SyncPlatform(ctx context.Context, platform domain.Platform) (*domain.SyncAccountsResponse, error)
}

type Service struct {
	accountRepository repository.AccountRepository
	sources           map[domain.Platform]AccountSource
	order             []domain.Platform
}

func NewService(accountRepository repository.AccountRepository, sources ...AccountSource) AccountService {
	service := &Service{
		accountRepository: accountRepository,
		sources:           make(map[domain.Platform]AccountSource, len(sources)),
	}

	for _, source := range sources {
		service.sources[source.Platform()] = source
		service.order = append(service.order, source.Platform())
	}

	return service
}

func (s *Service) ListAdAccounts(ctx context.Context, platform *domain.Platform, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error) {
	accounts, err := s.accountRepository.ListAccounts(ctx, platform, availableStatus)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar contas no banco de dados")
		return nil, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao listar contas no banco de dados")
	}

	return accounts, nil
}

// SyncAccounts sincroniza todas as plataformas configuradas. A falha de uma
// plataforma não impede as demais; o primeiro erro é devolvido.
func (s *Service) SyncAccounts(ctx context.Context) ([]*domain.SyncAccountsResponse, error) {
	responses := make([]*domain.SyncAccountsResponse, 0, len(s.order))

	var firstErr error
	for _, platform := range s.order {
		response, err := s.SyncPlatform(ctx, platform)
		responses = append(responses, response)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return responses, firstErr
}

// SyncPlatform grava as contas novas da plataforma e atualiza nome, moeda e
// fuso das já conhecidas. O status das existentes é controlado pelo dashboard.
func (s *Service) SyncPlatform(ctx context.Context, platform domain.Platform) (*domain.SyncAccountsResponse, error) {
	response := &domain.SyncAccountsResponse{
		Platform: platform,
		Quantity: 0,
		Message:  "Erro ao sincronizar contas",
		Error:    true,
	}

	source, ok := s.sources[platform]
	if !ok {
		return response, NewAccountError(ErrUnknownPlatform, apiErrors.ErrInvalidRequest, fmt.Sprintf("Plataforma %s não configurada", platform))
	}

	accounts, err := source.GetAdAccounts(ctx)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"error":    err.Error(),
		}).Error("Erro ao obter contas da plataforma")
		metrics.RecordAccountSync(string(platform), metrics.StatusFailure)
		return response, NewAccountError(ErrPlatformIntegration, apiErrors.ErrExternalService, fmt.Sprintf("Falha ao obter contas da API de %s", platform))
	}

	existingAccounts, err := s.accountRepository.ListAccountsMap(ctx, platform)
	if err != nil {
		logrus.WithField("error", err).Error("Erro ao consultar contas existentes no banco de dados")
		metrics.RecordAccountSync(string(platform), metrics.StatusFailure)
		return response, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao consultar contas existentes no banco de dados")
	}

	bms := make([]*domain.BusinessManager, 0)
	seenBMs := make(map[string]bool)
	created := 0

	for _, acc := range accounts {
		acc.Platform = platform

		if id, exists := existingAccounts[acc.ExternalID]; exists {
			acc.ID = id
		} else {
			accountID, err := utils.GenerateID()
			if err != nil {
				return response, NewAccountError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador único para conta")
			}
			acc.ID = accountID
			created++
		}

		bmKey := repository.BusinessManagerKey(platform, acc.BusinessManagerID)
		if seenBMs[bmKey] {
			continue
		}
		seenBMs[bmKey] = true

		bmID, err := utils.GenerateID()
		if err != nil {
			return response, NewAccountError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador único para business manager")
		}

		bms = append(bms, &domain.BusinessManager{
			ID:         bmID,
			ExternalID: acc.BusinessManagerID,
			Name:       acc.BusinessManagerName,
			Platform:   platform,
		})
	}

	businessManagerIDs, err := s.accountRepository.SaveOrUpdateBusinessManager(ctx, bms)
	if err != nil {
		metrics.RecordAccountSync(string(platform), metrics.StatusFailure)
		return response, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar business managers")
	}

	if len(accounts) > 0 {
		if err := s.accountRepository.SaveOrUpdate(ctx, accounts, businessManagerIDs); err != nil {
			metrics.RecordAccountSync(string(platform), metrics.StatusFailure)
			return response, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar contas")
		}
	}

	metrics.RecordAccountSync(string(platform), metrics.StatusSuccess)

	logrus.WithFields(logrus.Fields{
		"platform": platform,
		"created":  created,
		"updated":  len(accounts) - created,
	}).Info("Contas sincronizadas com sucesso")

	response.Quantity = created
	response.Message = fmt.Sprintf("%d contas novas e %d atualizadas", created, len(accounts)-created)
	response.Error = false

	return response, nil
}

func (s *Service) UpdateAccount(ctx context.Context, request *domain.UpdateAdAccountRequest) (*domain.AdAccount, error) {
	if request.ID == "" {
		return nil, ErrAccountIDRequired
	}

	if request.Status != nil {
		status := domain.AdAccountStatus(*request.Status)
		if status != domain.AdAccountStatusActive && status != domain.AdAccountStatusInactive {
			return nil, NewAccountErrorWithID(ErrInvalidStatus, apiErrors.ErrInvalidFormat, request.ID, "Status deve ser ACTIVE ou INACTIVE")
		}
	}

	account, err := s.accountRepository.GetAccountByID(ctx, request.ID)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar conta no repositório")
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar conta no banco de dados")
	}

	if account == nil {
		return nil, NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrResourceNotFound, request.ID, "Conta não encontrada")
	}

	if err := s.accountRepository.UpdateAccount(ctx, request); err != nil {
		logrus.WithError(err).Error("Erro ao atualizar conta no repositório")
		return nil, NewAccountErrorWithID(ErrUpdateAccount, apiErrors.ErrDatabaseOperation, request.ID, "Falha ao atualizar conta no banco de dados")
	}

	if request.Nickname != nil {
		account.Nickname = request.Nickname
	}
	if request.Status != nil {
		account.Status = domain.AdAccountStatus(*request.Status)
	}

	return account, nil
}
