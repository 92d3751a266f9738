package meta

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/utils"
)

const (
	// deliverySampleSize é quantos conjuntos ativos têm os anúncios inspecionados
	deliverySampleSize = 3
	adsPerAdSetLimit   = 10
	centsScale         = 2
)

type MetaIntegrator struct {
	client      metaclient.Client
	businessIDs []string
}

func New(cfg config.Meta, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		client:      client,
		businessIDs: cfg.BusinessIDs,
	}
}

func (s *MetaIntegrator) Platform() domain.Platform {
	return domain.PlatformMeta
}

// GetAdAccounts lista as contas de todos os business managers acessíveis. Se
// META_BUSINESS_IDS estiver definido, somente esses businesses são lidos.
func (s *MetaIntegrator) GetAdAccounts(ctx context.Context) ([]*domain.AdAccount, error) {
	bms, err := s.getBusinessManagers(ctx)
	if err != nil {
		logrus.WithError(err).Error("meta: failed to get business managers")
		return nil, err
	}

	allAdAccounts := make([]*domain.AdAccount, 0)
	for _, b := range bms {
		logrus.WithFields(logrus.Fields{
			"business_id":   b.ID,
			"business_name": b.Name,
		}).Debug("meta: fetching ad accounts for business")

		adAccounts, err := s.client.GetAdAccountsByBusinessID(ctx, b.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"business_id": b.ID,
				"error":       err.Error(),
			}).Error("meta: failed to get ad accounts for business")
			continue
		}

		for _, adAccount := range adAccounts {
			status := domain.AdAccountStatusInactive
			if adAccount.IsActive() {
				status = domain.AdAccountStatusActive
			}

			allAdAccounts = append(allAdAccounts, &domain.AdAccount{
				ExternalID:          externalAccountID(adAccount),
				Name:                adAccount.Name,
				Platform:            domain.PlatformMeta,
				Currency:            adAccount.Currency,
				Timezone:            adAccount.TimezoneName,
				BusinessManagerID:   b.ID,
				BusinessManagerName: b.Name,
				Status:              status,
			})
		}
	}

	logrus.WithField("total_accounts", len(allAdAccounts)).Info("meta: successfully retrieved all ad accounts")

	return allAdAccounts, nil
}

func (s *MetaIntegrator) getBusinessManagers(ctx context.Context) ([]metadomain.BusinessManager, error) {
	bms, err := s.client.GetBusinesses(ctx)
	if err != nil {
		if len(s.businessIDs) == 0 {
			return nil, err
		}

		logrus.WithError(err).Warn("meta: failed to list businesses, using configured ids")
		bms = make([]metadomain.BusinessManager, 0, len(s.businessIDs))
		for _, id := range s.businessIDs {
			bms = append(bms, metadomain.BusinessManager{ID: id})
		}
		return bms, nil
	}

	if len(s.businessIDs) == 0 {
		return bms, nil
	}

	filtered := make([]metadomain.BusinessManager, 0, len(s.businessIDs))
	for _, bm := range bms {
		if slices.Contains(s.businessIDs, bm.ID) {
			filtered = append(filtered, bm)
		}
	}

	return filtered, nil
}

// FetchCampaigns retorna as campanhas ativas da conta com orçamento convertido
// de centavos. Campanhas sem orçamento no nível da campanha são ignoradas.
func (s *MetaIntegrator) FetchCampaigns(ctx context.Context, account *domain.AdAccount) ([]*domain.Campaign, error) {
	campaigns, err := s.client.GetAdCampaignByAccountID(ctx, account.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("meta: campanhas da conta %s: %w", account.ExternalID, err)
	}

	result := make([]*domain.Campaign, 0, len(campaigns))
	for i := range campaigns {
		campaign := campaigns[i]

		cents, daily, ok := campaign.BudgetCents()
		if !ok {
			logrus.WithFields(logrus.Fields{
				"account_id":  account.ExternalID,
				"campaign_id": campaign.ID,
			}).Debug("meta: campaign without campaign-level budget skipped")
			continue
		}

		budgetType := domain.BudgetTypeLifetime
		if daily {
			budgetType = domain.BudgetTypeDaily
		}

		result = append(result, &domain.Campaign{
			ID:          campaign.ID,
			Name:        campaign.Name,
			AccountID:   account.ExternalID,
			AccountName: account.DisplayName(),
			Platform:    domain.PlatformMeta,
			Budget:      utils.MinorUnitsToAmount(cents, centsScale),
			BudgetType:  budgetType,
			Currency:    account.Currency,
			Status:      campaign.Status,
			CreatedAt:   metadomain.ParseTime(campaign.CreatedTime),
			StartTime:   metadomain.ParseTime(campaign.StartTime),
			StopTime:    metadomain.ParseTime(campaign.StopTime),
		})
	}

	logrus.WithFields(logrus.Fields{
		"account_id": account.ExternalID,
		"campaigns":  len(result),
	}).Debug("meta: campaigns fetched")

	return result, nil
}

// CheckDelivery verifica se a campanha tem conjuntos e anúncios ativos. Só os
// primeiros conjuntos ativos são inspecionados e o total é estimado.
func (s *MetaIntegrator) CheckDelivery(ctx context.Context, campaign *domain.Campaign) (*domain.DeliveryCheck, error) {
	adSets, err := s.client.GetAdSetsByCampaignID(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("meta: conjuntos da campanha %s: %w", campaign.ID, err)
	}

	active := make([]metadomain.AdSet, 0, len(adSets))
	for _, adSet := range adSets {
		if adSet.IsActive() {
			active = append(active, adSet)
		}
	}

	check := &domain.DeliveryCheck{
		TotalAdSets:  len(adSets),
		ActiveAdSets: len(active),
	}

	sample := min(deliverySampleSize, len(active))
	deliverable := 0
	for _, adSet := range active[:sample] {
		ads, err := s.client.GetAdsByAdSetID(ctx, adSet.ID, adsPerAdSetLimit)
		if err != nil {
			return nil, fmt.Errorf("meta: anúncios do conjunto %s: %w", adSet.ID, err)
		}

		if slices.ContainsFunc(ads, func(ad metadomain.Ad) bool { return ad.IsActive() }) {
			deliverable++
		}
	}

	if sample > 0 {
		check.AdSetsWithActiveAds = deliverable * len(active) / sample
	}

	check.Status = domain.ResolveDeliveryStatus(check.TotalAdSets, check.ActiveAdSets, check.AdSetsWithActiveAds)

	return check, nil
}

func externalAccountID(account metadomain.AdAccount) string {
	if account.AccountID != "" {
		return account.AccountID
	}
	return strings.TrimPrefix(account.ID, "act_")
}
