package googleads

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	googleadsdomain "github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/googleads/googleadsclient"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/utils"
)

const microsScale = 6

type GoogleAdsIntegrator struct {
	client googleadsclient.Client
}

func New(client googleadsclient.Client) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{client: client}
}

func (s *GoogleAdsIntegrator) Platform() domain.Platform {
	return domain.PlatformGoogleAds
}

// GetAdAccounts lista as contas cliente da conta gerenciadora. A conta
// gerenciadora faz o papel de business manager.
func (s *GoogleAdsIntegrator) GetAdAccounts(ctx context.Context) ([]*domain.AdAccount, error) {
	customers, err := s.client.ListClientCustomers(ctx)
	if err != nil {
		logrus.WithError(err).Error("google ads: failed to list client customers")
		return nil, err
	}

	managerID := s.client.LoginCustomerID()

	accounts := make([]*domain.AdAccount, 0, len(customers))
	for _, customer := range customers {
		status := domain.AdAccountStatusInactive
		if customer.Status == googleadsdomain.CustomerStatusEnabled {
			status = domain.AdAccountStatusActive
		}

		accounts = append(accounts, &domain.AdAccount{
			ExternalID:          customer.ID,
			Name:                customer.DescriptiveName,
			Platform:            domain.PlatformGoogleAds,
			Currency:            customer.CurrencyCode,
			Timezone:            customer.TimeZone,
			BusinessManagerID:   managerID,
			BusinessManagerName: fmt.Sprintf("MCC %s", managerID),
			Status:              status,
		})
	}

	logrus.WithField("total_accounts", len(accounts)).Info("google ads: successfully retrieved client customers")

	return accounts, nil
}

// FetchCampaigns retorna as campanhas da conta com orçamento convertido de micros
func (s *GoogleAdsIntegrator) FetchCampaigns(ctx context.Context, account *domain.AdAccount) ([]*domain.Campaign, error) {
	rows, err := s.client.SearchCampaigns(ctx, account.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("google ads: campanhas da conta %s: %w", account.ExternalID, err)
	}

	campaigns := make([]*domain.Campaign, 0, len(rows))
	for _, row := range rows {
		micros, daily, ok := row.CampaignBudget.Micros()
		if !ok {
			logrus.WithFields(logrus.Fields{
				"account_id":  account.ExternalID,
				"campaign_id": row.Campaign.ID,
			}).Debug("google ads: campaign without budget skipped")
			continue
		}

		budgetType := domain.BudgetTypeLifetime
		if daily {
			budgetType = domain.BudgetTypeDaily
		}

		currency := row.Customer.CurrencyCode
		if currency == "" {
			currency = account.Currency
		}

		campaigns = append(campaigns, &domain.Campaign{
			ID:          row.Campaign.ID,
			Name:        row.Campaign.Name,
			AccountID:   account.ExternalID,
			AccountName: account.DisplayName(),
			Platform:    domain.PlatformGoogleAds,
			Budget:      utils.MinorUnitsToAmount(micros, microsScale),
			BudgetType:  budgetType,
			Currency:    currency,
			Status:      row.Campaign.Status,
			StartTime:   googleadsdomain.ParseDate(row.Campaign.StartDate),
			StopTime:    endOfDay(googleadsdomain.ParseDate(row.Campaign.EndDate)),
		})
	}

	logrus.WithFields(logrus.Fields{
		"account_id": account.ExternalID,
		"campaigns":  len(campaigns),
	}).Debug("google ads: campaigns fetched")

	return campaigns, nil
}

// endOfDay faz a campanha valer durante todo o dia de término
func endOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	end := utils.EndOfDay(*t)
	return &end
}
