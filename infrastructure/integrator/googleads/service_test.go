package googleads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	googleadsdomain "github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/googleads/googleadsclient/mocks"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestGoogleAdsIntegrator_FetchCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	integrator := New(mockClient)

	nickname := "Loja Norte"
	account := &domain.AdAccount{ExternalID: "4445556666", Name: "Cliente 4445556666", Nickname: &nickname, Currency: "USD"}

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, campaigns []*domain.Campaign, err error)
	}{
		{
			name: "Converte micros e período",
			setup: func() {
				mockClient.EXPECT().SearchCampaigns(gomock.Any(), "4445556666").Return([]googleadsdomain.CampaignRow{
					{
						Customer:       googleadsdomain.Customer{ID: "4445556666", CurrencyCode: "CAD"},
						Campaign:       googleadsdomain.Campaign{ID: "1", Name: "Search", Status: "ENABLED", StartDate: "2024-01-15", EndDate: "2024-02-01"},
						CampaignBudget: googleadsdomain.CampaignBudget{AmountMicros: "165500000", Period: "DAILY"},
					},
					{
						Campaign:       googleadsdomain.Campaign{ID: "2", Name: "Evento", Status: "ENABLED"},
						CampaignBudget: googleadsdomain.CampaignBudget{TotalAmountMicros: "5000000000", Period: "CUSTOM_PERIOD"},
					},
					{
						Campaign:       googleadsdomain.Campaign{ID: "3", Name: "Sem orçamento", Status: "ENABLED"},
						CampaignBudget: googleadsdomain.CampaignBudget{AmountMicros: "0", Period: "DAILY"},
					},
				}, nil)
			},
			validate: func(t *testing.T, campaigns []*domain.Campaign, err error) {
				require.NoError(t, err)
				require.Len(t, campaigns, 2)

				assert.Equal(t, 165.5, campaigns[0].Budget)
				assert.Equal(t, domain.BudgetTypeDaily, campaigns[0].BudgetType)
				assert.Equal(t, "CAD", campaigns[0].Currency)
				assert.Equal(t, "Loja Norte", campaigns[0].AccountName)
				assert.Equal(t, domain.PlatformGoogleAds, campaigns[0].Platform)
				assert.False(t, campaigns[0].HasEnded(time.Date(2024, 2, 1, 20, 0, 0, 0, time.UTC)))
				assert.True(t, campaigns[0].HasEnded(time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)))

				assert.Equal(t, 5000.0, campaigns[1].Budget)
				assert.Equal(t, domain.BudgetTypeLifetime, campaigns[1].BudgetType)
				assert.Equal(t, "USD", campaigns[1].Currency)
			},
		},
		{
			name: "Erro da API",
			setup: func() {
				mockClient.EXPECT().SearchCampaigns(gomock.Any(), "4445556666").Return(nil, errors.New("PERMISSION_DENIED"))
			},
			validate: func(t *testing.T, campaigns []*domain.Campaign, err error) {
				assert.Nil(t, campaigns)
				assert.ErrorContains(t, err, "PERMISSION_DENIED")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			campaigns, err := integrator.FetchCampaigns(context.Background(), account)
			tt.validate(t, campaigns, err)
		})
	}
}

func TestGoogleAdsIntegrator_GetAdAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	integrator := New(mockClient)

	mockClient.EXPECT().ListClientCustomers(gomock.Any()).Return([]googleadsdomain.CustomerClient{
		{ID: "4445556666", DescriptiveName: "Loja A", CurrencyCode: "CAD", TimeZone: "America/Toronto", Status: "ENABLED"},
	}, nil)
	mockClient.EXPECT().LoginCustomerID().Return("1112223333")

	accounts, err := integrator.GetAdAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "4445556666", accounts[0].ExternalID)
	assert.Equal(t, "1112223333", accounts[0].BusinessManagerID)
	assert.Equal(t, domain.AdAccountStatusActive, accounts[0].Status)
	assert.Equal(t, domain.PlatformGoogleAds, accounts[0].Platform)
}
