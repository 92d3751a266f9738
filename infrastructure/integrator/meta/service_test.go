package meta

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestMetaIntegrator_FetchCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	integrator := New(config.Meta{}, mockClient)

	account := &domain.AdAccount{ExternalID: "123", Name: "Loja Centro", Currency: "CAD"}

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, campaigns []*domain.Campaign, err error)
	}{
		{
			name: "Converte orçamento diário e vitalício de centavos",
			setup: func() {
				mockClient.EXPECT().GetAdCampaignByAccountID(gomock.Any(), "123").Return([]metadomain.Campaign{
					{ID: "c1", Name: "Diária", Status: "ACTIVE", DailyBudget: "25050", StartTime: "2024-01-15T10:00:00-0500"},
					{ID: "c2", Name: "Vitalícia", Status: "ACTIVE", LifetimeBudget: "600000", StopTime: "2024-03-01T00:00:00-0500"},
					{ID: "c3", Name: "Orçamento no conjunto", Status: "ACTIVE"},
				}, nil)
			},
			validate: func(t *testing.T, campaigns []*domain.Campaign, err error) {
				require.NoError(t, err)
				require.Len(t, campaigns, 2)

				assert.Equal(t, 250.50, campaigns[0].Budget)
				assert.Equal(t, domain.BudgetTypeDaily, campaigns[0].BudgetType)
				assert.Equal(t, "CAD", campaigns[0].Currency)
				assert.Equal(t, "Loja Centro", campaigns[0].AccountName)
				assert.Equal(t, domain.PlatformMeta, campaigns[0].Platform)
				require.NotNil(t, campaigns[0].StartTime)
				assert.Equal(t, 15, campaigns[0].StartTime.UTC().Day())

				assert.Equal(t, 6000.0, campaigns[1].Budget)
				assert.Equal(t, domain.BudgetTypeLifetime, campaigns[1].BudgetType)
				assert.NotNil(t, campaigns[1].StopTime)
			},
		},
		{
			name: "Erro da API",
			setup: func() {
				mockClient.EXPECT().GetAdCampaignByAccountID(gomock.Any(), "123").Return(nil, errors.New("rate limited"))
			},
			validate: func(t *testing.T, campaigns []*domain.Campaign, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "rate limited")
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

func TestMetaIntegrator_CheckDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	integrator := New(config.Meta{}, mockClient)

	campaign := &domain.Campaign{ID: "c1"}
	active := func(id string) metadomain.AdSet { return metadomain.AdSet{ID: id, EffectiveStatus: "ACTIVE"} }
	paused := func(id string) metadomain.AdSet { return metadomain.AdSet{ID: id, EffectiveStatus: "PAUSED"} }

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, check *domain.DeliveryCheck, err error)
	}{
		{
			name: "Sem conjuntos",
			setup: func() {
				mockClient.EXPECT().GetAdSetsByCampaignID(gomock.Any(), "c1").Return([]metadomain.AdSet{}, nil)
			},
			validate: func(t *testing.T, check *domain.DeliveryCheck, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.DeliveryStatusNoAdSets, check.Status)
			},
		},
		{
			name: "Todos os conjuntos pausados",
			setup: func() {
				mockClient.EXPECT().GetAdSetsByCampaignID(gomock.Any(), "c1").Return([]metadomain.AdSet{paused("a1"), paused("a2")}, nil)
			},
			validate: func(t *testing.T, check *domain.DeliveryCheck, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.DeliveryStatusAllAdSetsPaused, check.Status)
				assert.Equal(t, 2, check.TotalAdSets)
				assert.Equal(t, 0, check.ActiveAdSets)
			},
		},
		{
			name: "Conjuntos ativos sem anúncios ativos",
			setup: func() {
				mockClient.EXPECT().GetAdSetsByCampaignID(gomock.Any(), "c1").Return([]metadomain.AdSet{active("a1"), paused("a2")}, nil)
				mockClient.EXPECT().GetAdsByAdSetID(gomock.Any(), "a1", adsPerAdSetLimit).Return([]metadomain.Ad{{ID: "ad1", EffectiveStatus: "DISAPPROVED"}}, nil)
			},
			validate: func(t *testing.T, check *domain.DeliveryCheck, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.DeliveryStatusNoActiveAds, check.Status)
				assert.Equal(t, 0, check.AdSetsWithActiveAds)
			},
		},
		{
			name: "Amostra de três conjuntos extrapolada",
			setup: func() {
				mockClient.EXPECT().GetAdSetsByCampaignID(gomock.Any(), "c1").Return([]metadomain.AdSet{
					active("a1"), active("a2"), active("a3"), active("a4"), active("a5"), active("a6"),
				}, nil)
				mockClient.EXPECT().GetAdsByAdSetID(gomock.Any(), "a1", adsPerAdSetLimit).Return([]metadomain.Ad{{EffectiveStatus: "ACTIVE"}}, nil)
				mockClient.EXPECT().GetAdsByAdSetID(gomock.Any(), "a2", adsPerAdSetLimit).Return([]metadomain.Ad{}, nil)
				mockClient.EXPECT().GetAdsByAdSetID(gomock.Any(), "a3", adsPerAdSetLimit).Return([]metadomain.Ad{{EffectiveStatus: "ACTIVE"}}, nil)
			},
			validate: func(t *testing.T, check *domain.DeliveryCheck, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.DeliveryStatusActive, check.Status)
				assert.Equal(t, 6, check.ActiveAdSets)
				assert.Equal(t, 4, check.AdSetsWithActiveAds)
			},
		},
		{
			name: "Falha ao listar anúncios",
			setup: func() {
				mockClient.EXPECT().GetAdSetsByCampaignID(gomock.Any(), "c1").Return([]metadomain.AdSet{active("a1")}, nil)
				mockClient.EXPECT().GetAdsByAdSetID(gomock.Any(), "a1", adsPerAdSetLimit).Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, check *domain.DeliveryCheck, err error) {
				assert.Nil(t, check)
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			check, err := integrator.CheckDelivery(context.Background(), campaign)
			tt.validate(t, check, err)
		})
	}
}

func TestMetaIntegrator_GetAdAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)

	t.Run("Filtra businesses configurados", func(t *testing.T) {
		integrator := New(config.Meta{BusinessIDs: []string{"bm2"}}, mockClient)

		mockClient.EXPECT().GetBusinesses(gomock.Any()).Return([]metadomain.BusinessManager{
			{ID: "bm1", Name: "Outro"},
			{ID: "bm2", Name: "Agência"},
		}, nil)
		mockClient.EXPECT().GetAdAccountsByBusinessID(gomock.Any(), "bm2").Return([]metadomain.AdAccount{
			{ID: "act_111", AccountID: "111", Name: "Loja A", AccountStatus: 1, Currency: "CAD"},
			{ID: "act_222", Name: "Loja B", AccountStatus: 2, Currency: "CAD"},
		}, nil)

		accounts, err := integrator.GetAdAccounts(context.Background())
		require.NoError(t, err)
		require.Len(t, accounts, 2)
		assert.Equal(t, "111", accounts[0].ExternalID)
		assert.Equal(t, domain.AdAccountStatusActive, accounts[0].Status)
		assert.Equal(t, "Agência", accounts[0].BusinessManagerName)
		assert.Equal(t, "222", accounts[1].ExternalID)
		assert.Equal(t, domain.AdAccountStatusInactive, accounts[1].Status)
	})

	t.Run("Usa ids configurados quando a listagem falha", func(t *testing.T) {
		integrator := New(config.Meta{BusinessIDs: []string{"bm9"}}, mockClient)

		mockClient.EXPECT().GetBusinesses(gomock.Any()).Return(nil, errors.New("permission denied"))
		mockClient.EXPECT().GetAdAccountsByBusinessID(gomock.Any(), "bm9").Return([]metadomain.AdAccount{}, nil)

		accounts, err := integrator.GetAdAccounts(context.Background())
		require.NoError(t, err)
		assert.Empty(t, accounts)
	})
}
