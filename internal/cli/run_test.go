package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/repository/memory"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/scheduler"
	"github.com/vfg2006/budget-anomaly-monitor/internal/scheduler/mocks"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/account"
	accountmocks "github.com/vfg2006/budget-anomaly-monitor/internal/usecases/account/mocks"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/detecting"
	"go.uber.org/mock/gomock"
)

func TestSeedAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)

	metaSource := accountmocks.NewMockAccountSource(ctrl)
	googleSource := accountmocks.NewMockAccountSource(ctrl)

	metaSource.EXPECT().Platform().Return(domain.PlatformMeta).AnyTimes()
	googleSource.EXPECT().Platform().Return(domain.PlatformGoogleAds).AnyTimes()

	metaSource.EXPECT().GetAdAccounts(gomock.Any()).Return([]*domain.AdAccount{
		{ExternalID: "act_1", Platform: domain.PlatformMeta, Status: domain.AdAccountStatusActive},
		{ExternalID: "act_2", Platform: domain.PlatformMeta, Status: domain.AdAccountStatusInactive},
	}, nil)
	googleSource.EXPECT().GetAdAccounts(gomock.Any()).Return(nil, errors.New("token expirado"))

	store := memory.NewStore()
	seedAccounts(context.Background(), store, []account.AccountSource{metaSource, googleSource})

	all, err := store.ListAccounts(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := store.ListAccounts(context.Background(), nil, []domain.AdAccountStatus{domain.AdAccountStatusActive})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "act_1", active[0].ExternalID)
}

func TestNewDryRunMonitor(t *testing.T) {
	ctrl := gomock.NewController(t)

	fetcher := mocks.NewMockCampaignFetcher(ctrl)
	detector := mocks.NewMockCampaignDetector(ctrl)
	fetcher.EXPECT().Platform().Return(domain.PlatformMeta).AnyTimes()

	acct := &domain.AdAccount{ID: "A1", ExternalID: "act_1", Platform: domain.PlatformMeta, Status: domain.AdAccountStatusActive}
	campaign := &domain.Campaign{ID: "c1", AccountID: "act_1", Platform: domain.PlatformMeta, Budget: 500, BudgetType: domain.BudgetTypeDaily}
	anomaly := &domain.Anomaly{AnomalyID: "meta_new_campaign_act_1_c1_1705327200", Platform: domain.PlatformMeta, Category: domain.CategoryNewCampaign, CampaignID: "c1"}

	fetcher.EXPECT().FetchCampaigns(gomock.Any(), acct).Return([]*domain.Campaign{campaign}, nil)
	detector.EXPECT().Detect(gomock.Any(), acct, []*domain.Campaign{campaign}, gomock.Any()).Return(&detecting.Result{
		Snapshots: []*domain.CampaignSnapshot{{SnapshotID: "s1", CampaignID: "c1"}},
		States:    []*domain.CurrentState{{Platform: domain.PlatformMeta, AccountID: "act_1", CampaignID: "c1", CurrentBudget: 500}},
		Anomalies: []*domain.Anomaly{anomaly},
	}, nil)

	store := memory.NewStore()
	store.AddAccounts(acct)

	cfg := &config.Config{}
	cfg.BudgetMonitor.NotifyEnabled = true

	monitor := newDryRunMonitor(cfg, []scheduler.PlatformMonitor{{Fetcher: fetcher, Detector: detector}}, store)

	report, err := monitor.RunCycle(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Platforms, 1)
	assert.Equal(t, 1, report.TotalAnomalies())
	assert.False(t, report.Platforms[0].AlertSent)
	assert.True(t, cfg.BudgetMonitor.NotifyEnabled)

	assert.Len(t, store.Snapshots(), 1)

	state, err := store.GetState(context.Background(), domain.StateKey{Platform: domain.PlatformMeta, AccountID: "act_1", CampaignID: "c1"})
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 500.0, state.CurrentBudget)

	stored, err := store.ListAnomalies(context.Background(), domain.AnomalyFilters{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].AlertSent)
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    *domain.Platform
		wantErr bool
	}{
		{name: "Vazio sincroniza todas", value: ""},
		{name: "Meta em maiúsculas", value: "META", want: ptr(domain.PlatformMeta)},
		{name: "Google Ads", value: "google_ads", want: ptr(domain.PlatformGoogleAds)},
		{name: "Plataforma desconhecida", value: "tiktok", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePlatform(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAckCommand_ValidaArgumentos(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		// a ordem importa: o cobra não limpa flags entre execuções
		{name: "Sem autor", args: []string{"ack", "meta_budget_increase_critical_act_1_c1_1705327200"}},
		{name: "Sem ids", args: []string{"ack", "--by", "ana@empresa.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd.SetArgs(tt.args)
			err := rootCmd.ExecuteContext(context.Background())
			assert.Error(t, err)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
