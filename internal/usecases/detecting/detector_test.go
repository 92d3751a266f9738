package detecting

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/detecting/mocks"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/thresholding"
	"go.uber.org/mock/gomock"
)

var toronto = time.FixedZone("EST", -5*3600)

func testConfig() Config {
	return Config{
		DeliveryCheckFloor: 5000,
		ZombieRiskScore:    0.8,
		BusinessHoursStart: 8,
		BusinessHoursEnd:   18,
		Location:           toronto,
	}
}

func metaCampaign(id string, budget float64, budgetType domain.BudgetType) *domain.Campaign {
	return &domain.Campaign{
		ID:          id,
		Name:        "Campanha " + id,
		AccountID:   "act_1",
		AccountName: "Loja Centro",
		Platform:    domain.PlatformMeta,
		Budget:      budget,
		BudgetType:  budgetType,
		Currency:    "CAD",
		Status:      "ACTIVE",
	}
}

func stateKey(id string) domain.StateKey {
	return domain.StateKey{Platform: domain.PlatformMeta, AccountID: "act_1", CampaignID: id}
}

func TestDetector_Detect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStates := mocks.NewMockStateReader(ctrl)
	mockDelivery := mocks.NewMockDeliveryChecker(ctrl)

	detector := NewDetector(thresholding.DefaultPolicy(), mockStates, mockDelivery, testConfig())

	// 14:00 UTC = 09:00 no fuso configurado
	now := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	account := &domain.AdAccount{ID: "abc123", ExternalID: "act_1", Name: "Loja Centro", Platform: domain.PlatformMeta}

	tests := []struct {
		name      string
		campaigns []*domain.Campaign
		setup     func()
		validate  func(t *testing.T, result *Result, err error)
	}{
		{
			name:      "Campanha nova acima do piso diário gera new_campaign",
			campaigns: []*domain.Campaign{metaCampaign("c1", 200, domain.BudgetTypeDaily)},
			setup: func() {
				mockStates.EXPECT().GetState(gomock.Any(), stateKey("c1")).Return(nil, nil)
			},
			validate: func(t *testing.T, result *Result, err error) {
				require.NoError(t, err)
				require.Len(t, result.Anomalies, 1)
				anomaly := result.Anomalies[0]
				assert.Equal(t, domain.CategoryNewCampaign, anomaly.Category)
				assert.Equal(t, 0.0, anomaly.PreviousBudget)
				assert.True(t, math.IsInf(anomaly.IncreaseRatio, 1))
				assert.Equal(t, domain.BusinessHours, anomaly.BusinessHoursContext)
				assert.Equal(t, "meta_new_campaign_act_1_c1_1705327200", anomaly.AnomalyID)

				require.Len(t, result.Snapshots, 1)
				assert.True(t, result.Snapshots[0].IsNewCampaign)
				assert.Nil(t, result.Snapshots[0].PreviousBudgetAmount)

				require.Len(t, result.States, 1)
				assert.Equal(t, 200.0, result.States[0].CurrentBudget)
				assert.Equal(t, now, result.States[0].LastUpdated)
			},
		},
		{
			name:      "Campanha nova abaixo do piso não gera anomalia mas grava estado",
			campaigns: []*domain.Campaign{metaCampaign("c2", 100, domain.BudgetTypeDaily)},
			setup: func() {
				mockStates.EXPECT().GetState(gomock.Any(), stateKey("c2")).Return(nil, nil)
			},
			validate: func(t *testing.T, result *Result, err error) {
				require.NoError(t, err)
				assert.Empty(t, result.Anomalies)
				assert.Len(t, result.Snapshots, 1)
				assert.Len(t, result.States, 1)
			},
		},
		{
			name:      "Aumento 1000 para 2100 diário escala para crítico",
			campaigns: []*domain.Campaign{metaCampaign("c3", 2100, domain.BudgetTypeDaily)},
			setup: func() {
				mockStates.EXPECT().GetState(gomock.Any(), stateKey("c3")).Return(&domain.CurrentState{
					Platform: domain.PlatformMeta, AccountID: "act_1", CampaignID: "c3", CurrentBudget: 1000,
				}, nil)
			},
			validate: func(t *testing.T, result *Result, err error) {
				require.NoError(t, err)
				require.Len(t, result.Anomalies, 1)
				anomaly := result.Anomalies[0]
				assert.Equal(t, domain.CategoryBudgetIncreaseCritical, anomaly.Category)
				assert.Equal(t, 1000.0, anomaly.PreviousBudget)
				assert.InDelta(t, 2.1, anomaly.IncreaseRatio, 0.0001)
				assert.Equal(t, domain.ImpactHigh, anomaly.ImpactLevel)
				assert.Equal(t, "Warning: 2x, Critical: 3x", anomaly.ThresholdUsed)

				snapshot := result.Snapshots[0]
				require.NotNil(t, snapshot.PreviousBudgetAmount)
				assert.Equal(t, 1000.0, *snapshot.PreviousBudgetAmount)
				require.NotNil(t, snapshot.BudgetChangePercentage)
				assert.InDelta(t, 110.0, *snapshot.BudgetChangePercentage, 0.0001)
			},
		},
		{
			name: "Campanha encerrada é ignorada",
			campaigns: func() []*domain.Campaign {
				c := metaCampaign("c4", 9000, domain.BudgetTypeDaily)
				stop := now.Add(-time.Hour)
				c.StopTime = &stop
				return []*domain.Campaign{c}
			}(),
			setup: func() {},
			validate: func(t *testing.T, result *Result, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, result.Ended)
				assert.Empty(t, result.Snapshots)
				assert.Empty(t, result.States)
			},
		},
		{
			name: "Tipo de orçamento desconhecido rejeita só a campanha",
			campaigns: []*domain.Campaign{
				metaCampaign("c5", 500, "WEEKLY"),
				metaCampaign("c6", 300, domain.BudgetTypeDaily),
			},
			setup: func() {
				mockStates.EXPECT().GetState(gomock.Any(), stateKey("c5")).Return(nil, nil)
				mockStates.EXPECT().GetState(gomock.Any(), stateKey("c6")).Return(nil, nil)
			},
			validate: func(t *testing.T, result *Result, err error) {
				require.NoError(t, err)
				require.Len(t, result.Rejected, 1)
				assert.Equal(t, "c5", result.Rejected[0].Campaign.ID)
				assert.True(t, thresholding.IsClassificationInputError(result.Rejected[0].Err))
				require.Len(t, result.Anomalies, 1)
				assert.Equal(t, "c6", result.Anomalies[0].CampaignID)
			},
		},
		{
			name:      "Erro no estado interrompe a conta",
			campaigns: []*domain.Campaign{metaCampaign("c7", 300, domain.BudgetTypeDaily)},
			setup: func() {
				mockStates.EXPECT().GetState(gomock.Any(), stateKey("c7")).Return(nil, errors.New("connection refused"))
			},
			validate: func(t *testing.T, result *Result, err error) {
				require.Error(t, err)
				assert.Nil(t, result)
				assert.Contains(t, err.Error(), "connection refused")
			},
		},
		{
			name:      "Campanha sem anúncios ativos gera zumbi além de campanha nova",
			campaigns: []*domain.Campaign{metaCampaign("c8", 6000, domain.BudgetTypeLifetime)},
			setup: func() {
				mockStates.EXPECT().GetState(gomock.Any(), stateKey("c8")).Return(nil, nil)
				mockDelivery.EXPECT().CheckDelivery(gomock.Any(), gomock.Any()).Return(&domain.DeliveryCheck{
					TotalAdSets:         2,
					ActiveAdSets:        1,
					AdSetsWithActiveAds: 0,
					Status:              domain.DeliveryStatusNoActiveAds,
				}, nil)
			},
			validate: func(t *testing.T, result *Result, err error) {
				require.NoError(t, err)
				require.Len(t, result.Anomalies, 2)
				assert.Equal(t, domain.CategoryNewCampaign, result.Anomalies[0].Category)

				zombie := result.Anomalies[1]
				assert.Equal(t, domain.CategoryZombieCampaign, zombie.Category)
				assert.Equal(t, 0.8, zombie.RiskScore)
				assert.Equal(t, 6000.0, zombie.PreviousBudget)
				assert.Equal(t, 1.0, zombie.IncreaseRatio)
				assert.Equal(t, "Campaign cannot deliver: No active ads", zombie.Message)
				assert.NotEqual(t, result.Anomalies[0].AnomalyID, zombie.AnomalyID)

				snapshot := result.Snapshots[0]
				assert.Equal(t, domain.DeliveryStatusNoActiveAds, snapshot.DeliveryStatus)
				require.NotNil(t, snapshot.TotalAdSets)
				assert.Equal(t, 2, *snapshot.TotalAdSets)
			},
		},
		{
			name:      "Falha na checagem de veiculação não gera anomalia",
			campaigns: []*domain.Campaign{metaCampaign("c9", 7000, domain.BudgetTypeDaily)},
			setup: func() {
				mockStates.EXPECT().GetState(gomock.Any(), stateKey("c9")).Return(&domain.CurrentState{CurrentBudget: 7000}, nil)
				mockDelivery.EXPECT().CheckDelivery(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, result *Result, err error) {
				require.NoError(t, err)
				assert.Empty(t, result.Anomalies)
				assert.Equal(t, domain.DeliveryStatusCheckFailed, result.Snapshots[0].DeliveryStatus)
			},
		},
		{
			name: "Campanha não iniciada não consulta veiculação",
			campaigns: func() []*domain.Campaign {
				c := metaCampaign("c10", 8000, domain.BudgetTypeDaily)
				start := now.Add(48 * time.Hour)
				c.StartTime = &start
				return []*domain.Campaign{c}
			}(),
			setup: func() {
				mockStates.EXPECT().GetState(gomock.Any(), stateKey("c10")).Return(&domain.CurrentState{CurrentBudget: 8000}, nil)
			},
			validate: func(t *testing.T, result *Result, err error) {
				require.NoError(t, err)
				assert.Empty(t, result.Anomalies)
				assert.Equal(t, domain.DeliveryStatusNotStarted, result.Snapshots[0].DeliveryStatus)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			result, err := detector.Detect(context.Background(), account, tt.campaigns, now)
			tt.validate(t, result, err)
		})
	}
}

func TestDetector_Detect_IsIdempotentWithoutStateCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStates := mocks.NewMockStateReader(ctrl)
	detector := NewDetector(thresholding.DefaultPolicy(), mockStates, nil, testConfig())

	now := time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC)
	campaigns := []*domain.Campaign{
		metaCampaign("a", 300, domain.BudgetTypeDaily),
		metaCampaign("b", 450, domain.BudgetTypeDaily),
		metaCampaign("c", 90, domain.BudgetTypeDaily),
	}

	// nada é gravado entre as execuções
	mockStates.EXPECT().GetState(gomock.Any(), stateKey("a")).Return(nil, nil).Times(2)
	mockStates.EXPECT().GetState(gomock.Any(), stateKey("b")).Return(&domain.CurrentState{CurrentBudget: 150}, nil).Times(2)
	mockStates.EXPECT().GetState(gomock.Any(), stateKey("c")).Return(&domain.CurrentState{CurrentBudget: 100}, nil).Times(2)

	first, err := detector.Detect(context.Background(), nil, campaigns, now)
	require.NoError(t, err)
	second, err := detector.Detect(context.Background(), nil, campaigns, now)
	require.NoError(t, err)

	require.Len(t, first.Anomalies, 2)
	assert.Equal(t, first.Anomalies, second.Anomalies)
	assert.Equal(t, first.Snapshots, second.Snapshots)
	assert.Equal(t, domain.AfterHours, first.Anomalies[0].BusinessHoursContext)
}

func TestDetector_BusinessHoursContext(t *testing.T) {
	detector := NewDetector(thresholding.DefaultPolicy(), nil, nil, testConfig())

	tests := []struct {
		name     string
		at       time.Time
		expected domain.BusinessHoursContext
	}{
		{name: "08:00 local abre o expediente", at: time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC), expected: domain.BusinessHours},
		{name: "17:59 local ainda é expediente", at: time.Date(2024, 3, 1, 22, 59, 0, 0, time.UTC), expected: domain.BusinessHours},
		{name: "18:00 local fecha o expediente", at: time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC), expected: domain.AfterHours},
		{name: "madrugada", at: time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC), expected: domain.AfterHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.BusinessHoursContext(tt.at))
		})
	}
}
