package memory

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
)

func TestStore_StateRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	key := domain.StateKey{Platform: domain.PlatformMeta, AccountID: "act_1", CampaignID: "c1"}

	state, err := store.GetState(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, state, "estado ausente não é erro")

	committed := &domain.CurrentState{
		Platform:      domain.PlatformMeta,
		AccountID:     "act_1",
		CampaignID:    "c1",
		CampaignName:  "Black Friday",
		CurrentBudget: 350.5,
		BudgetType:    domain.BudgetTypeDaily,
		Currency:      "BRL",
		Status:        "ACTIVE",
		LastUpdated:   time.Date(2024, 11, 20, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.UpsertStates(ctx, []*domain.CurrentState{committed}))

	got, err := store.GetState(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 350.5, got.CurrentBudget)
	assert.Equal(t, "ACTIVE", got.Status)
	assert.Equal(t, committed.LastUpdated, got.LastUpdated)

	// substituição completa na segunda gravação
	updated := *committed
	updated.CurrentBudget = 900
	updated.Status = "PAUSED"
	updated.LastUpdated = committed.LastUpdated.Add(time.Hour)
	require.NoError(t, store.UpsertStates(ctx, []*domain.CurrentState{&updated}))

	got, err = store.GetState(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 900.0, got.CurrentBudget)
	assert.Equal(t, "PAUSED", got.Status)
	assert.Equal(t, updated.LastUpdated, got.LastUpdated)

	// o valor retornado é uma cópia
	got.CurrentBudget = 1
	again, _ := store.GetState(ctx, key)
	assert.Equal(t, 900.0, again.CurrentBudget)
}

func TestStore_ListStates_Stale(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := old.Add(48 * time.Hour)

	require.NoError(t, store.UpsertStates(ctx, []*domain.CurrentState{
		{Platform: domain.PlatformMeta, AccountID: "a", CampaignID: "sumiu", LastUpdated: old},
		{Platform: domain.PlatformMeta, AccountID: "a", CampaignID: "ativa", LastUpdated: recent},
	}))

	cutoff := old.Add(24 * time.Hour)
	stale, err := store.ListStates(ctx, domain.StateFilters{StaleBefore: &cutoff})
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "sumiu", stale[0].CampaignID)
}

func TestStore_Acknowledge_OnlyTouchesGivenIDs(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	detected := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.AppendAnomalies(ctx, []*domain.Anomaly{
		{AnomalyID: "a1", Platform: domain.PlatformMeta, Category: domain.CategoryNewCampaign, IncreaseRatio: math.Inf(1), CurrentBudget: 200, DetectedTime: detected},
		{AnomalyID: "a2", Platform: domain.PlatformMeta, Category: domain.CategoryBudgetIncreaseWarning, IncreaseRatio: 3, CurrentBudget: 300, DetectedTime: detected},
	}))

	before, err := store.GetAnomaliesByIDs(ctx, []string{"a2"})
	require.NoError(t, err)

	at := detected.Add(time.Hour)
	affected, err := store.Acknowledge(ctx, domain.Acknowledgment{
		AnomalyIDs: []string{"a1", "inexistente"},
		By:         "ops@empresa.com",
		Note:       "Acknowledged via Google Chat by Ops",
		At:         at,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := store.GetAnomaliesByIDs(ctx, []string{"a1", "a2"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	acked := got[0]
	assert.True(t, acked.Acknowledged)
	assert.Equal(t, "ops@empresa.com", *acked.AcknowledgedBy)
	assert.Equal(t, at, *acked.AcknowledgedAt)
	assert.False(t, acked.FalsePositive)
	assert.True(t, math.IsInf(acked.IncreaseRatio, 1))

	assert.Equal(t, before[0], got[1])
}

func TestStore_AppendAnomalies_IgnoresDuplicatedID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := &domain.Anomaly{AnomalyID: "dup", Message: "primeira"}
	second := &domain.Anomaly{AnomalyID: "dup", Message: "segunda"}
	require.NoError(t, store.AppendAnomalies(ctx, []*domain.Anomaly{first, second}))

	all, err := store.ListAnomalies(ctx, domain.AnomalyFilters{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "primeira", all[0].Message)
}

func TestStore_SummaryAndPeriods(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.AppendAnomalies(ctx, []*domain.Anomaly{
		{AnomalyID: "1", Platform: domain.PlatformMeta, Category: domain.CategoryZombieCampaign, CurrentBudget: 6000, DetectedTime: march},
		{AnomalyID: "2", Platform: domain.PlatformMeta, Category: domain.CategoryZombieCampaign, CurrentBudget: 8000, DetectedTime: april},
		{AnomalyID: "3", Platform: domain.PlatformGoogleAds, Category: domain.CategoryNewCampaign, CurrentBudget: 500, DetectedTime: april},
	}))
	_, err := store.Acknowledge(ctx, domain.Acknowledgment{AnomalyIDs: []string{"2"}, FalsePositive: true, At: april})
	require.NoError(t, err)

	summary, err := store.Summary(ctx, domain.AnomalyFilters{})
	require.NoError(t, err)
	require.Len(t, summary, 2)

	assert.Equal(t, domain.PlatformGoogleAds, summary[0].Platform)
	assert.Equal(t, domain.PlatformMeta, summary[1].Platform)
	assert.Equal(t, 2, summary[1].Total)
	assert.Equal(t, 1, summary[1].Acknowledged)
	assert.Equal(t, 1, summary[1].FalsePositives)
	assert.Equal(t, 8000.0, summary[1].MaxBudget)

	periods, err := store.AvailablePeriods(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"04-2024", "03-2024"}, periods.Periods)
}

func TestStore_ListAccounts(t *testing.T) {
	store := NewStore()
	store.AddAccounts(
		&domain.AdAccount{ID: "a1", Platform: domain.PlatformMeta, Status: domain.AdAccountStatusActive},
		&domain.AdAccount{ID: "a2", Platform: domain.PlatformMeta, Status: domain.AdAccountStatusInactive},
		&domain.AdAccount{ID: "a3", Platform: domain.PlatformGoogleAds, Status: domain.AdAccountStatusActive},
	)

	platform := domain.PlatformMeta
	accounts, err := store.ListAccounts(context.Background(), &platform, []domain.AdAccountStatus{domain.AdAccountStatusActive})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "a1", accounts[0].ID)

	all, err := store.ListAccounts(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
