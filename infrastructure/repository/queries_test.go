package repository

import (
	"database/sql"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
)

func TestGetStateQuery(t *testing.T) {
	query, args, err := getStateQuery(domain.StateKey{
		Platform:   domain.PlatformGoogleAds,
		AccountID:  "1234567890",
		CampaignID: "987",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "SELECT platform, account_id, campaign_id"))
	assert.Contains(t, query, "FROM campaign_current_state WHERE")
	assert.NotContains(t, query, "?")
	// squirrel.Eq ordena as chaves
	assert.Equal(t, []any{"1234567890", "987", domain.PlatformGoogleAds}, args)
}

func TestUpsertStatesQuery(t *testing.T) {
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	states := []*domain.CurrentState{
		{Platform: domain.PlatformMeta, AccountID: "act_1", CampaignID: "c1", CurrentBudget: 100, BudgetType: domain.BudgetTypeDaily, LastUpdated: now},
		{Platform: domain.PlatformMeta, AccountID: "act_1", CampaignID: "c2", CurrentBudget: 250, BudgetType: domain.BudgetTypeLifetime, LastUpdated: now},
	}

	query, args, err := upsertStatesQuery(states)
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO campaign_current_state")
	assert.Contains(t, query, "ON CONFLICT (platform, account_id, campaign_id) DO UPDATE SET")
	assert.Contains(t, query, "current_budget = EXCLUDED.current_budget")
	assert.Contains(t, query, "last_updated = EXCLUDED.last_updated")
	assert.Contains(t, query, "$18")
	require.Len(t, args, 18)
	assert.Equal(t, 250.0, args[13])
	assert.Equal(t, now, args[17])
}

func TestListStatesQuery(t *testing.T) {
	platform := domain.PlatformMeta
	staleBefore := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := listStatesQuery(domain.StateFilters{
		Platform:    &platform,
		StaleBefore: &staleBefore,
		Limit:       50,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "platform = $1")
	assert.Contains(t, query, "last_updated < $2")
	assert.Contains(t, query, "ORDER BY last_updated DESC, campaign_id ASC LIMIT 50")
	assert.Equal(t, []any{platform, staleBefore}, args)
}

func TestAppendAnomaliesQuery_StoresInfiniteRatioAsNull(t *testing.T) {
	anomalies := []*domain.Anomaly{
		{AnomalyID: "a1", Category: domain.CategoryNewCampaign, IncreaseRatio: math.Inf(1)},
		{AnomalyID: "a2", Category: domain.CategoryBudgetIncreaseWarning, IncreaseRatio: 2.5, ThresholdUsed: "Warning: 2x, Critical: 3x"},
	}

	query, args, err := appendAnomaliesQuery(anomalies)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(strings.TrimSpace(query), "ON CONFLICT (anomaly_id) DO NOTHING"))

	columns := len(anomalyColumns)
	require.Len(t, args, columns*2)

	ratioIdx := indexOf(anomalyColumns, "increase_ratio")
	assert.Nil(t, args[ratioIdx])
	require.NotNil(t, args[columns+ratioIdx])
	assert.Equal(t, 2.5, *(args[columns+ratioIdx].(*float64)))

	thresholdIdx := indexOf(anomalyColumns, "threshold_used")
	assert.Nil(t, args[thresholdIdx])
}

func TestAcknowledgeQuery(t *testing.T) {
	at := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)

	query, args, err := acknowledgeQuery(domain.Acknowledgment{
		AnomalyIDs:    []string{"x1", "x2"},
		By:            "ana@empresa.com",
		Note:          "Marked as false positive by Ana",
		FalsePositive: true,
		At:            at,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE budget_anomalies SET acknowledged = $1")
	assert.Contains(t, query, "WHERE anomaly_id IN ($6,$7)")
	assert.Equal(t, []any{true, "ana@empresa.com", at, "Marked as false positive by Ana", true, "x1", "x2"}, args)
}

func TestSummaryQuery(t *testing.T) {
	acknowledged := false
	query, args, err := summaryQuery(domain.AnomalyFilters{Acknowledged: &acknowledged})
	require.NoError(t, err)

	assert.Contains(t, query, "COUNT(*) FILTER (WHERE false_positive)")
	assert.Contains(t, query, "WHERE acknowledged = $1 GROUP BY platform, anomaly_category")
	assert.Equal(t, []any{false}, args)
}

func TestRatioFromNull(t *testing.T) {
	assert.True(t, math.IsInf(ratioFromNull(sql.NullFloat64{}, domain.CategoryNewCampaign), 1))
	assert.Equal(t, 0.0, ratioFromNull(sql.NullFloat64{}, domain.CategoryZombieCampaign))
	assert.Equal(t, 1.7, ratioFromNull(sql.NullFloat64{Float64: 1.7, Valid: true}, domain.CategoryBudgetIncreaseWarning))
}

func TestBuildAvailablePeriods(t *testing.T) {
	periods := BuildAvailablePeriods([]string{"11-2023", "02-2024", "12-2023", "01-2024"})

	assert.Equal(t, []string{"02-2024", "01-2024", "12-2023", "11-2023"}, periods.Periods)
	assert.Equal(t, []string{"2024", "2023"}, periods.Years)
	assert.Equal(t, []string{"01", "02", "11", "12"}, periods.Months)
}

func TestSaveAccountsQuery_SkipsUnknownBusinessManager(t *testing.T) {
	accounts := []*domain.AdAccount{
		{ID: "AbC123", ExternalID: "111", Name: "Loja", Platform: domain.PlatformMeta, BusinessManagerID: "bm1", Status: domain.AdAccountStatusActive},
		{ID: "XyZ789", ExternalID: "222", Name: "Outra", Platform: domain.PlatformMeta, BusinessManagerID: "bm-desconhecido"},
	}

	query, args, err := saveAccountsQuery(accounts, map[string]string{"meta:bm1": "internal-bm"})
	require.NoError(t, err)
	assert.Contains(t, query, "ON CONFLICT (external_id, platform) DO UPDATE SET")
	require.Len(t, args, 9)
	assert.Equal(t, "internal-bm", args[7])

	query, _, err = saveAccountsQuery(accounts[1:], map[string]string{})
	require.NoError(t, err)
	assert.Empty(t, query)
}

func indexOf(columns []string, column string) int {
	for i, c := range columns {
		if c == column {
			return i
		}
	}
	return -1
}
