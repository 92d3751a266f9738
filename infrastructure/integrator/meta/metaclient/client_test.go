package metaclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg config.Meta) *MetaClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.URL = server.URL
	tokenManager := NewTokenManager(cfg, server.Client())

	return NewClient(cfg, tokenManager, server.Client())
}

func TestMetaClient_GetAdCampaignByAccountID_Paging(t *testing.T) {
	var calls int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		assert.Equal(t, "/act_123/campaigns", r.URL.Path)
		assert.Equal(t, "token-1", r.URL.Query().Get("access_token"))
		assert.Equal(t, `["ACTIVE"]`, r.URL.Query().Get("effective_status"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("after") == "" {
			w.Write([]byte(`{"data":[{"id":"c1","name":"A","daily_budget":"1000"}],"paging":{"cursors":{"after":"cur1"},"next":"https://graph/next"}}`))
			return
		}

		assert.Equal(t, "cur1", r.URL.Query().Get("after"))
		w.Write([]byte(`{"data":[{"id":"c2","name":"B","lifetime_budget":"500000"}],"paging":{"cursors":{"after":"cur2"}}}`))
	}, config.Meta{AccessToken: "token-1"})

	campaigns, err := client.GetAdCampaignByAccountID(context.Background(), "123")
	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, "c1", campaigns[0].ID)
	assert.Equal(t, "500000", campaigns[1].LifetimeBudget)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestMetaClient_RetriesAfterTokenRefresh(t *testing.T) {
	var campaignCalls int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/access_token":
			assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
			w.Write([]byte(`{"access_token":"token-2","token_type":"bearer","expires_in":5184000}`))
		case "/c1/adsets":
			if atomic.AddInt32(&campaignCalls, 1) == 1 {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"message":"Error validating access token","type":"OAuthException","code":190}}`))
				return
			}
			assert.Equal(t, "token-2", r.URL.Query().Get("access_token"))
			w.Write([]byte(`{"data":[{"id":"as1","effective_status":"ACTIVE"}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, config.Meta{AccessToken: "token-1", LongLivedToken: "token-1", AppID: "app", AppSecret: "secret"})

	adSets, err := client.GetAdSetsByCampaignID(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, adSets, 1)
	assert.True(t, adSets[0].IsActive())
	assert.Equal(t, "token-2", client.tokenManager.AccessToken())
	assert.True(t, client.tokenManager.ExpiresAt().After(time.Now().Add(24*time.Hour)))
}

func TestMetaClient_ErrorDescribesGraphMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"Application request limit reached","type":"OAuthException","code":4}}`))
	}, config.Meta{AccessToken: "token-1"})

	_, err := client.GetAdsByAdSetID(context.Background(), "as1", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Application request limit reached")
	assert.Contains(t, err.Error(), "status: 403")
}

func TestCalculateTokenExpiration(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(59*24*time.Hour), CalculateTokenExpiration(now, 60*24*60*60))
	assert.Equal(t, now.Add(30*time.Minute), CalculateTokenExpiration(now, 60*60))
	assert.Equal(t, "1 dias, 2 horas e 3 minutos", FormatDuration(26*60*60+3*60))
}
