package googleadsclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GoogleAdsClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClientWithHTTP(config.GoogleAds{
		BaseURL:         server.URL,
		Version:         "v18",
		DeveloperToken:  "dev-token",
		LoginCustomerID: "111-222-3333",
	}, server.Client())
}

func TestGoogleAdsClient_SearchCampaigns(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v18/customers/4445556666/googleAds:searchStream", r.URL.Path)
		assert.Equal(t, "dev-token", r.Header.Get("developer-token"))
		assert.Equal(t, "1112223333", r.Header.Get("login-customer-id"))

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "FROM campaign")
		assert.Contains(t, string(body), "campaign_budget.period")
		assert.NotContains(t, string(body), "delivery_method")

		w.Write([]byte(`[
			{"results":[{"customer":{"id":"4445556666","currencyCode":"CAD"},"campaign":{"id":"1","name":"Search","status":"ENABLED","startDate":"2024-01-15"},"campaignBudget":{"amountMicros":"250000000","period":"DAILY"}}]},
			{"results":[{"customer":{"id":"4445556666","currencyCode":"CAD"},"campaign":{"id":"2","name":"Evento","status":"PAUSED"},"campaignBudget":{"totalAmountMicros":"9000000000","period":"CUSTOM_PERIOD"}}]}
		]`))
	})

	rows, err := client.SearchCampaigns(context.Background(), "444-555-6666")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	micros, daily, ok := rows[0].CampaignBudget.Micros()
	assert.True(t, ok)
	assert.True(t, daily)
	assert.Equal(t, int64(250000000), micros)

	micros, daily, ok = rows[1].CampaignBudget.Micros()
	assert.True(t, ok)
	assert.False(t, daily)
	assert.Equal(t, int64(9000000000), micros)
}

func TestGoogleAdsClient_ListClientCustomers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v18/customers/1112223333/googleAds:searchStream", r.URL.Path)
		w.Write([]byte(`[{"results":[{"customerClient":{"id":"4445556666","descriptiveName":"Loja A","currencyCode":"CAD","status":"ENABLED"}}]}]`))
	})

	customers, err := client.ListClientCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Loja A", customers[0].DescriptiveName)
}

func TestGoogleAdsClient_ErrorMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`[{"error":{"code":403,"status":"PERMISSION_DENIED","message":"The caller does not have permission","details":[{"errors":[{"message":"User doesn't have permission to access customer."}]}]}}]`))
	})

	_, err := client.SearchCampaigns(context.Background(), "4445556666")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PERMISSION_DENIED")
	assert.Contains(t, err.Error(), "User doesn't have permission to access customer.")
}

func TestNormalizeCustomerID(t *testing.T) {
	assert.Equal(t, "1234567890", NormalizeCustomerID(" 123-456-7890 "))
}
