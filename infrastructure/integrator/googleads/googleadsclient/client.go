package googleadsclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	googleadsdomain "github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const adsScope = "https://www.googleapis.com/auth/adwords"

const customerClientQuery = `SELECT customer_client.id, customer_client.descriptive_name, customer_client.currency_code,
  customer_client.time_zone, customer_client.status, customer_client.manager
FROM customer_client
WHERE customer_client.level >= 1 AND customer_client.status = 'ENABLED' AND customer_client.manager = false`

const campaignQuery = `SELECT customer.id, customer.currency_code, campaign.id, campaign.name, campaign.status,
  campaign.start_date, campaign.end_date, campaign_budget.id, campaign_budget.amount_micros,
  campaign_budget.total_amount_micros, campaign_budget.period
FROM campaign
WHERE campaign.status IN ('ENABLED', 'PAUSED')`

type Client interface {
	ListClientCustomers(ctx context.Context) ([]googleadsdomain.CustomerClient, error)
	SearchCampaigns(ctx context.Context, customerID string) ([]googleadsdomain.CampaignRow, error)
	LoginCustomerID() string
}

type GoogleAdsClient struct {
	baseURL         string
	developerToken  string
	loginCustomerID string
	httpClient      *http.Client
	limiter         *rate.Limiter
}

// NewClient autentica com o refresh token configurado. O http.Client devolvido
// pelo oauth2 renova o access token sozinho.
func NewClient(ctx context.Context, cfg config.GoogleAds) *GoogleAdsClient {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{adsScope},
	}

	tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	return NewClientWithHTTP(cfg, oauth2.NewClient(ctx, tokenSource))
}

func NewClientWithHTTP(cfg config.GoogleAds, httpClient *http.Client) *GoogleAdsClient {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &GoogleAdsClient{
		baseURL:         fmt.Sprintf("%s/%s", strings.TrimRight(cfg.BaseURL, "/"), cfg.Version),
		developerToken:  cfg.DeveloperToken,
		loginCustomerID: NormalizeCustomerID(cfg.LoginCustomerID),
		httpClient:      httpClient,
		limiter:         rate.NewLimiter(limit, 1),
	}
}

func (c *GoogleAdsClient) LoginCustomerID() string {
	return c.loginCustomerID
}

// ListClientCustomers lista as contas cliente ativas abaixo da conta gerenciadora
func (c *GoogleAdsClient) ListClientCustomers(ctx context.Context) ([]googleadsdomain.CustomerClient, error) {
	if c.loginCustomerID == "" {
		return nil, errors.New("GOOGLE_ADS_LOGIN_CUSTOMER_ID não configurado")
	}

	rows, err := searchStream[googleadsdomain.CustomerClientRow](ctx, c, c.loginCustomerID, customerClientQuery)
	if err != nil {
		return nil, err
	}

	customers := make([]googleadsdomain.CustomerClient, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, row.CustomerClient)
	}

	return customers, nil
}

// SearchCampaigns lista as campanhas habilitadas ou pausadas com seus orçamentos
func (c *GoogleAdsClient) SearchCampaigns(ctx context.Context, customerID string) ([]googleadsdomain.CampaignRow, error) {
	return searchStream[googleadsdomain.CampaignRow](ctx, c, NormalizeCustomerID(customerID), campaignQuery)
}

func searchStream[T any](ctx context.Context, c *GoogleAdsClient, customerID, query string) ([]T, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/customers/%s/googleAds:searchStream", c.baseURL, customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("developer-token", c.developerToken)
	if c.loginCustomerID != "" {
		req.Header.Set("login-customer-id", c.loginCustomerID)
	}

	body, err := utils.MakeRequest(ctx, c.httpClient, req)
	if err != nil {
		return nil, describeError(err)
	}

	var batches []googleadsdomain.SearchStreamBatch[T]
	if err := json.Unmarshal(body, &batches); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do searchStream: %w", err)
	}

	results := make([]T, 0)
	for _, batch := range batches {
		results = append(results, batch.Results...)
	}

	return results, nil
}

// NormalizeCustomerID remove os hífens do formato exibido (123-456-7890)
func NormalizeCustomerID(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), "-", "")
}

func describeError(err error) error {
	var statusErr *utils.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}

	// searchStream devolve erros como array de um elemento
	var wrapped []googleadsdomain.ErrorResponse
	if jsonErr := json.Unmarshal(statusErr.Body, &wrapped); jsonErr == nil && len(wrapped) > 0 {
		return fmt.Errorf("%w: %s", err, wrapped[0].String())
	}

	var single googleadsdomain.ErrorResponse
	if jsonErr := json.Unmarshal(statusErr.Body, &single); jsonErr == nil && single.Error.Code != 0 {
		return fmt.Errorf("%w: %s", err, single.String())
	}

	return fmt.Errorf("%w: %s", err, string(statusErr.Body))
}
