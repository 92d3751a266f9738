package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/utils"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxPages limita a paginação de uma listagem
const maxPages = 50

type Client interface {
	GetBusinesses(ctx context.Context) ([]metadomain.BusinessManager, error)
	GetAdAccountsByBusinessID(ctx context.Context, businessID string) ([]metadomain.AdAccount, error)
	GetAdCampaignByAccountID(ctx context.Context, accountID string) ([]metadomain.Campaign, error)
	GetAdSetsByCampaignID(ctx context.Context, campaignID string) ([]metadomain.AdSet, error)
	GetAdsByAdSetID(ctx context.Context, adSetID string, limit int) ([]metadomain.Ad, error)
}

type MetaClient struct {
	apiURL       string
	tokenManager *TokenManager
	httpClient   *http.Client
	limiter      *rate.Limiter
}

func NewClient(cfg config.Meta, tokenManager *TokenManager, httpClient *http.Client) *MetaClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &MetaClient{
		apiURL:       strings.TrimRight(cfg.URL, "/"),
		tokenManager: tokenManager,
		httpClient:   httpClient,
		limiter:      rate.NewLimiter(limit, 1),
	}
}

// get faz uma chamada à Graph API respeitando o limite de requisições. Em caso
// de token expirado o token é renovado e a chamada é repetida uma única vez.
func (c *MetaClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	body, err := c.doGet(ctx, path, params)
	if errors.Is(err, ErrTokenRefreshed) {
		logrus.WithField("path", path).Info("Repetindo chamada após renovação do token")
		return c.doGet(ctx, path, params)
	}
	return body, err
}

func (c *MetaClient) doGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if err := c.tokenManager.EnsureValidToken(ctx); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("access_token", c.tokenManager.AccessToken())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/"+strings.TrimLeft(path, "/")+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	body, err := utils.MakeRequest(ctx, c.httpClient, req)
	if err == nil {
		return body, nil
	}

	var statusErr *utils.StatusError
	if errors.As(err, &statusErr) {
		var errorResp metadomain.ErrorResponse
		if jsonErr := json.Unmarshal(statusErr.Body, &errorResp); jsonErr == nil && errorResp.IsTokenExpired() {
			return nil, c.tokenManager.HandleExpiredToken(ctx)
		}
	}

	return nil, describeError(err)
}

// getAll percorre as páginas de uma listagem seguindo o cursor after
func getAll[T any](ctx context.Context, c *MetaClient, path string, params url.Values) ([]T, error) {
	results := make([]T, 0)

	for page := 0; page < maxPages; page++ {
		body, err := c.get(ctx, path, params)
		if err != nil {
			return nil, err
		}

		var response metadomain.Page[T]
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("erro ao decodificar resposta de %s: %w", path, err)
		}

		results = append(results, response.Data...)

		if response.Paging.Next == "" || response.Paging.Cursors.After == "" {
			return results, nil
		}

		params.Set("after", response.Paging.Cursors.After)
	}

	logrus.WithField("path", path).Warn("Limite de páginas atingido na listagem do Meta")

	return results, nil
}

// describeError troca o corpo bruto do erro pela mensagem da Graph API
func describeError(err error) error {
	var statusErr *utils.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}

	var errorResp metadomain.ErrorResponse
	if jsonErr := json.Unmarshal(statusErr.Body, &errorResp); jsonErr != nil || errorResp.Error.Message == "" {
		return fmt.Errorf("%w: %s", err, string(statusErr.Body))
	}

	return fmt.Errorf("%w: %s", err, errorResp.Error.String())
}
