package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	metadomain "github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/meta/domain"
)

const campaignFields = "id,name,status,effective_status,daily_budget,lifetime_budget,created_time,start_time,stop_time"

// GetAdCampaignByAccountID lista as campanhas ativas da conta (id sem o prefixo act_)
func (c *MetaClient) GetAdCampaignByAccountID(ctx context.Context, accountID string) ([]metadomain.Campaign, error) {
	params := url.Values{}
	params.Add("fields", campaignFields)
	params.Add("effective_status", `["ACTIVE"]`)
	params.Add("limit", "500")

	return getAll[metadomain.Campaign](ctx, c, fmt.Sprintf("act_%s/campaigns", accountID), params)
}

// GetAdSetsByCampaignID lista os conjuntos de anúncios da campanha
func (c *MetaClient) GetAdSetsByCampaignID(ctx context.Context, campaignID string) ([]metadomain.AdSet, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status,effective_status")
	params.Add("limit", "100")

	return getAll[metadomain.AdSet](ctx, c, fmt.Sprintf("%s/adsets", campaignID), params)
}

// GetAdsByAdSetID lista no máximo limit anúncios do conjunto, sem paginar
func (c *MetaClient) GetAdsByAdSetID(ctx context.Context, adSetID string, limit int) ([]metadomain.Ad, error) {
	params := url.Values{}
	params.Add("fields", "id,effective_status")
	params.Add("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, fmt.Sprintf("%s/ads", adSetID), params)
	if err != nil {
		return nil, err
	}

	var response metadomain.Page[metadomain.Ad]
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar anúncios: %w", err)
	}

	return response.Data, nil
}
