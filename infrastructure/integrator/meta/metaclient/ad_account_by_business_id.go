package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/meta/domain"
)

// GetBusinesses lista os business managers acessíveis pelo token
func (c *MetaClient) GetBusinesses(ctx context.Context) ([]metadomain.BusinessManager, error) {
	params := url.Values{}
	params.Add("fields", "id,name")
	params.Add("limit", "100")

	return getAll[metadomain.BusinessManager](ctx, c, "me/businesses", params)
}

// GetAdAccountsByBusinessID lista as contas de anúncio de propriedade do business
func (c *MetaClient) GetAdAccountsByBusinessID(ctx context.Context, businessID string) ([]metadomain.AdAccount, error) {
	params := url.Values{}
	params.Add("fields", "id,account_id,name,account_status,currency,timezone_name")
	params.Add("limit", "100")

	return getAll[metadomain.AdAccount](ctx, c, fmt.Sprintf("%s/owned_ad_accounts", businessID), params)
}
