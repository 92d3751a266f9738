package domain

import "time"

// BusinessManager é o agrupador das contas na plataforma: business no Meta,
// conta gerenciadora (MCC) no Google Ads.
type BusinessManager struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ExternalID string   `json:"external_id"`
	Platform   Platform `json:"platform"`
}

type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusInactive AdAccountStatus = "INACTIVE"
)

// AdAccount é uma conta de anúncios monitorada
type AdAccount struct {
	ID                  string          `json:"id"`
	ExternalID          string          `json:"external_id"`
	Name                string          `json:"name"`
	Nickname            *string         `json:"nickname"`
	Platform            Platform        `json:"platform"`
	Currency            string          `json:"currency"`
	Timezone            string          `json:"timezone,omitempty"`
	BusinessManagerID   string          `json:"business_id"`
	BusinessManagerName string          `json:"business_name"`
	Status              AdAccountStatus `json:"status"`
	UpdatedAt           *time.Time      `json:"updated_at,omitempty"`
}

// DisplayName prioriza o apelido configurado no dashboard
func (a *AdAccount) DisplayName() string {
	if a.Nickname != nil && *a.Nickname != "" {
		return *a.Nickname
	}
	return a.Name
}

type UpdateAdAccountRequest struct {
	ID       string  `json:"id"`
	Nickname *string `json:"nickname,omitempty"`
	Status   *string `json:"status,omitempty"`
}

type SyncAccountsResponse struct {
	Platform Platform `json:"platform"`
	Quantity int      `json:"quantity"`
	Message  string   `json:"message"`
	Error    bool     `json:"error"`
}
