package domain

import (
	"strings"
	"time"
)

type Platform string

const (
	PlatformMeta      Platform = "meta"
	PlatformGoogleAds Platform = "google_ads"
)

// DisplayName retorna o nome exibido nos alertas
func (p Platform) DisplayName() string {
	switch p {
	case PlatformMeta:
		return "Meta Ads"
	case PlatformGoogleAds:
		return "Google Ads"
	default:
		return string(p)
	}
}

func (p Platform) IsValid() bool {
	return p == PlatformMeta || p == PlatformGoogleAds
}

// BudgetType indica se o orçamento é recorrente por dia ou um total fixo.
// As plataformas enviam variações (STANDARD, DAILY, ACCELERATED...) que
// são normalizadas por Normalize.
type BudgetType string

const (
	BudgetTypeDaily    BudgetType = "daily"
	BudgetTypeLifetime BudgetType = "lifetime"
)

// Normalize converte o tipo informado pela plataforma para daily ou lifetime.
// Retorna false para valores desconhecidos.
func (b BudgetType) Normalize() (BudgetType, bool) {
	switch strings.ToUpper(strings.TrimSpace(string(b))) {
	case "DAILY", "STANDARD":
		return BudgetTypeDaily, true
	case "LIFETIME", "ACCELERATED", "TOTAL":
		return BudgetTypeLifetime, true
	default:
		return b, false
	}
}

// Campaign é uma campanha como retornada pela plataforma, com orçamento já
// convertido para a unidade monetária (não centavos/micros).
type Campaign struct {
	ID          string     `json:"campaign_id"`
	Name        string     `json:"campaign_name"`
	AccountID   string     `json:"account_id"`
	AccountName string     `json:"account_name"`
	Platform    Platform   `json:"platform"`
	Budget      float64    `json:"budget_amount"`
	BudgetType  BudgetType `json:"budget_type"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	StopTime    *time.Time `json:"stop_time,omitempty"`
}

// HasEnded indica se a campanha possui data de término no passado
func (c *Campaign) HasEnded(now time.Time) bool {
	return c.StopTime != nil && c.StopTime.Before(now)
}

// HasStarted indica se a campanha já começou a veicular
func (c *Campaign) HasStarted(now time.Time) bool {
	return c.StartTime == nil || !c.StartTime.After(now)
}

// CampaignSnapshot é o registro imutável de uma campanha observada em um ciclo
type CampaignSnapshot struct {
	SnapshotID             string         `json:"snapshot_id"`
	Platform               Platform       `json:"platform"`
	AccountID              string         `json:"account_id"`
	AccountName            string         `json:"account_name"`
	CampaignID             string         `json:"campaign_id"`
	CampaignName           string         `json:"campaign_name"`
	BudgetAmount           float64        `json:"budget_amount"`
	BudgetType             BudgetType     `json:"budget_type"`
	Currency               string         `json:"currency"`
	Status                 string         `json:"status"`
	PreviousBudgetAmount   *float64       `json:"previous_budget_amount"`
	BudgetChangePercentage *float64       `json:"budget_change_percentage"`
	IsNewCampaign          bool           `json:"is_new_campaign"`
	TotalAdSets            *int           `json:"total_adsets,omitempty"`
	ActiveAdSets           *int           `json:"active_adsets,omitempty"`
	AdSetsWithActiveAds    *int           `json:"adsets_with_active_ads,omitempty"`
	DeliveryStatus         DeliveryStatus `json:"delivery_status,omitempty"`
	CreatedAt              *time.Time     `json:"created_at,omitempty"`
	ObservedAt             time.Time      `json:"observed_at"`
}
