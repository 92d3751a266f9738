package domain

import "time"

// StateKey identifica uma campanha monitorada
type StateKey struct {
	Platform   Platform
	AccountID  string
	CampaignID string
}

// CurrentState é a última situação conhecida de uma campanha, usada como base
// de comparação no ciclo seguinte.
type CurrentState struct {
	Platform      Platform   `json:"platform"`
	AccountID     string     `json:"account_id"`
	CampaignID    string     `json:"campaign_id"`
	CampaignName  string     `json:"campaign_name"`
	CurrentBudget float64    `json:"current_budget"`
	BudgetType    BudgetType `json:"budget_type"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	LastUpdated   time.Time  `json:"last_updated"`
}

func (s *CurrentState) Key() StateKey {
	return StateKey{Platform: s.Platform, AccountID: s.AccountID, CampaignID: s.CampaignID}
}

// IsStale indica que a campanha não aparece nas coletas desde antes de since
func (s *CurrentState) IsStale(since time.Time) bool {
	return s.LastUpdated.Before(since)
}

type StateFilters struct {
	Platform  *Platform
	AccountID *string
	// StaleBefore filtra estados não atualizados desde a data informada
	StaleBefore *time.Time
	Limit       uint64
}
