package googleadsdomain

import (
	"strconv"
	"time"
)

const (
	BudgetPeriodDaily        = "DAILY"
	BudgetPeriodCustomPeriod = "CUSTOM_PERIOD"

	CustomerStatusEnabled = "ENABLED"
)

// SearchStreamBatch é cada elemento do array devolvido por googleAds:searchStream
type SearchStreamBatch[T any] struct {
	Results   []T    `json:"results"`
	FieldMask string `json:"fieldMask"`
	RequestID string `json:"requestId"`
}

// CustomerClientRow é uma conta cliente abaixo da conta gerenciadora
type CustomerClientRow struct {
	CustomerClient CustomerClient `json:"customerClient"`
}

type CustomerClient struct {
	ID              string `json:"id"`
	DescriptiveName string `json:"descriptiveName"`
	CurrencyCode    string `json:"currencyCode"`
	TimeZone        string `json:"timeZone"`
	Status          string `json:"status"`
	Manager         bool   `json:"manager"`
}

// CampaignRow une campanha, orçamento e cliente. A API REST envia int64 como
// string.
type CampaignRow struct {
	Customer       Customer       `json:"customer"`
	Campaign       Campaign       `json:"campaign"`
	CampaignBudget CampaignBudget `json:"campaignBudget"`
}

type Customer struct {
	ID           string `json:"id"`
	CurrencyCode string `json:"currencyCode"`
}

type Campaign struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type CampaignBudget struct {
	ID                string `json:"id"`
	AmountMicros      string `json:"amountMicros"`
	TotalAmountMicros string `json:"totalAmountMicros"`
	Period            string `json:"period"`
}

// Micros retorna o valor em micros e se o orçamento é diário. Orçamentos de
// período customizado usam totalAmountMicros.
func (b *CampaignBudget) Micros() (micros int64, daily bool, ok bool) {
	if b.Period == BudgetPeriodCustomPeriod {
		v, err := strconv.ParseInt(b.TotalAmountMicros, 10, 64)
		return v, false, err == nil && v > 0
	}

	v, err := strconv.ParseInt(b.AmountMicros, 10, 64)
	return v, true, err == nil && v > 0
}

// ParseDate converte as datas YYYY-MM-DD da API. Retorna nil para vazio.
func ParseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil
	}
	return &t
}
