package metadomain

import (
	"strconv"
	"strings"
	"time"
)

// EffectiveStatusActive é o único effective_status que veicula
const EffectiveStatusActive = "ACTIVE"

// metaTimeLayout é o formato de data da Graph API, ex: 2024-01-15T10:00:00-0500
const metaTimeLayout = "2006-01-02T15:04:05-0700"

// Campaign traz os orçamentos em centavos, como string
type Campaign struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	DailyBudget     string `json:"daily_budget"`
	LifetimeBudget  string `json:"lifetime_budget"`
	CreatedTime     string `json:"created_time"`
	StartTime       string `json:"start_time"`
	StopTime        string `json:"stop_time"`
}

// BudgetCents retorna o orçamento em centavos e se ele é diário. Campanhas com
// orçamento no conjunto de anúncios (CBO desligado) retornam ok=false.
func (c *Campaign) BudgetCents() (cents int64, daily bool, ok bool) {
	if v, err := parseCents(c.DailyBudget); err == nil && v > 0 {
		return v, true, true
	}
	if v, err := parseCents(c.LifetimeBudget); err == nil && v > 0 {
		return v, false, true
	}
	return 0, false, false
}

func parseCents(value string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(value), 10, 64)
}

// ParseTime converte as datas da Graph API. Retorna nil para vazio ou inválido.
func ParseTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{metaTimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

type AdSet struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
}

func (a *AdSet) IsActive() bool {
	return a.EffectiveStatus == EffectiveStatusActive
}

type Ad struct {
	ID              string `json:"id"`
	EffectiveStatus string `json:"effective_status"`
}

func (a *Ad) IsActive() bool {
	return a.EffectiveStatus == EffectiveStatusActive
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// Page é o envelope de listas da Graph API
type Page[T any] struct {
	Data   []T    `json:"data"`
	Paging Paging `json:"paging"`
}
