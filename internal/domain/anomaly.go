package domain

import (
	"math"
	"time"

	jsoniter "github.com/json-iterator/go"
)

type Category string

const (
	CategoryNewCampaign            Category = "new_campaign"
	CategoryBudgetIncreaseWarning  Category = "budget_increase_warning"
	CategoryBudgetIncreaseCritical Category = "budget_increase_critical"
	CategoryZombieCampaign         Category = "zombie_campaign"
)

var Categories = []Category{
	CategoryBudgetIncreaseCritical,
	CategoryZombieCampaign,
	CategoryNewCampaign,
	CategoryBudgetIncreaseWarning,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryNewCampaign, CategoryBudgetIncreaseWarning, CategoryBudgetIncreaseCritical, CategoryZombieCampaign:
		return true
	}
	return false
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Severity agrupa as categorias para apresentação nos alertas
func (c Category) Severity() Severity {
	switch c {
	case CategoryBudgetIncreaseCritical, CategoryZombieCampaign:
		return SeverityCritical
	case CategoryBudgetIncreaseWarning:
		return SeverityWarning
	case CategoryNewCampaign:
		return SeverityInfo
	default:
		return SeverityInfo
	}
}

type ImpactLevel string

const (
	ImpactHigh    ImpactLevel = "HIGH"
	ImpactMedium  ImpactLevel = "MEDIUM"
	ImpactLow     ImpactLevel = "LOW"
	ImpactMinimal ImpactLevel = "MINIMAL"
)

type BusinessHoursContext string

const (
	BusinessHours BusinessHoursContext = "business_hours"
	AfterHours    BusinessHoursContext = "after_hours"
)

// Anomaly é uma condição detectada que exige atenção de um operador.
// PreviousBudget é 0 e IncreaseRatio é +Inf somente para new_campaign.
type Anomaly struct {
	AnomalyID            string               `json:"anomaly_id"`
	Platform             Platform             `json:"platform"`
	AccountID            string               `json:"account_id"`
	AccountName          string               `json:"account_name"`
	CampaignID           string               `json:"campaign_id"`
	CampaignName         string               `json:"campaign_name"`
	Category             Category             `json:"anomaly_category"`
	PreviousBudget       float64              `json:"previous_budget"`
	CurrentBudget        float64              `json:"current_budget"`
	BudgetType           BudgetType           `json:"budget_type"`
	Currency             string               `json:"currency"`
	IncreaseRatio        float64              `json:"increase_ratio"`
	MonthlyImpact        float64              `json:"monthly_impact"`
	ImpactLevel          ImpactLevel          `json:"impact_level"`
	ThresholdUsed        string               `json:"smart_threshold_used,omitempty"`
	RiskScore            float64              `json:"risk_score"`
	Message              string               `json:"message"`
	DeliveryStatus       DeliveryStatus       `json:"delivery_status,omitempty"`
	DetectedTime         time.Time            `json:"detected_time"`
	BusinessHoursContext BusinessHoursContext `json:"business_hours_context"`
	Acknowledged         bool                 `json:"acknowledged"`
	AcknowledgedBy       *string              `json:"acknowledged_by"`
	AcknowledgedAt       *time.Time           `json:"acknowledged_at"`
	AcknowledgmentNote   *string              `json:"acknowledgment_note"`
	FalsePositive        bool                 `json:"false_positive"`
	AlertSent            bool                 `json:"alert_sent"`
	AlertSentAt          *time.Time           `json:"alert_sent_at"`
}

// IsNewCampaign indica o marcador de campanha nova (razão infinita)
func (a *Anomaly) IsNewCampaign() bool {
	return a.Category == CategoryNewCampaign
}

// RatioOrNil retorna nil quando a razão é infinita, pois nem JSON nem o
// banco representam +Inf de forma portável.
func (a *Anomaly) RatioOrNil() *float64 {
	if math.IsInf(a.IncreaseRatio, 0) || math.IsNaN(a.IncreaseRatio) {
		return nil
	}
	r := a.IncreaseRatio
	return &r
}

type anomalyAlias Anomaly

// MarshalJSON serializa increase_ratio como null para campanhas novas e
// acrescenta a severidade derivada da categoria
func (a Anomaly) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(&struct {
		*anomalyAlias
		IncreaseRatio *float64 `json:"increase_ratio"`
		Severity      Severity `json:"severity"`
	}{
		anomalyAlias:  (*anomalyAlias)(&a),
		IncreaseRatio: a.RatioOrNil(),
		Severity:      a.Category.Severity(),
	})
}

// AnomalyFilters filtra a listagem de anomalias do dashboard
type AnomalyFilters struct {
	Platform     *Platform
	Category     *Category
	AccountID    *string
	Acknowledged *bool
	Since        *time.Time
	Until        *time.Time
	Limit        uint64
}

// Acknowledgment é a confirmação (ou marcação de falso positivo) de anomalias
type Acknowledgment struct {
	AnomalyIDs    []string
	By            string
	Note          string
	FalsePositive bool
	At            time.Time
}

// AnomalySummary agrega contagens por plataforma e categoria
type AnomalySummary struct {
	Platform       Platform `json:"platform"`
	Category       Category `json:"anomaly_category"`
	Total          int      `json:"total"`
	Acknowledged   int      `json:"acknowledged"`
	FalsePositives int      `json:"false_positives"`
	MaxBudget      float64  `json:"max_budget"`
}
