package warehouse

import (
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
)

type snapshotRow struct {
	SnapshotID             string                 `bigquery:"snapshot_id"`
	Platform               string                 `bigquery:"platform"`
	AccountID              string                 `bigquery:"account_id"`
	AccountName            string                 `bigquery:"account_name"`
	CampaignID             string                 `bigquery:"campaign_id"`
	CampaignName           string                 `bigquery:"campaign_name"`
	BudgetAmount           float64                `bigquery:"budget_amount"`
	BudgetType             string                 `bigquery:"budget_type"`
	Currency               string                 `bigquery:"currency"`
	Status                 string                 `bigquery:"status"`
	PreviousBudgetAmount   bigquery.NullFloat64   `bigquery:"previous_budget_amount"`
	BudgetChangePercentage bigquery.NullFloat64   `bigquery:"budget_change_percentage"`
	IsNewCampaign          bool                   `bigquery:"is_new_campaign"`
	TotalAdSets            bigquery.NullInt64     `bigquery:"total_adsets"`
	ActiveAdSets           bigquery.NullInt64     `bigquery:"active_adsets"`
	AdSetsWithActiveAds    bigquery.NullInt64     `bigquery:"adsets_with_active_ads"`
	DeliveryStatus         bigquery.NullString    `bigquery:"delivery_status"`
	CreatedAt              bigquery.NullTimestamp `bigquery:"created_at"`
	ObservedAt             time.Time              `bigquery:"observed_at"`
}

type anomalyRow struct {
	AnomalyID            string                 `bigquery:"anomaly_id"`
	Platform             string                 `bigquery:"platform"`
	AccountID            string                 `bigquery:"account_id"`
	AccountName          string                 `bigquery:"account_name"`
	CampaignID           string                 `bigquery:"campaign_id"`
	CampaignName         string                 `bigquery:"campaign_name"`
	AnomalyCategory      string                 `bigquery:"anomaly_category"`
	PreviousBudget       float64                `bigquery:"previous_budget"`
	CurrentBudget        float64                `bigquery:"current_budget"`
	BudgetType           string                 `bigquery:"budget_type"`
	Currency             string                 `bigquery:"currency"`
	IncreaseRatio        bigquery.NullFloat64   `bigquery:"increase_ratio"`
	MonthlyImpact        float64                `bigquery:"monthly_impact"`
	ImpactLevel          string                 `bigquery:"impact_level"`
	SmartThresholdUsed   bigquery.NullString    `bigquery:"smart_threshold_used"`
	RiskScore            float64                `bigquery:"risk_score"`
	Message              string                 `bigquery:"message"`
	DeliveryStatus       bigquery.NullString    `bigquery:"delivery_status"`
	DetectedTime         time.Time              `bigquery:"detected_time"`
	BusinessHoursContext string                 `bigquery:"business_hours_context"`
	Acknowledged         bool                   `bigquery:"acknowledged"`
	AcknowledgedBy       bigquery.NullString    `bigquery:"acknowledged_by"`
	AcknowledgedAt       bigquery.NullTimestamp `bigquery:"acknowledged_at"`
	AcknowledgmentNote   bigquery.NullString    `bigquery:"acknowledgment_note"`
	FalsePositive        bool                   `bigquery:"false_positive"`
	AlertSent            bool                   `bigquery:"alert_sent"`
	AlertSentAt          bigquery.NullTimestamp `bigquery:"alert_sent_at"`
}

func toSnapshotRow(s *domain.CampaignSnapshot) *snapshotRow {
	return &snapshotRow{
		SnapshotID:             s.SnapshotID,
		Platform:               string(s.Platform),
		AccountID:              s.AccountID,
		AccountName:            s.AccountName,
		CampaignID:             s.CampaignID,
		CampaignName:           s.CampaignName,
		BudgetAmount:           s.BudgetAmount,
		BudgetType:             string(s.BudgetType),
		Currency:               s.Currency,
		Status:                 s.Status,
		PreviousBudgetAmount:   nullFloat(s.PreviousBudgetAmount),
		BudgetChangePercentage: nullFloat(s.BudgetChangePercentage),
		IsNewCampaign:          s.IsNewCampaign,
		TotalAdSets:            nullInt(s.TotalAdSets),
		ActiveAdSets:           nullInt(s.ActiveAdSets),
		AdSetsWithActiveAds:    nullInt(s.AdSetsWithActiveAds),
		DeliveryStatus:         bigquery.NullString{StringVal: string(s.DeliveryStatus), Valid: s.DeliveryStatus != ""},
		CreatedAt:              nullTimestamp(s.CreatedAt),
		ObservedAt:             s.ObservedAt,
	}
}

// toAnomalyRow grava increase_ratio nulo para campanhas novas (razão infinita)
func toAnomalyRow(a *domain.Anomaly) *anomalyRow {
	return &anomalyRow{
		AnomalyID:            a.AnomalyID,
		Platform:             string(a.Platform),
		AccountID:            a.AccountID,
		AccountName:          a.AccountName,
		CampaignID:           a.CampaignID,
		CampaignName:         a.CampaignName,
		AnomalyCategory:      string(a.Category),
		PreviousBudget:       a.PreviousBudget,
		CurrentBudget:        a.CurrentBudget,
		BudgetType:           string(a.BudgetType),
		Currency:             a.Currency,
		IncreaseRatio:        nullFloat(a.RatioOrNil()),
		MonthlyImpact:        a.MonthlyImpact,
		ImpactLevel:          string(a.ImpactLevel),
		SmartThresholdUsed:   bigquery.NullString{StringVal: a.ThresholdUsed, Valid: a.ThresholdUsed != ""},
		RiskScore:            a.RiskScore,
		Message:              a.Message,
		DeliveryStatus:       bigquery.NullString{StringVal: string(a.DeliveryStatus), Valid: a.DeliveryStatus != ""},
		DetectedTime:         a.DetectedTime,
		BusinessHoursContext: string(a.BusinessHoursContext),
		Acknowledged:         a.Acknowledged,
		AcknowledgedBy:       nullString(a.AcknowledgedBy),
		AcknowledgedAt:       nullTimestamp(a.AcknowledgedAt),
		AcknowledgmentNote:   nullString(a.AcknowledgmentNote),
		FalsePositive:        a.FalsePositive,
		AlertSent:            a.AlertSent,
		AlertSentAt:          nullTimestamp(a.AlertSentAt),
	}
}

func nullFloat(v *float64) bigquery.NullFloat64 {
	if v == nil {
		return bigquery.NullFloat64{}
	}
	return bigquery.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) bigquery.NullInt64 {
	if v == nil {
		return bigquery.NullInt64{}
	}
	return bigquery.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) bigquery.NullString {
	if v == nil {
		return bigquery.NullString{}
	}
	return bigquery.NullString{StringVal: *v, Valid: true}
}

func nullTimestamp(v *time.Time) bigquery.NullTimestamp {
	if v == nil {
		return bigquery.NullTimestamp{}
	}
	return bigquery.NullTimestamp{Timestamp: *v, Valid: true}
}
