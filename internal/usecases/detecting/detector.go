package detecting

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/thresholding"
)

// Config reúne os parâmetros do detector que não pertencem à política
type Config struct {
	DeliveryCheckFloor float64
	ZombieRiskScore    float64
	BusinessHoursStart int
	BusinessHoursEnd   int
	Location           *time.Location
}

func ConfigFrom(cfg *config.Config) Config {
	return Config{
		DeliveryCheckFloor: cfg.Thresholds.DeliveryCheckFloor,
		ZombieRiskScore:    cfg.Thresholds.ZombieRiskScore,
		BusinessHoursStart: cfg.BusinessHours.Start,
		BusinessHoursEnd:   cfg.BusinessHours.End,
		Location:           cfg.BusinessHours.Location(),
	}
}

// Rejection registra uma campanha descartada por dados inválidos
type Rejection struct {
	Campaign *domain.Campaign
	Err      error
}

// Result é o produto de uma passagem do detector sobre uma conta
type Result struct {
	Snapshots []*domain.CampaignSnapshot
	States    []*domain.CurrentState
	Anomalies []*domain.Anomaly
	Rejected  []Rejection
	// Ended conta campanhas ignoradas por já terem terminado
	Ended int
}

type Detector struct {
	policy   thresholding.Policy
	states   StateReader
	delivery DeliveryChecker
	cfg      Config
}

// NewDetector cria o detector. delivery pode ser nil para desativar a
// verificação de campanhas zumbis.
func NewDetector(policy thresholding.Policy, states StateReader, delivery DeliveryChecker, cfg Config) *Detector {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.ZombieRiskScore <= 0 {
		cfg.ZombieRiskScore = 0.8
	}

	return &Detector{
		policy:   policy,
		states:   states,
		delivery: delivery,
		cfg:      cfg,
	}
}

// Detect compara as campanhas coletadas de uma conta com o estado anterior.
// now é o único relógio usado: carimbo dos registros, ids e horário comercial.
func (d *Detector) Detect(ctx context.Context, account *domain.AdAccount, campaigns []*domain.Campaign, now time.Time) (*Result, error) {
	result := &Result{
		Snapshots: make([]*domain.CampaignSnapshot, 0, len(campaigns)),
		States:    make([]*domain.CurrentState, 0, len(campaigns)),
		Anomalies: make([]*domain.Anomaly, 0),
	}

	hoursContext := d.BusinessHoursContext(now)

	for _, campaign := range campaigns {
		if campaign.HasEnded(now) {
			result.Ended++
			continue
		}

		key := domain.StateKey{Platform: campaign.Platform, AccountID: campaign.AccountID, CampaignID: campaign.ID}

		previous, err := d.states.GetState(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar estado da campanha %s: %w", campaign.ID, err)
		}

		var classification thresholding.Classification
		if previous == nil {
			classification, err = d.policy.ClassifyNewCampaign(campaign.Budget, campaign.BudgetType)
		} else {
			classification, err = d.policy.ClassifyIncrease(previous.CurrentBudget, campaign.Budget, campaign.BudgetType)
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"platform":    campaign.Platform,
				"account_id":  campaign.AccountID,
				"campaign_id": campaign.ID,
				"error":       err.Error(),
			}).Warn("Campanha rejeitada na classificação")
			result.Rejected = append(result.Rejected, Rejection{Campaign: campaign, Err: err})
			continue
		}

		snapshot := d.buildSnapshot(account, campaign, previous, classification.BudgetType, now)
		result.Snapshots = append(result.Snapshots, snapshot)
		result.States = append(result.States, &domain.CurrentState{
			Platform:      campaign.Platform,
			AccountID:     campaign.AccountID,
			CampaignID:    campaign.ID,
			CampaignName:  campaign.Name,
			CurrentBudget: campaign.Budget,
			BudgetType:    classification.BudgetType,
			Currency:      campaign.Currency,
			Status:        campaign.Status,
			LastUpdated:   now,
		})

		if classification.Anomalous {
			anomaly := d.buildAnomaly(account, campaign, previous, classification, now, hoursContext)
			result.Anomalies = append(result.Anomalies, anomaly)
		}

		if zombie := d.checkDelivery(ctx, account, campaign, previous, snapshot, classification, now, hoursContext); zombie != nil {
			result.Anomalies = append(result.Anomalies, zombie)
		}
	}

	return result, nil
}

// BusinessHoursContext classifica now no fuso configurado; o intervalo é
// [início, fim).
func (d *Detector) BusinessHoursContext(now time.Time) domain.BusinessHoursContext {
	hour := now.In(d.cfg.Location).Hour()
	if hour >= d.cfg.BusinessHoursStart && hour < d.cfg.BusinessHoursEnd {
		return domain.BusinessHours
	}
	return domain.AfterHours
}

func (d *Detector) buildSnapshot(
	account *domain.AdAccount,
	campaign *domain.Campaign,
	previous *domain.CurrentState,
	budgetType domain.BudgetType,
	now time.Time,
) *domain.CampaignSnapshot {
	snapshot := &domain.CampaignSnapshot{
		SnapshotID:    snapshotID(campaign, now),
		Platform:      campaign.Platform,
		AccountID:     campaign.AccountID,
		AccountName:   accountName(account, campaign),
		CampaignID:    campaign.ID,
		CampaignName:  campaign.Name,
		BudgetAmount:  campaign.Budget,
		BudgetType:    budgetType,
		Currency:      campaign.Currency,
		Status:        campaign.Status,
		IsNewCampaign: previous == nil,
		CreatedAt:     campaign.CreatedAt,
		ObservedAt:    now,
	}

	if previous != nil {
		prev := previous.CurrentBudget
		snapshot.PreviousBudgetAmount = &prev
		if prev > 0 {
			change := (campaign.Budget/prev - 1) * 100
			snapshot.BudgetChangePercentage = &change
		}
	}

	return snapshot
}

func (d *Detector) buildAnomaly(
	account *domain.AdAccount,
	campaign *domain.Campaign,
	previous *domain.CurrentState,
	c thresholding.Classification,
	now time.Time,
	hoursContext domain.BusinessHoursContext,
) *domain.Anomaly {
	anomaly := &domain.Anomaly{
		AnomalyID:            AnomalyID(campaign.Platform, c.Category, campaign.AccountID, campaign.ID, now),
		Platform:             campaign.Platform,
		AccountID:            campaign.AccountID,
		AccountName:          accountName(account, campaign),
		CampaignID:           campaign.ID,
		CampaignName:         campaign.Name,
		Category:             c.Category,
		CurrentBudget:        campaign.Budget,
		BudgetType:           c.BudgetType,
		Currency:             campaign.Currency,
		IncreaseRatio:        c.Ratio,
		MonthlyImpact:        c.Impact.MonthlyImpact,
		ImpactLevel:          c.Impact.Level,
		RiskScore:            c.RiskScore,
		DetectedTime:         now,
		BusinessHoursContext: hoursContext,
	}

	if c.Category == domain.CategoryNewCampaign {
		anomaly.PreviousBudget = 0
		anomaly.Message = fmt.Sprintf("New campaign with high %s budget: %s", c.BudgetType, formatMoney(campaign.Budget, campaign.Currency))
		return anomaly
	}

	anomaly.PreviousBudget = previous.CurrentBudget
	anomaly.ThresholdUsed = c.Thresholds.String()
	anomaly.Message = fmt.Sprintf("Budget increased by %.0f%% (%s → %s)",
		(c.Ratio-1)*100,
		formatMoney(previous.CurrentBudget, campaign.Currency),
		formatMoney(campaign.Budget, campaign.Currency),
	)

	return anomaly
}

// checkDelivery preenche os dados de veiculação do snapshot e retorna uma
// anomalia de campanha zumbi quando a campanha não consegue veicular.
func (d *Detector) checkDelivery(
	ctx context.Context,
	account *domain.AdAccount,
	campaign *domain.Campaign,
	previous *domain.CurrentState,
	snapshot *domain.CampaignSnapshot,
	classification thresholding.Classification,
	now time.Time,
	hoursContext domain.BusinessHoursContext,
) *domain.Anomaly {
	if d.delivery == nil || campaign.Budget < d.cfg.DeliveryCheckFloor || campaign.Budget <= 0 {
		return nil
	}

	if !campaign.HasStarted(now) {
		snapshot.DeliveryStatus = domain.DeliveryStatusNotStarted
		return nil
	}

	check, err := d.delivery.CheckDelivery(ctx, campaign)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"platform":    campaign.Platform,
			"campaign_id": campaign.ID,
			"error":       err.Error(),
		}).Warn("Falha ao verificar veiculação da campanha")
		snapshot.DeliveryStatus = domain.DeliveryStatusCheckFailed
		return nil
	}

	snapshot.TotalAdSets = &check.TotalAdSets
	snapshot.ActiveAdSets = &check.ActiveAdSets
	snapshot.AdSetsWithActiveAds = &check.AdSetsWithActiveAds
	snapshot.DeliveryStatus = check.Status

	if check.CanDeliver() {
		return nil
	}

	previousBudget := campaign.Budget
	if previous != nil && previous.CurrentBudget > 0 {
		previousBudget = previous.CurrentBudget
	}

	// impacto considera toda a verba alocada como desperdiçada
	impact := classification.AllocatedImpact(campaign.Budget)

	return &domain.Anomaly{
		AnomalyID:            AnomalyID(campaign.Platform, domain.CategoryZombieCampaign, campaign.AccountID, campaign.ID, now),
		Platform:             campaign.Platform,
		AccountID:            campaign.AccountID,
		AccountName:          accountName(account, campaign),
		CampaignID:           campaign.ID,
		CampaignName:         campaign.Name,
		Category:             domain.CategoryZombieCampaign,
		PreviousBudget:       previousBudget,
		CurrentBudget:        campaign.Budget,
		BudgetType:           classification.BudgetType,
		Currency:             campaign.Currency,
		IncreaseRatio:        campaign.Budget / previousBudget,
		MonthlyImpact:        impact.MonthlyImpact,
		ImpactLevel:          impact.Level,
		RiskScore:            d.cfg.ZombieRiskScore,
		Message:              fmt.Sprintf("Campaign cannot deliver: %s", check.Status),
		DeliveryStatus:       check.Status,
		DetectedTime:         now,
		BusinessHoursContext: hoursContext,
	}
}

// AnomalyID monta o identificador estável da anomalia. A categoria faz parte
// do id para que zumbi e aumento da mesma campanha no mesmo segundo não colidam.
func AnomalyID(platform domain.Platform, category domain.Category, accountID, campaignID string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%s_%d", platform, category, accountID, campaignID, at.Unix())
}

func snapshotID(campaign *domain.Campaign, at time.Time) string {
	name := fmt.Sprintf("%s/%s/%s/%d", campaign.Platform, campaign.AccountID, campaign.ID, at.UnixNano())
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

func accountName(account *domain.AdAccount, campaign *domain.Campaign) string {
	if campaign.AccountName != "" {
		return campaign.AccountName
	}
	if account != nil {
		return account.DisplayName()
	}
	return ""
}

func formatMoney(amount float64, currency string) string {
	if math.IsInf(amount, 0) {
		return "∞"
	}
	if currency == "" {
		return fmt.Sprintf("$%.2f", amount)
	}
	return fmt.Sprintf("$%.2f %s", amount, currency)
}
