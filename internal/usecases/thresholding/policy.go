package thresholding

import (
	"fmt"
	"math"

	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
)

const daysPerMonth = 30

// Thresholds são as razões atual/anterior que disparam alerta e alerta crítico
type Thresholds struct {
	Warning  float64 `json:"warning"`
	Critical float64 `json:"critical"`
}

func (t Thresholds) String() string {
	return fmt.Sprintf("Warning: %gx, Critical: %gx", t.Warning, t.Critical)
}

// bracket vale para orçamentos anteriores <= UpTo
type bracket struct {
	UpTo float64
	Thresholds
}

// Impact é o impacto financeiro mensal estimado de uma mudança de orçamento
type Impact struct {
	MonthlyImpact float64            `json:"monthly_impact"`
	Level         domain.ImpactLevel `json:"impact_level"`
	RiskScore     float64            `json:"risk_score"`
}

// Classification é o resultado de uma avaliação. Anomalous=false significa
// que a mudança não merece alerta.
type Classification struct {
	Anomalous  bool
	Category   domain.Category
	BudgetType domain.BudgetType
	Ratio      float64
	Thresholds Thresholds
	Impact     Impact
	RiskScore  float64
}

type Policy struct {
	dailyBrackets    []bracket
	dailyAbove       Thresholds
	lifetimeBrackets []bracket
	lifetimeAbove    Thresholds

	newCampaignDailyFloor    float64
	newCampaignLifetimeFloor float64
}

// DefaultPolicy retorna as faixas de orçamento e pisos padrão
func DefaultPolicy() Policy {
	return Policy{
		dailyBrackets: []bracket{
			{UpTo: 50, Thresholds: Thresholds{Warning: 5.0, Critical: 10.0}},
			{UpTo: 200, Thresholds: Thresholds{Warning: 3.0, Critical: 5.0}},
			{UpTo: 1000, Thresholds: Thresholds{Warning: 2.0, Critical: 3.0}},
		},
		dailyAbove: Thresholds{Warning: 1.5, Critical: 2.0},
		lifetimeBrackets: []bracket{
			{UpTo: 1000, Thresholds: Thresholds{Warning: 2.0, Critical: 3.0}},
		},
		lifetimeAbove:            Thresholds{Warning: 1.3, Critical: 1.8},
		newCampaignDailyFloor:    165,
		newCampaignLifetimeFloor: 5000,
	}
}

// NewPolicy aplica os pisos configurados sobre a política padrão
func NewPolicy(cfg config.Thresholds) Policy {
	p := DefaultPolicy()
	if cfg.NewCampaignDailyFloor > 0 {
		p.newCampaignDailyFloor = cfg.NewCampaignDailyFloor
	}
	if cfg.NewCampaignLifetimeFloor > 0 {
		p.newCampaignLifetimeFloor = cfg.NewCampaignLifetimeFloor
	}
	return p
}

func normalize(bt domain.BudgetType, previous, current float64) (domain.BudgetType, error) {
	normalized, ok := bt.Normalize()
	if !ok {
		return "", &ClassificationInputError{Err: ErrUnknownBudgetType, BudgetType: string(bt), Previous: previous, Current: current}
	}
	if previous < 0 || current < 0 || math.IsNaN(previous) || math.IsNaN(current) {
		return "", &ClassificationInputError{Err: ErrNegativeBudget, BudgetType: string(bt), Previous: previous, Current: current}
	}
	return normalized, nil
}

// SmartThresholds retorna as razões de alerta para a faixa do orçamento.
// As faixas são testadas em ordem crescente com <=, a primeira vence.
func (p Policy) SmartThresholds(amount float64, bt domain.BudgetType) (Thresholds, error) {
	normalized, err := normalize(bt, amount, amount)
	if err != nil {
		return Thresholds{}, err
	}
	return p.thresholdsFor(amount, normalized), nil
}

func (p Policy) thresholdsFor(amount float64, bt domain.BudgetType) Thresholds {
	brackets, above := p.lifetimeBrackets, p.lifetimeAbove
	if bt == domain.BudgetTypeDaily {
		brackets, above = p.dailyBrackets, p.dailyAbove
	}

	for _, b := range brackets {
		if amount <= b.UpTo {
			return b.Thresholds
		}
	}
	return above
}

// NewCampaignFloor é o orçamento mínimo para alertar uma campanha nova
func (p Policy) NewCampaignFloor(bt domain.BudgetType) (float64, error) {
	normalized, err := normalize(bt, 0, 0)
	if err != nil {
		return 0, err
	}
	return p.floorFor(normalized), nil
}

func (p Policy) floorFor(bt domain.BudgetType) float64 {
	if bt == domain.BudgetTypeDaily {
		return p.newCampaignDailyFloor
	}
	return p.newCampaignLifetimeFloor
}

// CalculateImpact estima o impacto mensal. Orçamentos diários são
// multiplicados por 30; os demais já representam o valor total.
func (p Policy) CalculateImpact(previous, current float64, bt domain.BudgetType) (Impact, error) {
	normalized, err := normalize(bt, previous, current)
	if err != nil {
		return Impact{}, err
	}
	return impactFor(previous, current, normalized), nil
}

func impactFor(previous, current float64, bt domain.BudgetType) Impact {
	monthly := current - previous
	if bt == domain.BudgetTypeDaily {
		monthly *= daysPerMonth
	}

	switch {
	case monthly >= 10000:
		return Impact{MonthlyImpact: monthly, Level: domain.ImpactHigh, RiskScore: 0.9}
	case monthly >= 2000:
		return Impact{MonthlyImpact: monthly, Level: domain.ImpactMedium, RiskScore: 0.6}
	case monthly >= 500:
		return Impact{MonthlyImpact: monthly, Level: domain.ImpactLow, RiskScore: 0.3}
	default:
		return Impact{MonthlyImpact: monthly, Level: domain.ImpactMinimal, RiskScore: 0.1}
	}
}

// AllocatedImpact estima o impacto de toda a verba alocada usando o tipo de
// orçamento já normalizado pela classificação
func (c Classification) AllocatedImpact(amount float64) Impact {
	return impactFor(0, amount, c.BudgetType)
}

// ClassifyIncrease avalia uma campanha existente. Exige previous > 0 para
// calcular a razão; orçamento anterior zerado, reduções e valores iguais não
// geram anomalia.
func (p Policy) ClassifyIncrease(previous, current float64, bt domain.BudgetType) (Classification, error) {
	normalized, err := normalize(bt, previous, current)
	if err != nil {
		return Classification{}, err
	}

	result := Classification{BudgetType: normalized}
	if previous <= 0 || current <= previous {
		return result, nil
	}

	// A faixa é determinada pelo orçamento anterior
	result.Ratio = current / previous
	result.Thresholds = p.thresholdsFor(previous, normalized)
	result.Impact = impactFor(previous, current, normalized)

	if result.Ratio < result.Thresholds.Warning {
		return result, nil
	}

	result.Anomalous = true
	if result.Ratio >= result.Thresholds.Critical || result.Impact.Level == domain.ImpactHigh {
		result.Category = domain.CategoryBudgetIncreaseCritical
		result.RiskScore = math.Max(0.8, result.Impact.RiskScore)
	} else {
		result.Category = domain.CategoryBudgetIncreaseWarning
		result.RiskScore = math.Max(0.5, result.Impact.RiskScore)
	}

	return result, nil
}

// ClassifyNewCampaign avalia uma campanha sem estado anterior
func (p Policy) ClassifyNewCampaign(current float64, bt domain.BudgetType) (Classification, error) {
	normalized, err := normalize(bt, 0, current)
	if err != nil {
		return Classification{}, err
	}

	result := Classification{BudgetType: normalized}
	if current <= 0 || current < p.floorFor(normalized) {
		return result, nil
	}

	result.Anomalous = true
	result.Category = domain.CategoryNewCampaign
	result.Ratio = math.Inf(1)
	result.Impact = impactFor(0, current, normalized)
	result.RiskScore = result.Impact.RiskScore

	return result, nil
}
