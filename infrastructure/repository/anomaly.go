package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/database/postgres"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
)

const (
	anomaliesTable   = "budget_anomalies"
	anomalyBatchSize = 500
)

var anomalyColumns = []string{
	"anomaly_id", "platform", "account_id", "account_name", "campaign_id", "campaign_name",
	"anomaly_category", "previous_budget", "current_budget", "budget_type", "currency",
	"increase_ratio", "monthly_impact", "impact_level", "threshold_used", "risk_score",
	"message", "delivery_status", "detected_time", "business_hours_context",
	"acknowledged", "acknowledged_by", "acknowledged_at", "acknowledgment_note",
	"false_positive", "alert_sent", "alert_sent_at",
}

type AnomalyRepository interface {
	AppendAnomalies(ctx context.Context, anomalies []*domain.Anomaly) error
	Acknowledge(ctx context.Context, ack domain.Acknowledgment) (int64, error)
	MarkAlertSent(ctx context.Context, anomalyIDs []string, at time.Time) error
	GetAnomaliesByIDs(ctx context.Context, anomalyIDs []string) ([]*domain.Anomaly, error)
	ListAnomalies(ctx context.Context, filters domain.AnomalyFilters) ([]*domain.Anomaly, error)
	Summary(ctx context.Context, filters domain.AnomalyFilters) ([]*domain.AnomalySummary, error)
	AvailablePeriods(ctx context.Context) (*domain.AvailablePeriods, error)
}

type anomalyRepository struct {
	conn *postgres.Connection
}

func NewAnomalyRepository(conn *postgres.Connection) AnomalyRepository {
	return &anomalyRepository{
		conn: conn,
	}
}

// AppendAnomalies grava as anomalias; um id repetido é ignorado
func (r *anomalyRepository) AppendAnomalies(ctx context.Context, anomalies []*domain.Anomaly) error {
	for start := 0; start < len(anomalies); start += anomalyBatchSize {
		end := min(start+anomalyBatchSize, len(anomalies))

		query, args, err := appendAnomaliesQuery(anomalies[start:end])
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
			return wrapDatabaseError(err)
		}
	}

	return nil
}

// Acknowledge altera apenas as anomalias informadas e retorna quantas foram
// encontradas.
func (r *anomalyRepository) Acknowledge(ctx context.Context, ack domain.Acknowledgment) (int64, error) {
	if len(ack.AnomalyIDs) == 0 {
		return 0, nil
	}

	query, args, err := acknowledgeQuery(ack)
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapDatabaseError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error getting rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (r *anomalyRepository) MarkAlertSent(ctx context.Context, anomalyIDs []string, at time.Time) error {
	if len(anomalyIDs) == 0 {
		return nil
	}

	query, args, err := squirrel.
		Update(anomaliesTable).
		Set("alert_sent", true).
		Set("alert_sent_at", at).
		Where(squirrel.Eq{"anomaly_id": anomalyIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDatabaseError(err)
	}

	return nil
}

func (r *anomalyRepository) GetAnomaliesByIDs(ctx context.Context, anomalyIDs []string) ([]*domain.Anomaly, error) {
	if len(anomalyIDs) == 0 {
		return []*domain.Anomaly{}, nil
	}

	query, args, err := squirrel.
		Select(anomalyColumns...).
		From(anomaliesTable).
		Where(squirrel.Eq{"anomaly_id": anomalyIDs}).
		OrderBy("detected_time DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.queryAnomalies(ctx, query, args)
}

func (r *anomalyRepository) ListAnomalies(ctx context.Context, filters domain.AnomalyFilters) ([]*domain.Anomaly, error) {
	query, args, err := listAnomaliesQuery(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.queryAnomalies(ctx, query, args)
}

func (r *anomalyRepository) Summary(ctx context.Context, filters domain.AnomalyFilters) ([]*domain.AnomalySummary, error) {
	query, args, err := summaryQuery(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	summaries := make([]*domain.AnomalySummary, 0)
	for rows.Next() {
		s := &domain.AnomalySummary{}
		if err := rows.Scan(&s.Platform, &s.Category, &s.Total, &s.Acknowledged, &s.FalsePositives, &s.MaxBudget); err != nil {
			return nil, fmt.Errorf("erro ao deserializar resumo: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return summaries, nil
}

// AvailablePeriods lista os meses (mm-yyyy) que possuem anomalias
func (r *anomalyRepository) AvailablePeriods(ctx context.Context) (*domain.AvailablePeriods, error) {
	query, args, err := squirrel.
		Select("DISTINCT TO_CHAR(detected_time, 'MM-YYYY') AS period").
		From(anomaliesTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	periods := make([]string, 0)
	for rows.Next() {
		var period string
		if err := rows.Scan(&period); err != nil {
			return nil, fmt.Errorf("erro ao ler período: %w", err)
		}
		periods = append(periods, period)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return BuildAvailablePeriods(periods), nil
}

// BuildAvailablePeriods ordena os períodos do mais recente para o mais antigo
// e extrai anos e meses únicos.
func BuildAvailablePeriods(periods []string) *domain.AvailablePeriods {
	sorted := make([]string, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool {
		return periodKey(sorted[i]) > periodKey(sorted[j])
	})

	result := &domain.AvailablePeriods{
		Periods: sorted,
		Years:   make([]string, 0),
		Months:  make([]string, 0),
	}

	years := make(map[string]struct{})
	months := make(map[string]struct{})
	for _, p := range sorted {
		if len(p) != 7 {
			continue
		}
		month, year := p[:2], p[3:]
		if _, ok := years[year]; !ok {
			years[year] = struct{}{}
			result.Years = append(result.Years, year)
		}
		if _, ok := months[month]; !ok {
			months[month] = struct{}{}
			result.Months = append(result.Months, month)
		}
	}
	sort.Strings(result.Months)

	return result
}

// periodKey converte mm-yyyy em yyyymm para ordenação
func periodKey(period string) string {
	if len(period) != 7 {
		return period
	}
	return period[3:] + period[:2]
}

func (r *anomalyRepository) queryAnomalies(ctx context.Context, query string, args []any) ([]*domain.Anomaly, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	anomalies := make([]*domain.Anomaly, 0)
	for rows.Next() {
		anomaly, err := scanAnomaly(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar anomalia: %w", err)
		}
		anomalies = append(anomalies, anomaly)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return anomalies, nil
}

func appendAnomaliesQuery(anomalies []*domain.Anomaly) (string, []any, error) {
	query := squirrel.StatementBuilder.
		Insert(anomaliesTable).
		Columns(anomalyColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, a := range anomalies {
		query = query.Values(
			a.AnomalyID,
			a.Platform,
			a.AccountID,
			a.AccountName,
			a.CampaignID,
			a.CampaignName,
			a.Category,
			a.PreviousBudget,
			a.CurrentBudget,
			a.BudgetType,
			a.Currency,
			a.RatioOrNil(),
			a.MonthlyImpact,
			a.ImpactLevel,
			nullableString(a.ThresholdUsed),
			a.RiskScore,
			a.Message,
			nullableString(string(a.DeliveryStatus)),
			a.DetectedTime,
			a.BusinessHoursContext,
			a.Acknowledged,
			a.AcknowledgedBy,
			a.AcknowledgedAt,
			a.AcknowledgmentNote,
			a.FalsePositive,
			a.AlertSent,
			a.AlertSentAt,
		)
	}

	query = query.Suffix("ON CONFLICT (anomaly_id) DO NOTHING")

	return query.ToSql()
}

func acknowledgeQuery(ack domain.Acknowledgment) (string, []any, error) {
	return squirrel.
		Update(anomaliesTable).
		Set("acknowledged", true).
		Set("acknowledged_by", ack.By).
		Set("acknowledged_at", ack.At).
		Set("acknowledgment_note", ack.Note).
		Set("false_positive", ack.FalsePositive).
		Where(squirrel.Eq{"anomaly_id": ack.AnomalyIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func anomalyFilters(builder squirrel.SelectBuilder, filters domain.AnomalyFilters) squirrel.SelectBuilder {
	if filters.Platform != nil {
		builder = builder.Where(squirrel.Eq{"platform": *filters.Platform})
	}
	if filters.Category != nil {
		builder = builder.Where(squirrel.Eq{"anomaly_category": *filters.Category})
	}
	if filters.AccountID != nil {
		builder = builder.Where(squirrel.Eq{"account_id": *filters.AccountID})
	}
	if filters.Acknowledged != nil {
		builder = builder.Where(squirrel.Eq{"acknowledged": *filters.Acknowledged})
	}
	if filters.Since != nil {
		builder = builder.Where(squirrel.GtOrEq{"detected_time": *filters.Since})
	}
	if filters.Until != nil {
		builder = builder.Where(squirrel.Lt{"detected_time": *filters.Until})
	}
	return builder
}

func listAnomaliesQuery(filters domain.AnomalyFilters) (string, []any, error) {
	builder := squirrel.
		Select(anomalyColumns...).
		From(anomaliesTable).
		OrderBy("detected_time DESC", "risk_score DESC").
		PlaceholderFormat(squirrel.Dollar)

	builder = anomalyFilters(builder, filters)

	if filters.Limit > 0 {
		builder = builder.Limit(filters.Limit)
	}

	return builder.ToSql()
}

func summaryQuery(filters domain.AnomalyFilters) (string, []any, error) {
	builder := squirrel.
		Select(
			"platform",
			"anomaly_category",
			"COUNT(*)",
			"COUNT(*) FILTER (WHERE acknowledged)",
			"COUNT(*) FILTER (WHERE false_positive)",
			"COALESCE(MAX(current_budget), 0)",
		).
		From(anomaliesTable).
		GroupBy("platform", "anomaly_category").
		OrderBy("platform ASC", "anomaly_category ASC").
		PlaceholderFormat(squirrel.Dollar)

	return anomalyFilters(builder, filters).ToSql()
}

func scanAnomaly(row rowScanner) (*domain.Anomaly, error) {
	a := &domain.Anomaly{}

	var (
		ratio          sql.NullFloat64
		thresholdUsed  sql.NullString
		deliveryStatus sql.NullString
	)

	if err := row.Scan(
		&a.AnomalyID,
		&a.Platform,
		&a.AccountID,
		&a.AccountName,
		&a.CampaignID,
		&a.CampaignName,
		&a.Category,
		&a.PreviousBudget,
		&a.CurrentBudget,
		&a.BudgetType,
		&a.Currency,
		&ratio,
		&a.MonthlyImpact,
		&a.ImpactLevel,
		&thresholdUsed,
		&a.RiskScore,
		&a.Message,
		&deliveryStatus,
		&a.DetectedTime,
		&a.BusinessHoursContext,
		&a.Acknowledged,
		&a.AcknowledgedBy,
		&a.AcknowledgedAt,
		&a.AcknowledgmentNote,
		&a.FalsePositive,
		&a.AlertSent,
		&a.AlertSentAt,
	); err != nil {
		return nil, err
	}

	a.IncreaseRatio = ratioFromNull(ratio, a.Category)
	a.ThresholdUsed = thresholdUsed.String
	a.DeliveryStatus = domain.DeliveryStatus(deliveryStatus.String)

	return a, nil
}

// ratioFromNull restaura +Inf das campanhas novas, gravado como NULL
func ratioFromNull(ratio sql.NullFloat64, category domain.Category) float64 {
	if ratio.Valid {
		return ratio.Float64
	}
	if category == domain.CategoryNewCampaign {
		return math.Inf(1)
	}
	return 0
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
