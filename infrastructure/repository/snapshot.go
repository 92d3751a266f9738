package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/database/postgres"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
)

const (
	snapshotsTable    = "campaign_snapshots"
	snapshotBatchSize = 500
)

type SnapshotRepository interface {
	AppendSnapshots(ctx context.Context, snapshots []*domain.CampaignSnapshot) error
}

type snapshotRepository struct {
	conn *postgres.Connection
}

func NewSnapshotRepository(conn *postgres.Connection) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

// AppendSnapshots grava o histórico sem deduplicação
func (r *snapshotRepository) AppendSnapshots(ctx context.Context, snapshots []*domain.CampaignSnapshot) error {
	for start := 0; start < len(snapshots); start += snapshotBatchSize {
		end := min(start+snapshotBatchSize, len(snapshots))

		query, args, err := appendSnapshotsQuery(snapshots[start:end])
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
			return wrapDatabaseError(err)
		}
	}

	return nil
}

func appendSnapshotsQuery(snapshots []*domain.CampaignSnapshot) (string, []any, error) {
	query := squirrel.StatementBuilder.
		Insert(snapshotsTable).
		Columns(
			"snapshot_id", "platform", "account_id", "account_name", "campaign_id", "campaign_name",
			"budget_amount", "budget_type", "currency", "status", "previous_budget_amount",
			"budget_change_percentage", "is_new_campaign", "total_adsets", "active_adsets",
			"adsets_with_active_ads", "delivery_status", "created_at", "observed_at",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, s := range snapshots {
		var deliveryStatus *string
		if s.DeliveryStatus != "" {
			status := string(s.DeliveryStatus)
			deliveryStatus = &status
		}

		query = query.Values(
			s.SnapshotID,
			s.Platform,
			s.AccountID,
			s.AccountName,
			s.CampaignID,
			s.CampaignName,
			s.BudgetAmount,
			s.BudgetType,
			s.Currency,
			s.Status,
			s.PreviousBudgetAmount,
			s.BudgetChangePercentage,
			s.IsNewCampaign,
			s.TotalAdSets,
			s.ActiveAdSets,
			s.AdSetsWithActiveAds,
			deliveryStatus,
			s.CreatedAt,
			s.ObservedAt,
		)
	}

	return query.ToSql()
}
