package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/database/postgres"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
)

const (
	stateTable = "campaign_current_state"

	// limite de parâmetros do postgres é 65535; 9 colunas por linha
	stateBatchSize = 1000
)

var stateColumns = []string{
	"platform", "account_id", "campaign_id", "campaign_name", "current_budget",
	"budget_type", "currency", "status", "last_updated",
}

type StateRepository interface {
	GetState(ctx context.Context, key domain.StateKey) (*domain.CurrentState, error)
	UpsertStates(ctx context.Context, states []*domain.CurrentState) error
	ListStates(ctx context.Context, filters domain.StateFilters) ([]*domain.CurrentState, error)
}

type stateRepository struct {
	conn *postgres.Connection
}

func NewStateRepository(conn *postgres.Connection) StateRepository {
	return &stateRepository{
		conn: conn,
	}
}

// GetState retorna nil, nil quando a campanha ainda não tem estado gravado
func (r *stateRepository) GetState(ctx context.Context, key domain.StateKey) (*domain.CurrentState, error) {
	query, args, err := getStateQuery(key)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	state, err := scanState(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDatabaseError(err)
	}

	return state, nil
}

// UpsertStates substitui orçamento, status e last_updated de cada chave
func (r *stateRepository) UpsertStates(ctx context.Context, states []*domain.CurrentState) error {
	for start := 0; start < len(states); start += stateBatchSize {
		end := min(start+stateBatchSize, len(states))

		query, args, err := upsertStatesQuery(states[start:end])
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
			return wrapDatabaseError(err)
		}
	}

	return nil
}

func (r *stateRepository) ListStates(ctx context.Context, filters domain.StateFilters) ([]*domain.CurrentState, error) {
	query, args, err := listStatesQuery(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	states := make([]*domain.CurrentState, 0)
	for rows.Next() {
		state, err := scanState(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar estado: %w", err)
		}
		states = append(states, state)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return states, nil
}

func getStateQuery(key domain.StateKey) (string, []any, error) {
	return squirrel.
		Select(stateColumns...).
		From(stateTable).
		Where(squirrel.Eq{
			"platform":    key.Platform,
			"account_id":  key.AccountID,
			"campaign_id": key.CampaignID,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func upsertStatesQuery(states []*domain.CurrentState) (string, []any, error) {
	query := squirrel.StatementBuilder.
		Insert(stateTable).
		Columns(stateColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, s := range states {
		query = query.Values(
			s.Platform,
			s.AccountID,
			s.CampaignID,
			s.CampaignName,
			s.CurrentBudget,
			s.BudgetType,
			s.Currency,
			s.Status,
			s.LastUpdated,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (platform, account_id, campaign_id) DO UPDATE SET
			campaign_name = EXCLUDED.campaign_name,
			current_budget = EXCLUDED.current_budget,
			budget_type = EXCLUDED.budget_type,
			currency = EXCLUDED.currency,
			status = EXCLUDED.status,
			last_updated = EXCLUDED.last_updated
	`)

	return query.ToSql()
}

func listStatesQuery(filters domain.StateFilters) (string, []any, error) {
	builder := squirrel.
		Select(stateColumns...).
		From(stateTable).
		OrderBy("last_updated DESC", "campaign_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.Platform != nil {
		builder = builder.Where(squirrel.Eq{"platform": *filters.Platform})
	}
	if filters.AccountID != nil {
		builder = builder.Where(squirrel.Eq{"account_id": *filters.AccountID})
	}
	if filters.StaleBefore != nil {
		builder = builder.Where(squirrel.Lt{"last_updated": *filters.StaleBefore})
	}
	if filters.Limit > 0 {
		builder = builder.Limit(filters.Limit)
	}

	return builder.ToSql()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanState(row rowScanner) (*domain.CurrentState, error) {
	state := &domain.CurrentState{}

	if err := row.Scan(
		&state.Platform,
		&state.AccountID,
		&state.CampaignID,
		&state.CampaignName,
		&state.CurrentBudget,
		&state.BudgetType,
		&state.Currency,
		&state.Status,
		&state.LastUpdated,
	); err != nil {
		return nil, err
	}

	return state, nil
}

func wrapDatabaseError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("failed to execute query: %w", err)
}
