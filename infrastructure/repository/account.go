package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/database/postgres"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
)

const (
	accountsTable        = "accounts a"
	businessManagerTable = "business_manager"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountRepository interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.AdAccount, error)
	ListAccounts(ctx context.Context, platform *domain.Platform, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error)
	ListAccountsMap(ctx context.Context, platform domain.Platform) (map[string]string, error)
	SaveOrUpdate(ctx context.Context, accounts []*domain.AdAccount, businessManagerIDs map[string]string) error
	SaveOrUpdateBusinessManager(ctx context.Context, bms []*domain.BusinessManager) (map[string]string, error)
	UpdateAccount(ctx context.Context, account *domain.UpdateAdAccountRequest) error
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

// BusinessManagerKey monta a chave composta plataforma:id externo
func BusinessManagerKey(platform domain.Platform, externalID string) string {
	return fmt.Sprintf("%s:%s", platform, externalID)
}

func (a *accountRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.AdAccount, error) {
	query, args, err := accountSelect().
		Where(squirrel.Eq{"a.id": accountID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	acc, err := scanAccount(a.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDatabaseError(err)
	}

	return acc, nil
}

func (a *accountRepository) ListAccounts(ctx context.Context, platform *domain.Platform, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error) {
	query, args, err := listAccountsQuery(platform, availableStatus)
	if err != nil {
		return nil, err
	}

	rows, err := a.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar a conta: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return accounts, nil
}

// ListAccountsMap retorna external_id -> id das contas da plataforma
func (a *accountRepository) ListAccountsMap(ctx context.Context, platform domain.Platform) (map[string]string, error) {
	query, args, err := squirrel.
		Select("a.id, a.external_id").
		From(accountsTable).
		Where(squirrel.Eq{"a.platform": platform}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	accountsMap := make(map[string]string)
	for rows.Next() {
		var id, externalID string
		if err := rows.Scan(&id, &externalID); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a conta: %w", err)
		}
		accountsMap[externalID] = id
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return accountsMap, nil
}

func (a *accountRepository) SaveOrUpdate(ctx context.Context, accounts []*domain.AdAccount, businessManagerIDs map[string]string) error {
	query, args, err := saveAccountsQuery(accounts, businessManagerIDs)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if query == "" {
		return nil
	}

	if _, err := a.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDatabaseError(err)
	}

	return nil
}

// SaveOrUpdateBusinessManager grava os agrupadores e retorna o mapa
// plataforma:id externo -> id interno, incluindo os já existentes.
func (a *accountRepository) SaveOrUpdateBusinessManager(ctx context.Context, bms []*domain.BusinessManager) (map[string]string, error) {
	businessManagerIDs, err := a.existingBusinessManagers(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao recuperar business managers existentes: %w", err)
	}

	for _, bm := range bms {
		key := BusinessManagerKey(bm.Platform, bm.ExternalID)
		if _, exists := businessManagerIDs[key]; exists {
			continue
		}

		query, args, err := squirrel.StatementBuilder.
			Insert(businessManagerTable).
			Columns("id", "external_id", "name", "platform").
			Values(bm.ID, bm.ExternalID, bm.Name, bm.Platform).
			Suffix("ON CONFLICT (external_id, platform) DO UPDATE SET name = EXCLUDED.name RETURNING id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return businessManagerIDs, fmt.Errorf("failed to build query: %w", err)
		}

		var id string
		if err := a.conn.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return businessManagerIDs, wrapDatabaseError(err)
		}

		businessManagerIDs[key] = id
	}

	return businessManagerIDs, nil
}

func (a *accountRepository) UpdateAccount(ctx context.Context, account *domain.UpdateAdAccountRequest) error {
	if account.ID == "" {
		return errors.New("ID is required")
	}

	builder := squirrel.
		Update("accounts").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": account.ID}).
		PlaceholderFormat(squirrel.Dollar)

	if account.Nickname != nil {
		builder = builder.Set("nickname", *account.Nickname)
	}
	if account.Status != nil {
		builder = builder.Set("status", *account.Status)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := a.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapDatabaseError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (a *accountRepository) existingBusinessManagers(ctx context.Context) (map[string]string, error) {
	query, args, err := squirrel.
		Select("id, external_id, platform").
		From(businessManagerTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	ids := make(map[string]string)
	for rows.Next() {
		var id, externalID string
		var platform domain.Platform
		if err := rows.Scan(&id, &externalID, &platform); err != nil {
			return nil, fmt.Errorf("erro ao ler business manager: %w", err)
		}
		ids[BusinessManagerKey(platform, externalID)] = id
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração dos resultados: %w", err)
	}

	return ids, nil
}

func accountSelect() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"a.id", "a.external_id", "a.name", "a.nickname", "a.platform", "a.currency",
			"a.timezone", "a.status", "a.updated_at", "COALESCE(bm.external_id, '')", "COALESCE(bm.name, '')",
		).
		From(accountsTable).
		LeftJoin("business_manager bm ON a.business_id = bm.id").
		PlaceholderFormat(squirrel.Dollar)
}

func listAccountsQuery(platform *domain.Platform, availableStatus []domain.AdAccountStatus) (string, []any, error) {
	builder := accountSelect().OrderBy("a.platform ASC", "COALESCE(a.nickname, a.name) ASC")

	if platform != nil {
		builder = builder.Where(squirrel.Eq{"a.platform": *platform})
	}
	if len(availableStatus) > 0 {
		builder = builder.Where(squirrel.Eq{"a.status": availableStatus})
	}

	return builder.ToSql()
}

func saveAccountsQuery(accounts []*domain.AdAccount, businessManagerIDs map[string]string) (string, []any, error) {
	query := squirrel.StatementBuilder.
		Insert("accounts").
		Columns("id", "external_id", "name", "nickname", "platform", "currency", "timezone", "business_id", "status").
		PlaceholderFormat(squirrel.Dollar)

	rows := 0
	for _, account := range accounts {
		bmKey := BusinessManagerKey(account.Platform, account.BusinessManagerID)

		businessID, exists := businessManagerIDs[bmKey]
		if !exists {
			logrus.Warnf("Business manager não encontrado para a chave: %s", bmKey)
			continue
		}

		query = query.Values(
			account.ID,
			account.ExternalID,
			account.Name,
			account.Nickname,
			account.Platform,
			account.Currency,
			account.Timezone,
			businessID,
			account.Status,
		)
		rows++
	}

	if rows == 0 {
		return "", nil, nil
	}

	query = query.Suffix(`
		ON CONFLICT (external_id, platform) DO UPDATE SET
			name = EXCLUDED.name,
			currency = EXCLUDED.currency,
			timezone = EXCLUDED.timezone,
			updated_at = NOW(),
			nickname = COALESCE(accounts.nickname, EXCLUDED.nickname)
	`)

	return query.ToSql()
}

func scanAccount(row rowScanner) (*domain.AdAccount, error) {
	acc := &domain.AdAccount{}

	if err := row.Scan(
		&acc.ID,
		&acc.ExternalID,
		&acc.Name,
		&acc.Nickname,
		&acc.Platform,
		&acc.Currency,
		&acc.Timezone,
		&acc.Status,
		&acc.UpdatedAt,
		&acc.BusinessManagerID,
		&acc.BusinessManagerName,
	); err != nil {
		return nil, err
	}

	return acc, nil
}
