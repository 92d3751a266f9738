package migration

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
)

//go:embed schema.sql
var schema string

var createTableRe = regexp.MustCompile(`CREATE TABLE IF NOT EXISTS (\w+)`)

// TxRunner é implementado por postgres.Connection
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}

// Tables lista as tabelas criadas pelo schema, na ordem de criação
func Tables() []string {
	matches := createTableRe.FindAllStringSubmatch(schema, -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables
}

// Run aplica o schema em uma única transação. Todas as instruções são
// idempotentes, então pode rodar a cada deploy.
func Run(ctx context.Context, conn TxRunner) error {
	logrus.WithField("tables", Tables()).Info("Aplicando schema do banco de dados")
	startTime := time.Now()

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, schema)
		return err
	})
	if err != nil {
		return fmt.Errorf("erro ao aplicar schema: %w", err)
	}

	logrus.WithField("elapsed", time.Since(startTime).String()).Info("Schema aplicado com sucesso")
	return nil
}
