package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/migration"
	"github.com/vfg2006/budget-anomaly-monitor/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria as tabelas no PostgreSQL e, se habilitado, no BigQuery",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	conn, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := migration.Run(ctx, conn); err != nil {
		return err
	}

	exporter, err := app.NewWarehouse(ctx, cfg)
	if err != nil {
		return err
	}
	if exporter != nil {
		defer exporter.Close()
		if err := exporter.EnsureTables(ctx); err != nil {
			return fmt.Errorf("erro ao criar tabelas no BigQuery: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Schema aplicado com sucesso")
	return nil
}
