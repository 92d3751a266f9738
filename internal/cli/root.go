// Package cli implementa o job de linha de comando do monitor de orçamento.
// Cada subcomando carrega a configuração do ambiente, igual ao servidor.
package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/database/postgres"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/log"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor de anomalias de orçamento do Meta Ads e Google Ads",
	Long: `Executa o ciclo do monitor de orçamento uma única vez, no formato de job.
O ciclo coleta as campanhas das contas ativas, compara com o último estado
conhecido, registra as anomalias e envia o alerta para o Google Chat.`,
	SilenceUsage: true,
}

// Execute roda o comando raiz. O erro já foi impresso pelo cobra.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "nível de log (sobrescreve LOG_LEVEL)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.App.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log.Setup(level)

	return cfg, nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (*postgres.Connection, error) {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn, nil
}
