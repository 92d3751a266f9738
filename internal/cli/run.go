package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/repository"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/repository/memory"
	"github.com/vfg2006/budget-anomaly-monitor/internal/app"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/scheduler"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/account"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/utils"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Executa um ciclo completo do monitor",
	Long: `Executa um ciclo do monitor para todas as plataformas habilitadas e imprime
o relatório em JSON. Com --dry-run o estado fica em memória, as contas são lidas
direto das plataformas e nenhum alerta é enviado.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("dry-run", false, "não grava no banco e não envia alertas")
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var report *scheduler.CycleReport
	if dryRun {
		report, err = runDryCycle(cmd.Context(), cfg)
	} else {
		report, err = runCycle(cmd.Context(), cfg)
	}

	if report != nil {
		fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(report))
	}

	return err
}

func runCycle(ctx context.Context, cfg *config.Config) (*scheduler.CycleReport, error) {
	conn, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	stateRepo := repository.NewStateRepository(conn)
	platforms := app.NewPlatforms(ctx, cfg, stateRepo)

	exporter, err := app.NewWarehouse(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var warehouse scheduler.Warehouse
	if exporter != nil {
		defer exporter.Close()
		warehouse = exporter
	}

	monitor := scheduler.NewBudgetMonitorService(
		platforms.Monitors,
		repository.NewAccountRepository(conn),
		repository.NewSnapshotRepository(conn),
		stateRepo,
		repository.NewAnomalyRepository(conn),
		warehouse,
		app.NewNotifier(cfg),
		cfg,
	)

	return monitor.RunCycle(ctx)
}

func runDryCycle(ctx context.Context, cfg *config.Config) (*scheduler.CycleReport, error) {
	store := memory.NewStore()
	platforms := app.NewPlatforms(ctx, cfg, store)

	seedAccounts(ctx, store, platforms.Sources)

	return newDryRunMonitor(cfg, platforms.Monitors, store).RunCycle(ctx)
}

// seedAccounts carrega no store as contas visíveis em cada plataforma. Falha
// numa plataforma é registrada e as demais seguem.
func seedAccounts(ctx context.Context, store *memory.Store, sources []account.AccountSource) {
	for _, source := range sources {
		accounts, err := source.GetAdAccounts(ctx)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"platform": source.Platform(),
				"error":    err.Error(),
			}).Error("Erro ao listar contas da plataforma")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"platform": source.Platform(),
			"accounts": len(accounts),
		}).Info("Contas carregadas para o dry-run")

		store.AddAccounts(accounts...)
	}
}

func newDryRunMonitor(cfg *config.Config, monitors []scheduler.PlatformMonitor, store *memory.Store) *scheduler.BudgetMonitorService {
	dryCfg := *cfg
	dryCfg.BudgetMonitor.NotifyEnabled = false

	return scheduler.NewBudgetMonitorService(monitors, store, store, store, store, nil, nil, &dryCfg)
}
