package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/database/postgres"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/migration"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/repository"
	"github.com/vfg2006/budget-anomaly-monitor/internal/api"
	"github.com/vfg2006/budget-anomaly-monitor/internal/app"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/scheduler"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/account"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/acknowledging"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/authenticating"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if err := migration.Run(ctx, pgConn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar o schema do banco de dados")
	}

	accountRepo := repository.NewAccountRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	stateRepo := repository.NewStateRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	anomalyRepo := repository.NewAnomalyRepository(pgConn)

	platforms := app.NewPlatforms(ctx, cfg, stateRepo)
	if platforms.TokenManager != nil {
		go platforms.TokenManager.StartAutoRefresh(ctx)
	}

	exporter, err := app.NewWarehouse(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao BigQuery")
	}

	var (
		warehouse scheduler.Warehouse
		mirror    acknowledging.Mirror
	)
	if exporter != nil {
		defer exporter.Close()
		warehouse = exporter
		mirror = exporter
	}

	authenticator := authenticating.NewService(userRepo, cfg.SecretKey)
	accountService := account.NewService(accountRepo, platforms.Sources...)
	acknowledger := acknowledging.NewService(anomalyRepo, mirror)

	budgetMonitor := scheduler.NewBudgetMonitorService(
		platforms.Monitors,
		accountRepo,
		snapshotRepo,
		stateRepo,
		anomalyRepo,
		warehouse,
		app.NewNotifier(cfg),
		cfg,
	)
	accountSync := scheduler.NewAccountSyncService(accountService, cfg)

	if err := budgetMonitor.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do monitor de orçamento")
	} else {
		logrus.Info("Agendador do monitor de orçamento iniciado com sucesso")
	}

	if err := accountSync.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de contas")
	} else {
		logrus.Info("Agendador de sincronização de contas iniciado com sucesso")
	}

	server := api.New(cfg, api.Dependencies{
		DB:             pgConn,
		Integrations:   app.Integrations(cfg),
		Authenticator:  authenticator,
		AccountService: accountService,
		Acknowledger:   acknowledger,
		Anomalies:      anomalyRepo,
		States:         stateRepo,
		Monitor:        budgetMonitor,
		AccountSync:    accountSync,
	})

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
