package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/account"
)

// AccountSyncService mantém a tabela de contas monitoradas alinhada com as
// contas visíveis nas plataformas
type AccountSyncService struct {
	scheduler      *gocron.Scheduler
	cronSchedule   string
	enabled        bool
	accountService account.AccountService

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResults         []*domain.SyncAccountsResponse
}

func NewAccountSyncService(accountService account.AccountService, appConfig *config.Config) *AccountSyncService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.AccountSync.CronSchedule,
		"sync_enabled":  appConfig.AccountSync.Enabled,
	}).Info("Configuração do agendador de sincronização de contas carregada")

	return &AccountSyncService{
		scheduler:      gocron.NewScheduler(time.Local),
		cronSchedule:   appConfig.AccountSync.CronSchedule,
		enabled:        appConfig.AccountSync.Enabled,
		accountService: accountService,
	}
}

func (s *AccountSyncService) Start(ctx context.Context) error {
	if !s.enabled {
		logrus.Info("Sincronização de contas desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.cronSchedule).Do(func() {
		s.syncAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de contas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de contas")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *AccountSyncService) syncAll(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de contas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	results, err := s.accountService.SyncAccounts(ctx)
	if err != nil {
		logrus.WithError(err).Error("Sincronização de contas terminou com erro")
	}

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastResults = results
	s.syncMutex.Unlock()
}

func (s *AccountSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.enabled,
		"sync_cron":              s.cronSchedule,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_results":           s.lastResults,
	}
}
