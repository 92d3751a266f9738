package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/repository"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/detecting"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/notifying"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/metrics"
)

var ErrCycleRunning = errors.New("budget monitor cycle already running")

// CampaignFetcher lista as campanhas atuais de uma conta, com orçamento já
// convertido para a unidade da moeda
type CampaignFetcher interface {
	Platform() domain.Platform
	FetchCampaigns(ctx context.Context, account *domain.AdAccount) ([]*domain.Campaign, error)
}

type CampaignDetector interface {
	Detect(ctx context.Context, account *domain.AdAccount, campaigns []*domain.Campaign, now time.Time) (*detecting.Result, error)
}

type AccountLister interface {
	ListAccounts(ctx context.Context, platform *domain.Platform, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error)
}

// Warehouse replica os registros do ciclo para análise histórica
type Warehouse interface {
	ExportSnapshots(ctx context.Context, snapshots []*domain.CampaignSnapshot) error
	ExportAnomalies(ctx context.Context, anomalies []*domain.Anomaly) error
}

// PlatformMonitor liga o coletor de uma plataforma ao seu detector
type PlatformMonitor struct {
	Fetcher  CampaignFetcher
	Detector CampaignDetector
}

// FetchError isola a falha de coleta de uma conta
type FetchError struct {
	Platform  domain.Platform
	AccountID string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch campaigns for %s account %s: %v", e.Platform, e.AccountID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PlatformReport resume o ciclo de uma plataforma
type PlatformReport struct {
	Platform       domain.Platform   `json:"platform"`
	Accounts       int               `json:"accounts"`
	FailedAccounts []string          `json:"failed_accounts,omitempty"`
	Campaigns      int               `json:"campaigns"`
	Snapshots      int               `json:"snapshots"`
	Rejected       int               `json:"rejected"`
	Ended          int               `json:"ended"`
	Anomalies      []*domain.Anomaly `json:"anomalies"`
	AlertSent      bool              `json:"alert_sent"`
	Error          string            `json:"error,omitempty"`
	Duration       string            `json:"duration"`
}

type CycleReport struct {
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt time.Time         `json:"completed_at"`
	Platforms   []*PlatformReport `json:"platforms"`
}

// TotalAnomalies soma as anomalias de todas as plataformas
func (r *CycleReport) TotalAnomalies() int {
	total := 0
	for _, platform := range r.Platforms {
		total += len(platform.Anomalies)
	}
	return total
}

type BudgetMonitorConfig struct {
	CronSchedule   string
	Enabled        bool
	NotifyEnabled  bool
	AccountTimeout time.Duration
	RequestDelay   time.Duration
}

// BudgetMonitorService executa o ciclo coleta, detecção, persistência e alerta
type BudgetMonitorService struct {
	scheduler    *gocron.Scheduler
	config       BudgetMonitorConfig
	monitors     []PlatformMonitor
	accountRepo  AccountLister
	snapshotRepo repository.SnapshotRepository
	stateRepo    repository.StateRepository
	anomalyRepo  repository.AnomalyRepository
	warehouse    Warehouse
	notifier     notifying.Notifier
	now          func() time.Time

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          *CycleReport
	lastError           error
}

// NewBudgetMonitorService cria o serviço. warehouse pode ser nil quando a
// exportação para o BigQuery estiver desligada.
func NewBudgetMonitorService(
	monitors []PlatformMonitor,
	accountRepo AccountLister,
	snapshotRepo repository.SnapshotRepository,
	stateRepo repository.StateRepository,
	anomalyRepo repository.AnomalyRepository,
	warehouse Warehouse,
	notifier notifying.Notifier,
	appConfig *config.Config,
) *BudgetMonitorService {
	monitorConfig := BudgetMonitorConfig{
		CronSchedule:   appConfig.BudgetMonitor.CronSchedule,
		Enabled:        appConfig.BudgetMonitor.Enabled,
		NotifyEnabled:  appConfig.BudgetMonitor.NotifyEnabled,
		AccountTimeout: time.Duration(appConfig.BudgetMonitor.AccountTimeoutSecs) * time.Second,
		RequestDelay:   time.Duration(appConfig.BudgetMonitor.RequestDelaySeconds) * time.Second,
	}

	platforms := make([]string, 0, len(monitors))
	for _, monitor := range monitors {
		platforms = append(platforms, string(monitor.Fetcher.Platform()))
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   monitorConfig.CronSchedule,
		"enabled":         monitorConfig.Enabled,
		"notify_enabled":  monitorConfig.NotifyEnabled,
		"account_timeout": monitorConfig.AccountTimeout.String(),
		"platforms":       platforms,
		"warehouse":       warehouse != nil,
	}).Info("Configuração do monitor de orçamento carregada")

	return &BudgetMonitorService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       monitorConfig,
		monitors:     monitors,
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
		stateRepo:    stateRepo,
		anomalyRepo:  anomalyRepo,
		warehouse:    warehouse,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Start agenda o ciclo no cron configurado
func (s *BudgetMonitorService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Monitor de orçamento desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do monitor de orçamento")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunCycle(ctx); err != nil && !errors.Is(err, ErrCycleRunning) {
			logrus.WithError(err).Error("Ciclo do monitor de orçamento terminou com erro")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar monitor de orçamento: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do monitor de orçamento")
		s.scheduler.Stop()
	}()

	return nil
}

// RunCycle executa um ciclo completo para cada plataforma configurada. Falhas
// de coleta ficam isoladas na conta; falhas de persistência abortam apenas a
// plataforma em questão e são devolvidas junto com falhas de envio do alerta.
func (s *BudgetMonitorService) RunCycle(ctx context.Context) (*CycleReport, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ciclo do monitor de orçamento já em andamento, ignorando")
		return nil, ErrCycleRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	report := &CycleReport{StartedAt: s.lastSyncStartedAt}

	var errs []error
	for _, monitor := range s.monitors {
		platformReport, err := s.runPlatform(ctx, monitor)
		report.Platforms = append(report.Platforms, platformReport)
		if err != nil {
			platformReport.Error = err.Error()
			errs = append(errs, err)
		}
	}

	report.CompletedAt = s.now()
	cycleErr := errors.Join(errs...)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = report.CompletedAt
	s.lastReport = report
	s.lastError = cycleErr
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"duration":  report.CompletedAt.Sub(report.StartedAt).String(),
		"anomalies": report.TotalAnomalies(),
		"failed":    cycleErr != nil,
	}).Info("Ciclo do monitor de orçamento concluído")

	return report, cycleErr
}

func (s *BudgetMonitorService) runPlatform(ctx context.Context, monitor PlatformMonitor) (*PlatformReport, error) {
	platform := monitor.Fetcher.Platform()
	started := time.Now()
	report := &PlatformReport{Platform: platform, Anomalies: []*domain.Anomaly{}}

	err := s.processPlatform(ctx, monitor, report)

	report.Duration = time.Since(started).String()
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusFailure
	}
	metrics.RecordCycle(string(platform), status, time.Since(started))

	return report, err
}

func (s *BudgetMonitorService) processPlatform(ctx context.Context, monitor PlatformMonitor, report *PlatformReport) error {
	platform := report.Platform

	accounts, err := s.accountRepo.ListAccounts(ctx, &platform, []domain.AdAccountStatus{domain.AdAccountStatusActive})
	if err != nil {
		return fmt.Errorf("erro ao listar contas de %s: %w", platform, err)
	}

	report.Accounts = len(accounts)
	if len(accounts) == 0 {
		logrus.WithField("platform", platform).Info("Nenhuma conta ativa para monitorar")
		return nil
	}

	now := s.now()

	var (
		snapshots []*domain.CampaignSnapshot
		states    []*domain.CurrentState
		anomalies []*domain.Anomaly
	)

	for i, account := range accounts {
		if i > 0 {
			if err := wait(ctx, s.config.RequestDelay); err != nil {
				return fmt.Errorf("ciclo interrompido antes da conta %s: %w", account.ExternalID, err)
			}
		}

		campaigns, err := s.fetchAccount(ctx, monitor.Fetcher, account)
		if err != nil {
			var fetchErr *FetchError
			if errors.As(err, &fetchErr) {
				report.FailedAccounts = append(report.FailedAccounts, account.ExternalID)
				continue
			}
			return err
		}

		report.Campaigns += len(campaigns)
		metrics.RecordCampaignsFetched(string(platform), len(campaigns))

		result, err := monitor.Detector.Detect(ctx, account, campaigns, now)
		if err != nil {
			return fmt.Errorf("erro na detecção da conta %s: %w", account.ExternalID, err)
		}

		report.Rejected += len(result.Rejected)
		report.Ended += result.Ended
		snapshots = append(snapshots, result.Snapshots...)
		states = append(states, result.States...)
		anomalies = append(anomalies, result.Anomalies...)
	}

	if err := s.persist(ctx, platform, snapshots, states, anomalies); err != nil {
		return err
	}

	report.Snapshots = len(snapshots)
	report.Anomalies = anomalies
	for _, anomaly := range anomalies {
		metrics.RecordAnomaly(string(platform), string(anomaly.Category))
	}

	s.export(ctx, platform, snapshots, anomalies)

	logrus.WithFields(logrus.Fields{
		"platform":        platform,
		"accounts":        report.Accounts,
		"failed_accounts": len(report.FailedAccounts),
		"campaigns":       report.Campaigns,
		"anomalies":       len(anomalies),
		"rejected":        report.Rejected,
	}).Info("Detecção concluída para plataforma")

	sent, err := s.notify(ctx, platform, anomalies, now)
	report.AlertSent = sent
	return err
}

// fetchAccount coleta uma conta com prazo próprio; o erro volta como FetchError
// para que o ciclo siga com as demais contas
func (s *BudgetMonitorService) fetchAccount(ctx context.Context, fetcher CampaignFetcher, account *domain.AdAccount) ([]*domain.Campaign, error) {
	if s.config.AccountTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.AccountTimeout)
		defer cancel()
	}

	campaigns, err := fetcher.FetchCampaigns(ctx, account)
	if err != nil {
		fetchErr := &FetchError{Platform: fetcher.Platform(), AccountID: account.ExternalID, Err: err}
		metrics.RecordFetchError(string(fetcher.Platform()))
		logrus.WithFields(logrus.Fields{
			"platform":     fetcher.Platform(),
			"account_id":   account.ExternalID,
			"account_name": account.DisplayName(),
			"error":        err.Error(),
		}).Error("Erro ao coletar campanhas da conta, seguindo com as demais")
		return nil, fetchErr
	}

	return campaigns, nil
}

// persist grava anomalias antes do estado: se o estado falhar, o próximo ciclo
// ainda enxerga a mudança em vez de perder o alerta
func (s *BudgetMonitorService) persist(
	ctx context.Context,
	platform domain.Platform,
	snapshots []*domain.CampaignSnapshot,
	states []*domain.CurrentState,
	anomalies []*domain.Anomaly,
) error {
	if err := s.snapshotRepo.AppendSnapshots(ctx, snapshots); err != nil {
		return fmt.Errorf("erro ao gravar snapshots de %s: %w", platform, err)
	}

	if err := s.anomalyRepo.AppendAnomalies(ctx, anomalies); err != nil {
		return fmt.Errorf("erro ao gravar anomalias de %s: %w", platform, err)
	}

	if err := s.stateRepo.UpsertStates(ctx, states); err != nil {
		return fmt.Errorf("erro ao atualizar estado de %s: %w", platform, err)
	}

	return nil
}

func (s *BudgetMonitorService) export(ctx context.Context, platform domain.Platform, snapshots []*domain.CampaignSnapshot, anomalies []*domain.Anomaly) {
	if s.warehouse == nil {
		return
	}

	if err := s.warehouse.ExportSnapshots(ctx, snapshots); err != nil {
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"error":    err.Error(),
		}).Error("Erro ao exportar snapshots para o BigQuery")
	}

	if err := s.warehouse.ExportAnomalies(ctx, anomalies); err != nil {
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"error":    err.Error(),
		}).Error("Erro ao exportar anomalias para o BigQuery")
	}
}

func (s *BudgetMonitorService) notify(ctx context.Context, platform domain.Platform, anomalies []*domain.Anomaly, now time.Time) (bool, error) {
	if len(anomalies) == 0 {
		return false, nil
	}

	if !s.config.NotifyEnabled || s.notifier == nil {
		logrus.WithField("platform", platform).Info("Envio de alertas desativado, anomalias apenas gravadas")
		return false, nil
	}

	sent, err := s.notifier.Notify(ctx, platform, anomalies, now)
	if err != nil {
		if errors.Is(err, notifying.ErrSenderNotConfigured) {
			return false, nil
		}
		metrics.RecordNotification(string(platform), metrics.StatusFailure)
		return false, err
	}
	if !sent {
		return false, nil
	}

	metrics.RecordNotification(string(platform), metrics.StatusSuccess)

	ids := make([]string, 0, len(anomalies))
	sentAt := s.now()
	for _, anomaly := range anomalies {
		ids = append(ids, anomaly.AnomalyID)
		anomaly.AlertSent = true
		anomaly.AlertSentAt = &sentAt
	}

	if err := s.anomalyRepo.MarkAlertSent(ctx, ids, sentAt); err != nil {
		return true, fmt.Errorf("erro ao marcar alertas enviados de %s: %w", platform, err)
	}

	return true, nil
}

// TriggerManualSync dispara um ciclo fora do cron. Retorna false quando já
// existe um ciclo em andamento.
func (s *BudgetMonitorService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ciclo do monitor de orçamento já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando ciclo manual do monitor de orçamento")
	go func() {
		if _, err := s.RunCycle(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, ErrCycleRunning) {
			logrus.WithError(err).Error("Ciclo manual do monitor de orçamento terminou com erro")
		}
	}()
	return true
}

// GetStatus retorna o estado atual do agendador e o resultado do último ciclo
func (s *BudgetMonitorService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"enabled":                s.config.Enabled,
		"cron":                   s.config.CronSchedule,
		"notify_enabled":         s.config.NotifyEnabled,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	if s.lastError != nil {
		status["last_error"] = s.lastError.Error()
	}

	if s.lastReport != nil {
		platforms := make([]map[string]any, 0, len(s.lastReport.Platforms))
		for _, platform := range s.lastReport.Platforms {
			platforms = append(platforms, map[string]any{
				"platform":        platform.Platform,
				"accounts":        platform.Accounts,
				"failed_accounts": len(platform.FailedAccounts),
				"campaigns":       platform.Campaigns,
				"anomalies":       len(platform.Anomalies),
				"alert_sent":      platform.AlertSent,
				"error":           platform.Error,
			})
		}
		status["last_cycle"] = platforms
	}

	return status
}

// wait aguarda o intervalo entre contas ou o cancelamento do contexto
func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
