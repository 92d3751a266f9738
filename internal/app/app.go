// Package app monta as dependências compartilhadas entre o servidor HTTP e o
// CLI: integradores das plataformas, detectores, notificador e exportador.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/googleads"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/googleads/googleadsclient"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/meta"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/notifier/googlechat"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/warehouse"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/scheduler"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/account"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/detecting"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/notifying"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/thresholding"
)

const metaHTTPTimeout = 60 * time.Second

// Platforms reúne os integradores habilitados
type Platforms struct {
	Monitors     []scheduler.PlatformMonitor
	Sources      []account.AccountSource
	TokenManager *metaclient.TokenManager
}

// NewPlatforms cria coletor e detector para cada plataforma habilitada. O
// token do Meta é validado aqui; a renovação periódica fica a cargo de quem
// chama StartAutoRefresh.
func NewPlatforms(ctx context.Context, cfg *config.Config, states detecting.StateReader) *Platforms {
	policy := thresholding.NewPolicy(cfg.Thresholds)
	detectorConfig := detecting.ConfigFrom(cfg)
	platforms := &Platforms{}

	if cfg.Meta.Enabled {
		httpClient := &http.Client{Timeout: metaHTTPTimeout}
		platforms.TokenManager = metaclient.NewTokenManager(cfg.Meta, httpClient)
		platforms.TokenManager.InitToken(ctx)

		integrator := meta.New(cfg.Meta, metaclient.NewClient(cfg.Meta, platforms.TokenManager, httpClient))

		var delivery detecting.DeliveryChecker
		if cfg.BudgetMonitor.DeliveryCheck {
			delivery = integrator
		}

		platforms.Monitors = append(platforms.Monitors, scheduler.PlatformMonitor{
			Fetcher:  integrator,
			Detector: detecting.NewDetector(policy, states, delivery, detectorConfig),
		})
		platforms.Sources = append(platforms.Sources, integrator)
	}

	if cfg.GoogleAds.Enabled {
		integrator := googleads.New(googleadsclient.NewClient(ctx, cfg.GoogleAds))

		platforms.Monitors = append(platforms.Monitors, scheduler.PlatformMonitor{
			Fetcher:  integrator,
			Detector: detecting.NewDetector(policy, states, nil, detectorConfig),
		})
		platforms.Sources = append(platforms.Sources, integrator)
	}

	if len(platforms.Monitors) == 0 {
		logrus.Warn("Nenhuma plataforma habilitada; o monitor não coletará campanhas")
	}

	return platforms
}

// NewNotifier cria o notificador do Google Chat. Sem webhook configurado o
// envio fica desativado e as anomalias são apenas registradas.
func NewNotifier(cfg *config.Config) *notifying.Service {
	if cfg.GoogleChat.WebhookURL == "" {
		return notifying.NewService(nil, cfg.GoogleChat)
	}
	return notifying.NewService(googlechat.NewWebhookClient(cfg.GoogleChat), cfg.GoogleChat)
}

// NewWarehouse abre o exportador do BigQuery. Retorna nil, nil quando a
// exportação está desligada.
func NewWarehouse(ctx context.Context, cfg *config.Config) (*warehouse.Exporter, error) {
	if !cfg.BigQuery.Enabled {
		return nil, nil
	}
	return warehouse.NewExporter(ctx, cfg.BigQuery)
}

// Integrations informa quais integrações externas estão configuradas
func Integrations(cfg *config.Config) map[string]bool {
	return map[string]bool{
		"meta":        cfg.Meta.Enabled,
		"google_ads":  cfg.GoogleAds.Enabled,
		"google_chat": cfg.GoogleChat.WebhookURL != "",
		"bigquery":    cfg.BigQuery.Enabled,
	}
}
