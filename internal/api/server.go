package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/internal/api/handler"
	"github.com/vfg2006/budget-anomaly-monitor/internal/api/handler/router"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/account"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/acknowledging"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/authenticating"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Dependencies agrupa os serviços expostos pela API
type Dependencies struct {
	DB             handler.Pinger
	Integrations   map[string]bool
	Authenticator  authenticating.Authenticator
	AccountService account.AccountService
	Acknowledger   acknowledging.AcknowledgeService
	Anomalies      handler.AnomalyReader
	States         handler.StateReader
	Monitor        handler.MonitorRunner
	AccountSync    handler.StatusReporter
}

func New(cfg *config.Config, deps Dependencies) *Server {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(deps.DB, deps.Integrations)...),
		router.WithRoutes(handler.Authentication(deps.Authenticator)...),
		router.WithRoutes(handler.User(deps.Authenticator)...),
		router.WithRoutes(handler.AdAccounts(deps.AccountService)...),
		router.WithRoutes(handler.Anomalies(deps.Anomalies, deps.States, deps.Acknowledger)...),
		router.WithRoutes(handler.Chat(deps.Acknowledger, cfg.GoogleChat.VerificationToken)...),
		router.WithRoutes(handler.Monitor(deps.Monitor, deps.AccountSync)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(deps.Authenticator, handler.PublicPaths...),
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run atende requisições até o contexto ser cancelado e então desliga o
// servidor aguardando as requisições em andamento.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
			return err
		}
		return nil
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
