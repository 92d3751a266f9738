package handler

import (
	"net/http"

	"github.com/vfg2006/budget-anomaly-monitor/internal/api/handler/router"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/account"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/acknowledging"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/authenticating"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/metrics"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/middleware"
)

// Rotas que dispensam o Bearer token
var PublicPaths = []string{
	"/healthcheck",
	"/metrics",
	"/v1/login",
	"/v1/chat/interaction",
}

func Healthcheck(db Pinger, integrations map[string]bool) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db, integrations),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func AdAccounts(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts",
			Method:      http.MethodGet,
			Handler:     AdAccountList(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/sync",
			Method:      http.MethodPost,
			Handler:     SyncAccounts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/accounts/:id",
			Method:      http.MethodPut,
			Handler:     UpdateAdAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Anomalies(reader AnomalyReader, states StateReader, service acknowledging.AcknowledgeService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/anomalies",
			Method:      http.MethodGet,
			Handler:     ListAnomalies(reader),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/anomalies/summary",
			Method:      http.MethodGet,
			Handler:     GetAnomalySummary(reader),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/anomalies/periods",
			Method:      http.MethodGet,
			Handler:     GetAnomalyPeriods(reader),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/anomalies/acknowledge",
			Method:      http.MethodPost,
			Handler:     AcknowledgeAnomalies(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.CanAcknowledge()},
		},
		{
			Path:        "/v1/states",
			Method:      http.MethodGet,
			Handler:     ListStates(states),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Chat(service acknowledging.AcknowledgeService, verificationToken string) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/chat/interaction",
			Method:  http.MethodPost,
			Handler: ChatInteraction(service, verificationToken),
		},
	}
}

func Monitor(monitor MonitorRunner, accountSync StatusReporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/monitor/run",
			Method:      http.MethodPost,
			Handler:     RunMonitor(monitor),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/monitor/status",
			Method:      http.MethodGet,
			Handler:     GetMonitorStatus(monitor, accountSync),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
