package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
)

type validatorFunc func(string) (*domain.Claims, error)

func (f validatorFunc) ValidateToken(token string) (*domain.Claims, error) {
	return f(token)
}

func okHandler(t *testing.T, expectClaims bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := ClaimsFromContext(r.Context())
		assert.Equal(t, expectClaims, ok)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	validator := validatorFunc(func(token string) (*domain.Claims, error) {
		if token == "valid" {
			return &domain.Claims{UserID: 1, UserRoleID: RoleAdmin}, nil
		}
		return nil, errors.New("invalid")
	})

	tests := []struct {
		name          string
		path          string
		authorization string
		expectClaims  bool
		wantStatus    int
	}{
		{name: "Rota pública dispensa token", path: "/healthcheck", wantStatus: http.StatusNoContent},
		{name: "Sem cabeçalho", path: "/v1/anomalies", wantStatus: http.StatusUnauthorized},
		{name: "Cabeçalho sem Bearer", path: "/v1/anomalies", authorization: "valid", wantStatus: http.StatusUnauthorized},
		{name: "Token inválido", path: "/v1/anomalies", authorization: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "Token válido", path: "/v1/anomalies", authorization: "Bearer valid", expectClaims: true, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(validator, "/healthcheck", "/v1/login")(okHandler(t, tt.expectClaims))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	validator := validatorFunc(func(token string) (*domain.Claims, error) {
		switch token {
		case "admin":
			return &domain.Claims{UserID: 1, UserRoleID: RoleAdmin}, nil
		case "observer":
			return &domain.Claims{UserID: 3, UserRoleID: RoleObserver}, nil
		}
		return nil, errors.New("invalid")
	})

	handler := AuthMiddleware(validator)(CanAcknowledge()(okHandler(t, true)))

	for token, want := range map[string]int{"admin": http.StatusNoContent, "observer": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodPost, "/v1/anomalies/acknowledge", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, token)
	}

	rec := httptest.NewRecorder()
	AdminOnly()(okHandler(t, false)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/users", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler(t, false))

	req := httptest.NewRequest(http.MethodOptions, "/v1/anomalies", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/anomalies", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware(t *testing.T) {
	handler := LoggingMiddleware()(okHandler(t, false))

	req := httptest.NewRequest(http.MethodGet, "/v1/monitor/status", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/monitor/status", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
