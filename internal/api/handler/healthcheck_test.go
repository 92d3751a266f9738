package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/internal/api/handler/mocks"
	"go.uber.org/mock/gomock"
)

func TestHealthcheckHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mocks.NewMockPinger(ctrl)

	tests := []struct {
		name         string
		integrations map[string]bool
		pingErr      error
		wantStatus   int
		wantHealth   string
	}{
		{
			name:         "Tudo configurado",
			integrations: map[string]bool{"meta": true, "google_chat": true},
			wantStatus:   http.StatusOK,
			wantHealth:   "healthy",
		},
		{
			name:         "Integração sem configuração",
			integrations: map[string]bool{"meta": true, "bigquery": false},
			wantStatus:   http.StatusOK,
			wantHealth:   "degraded",
		},
		{
			name:         "Banco fora do ar",
			integrations: map[string]bool{"meta": true},
			pingErr:      errors.New("connection refused"),
			wantStatus:   http.StatusServiceUnavailable,
			wantHealth:   "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB.EXPECT().Ping(gomock.Any()).Return(tt.pingErr)

			rec := httptest.NewRecorder()
			HealthcheckHandler(mockDB, tt.integrations).ServeHTTP(rec, newRequest(http.MethodGet, "/healthcheck", ""))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantHealth, resp.Status)
			assert.Len(t, resp.Checks, len(tt.integrations)+1)
		})
	}
}
