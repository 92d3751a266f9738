package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/internal/api/handler/mocks"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestRunMonitor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMonitor := mocks.NewMockMonitorRunner(ctrl)

	tests := []struct {
		name       string
		setup      func()
		wantStatus int
		wantCode   string
	}{
		{
			name: "Ciclo disparado",
			setup: func() {
				mockMonitor.EXPECT().TriggerManualSync(gomock.Any()).Return(true)
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name: "Ciclo já em andamento",
			setup: func() {
				mockMonitor.EXPECT().TriggerManualSync(gomock.Any()).Return(false)
				mockMonitor.EXPECT().GetStatus().Return(map[string]any{"running": true})
			},
			wantStatus: http.StatusConflict,
			wantCode:   apiErrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			rec := httptest.NewRecorder()
			RunMonitor(mockMonitor).ServeHTTP(rec, newRequest(http.MethodPost, "/v1/monitor/run", ""))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			}
		})
	}
}

func TestGetMonitorStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMonitor := mocks.NewMockMonitorRunner(ctrl)
	mockAccountSync := mocks.NewMockStatusReporter(ctrl)

	mockMonitor.EXPECT().GetStatus().Return(map[string]any{"running": false, "cron": "*/30 * * * *"})
	mockAccountSync.EXPECT().GetStatus().Return(map[string]any{"running": true})

	rec := httptest.NewRecorder()
	GetMonitorStatus(mockMonitor, mockAccountSync).ServeHTTP(rec, newRequest(http.MethodGet, "/v1/monitor/status", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "*/30 * * * *", body["budget_monitor"]["cron"])
	assert.Equal(t, true, body["account_sync"]["running"])
}
