package notifying_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/notifying"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/notifying/mocks"
	"go.uber.org/mock/gomock"
)

func TestService_Notify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSender := mocks.NewMockSender(ctrl)
	service := notifying.NewService(mockSender, config.GoogleChat{MaxCriticalItems: 3, MaxNewItems: 3})

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	anomalies := []*domain.Anomaly{{
		AnomalyID:     "meta_budget_increase_warning_act_1_c1_1715342400",
		Platform:      domain.PlatformMeta,
		Category:      domain.CategoryBudgetIncreaseWarning,
		CurrentBudget: 300,
	}}

	tests := []struct {
		name      string
		anomalies []*domain.Anomaly
		setup     func()
		validate  func(t *testing.T, sent bool, err error)
	}{
		{
			name:      "Sem anomalias não envia nada",
			anomalies: nil,
			setup:     func() {},
			validate: func(t *testing.T, sent bool, err error) {
				assert.NoError(t, err)
				assert.False(t, sent)
			},
		},
		{
			name:      "Envio com sucesso",
			anomalies: anomalies,
			setup: func() {
				mockSender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, msg *notifying.ChatMessage) error {
						require.Len(t, msg.Cards, 1)
						assert.Equal(t, "Detected 1 budget anomalies", msg.Cards[0].Header.Subtitle)
						return nil
					})
			},
			validate: func(t *testing.T, sent bool, err error) {
				assert.NoError(t, err)
				assert.True(t, sent)
			},
		},
		{
			name:      "Falha no webhook retorna NotifyError sem nova tentativa",
			anomalies: anomalies,
			setup: func() {
				mockSender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("status 500")).Times(1)
			},
			validate: func(t *testing.T, sent bool, err error) {
				require.Error(t, err)
				assert.False(t, sent)
				var notifyErr *notifying.NotifyError
				require.ErrorAs(t, err, &notifyErr)
				assert.Equal(t, domain.PlatformMeta, notifyErr.Platform)
				assert.Equal(t, 1, notifyErr.Count)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			sent, err := service.Notify(context.Background(), domain.PlatformMeta, tt.anomalies, now)
			tt.validate(t, sent, err)
		})
	}
}

func TestService_Notify_WithoutSender(t *testing.T) {
	service := notifying.NewService(nil, config.GoogleChat{})

	sent, err := service.Notify(context.Background(), domain.PlatformGoogleAds, []*domain.Anomaly{{
		AnomalyID: "x",
		Category:  domain.CategoryNewCampaign,
	}}, time.Now())

	assert.False(t, sent)
	assert.ErrorIs(t, err, notifying.ErrSenderNotConfigured)
}
