package acknowledging_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/budget-anomaly-monitor/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/acknowledging"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/acknowledging/mocks"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/notifying"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func chatEvent(method string, params ...notifying.ActionParameter) *acknowledging.ChatEvent {
	return &acknowledging.ChatEvent{
		Type:    "CARD_CLICKED",
		Action:  acknowledging.ChatAction{ActionMethodName: method, Parameters: params},
		User:    acknowledging.ChatUser{DisplayName: "Maria Souza", Email: "maria@empresa.com"},
		Message: &acknowledging.ChatMessage{Thread: &acknowledging.ChatThread{Name: "spaces/AAA/threads/BBB"}},
	}
}

func TestService_Acknowledge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repomocks.NewMockAnomalyRepository(ctrl)
	mockMirror := mocks.NewMockMirror(ctrl)
	service := acknowledging.NewService(mockRepo, mockMirror)

	tests := []struct {
		name     string
		ack      domain.Acknowledgment
		setup    func()
		validate func(t *testing.T, result *acknowledging.AcknowledgeResult, err error)
	}{
		{
			name: "Confirma e replica no warehouse",
			ack:  domain.Acknowledgment{AnomalyIDs: []string{"a1", "a1", " a2 "}, By: "joao@empresa.com", Note: "ok"},
			setup: func() {
				mockRepo.EXPECT().Acknowledge(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, ack domain.Acknowledgment) (int64, error) {
						assert.Equal(t, []string{"a1", "a2"}, ack.AnomalyIDs)
						assert.False(t, ack.At.IsZero())
						return 2, nil
					})
				mockMirror.EXPECT().MirrorAcknowledgment(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result *acknowledging.AcknowledgeResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, result.Requested)
				assert.Equal(t, int64(2), result.Updated)
				assert.Equal(t, "joao@empresa.com", result.By)
			},
		},
		{
			name: "Falha no warehouse não falha a confirmação",
			ack:  domain.Acknowledgment{AnomalyIDs: []string{"a3"}, By: "joao@empresa.com", At: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
			setup: func() {
				mockRepo.EXPECT().Acknowledge(gomock.Any(), gomock.Any()).Return(int64(1), nil)
				mockMirror.EXPECT().MirrorAcknowledgment(gomock.Any(), gomock.Any()).Return(errors.New("bigquery indisponível"))
			},
			validate: func(t *testing.T, result *acknowledging.AcknowledgeResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), result.At)
			},
		},
		{
			name:  "Sem ids",
			ack:   domain.Acknowledgment{AnomalyIDs: []string{" "}, By: "joao@empresa.com"},
			setup: func() {},
			validate: func(t *testing.T, result *acknowledging.AcknowledgeResult, err error) {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, acknowledging.ErrNoAnomalyIDs)
				var ackErr *acknowledging.AcknowledgeError
				require.ErrorAs(t, err, &ackErr)
				assert.Equal(t, apiErrors.ErrMissingRequiredData, ackErr.Code)
			},
		},
		{
			name:  "Sem autor",
			ack:   domain.Acknowledgment{AnomalyIDs: []string{"a1"}},
			setup: func() {},
			validate: func(t *testing.T, result *acknowledging.AcknowledgeResult, err error) {
				assert.ErrorIs(t, err, acknowledging.ErrMissingAuthor)
			},
		},
		{
			name: "Nenhuma anomalia encontrada",
			ack:  domain.Acknowledgment{AnomalyIDs: []string{"nao-existe"}, By: "joao@empresa.com"},
			setup: func() {
				mockRepo.EXPECT().Acknowledge(gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			validate: func(t *testing.T, result *acknowledging.AcknowledgeResult, err error) {
				assert.ErrorIs(t, err, acknowledging.ErrAnomaliesNotFound)
			},
		},
		{
			name: "Erro de banco",
			ack:  domain.Acknowledgment{AnomalyIDs: []string{"a1"}, By: "joao@empresa.com"},
			setup: func() {
				mockRepo.EXPECT().Acknowledge(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))
			},
			validate: func(t *testing.T, result *acknowledging.AcknowledgeResult, err error) {
				assert.ErrorIs(t, err, acknowledging.ErrDatabaseOperation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			result, err := service.Acknowledge(context.Background(), tt.ack)
			tt.validate(t, result, err)
		})
	}
}

func TestService_HandleChatEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repomocks.NewMockAnomalyRepository(ctrl)
	service := acknowledging.NewService(mockRepo, nil)

	ids := notifying.ActionParameter{Key: notifying.ParamAnomalyIDs, Value: `["meta_zombie_campaign_act_1_c1_1700000000"]`}

	tests := []struct {
		name     string
		event    *acknowledging.ChatEvent
		setup    func()
		validate func(t *testing.T, resp *acknowledging.ChatResponse, err error)
	}{
		{
			name:  "Botão de confirmação",
			event: chatEvent(notifying.ActionAcknowledge, ids, notifying.ActionParameter{Key: notifying.ParamAcknowledged, Value: "true"}),
			setup: func() {
				mockRepo.EXPECT().Acknowledge(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, ack domain.Acknowledgment) (int64, error) {
						assert.Equal(t, "maria@empresa.com", ack.By)
						assert.Equal(t, "Acknowledged via Google Chat by Maria Souza", ack.Note)
						assert.False(t, ack.FalsePositive)
						return 1, nil
					})
			},
			validate: func(t *testing.T, resp *acknowledging.ChatResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, "✅ 1 anomalies acknowledged by Maria Souza", resp.Text)
				assert.Equal(t, "spaces/AAA/threads/BBB", resp.Thread.Name)
			},
		},
		{
			name:  "Botão de falso positivo",
			event: chatEvent(notifying.ActionAcknowledge, ids, notifying.ActionParameter{Key: notifying.ParamAcknowledged, Value: "FALSE"}),
			setup: func() {
				mockRepo.EXPECT().Acknowledge(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, ack domain.Acknowledgment) (int64, error) {
						assert.Equal(t, "Marked as false positive by Maria Souza", ack.Note)
						assert.True(t, ack.FalsePositive)
						return 1, nil
					})
			},
			validate: func(t *testing.T, resp *acknowledging.ChatResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, "✅ 1 anomalies marked as false positive by Maria Souza", resp.Text)
			},
		},
		{
			name:  "Detalhes",
			event: chatEvent(notifying.ActionViewDetails, ids),
			setup: func() {
				by := "ana@empresa.com"
				at := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
				mockRepo.EXPECT().GetAnomaliesByIDs(gomock.Any(), []string{"meta_zombie_campaign_act_1_c1_1700000000"}).Return([]*domain.Anomaly{{
					CampaignName:   "Institucional",
					AccountName:    "Loja Centro",
					Category:       domain.CategoryZombieCampaign,
					Message:        "Campaign cannot deliver: No active ads",
					CurrentBudget:  12000,
					PreviousBudget: 12000,
					DetectedTime:   time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
					Acknowledged:   true,
					AcknowledgedBy: &by,
					AcknowledgedAt: &at,
				}}, nil)
			},
			validate: func(t *testing.T, resp *acknowledging.ChatResponse, err error) {
				require.NoError(t, err)
				assert.Contains(t, resp.Text, "*Campaign:* Institucional")
				assert.Contains(t, resp.Text, "*Current Budget:* $12,000")
				assert.Contains(t, resp.Text, "*Acknowledged by:* ana@empresa.com")
			},
		},
		{
			name:  "Detalhes sem resultado",
			event: chatEvent(notifying.ActionViewDetails, ids),
			setup: func() {
				mockRepo.EXPECT().GetAnomaliesByIDs(gomock.Any(), gomock.Any()).Return([]*domain.Anomaly{}, nil)
			},
			validate: func(t *testing.T, resp *acknowledging.ChatResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, "❌ No anomaly details found", resp.Text)
			},
		},
		{
			name:  "Sem ids",
			event: chatEvent(notifying.ActionAcknowledge, notifying.ActionParameter{Key: notifying.ParamAcknowledged, Value: "true"}),
			setup: func() {},
			validate: func(t *testing.T, resp *acknowledging.ChatResponse, err error) {
				assert.ErrorIs(t, err, acknowledging.ErrNoAnomalyIDs)
				assert.Equal(t, "❌ No anomaly IDs provided", resp.Text)
			},
		},
		{
			name:  "Ids malformados",
			event: chatEvent(notifying.ActionAcknowledge, notifying.ActionParameter{Key: notifying.ParamAnomalyIDs, Value: "a1,a2"}),
			setup: func() {},
			validate: func(t *testing.T, resp *acknowledging.ChatResponse, err error) {
				assert.ErrorIs(t, err, acknowledging.ErrInvalidParameters)
			},
		},
		{
			name:  "Ação desconhecida",
			event: chatEvent("snooze", ids),
			setup: func() {},
			validate: func(t *testing.T, resp *acknowledging.ChatResponse, err error) {
				assert.ErrorIs(t, err, acknowledging.ErrUnknownAction)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			resp, err := service.HandleChatEvent(context.Background(), tt.event)
			tt.validate(t, resp, err)
		})
	}
}
