package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/acknowledging"
	ackmocks "github.com/vfg2006/budget-anomaly-monitor/internal/usecases/acknowledging/mocks"
	"go.uber.org/mock/gomock"
)

func TestChatInteraction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := ackmocks.NewMockAcknowledgeService(ctrl)

	cardClicked := `{
		"type": "CARD_CLICKED",
		"token": "chat-token",
		"action": {
			"actionMethodName": "acknowledge_anomaly",
			"parameters": [
				{"key": "anomaly_ids", "value": "[\"a1\"]"},
				{"key": "acknowledged", "value": "true"}
			]
		},
		"user": {"displayName": "Ana", "email": "ana@empresa.com"}
	}`

	tests := []struct {
		name       string
		body       string
		setup      func()
		wantStatus int
		wantText   string
	}{
		{
			name: "Clique confirmado",
			body: cardClicked,
			setup: func() {
				mockService.EXPECT().HandleChatEvent(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, event *acknowledging.ChatEvent) (*acknowledging.ChatResponse, error) {
						assert.Equal(t, "ana@empresa.com", event.User.Email)
						assert.Equal(t, "acknowledge_anomaly", event.Action.ActionMethodName)
						return &acknowledging.ChatResponse{Text: "✅ 1 anomalies acknowledged by Ana"}, nil
					})
			},
			wantStatus: http.StatusOK,
			wantText:   "✅ 1 anomalies acknowledged by Ana",
		},
		{
			name: "Erro de parâmetro ainda responde na thread",
			body: cardClicked,
			setup: func() {
				mockService.EXPECT().HandleChatEvent(gomock.Any(), gomock.Any()).
					Return(&acknowledging.ChatResponse{Text: "❌ No anomaly IDs provided"}, errors.New("invalid"))
			},
			wantStatus: http.StatusOK,
			wantText:   "❌ No anomaly IDs provided",
		},
		{
			name:       "Evento que não é clique",
			body:       `{"type": "ADDED_TO_SPACE", "token": "chat-token"}`,
			setup:      func() {},
			wantStatus: http.StatusOK,
			wantText:   "Unknown action",
		},
		{
			name:       "Token de verificação incorreto",
			body:       `{"type": "CARD_CLICKED", "token": "outro"}`,
			setup:      func() {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			rec := httptest.NewRecorder()
			ChatInteraction(mockService, "chat-token").ServeHTTP(rec, newRequest(http.MethodPost, "/v1/chat/interaction", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantText != "" {
				var resp acknowledging.ChatResponse
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantText, resp.Text)
			}
		})
	}
}
