package googlechat

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/notifying"
)

func TestWebhookClient_Send(t *testing.T) {
	message := &notifying.ChatMessage{
		Cards: []notifying.Card{{
			Header: &notifying.CardHeader{Title: "🚨 Meta Ads Budget Alert"},
		}},
	}

	tests := []struct {
		name     string
		handler  http.HandlerFunc
		validate func(t *testing.T, err error)
	}{
		{
			name: "Envia o cartão como JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

				body, _ := io.ReadAll(r.Body)
				assert.Contains(t, string(body), `"title":"🚨 Meta Ads Budget Alert"`)
				w.Write([]byte(`{"name":"spaces/AAA/messages/BBB"}`))
			},
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "Status diferente de 2xx é falha",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"message":"Invalid JSON payload"}}`))
			},
			validate: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "400")
				assert.Contains(t, err.Error(), "Invalid JSON payload")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewWebhookClient(config.GoogleChat{WebhookURL: server.URL, Timeout: time.Second})
			tt.validate(t, client.Send(context.Background(), message))
		})
	}
}

func TestWebhookClient_SendWithoutURL(t *testing.T) {
	client := NewWebhookClient(config.GoogleChat{})
	err := client.Send(context.Background(), &notifying.ChatMessage{})
	assert.ErrorIs(t, err, ErrWebhookNotConfigured)
}

func TestWebhookClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewWebhookClient(config.GoogleChat{WebhookURL: server.URL, Timeout: 50 * time.Millisecond})
	err := client.Send(context.Background(), &notifying.ChatMessage{})
	assert.Error(t, err)
}
